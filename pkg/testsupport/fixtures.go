// Package testsupport holds fixtures and golden-file helpers shared by the
// package tests.
package testsupport

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goliatone/go-doctemplate/pkg/model"
	"github.com/goliatone/go-doctemplate/pkg/records"
)

// FixedTime is the clock every fixture is built against.
var FixedTime = time.Date(2026, time.October, 18, 9, 30, 0, 0, time.UTC)

// Clock returns FixedTime.
func Clock() time.Time { return FixedTime }

// GreetingTemplate is the smallest useful definition: a memo with a required
// name and a currency amount defaulting to zero.
func GreetingTemplate() model.TemplateDefinition {
	return model.TemplateDefinition{
		ID:       "greeting",
		Name:     "ทักทาย",
		Category: model.CategoryMemo,
		Body:     "สวัสดี {{name}} จำนวน {{amount}}",
		Variables: []model.VariableDefinition{
			{Name: "name", Label: "ชื่อ", Type: model.VariableTypeText, Required: true},
			{Name: "amount", Label: "จำนวนเงิน", Type: model.VariableTypeCurrency, DefaultValue: 0},
		},
		IsActive: true,
	}
}

// ContractRecords returns a customer, contractor and contract whose material
// cost is 250 and total cost 750.
func ContractRecords() (*records.Contract, *records.Customer, *records.Contractor) {
	start := time.Date(2026, time.November, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.November, 12, 0, 0, 0, 0, time.UTC)

	contract := &records.Contract{
		ID:            "contract-1",
		Title:         "ปูกระเบื้องห้องน้ำ",
		Description:   "รื้อและปูกระเบื้องใหม่",
		WorkLocation:  "กรุงเทพมหานคร",
		StartDate:     &start,
		EndDate:       &end,
		EstimatedDays: 12,
		PaymentType:   records.PaymentFixed,
		LaborCost:     500,
		Materials: []records.ContractMaterial{
			{Name: "ปูนกาว", Quantity: 2, Unit: "ถุง", UnitPrice: 100},
			{Name: "ยาแนว", Quantity: 1, Unit: "ถุง", UnitPrice: 50},
		},
		WorkSpecification: "ชำระเมื่องานเสร็จ",
		Terms:             "รับประกันงาน 1 ปี",
		Status:            records.ContractDraft,
	}
	customer := &records.Customer{
		ID:      "customer-1",
		Name:    "สมชาย ใจดี",
		Phone:   "081-234-5678",
		Address: "123 ถนนสุขุมวิท",
		Type:    records.CustomerIndividual,
	}
	contractor := &records.Contractor{
		ID:      "contractor-1",
		Name:    "ช่างสมศักดิ์",
		Phone:   "089-876-5432",
		Address: "45 ถนนพหลโยธิน",
		Status:  "active",
	}
	return contract, customer, contractor
}

// MustReadGolden returns the content of a golden file. With UPDATE_GOLDENS
// set it first rewrites the file with got.
func MustReadGolden(t *testing.T, path, got string) string {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("golden dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(got), 0o644); err != nil {
			t.Fatalf("update golden: %v", err)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return string(data)
}

// CaptureTemplateOutput runs render against a buffer and returns both the
// returned string and what was written.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()
	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return out, buf.String()
}
