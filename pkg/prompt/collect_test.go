package prompt

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-doctemplate/pkg/model"
)

// scriptedDriver answers from a queue and records every question.
type scriptedDriver struct {
	answers   []string
	questions []Question
	titles    []string
}

func (d *scriptedDriver) Ask(_ context.Context, q Question) (string, error) {
	d.questions = append(d.questions, q)
	if len(d.answers) == 0 {
		return "", errors.New("no answer scripted")
	}
	answer := d.answers[0]
	d.answers = d.answers[1:]
	return answer, nil
}

func (d *scriptedDriver) Announce(_ context.Context, title string) error {
	d.titles = append(d.titles, title)
	return nil
}

func receiptTemplate() model.TemplateDefinition {
	return model.TemplateDefinition{
		Name:     "ใบเสร็จ",
		Category: model.CategoryReceipt,
		Variables: []model.VariableDefinition{
			{Name: "customerName", Label: "ชื่อ", Type: model.VariableTypeText, Required: true},
			{Name: "amount", Label: "จำนวนเงิน", Type: model.VariableTypeCurrency, DefaultValue: 0},
			{Name: "method", Label: "วิธีชำระ", Type: model.VariableTypeText, Options: []string{"เงินสด", "โอนเงิน"}, DefaultValue: "โอนเงิน"},
			{Name: "paid", Label: "ชำระแล้ว", Type: model.VariableTypeBoolean},
			{Name: "items", Label: "รายการ", Type: model.VariableTypeTable},
			{Name: "note", Label: "หมายเหตุ", Type: model.VariableTypeText},
		},
	}
}

func TestCollect(t *testing.T) {
	driver := &scriptedDriver{answers: []string{
		"สมชาย",
		"1,500",
		"เงินสด",
		"true",
		`[{"item":"ปูน"}]`,
		"  ",
	}}

	ctx, err := New(driver).Collect(context.Background(), receiptTemplate())
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	want := map[string]any{
		"customerName": "สมชาย",
		"amount":       "1,500",
		"method":       "เงินสด",
		"paid":         true,
		"items":        `[{"item":"ปูน"}]`,
	}
	if diff := cmp.Diff(want, ctx.Map()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"ใบเสร็จ"}, driver.titles); diff != "" {
		t.Fatalf("title mismatch (-want +got):\n%s", diff)
	}

	var kinds []Kind
	for _, q := range driver.questions {
		kinds = append(kinds, q.Kind)
	}
	wantKinds := []Kind{KindLine, KindLine, KindChoice, KindConfirm, KindMultiline, KindLine}
	if diff := cmp.Diff(wantKinds, kinds); diff != "" {
		t.Fatalf("question kinds mismatch (-want +got):\n%s", diff)
	}

	name, amount, method, paid := driver.questions[0], driver.questions[1], driver.questions[2], driver.questions[3]
	if name.Message != "ชื่อ (ข้อความ) *" || name.Validate == nil {
		t.Fatalf("unexpected name question %+v", name)
	}
	if amount.Default != "0" {
		t.Fatalf("expected declared default offered, got %q", amount.Default)
	}
	if method.Default != "โอนเงิน" {
		t.Fatalf("expected declared option preselected, got %q", method.Default)
	}
	if paid.Default != "false" {
		t.Fatalf("unbound boolean defaults to false, got %q", paid.Default)
	}
}

func TestCollect_PrefilledValues(t *testing.T) {
	def := model.TemplateDefinition{
		Variables: []model.VariableDefinition{
			{Name: "startDate", Label: "เริ่ม", Type: model.VariableTypeDate},
			{Name: "extra", Label: "เพิ่ม", Type: model.VariableTypeText},
		},
	}
	prefill := model.NewRenderContext(map[string]any{
		"startDate": time.Date(2026, time.November, 1, 0, 0, 0, 0, time.UTC),
		"workDays":  12,
	})
	driver := &scriptedDriver{answers: []string{"2026-11-02", ""}}

	ctx, err := New(driver, WithValues(prefill)).Collect(context.Background(), def)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if driver.questions[0].Default != "2026-11-01" {
		t.Fatalf("expected prefilled default, got %q", driver.questions[0].Default)
	}
	if got, _ := ctx.Lookup("startDate"); got != "2026-11-02" {
		t.Fatalf("answer should override prefill, got %#v", got)
	}
	if got, _ := ctx.Lookup("workDays"); got != 12 {
		t.Fatalf("prefilled values outside the template are kept, got %#v", got)
	}
	if _, ok := ctx.Lookup("extra"); ok {
		t.Fatal("blank optional answer must stay unbound")
	}
}

func TestCollect_RejectsInvalidAnswers(t *testing.T) {
	tests := []struct {
		name    string
		answers []string
	}{
		{name: "choice outside options", answers: []string{"สมชาย", "1", "เช็ค"}},
		{name: "confirm not boolean", answers: []string{"สมชาย", "1", "เงินสด", "maybe"}},
		{name: "driver exhausted", answers: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(&scriptedDriver{answers: tt.answers}).Collect(context.Background(), receiptTemplate())
			if err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestValidator(t *testing.T) {
	c := New(&scriptedDriver{})
	minLen := 3

	tests := []struct {
		name       string
		variable   model.VariableDefinition
		hasDefault bool
		answer     string
		wantErr    bool
	}{
		{name: "required blank", variable: model.VariableDefinition{Type: model.VariableTypeText, Required: true}, answer: " ", wantErr: true},
		{name: "required blank with default", variable: model.VariableDefinition{Type: model.VariableTypeText, Required: true}, hasDefault: true, answer: ""},
		{name: "number ok", variable: model.VariableDefinition{Type: model.VariableTypeNumber}, answer: "1,234.5"},
		{name: "number bad", variable: model.VariableDefinition{Type: model.VariableTypeCurrency}, answer: "lots", wantErr: true},
		{name: "date ok", variable: model.VariableDefinition{Type: model.VariableTypeDate}, answer: "2026-10-18"},
		{name: "date bad", variable: model.VariableDefinition{Type: model.VariableTypeDate}, answer: "someday", wantErr: true},
		{name: "min length", variable: model.VariableDefinition{Type: model.VariableTypeText, Validation: &model.Constraints{MinLength: &minLen}}, answer: "ab", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.validatorFor(tt.variable, tt.hasDefault)(tt.answer)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
