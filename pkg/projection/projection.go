// Package projection maps business records into a render context using a
// fixed key vocabulary that is independent of any template's declared
// variables. Values are emitted raw (time.Time for dates, float64 for
// amounts) so the renderer's per-type formatting is the only formatting path.
package projection

import (
	"time"

	"github.com/goliatone/go-doctemplate/pkg/model"
	"github.com/goliatone/go-doctemplate/pkg/records"
)

// Projection keys.
const (
	KeyContractDate      = "contractDate"
	KeyCustomerName      = "customerName"
	KeyCustomerAddress   = "customerAddress"
	KeyCustomerPhone     = "customerPhone"
	KeyContractorName    = "contractorName"
	KeyContractorAddress = "contractorAddress"
	KeyContractorPhone   = "contractorPhone"
	KeyWorkTitle         = "workTitle"
	KeyWorkLocation      = "workLocation"
	KeyWorkDescription   = "workDescription"
	KeyStartDate         = "startDate"
	KeyEndDate           = "endDate"
	KeyWorkDays          = "workDays"
	KeyLaborCost         = "laborCost"
	KeyMaterialCost      = "materialCost"
	KeyTotalCost         = "totalCost"
	KeyPaymentType       = "paymentType"
	KeyPaymentTerms      = "paymentTerms"
	KeyAdditionalTerms   = "additionalTerms"
)

// Keys lists the full vocabulary in display order.
func Keys() []string {
	return []string{
		KeyContractDate,
		KeyCustomerName, KeyCustomerAddress, KeyCustomerPhone,
		KeyContractorName, KeyContractorAddress, KeyContractorPhone,
		KeyWorkTitle, KeyWorkLocation, KeyWorkDescription,
		KeyStartDate, KeyEndDate, KeyWorkDays,
		KeyLaborCost, KeyMaterialCost, KeyTotalCost,
		KeyPaymentType, KeyPaymentTerms, KeyAdditionalTerms,
	}
}

// Option configures a Projector.
type Option func(*Projector)

// WithClock overrides the clock that stamps contractDate.
func WithClock(now func() time.Time) Option {
	return func(p *Projector) {
		if now != nil {
			p.now = now
		}
	}
}

// Projector builds render contexts from contract records.
type Projector struct {
	now func() time.Time
}

// New constructs a Projector.
func New(options ...Option) *Projector {
	p := &Projector{now: time.Now}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}
	return p
}

// Project uses a Projector with the system clock.
func Project(contract *records.Contract, customer *records.Customer, contractor *records.Contractor) model.RenderContext {
	return New().Project(contract, customer, contractor)
}

// Project maps the records into a context where every key is present. Nil
// records, missing text and missing dates map to "", missing numbers to 0.
// materialCost and totalCost are derived from the material lines and labor
// cost rather than read from stored totals.
func (p *Projector) Project(contract *records.Contract, customer *records.Customer, contractor *records.Contractor) model.RenderContext {
	if contract == nil {
		contract = &records.Contract{}
	}
	if customer == nil {
		customer = &records.Customer{}
	}
	if contractor == nil {
		contractor = &records.Contractor{}
	}

	now := p.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	materialCost := contract.MaterialCost()

	return model.NewRenderContext(map[string]any{
		KeyContractDate:      today,
		KeyCustomerName:      customer.Name,
		KeyCustomerAddress:   customer.Address,
		KeyCustomerPhone:     customer.Phone,
		KeyContractorName:    contractor.Name,
		KeyContractorAddress: contractor.Address,
		KeyContractorPhone:   contractor.Phone,
		KeyWorkTitle:         contract.Title,
		KeyWorkLocation:      contract.WorkLocation,
		KeyWorkDescription:   contract.Description,
		KeyStartDate:         dateOrEmpty(contract.StartDate),
		KeyEndDate:           dateOrEmpty(contract.EndDate),
		KeyWorkDays:          contract.EstimatedDays,
		KeyLaborCost:         contract.LaborCost,
		KeyMaterialCost:      materialCost,
		KeyTotalCost:         contract.LaborCost + materialCost,
		KeyPaymentType:       paymentLabel(contract.PaymentType),
		KeyPaymentTerms:      contract.Terms,
		KeyAdditionalTerms:   contract.WorkSpecification,
	})
}

func dateOrEmpty(t *time.Time) any {
	if t == nil || t.IsZero() {
		return ""
	}
	return *t
}

func paymentLabel(p records.PaymentType) string {
	if p == "" {
		return ""
	}
	return p.Label()
}
