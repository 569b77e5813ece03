// Package records defines the business records a document is projected
// from: customers, contractors and contractor contracts.
package records

import "time"

// CustomerType distinguishes individuals from corporate customers.
type CustomerType string

const (
	CustomerIndividual CustomerType = "individual"
	CustomerCorporate  CustomerType = "corporate"
)

// Customer is the hiring party.
type Customer struct {
	ID            string       `json:"id" yaml:"id"`
	Name          string       `json:"name" yaml:"name"`
	Email         string       `json:"email,omitempty" yaml:"email,omitempty"`
	Phone         string       `json:"phone,omitempty" yaml:"phone,omitempty"`
	Address       string       `json:"address,omitempty" yaml:"address,omitempty"`
	Type          CustomerType `json:"type" yaml:"type"`
	TaxID         string       `json:"taxId,omitempty" yaml:"taxId,omitempty"`
	ContactPerson string       `json:"contactPerson,omitempty" yaml:"contactPerson,omitempty"`
	CreatedAt     time.Time    `json:"createdAt" yaml:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt" yaml:"updatedAt"`
}

// Contractor is the counterparty performing the work.
type Contractor struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Phone       string    `json:"phone,omitempty" yaml:"phone,omitempty"`
	Specialty   []string  `json:"specialty,omitempty" yaml:"specialty,omitempty"`
	Address     string    `json:"address,omitempty" yaml:"address,omitempty"`
	TaxID       string    `json:"taxId,omitempty" yaml:"taxId,omitempty"`
	BankAccount string    `json:"bankAccount,omitempty" yaml:"bankAccount,omitempty"`
	Status      string    `json:"status" yaml:"status"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// PaymentType is how the contractor is paid.
type PaymentType string

const (
	PaymentFixed     PaymentType = "fixed"
	PaymentHourly    PaymentType = "hourly"
	PaymentDaily     PaymentType = "daily"
	PaymentPieceWork PaymentType = "piece_work"
)

var paymentTypeLabels = map[PaymentType]string{
	PaymentFixed:     "จ่ายเหมาจ่าย",
	PaymentHourly:    "จ่ายรายชั่วโมง",
	PaymentDaily:     "จ่ายรายวัน",
	PaymentPieceWork: "จ่ายรายชิ้น",
}

// Label returns the display label, falling back to the raw identifier.
func (p PaymentType) Label() string {
	if label, ok := paymentTypeLabels[p]; ok {
		return label
	}
	return string(p)
}

// ContractStatus tracks a contract through its lifecycle.
type ContractStatus string

const (
	ContractDraft      ContractStatus = "draft"
	ContractPending    ContractStatus = "pending"
	ContractApproved   ContractStatus = "approved"
	ContractInProgress ContractStatus = "in_progress"
	ContractCompleted  ContractStatus = "completed"
	ContractCancelled  ContractStatus = "cancelled"
)

// ContractMaterial is one material line on a contract.
type ContractMaterial struct {
	ID        string  `json:"id,omitempty" yaml:"id,omitempty"`
	Name      string  `json:"name" yaml:"name"`
	Quantity  float64 `json:"quantity" yaml:"quantity"`
	Unit      string  `json:"unit" yaml:"unit"`
	UnitPrice float64 `json:"unitPrice" yaml:"unitPrice"`
	Note      string  `json:"note,omitempty" yaml:"note,omitempty"`
}

// Total is quantity multiplied by unit price.
func (m ContractMaterial) Total() float64 {
	return m.Quantity * m.UnitPrice
}

// Contract is an agreement between a customer and a contractor.
type Contract struct {
	ID                string             `json:"id" yaml:"id"`
	Title             string             `json:"title" yaml:"title"`
	Description       string             `json:"description,omitempty" yaml:"description,omitempty"`
	CustomerID        string             `json:"customerId" yaml:"customerId"`
	ProjectID         string             `json:"projectId,omitempty" yaml:"projectId,omitempty"`
	ContractorID      string             `json:"contractorId" yaml:"contractorId"`
	WorkLocation      string             `json:"workLocation" yaml:"workLocation"`
	StartDate         *time.Time         `json:"startDate,omitempty" yaml:"startDate,omitempty"`
	EndDate           *time.Time         `json:"endDate,omitempty" yaml:"endDate,omitempty"`
	EstimatedDays     int                `json:"estimatedDays,omitempty" yaml:"estimatedDays,omitempty"`
	PaymentType       PaymentType        `json:"paymentType" yaml:"paymentType"`
	LaborCost         float64            `json:"laborCost" yaml:"laborCost"`
	Materials         []ContractMaterial `json:"materials,omitempty" yaml:"materials,omitempty"`
	WorkSpecification string             `json:"workSpecification,omitempty" yaml:"workSpecification,omitempty"`
	Terms             string             `json:"terms,omitempty" yaml:"terms,omitempty"`
	Status            ContractStatus     `json:"status" yaml:"status"`
	Notes             string             `json:"notes,omitempty" yaml:"notes,omitempty"`
	TemplateID        string             `json:"templateId,omitempty" yaml:"templateId,omitempty"`
	CreatedAt         time.Time          `json:"createdAt" yaml:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt" yaml:"updatedAt"`
}

// MaterialCost sums every material line.
func (c Contract) MaterialCost() float64 {
	var total float64
	for _, material := range c.Materials {
		total += material.Total()
	}
	return total
}

// TotalCost is labor plus materials.
func (c Contract) TotalCost() float64 {
	return c.LaborCost + c.MaterialCost()
}
