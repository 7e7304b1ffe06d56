package models

import (
	"time"

	"github.com/condovia/condovia-api/internal/money"
)

// Contract represents a signed service agreement with a community. It is
// the source a billing schedule is generated from: NumberOfInstallments
// charges of PartialPaymentAmount each, due per Periodicity.
type Contract struct {
	ID                   uint        `gorm:"primaryKey" json:"id"`
	CommunityID          uint        `gorm:"not null;index" json:"community_id"`
	Folio                string      `gorm:"size:64;uniqueIndex" json:"folio"`
	TotalCost            money.Money `gorm:"type:decimal(15,2);not null" json:"total_cost"`
	PartialPaymentAmount money.Money `gorm:"type:decimal(15,2);not null" json:"partial_payment_amount"`
	NumberOfInstallments int         `gorm:"not null" json:"number_of_installments"`
	DueDayOfMonth        int         `gorm:"not null" json:"due_day_of_month"`
	Periodicity          string      `gorm:"not null" json:"periodicity"`
	PaymentMethod        string      `json:"payment_method"`
	StartDate            time.Time   `gorm:"type:date;not null" json:"start_date"`
	SignedDate           time.Time   `gorm:"type:date;not null" json:"signed_date"`
	EndDate              *time.Time  `gorm:"type:date" json:"end_date"`
	Note                 *string     `gorm:"type:text" json:"note"`
	Active               bool        `gorm:"default:true;index" json:"active"`
	CreatedAt            time.Time   `json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`

	// Associations
	Community Community `gorm:"foreignKey:CommunityID" json:"community,omitempty"`
	Charges   []Charge  `gorm:"foreignKey:ContractID" json:"charges,omitempty"`
}

// TableName specifies the table name for Contract
func (Contract) TableName() string {
	return "contracts"
}

// Periodicity constants
const (
	PeriodicityMonthly   = "monthly"
	PeriodicityQuarterly = "quarterly"
	PeriodicityAnnual    = "annual"
)

// Payment method constants
const (
	PaymentMethodTransfer = "transfer"
	PaymentMethodCash     = "cash"
	PaymentMethodCheck    = "check"
	PaymentMethodCard     = "card"
)

// ValidPeriodicity returns true if p is a recognized recurrence unit.
func ValidPeriodicity(p string) bool {
	switch p {
	case PeriodicityMonthly, PeriodicityQuarterly, PeriodicityAnnual:
		return true
	}
	return false
}

// MonthsPerPeriod returns the month step for a periodicity. Annual
// schedules step by whole years and are handled separately by the
// schedule generator.
func MonthsPerPeriod(p string) int {
	if p == PeriodicityQuarterly {
		return 3
	}
	return 1
}

// ContractResponse is the JSON response format for contracts
type ContractResponse struct {
	ID                   uint             `json:"id"`
	CommunityID          uint             `json:"community_id"`
	CommunityName        string           `json:"community_name,omitempty"`
	Folio                string           `json:"folio"`
	TotalCost            money.Money      `json:"total_cost"`
	PartialPaymentAmount money.Money      `json:"partial_payment_amount"`
	NumberOfInstallments int              `json:"number_of_installments"`
	DueDayOfMonth        int              `json:"due_day_of_month"`
	Periodicity          string           `json:"periodicity"`
	PaymentMethod        string           `json:"payment_method"`
	StartDate            time.Time        `json:"start_date"`
	SignedDate           time.Time        `json:"signed_date"`
	EndDate              *time.Time       `json:"end_date"`
	Note                 *string          `json:"note"`
	Active               bool             `json:"active"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
	Charges              []ChargeResponse `json:"charges,omitempty"`
}

// ToResponse converts Contract to ContractResponse
func (c *Contract) ToResponse() ContractResponse {
	resp := ContractResponse{
		ID:                   c.ID,
		CommunityID:          c.CommunityID,
		Folio:                c.Folio,
		TotalCost:            c.TotalCost,
		PartialPaymentAmount: c.PartialPaymentAmount,
		NumberOfInstallments: c.NumberOfInstallments,
		DueDayOfMonth:        c.DueDayOfMonth,
		Periodicity:          c.Periodicity,
		PaymentMethod:        c.PaymentMethod,
		StartDate:            c.StartDate,
		SignedDate:           c.SignedDate,
		EndDate:              c.EndDate,
		Note:                 c.Note,
		Active:               c.Active,
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
	}

	if c.Community.ID != 0 {
		resp.CommunityName = c.Community.Name
	}

	for _, charge := range c.Charges {
		resp.Charges = append(resp.Charges, charge.ToResponse())
	}

	return resp
}
