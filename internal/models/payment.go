package models

import (
	"time"

	"github.com/condovia/condovia-api/internal/money"
)

// Payment represents money received from a community. A payment is
// independent of any charge until the allocation engine distributes it;
// its amount is fixed at creation and never mutated by allocation.
type Payment struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	CommunityID uint        `gorm:"not null;index" json:"community_id"`
	Reference   string      `gorm:"size:64;uniqueIndex" json:"reference"`
	Amount      money.Money `gorm:"type:decimal(15,2);not null" json:"amount"`
	Method      string      `gorm:"not null" json:"method"`
	PaidAt      time.Time   `gorm:"type:date;not null;index" json:"paid_at"`
	Active      bool        `gorm:"default:true;index" json:"active"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	// Associations
	Community   Community    `gorm:"foreignKey:CommunityID" json:"community,omitempty"`
	Allocations []Allocation `gorm:"foreignKey:PaymentID" json:"allocations,omitempty"`
}

// TableName specifies the table name for Payment
func (Payment) TableName() string {
	return "payments"
}

// Allocated sums the amounts already applied from this payment. The
// Allocations association must be loaded.
func (p *Payment) Allocated() money.Money {
	allocated := money.Zero
	for _, a := range p.Allocations {
		allocated = allocated.Add(a.AmountApplied)
	}
	return allocated
}

// Unallocated returns the floating portion of the payment not yet applied
// to any charge.
func (p *Payment) Unallocated() money.Money {
	return p.Amount.Sub(p.Allocated())
}

// Allocation applies part or all of one payment to one charge. Rows are
// created only by the allocation engine and never updated; corrections
// are new allocations.
type Allocation struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	PaymentID     uint        `gorm:"not null;index" json:"payment_id"`
	ChargeID      uint        `gorm:"not null;index" json:"charge_id"`
	AmountApplied money.Money `gorm:"type:decimal(15,2);not null" json:"amount_applied"`
	CreatedAt     time.Time   `json:"created_at"`

	// Associations
	Payment Payment `gorm:"foreignKey:PaymentID" json:"-"`
	Charge  Charge  `gorm:"foreignKey:ChargeID" json:"-"`
}

// TableName specifies the table name for Allocation
func (Allocation) TableName() string {
	return "allocations"
}

// AllocationResponse is the JSON response format for allocations
type AllocationResponse struct {
	ID            uint        `json:"id"`
	PaymentID     uint        `json:"payment_id"`
	ChargeID      uint        `json:"charge_id"`
	AmountApplied money.Money `json:"amount_applied"`
	CreatedAt     time.Time   `json:"created_at"`
}

// ToResponse converts Allocation to AllocationResponse
func (a *Allocation) ToResponse() AllocationResponse {
	return AllocationResponse{
		ID:            a.ID,
		PaymentID:     a.PaymentID,
		ChargeID:      a.ChargeID,
		AmountApplied: a.AmountApplied,
		CreatedAt:     a.CreatedAt,
	}
}

// PaymentResponse is the JSON response format for payments
type PaymentResponse struct {
	ID          uint                 `json:"id"`
	CommunityID uint                 `json:"community_id"`
	Reference   string               `json:"reference"`
	Amount      money.Money          `json:"amount"`
	Allocated   money.Money          `json:"allocated"`
	Unallocated money.Money          `json:"unallocated"`
	Method      string               `json:"method"`
	PaidAt      time.Time            `json:"paid_at"`
	Active      bool                 `json:"active"`
	CreatedAt   time.Time            `json:"created_at"`
	Allocations []AllocationResponse `json:"allocations"`
}

// ToResponse converts Payment to PaymentResponse
func (p *Payment) ToResponse() PaymentResponse {
	resp := PaymentResponse{
		ID:          p.ID,
		CommunityID: p.CommunityID,
		Reference:   p.Reference,
		Amount:      p.Amount,
		Allocated:   p.Allocated(),
		Unallocated: p.Unallocated(),
		Method:      p.Method,
		PaidAt:      p.PaidAt,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
	}

	resp.Allocations = make([]AllocationResponse, 0, len(p.Allocations))
	for _, a := range p.Allocations {
		resp.Allocations = append(resp.Allocations, a.ToResponse())
	}

	return resp
}
