package models

import (
	"time"

	"github.com/condovia/condovia-api/internal/money"
)

// Charge represents one scheduled obligation derived from a contract.
// Charges are created in a batch by the schedule generator, never deleted,
// and their status is rewritten only by the allocation engine.
type Charge struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	ContractID  uint        `gorm:"not null;index" json:"contract_id"`
	CommunityID uint        `gorm:"not null;index" json:"community_id"`
	AmountDue   money.Money `gorm:"type:decimal(15,2);not null" json:"amount_due"`
	Surcharge   money.Money `gorm:"type:decimal(15,2);not null;default:0" json:"surcharge"`
	DueDate     time.Time   `gorm:"type:date;not null;index" json:"due_date"`
	Status      string      `gorm:"default:not_due;not null;index" json:"status"`
	Note        *string     `gorm:"type:text" json:"note"`
	Active      bool        `gorm:"default:true;index" json:"active"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	// Associations
	Contract    Contract     `gorm:"foreignKey:ContractID" json:"contract,omitempty"`
	Allocations []Allocation `gorm:"foreignKey:ChargeID" json:"allocations,omitempty"`
}

// TableName specifies the table name for Charge
func (Charge) TableName() string {
	return "charges"
}

// Charge status constants
const (
	ChargeStatusNotDue        = "not_due"
	ChargeStatusOverdue       = "overdue"
	ChargeStatusPartiallyPaid = "partially_paid"
	ChargeStatusPaid          = "paid"
)

// ComputeStatus derives a charge status from its totals and the calendar.
// Payment progress wins over the due date: a charge with any allocation
// stays partially_paid even once overdue.
func ComputeStatus(total, applied money.Money, dueDate, today time.Time) string {
	if applied.GreaterThanOrEqual(total) {
		return ChargeStatusPaid
	}
	if applied.GreaterThan(money.Zero) {
		return ChargeStatusPartiallyPaid
	}
	if money.AfterDay(dueDate, today) {
		return ChargeStatusNotDue
	}
	return ChargeStatusOverdue
}

// Total returns the full obligation for the charge: amount due plus any
// surcharge applied to it.
func (c *Charge) Total() money.Money {
	return c.AmountDue.Add(c.Surcharge)
}

// Applied sums the allocations already recorded against the charge. The
// Allocations association must be loaded.
func (c *Charge) Applied() money.Money {
	applied := money.Zero
	for _, a := range c.Allocations {
		applied = applied.Add(a.AmountApplied)
	}
	return applied
}

// Remaining returns the unpaid portion of the charge.
func (c *Charge) Remaining() money.Money {
	return c.Total().Sub(c.Applied())
}

// IsOpen returns true if the charge can still receive allocations.
func (c *Charge) IsOpen() bool {
	return c.Active && c.Status != ChargeStatusPaid
}

// OverdueDays returns the number of whole days the charge is past due.
func (c *Charge) OverdueDays() int {
	if c.Status != ChargeStatusOverdue && c.Status != ChargeStatusPartiallyPaid {
		return 0
	}
	days := int(time.Since(c.DueDate).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// ChargeResponse is the JSON response format for charges
type ChargeResponse struct {
	ID          uint        `json:"id"`
	ContractID  uint        `json:"contract_id"`
	CommunityID uint        `json:"community_id"`
	AmountDue   money.Money `json:"amount_due"`
	Surcharge   money.Money `json:"surcharge"`
	Total       money.Money `json:"total"`
	Applied     money.Money `json:"applied"`
	Remaining   money.Money `json:"remaining"`
	DueDate     time.Time   `json:"due_date"`
	Status      string      `json:"status"`
	OverdueDays int         `json:"overdue_days"`
	Note        *string     `json:"note"`
	Active      bool        `json:"active"`
	CreatedAt   time.Time   `json:"created_at"`
}

// ToResponse converts Charge to ChargeResponse
func (c *Charge) ToResponse() ChargeResponse {
	return ChargeResponse{
		ID:          c.ID,
		ContractID:  c.ContractID,
		CommunityID: c.CommunityID,
		AmountDue:   c.AmountDue,
		Surcharge:   c.Surcharge,
		Total:       c.Total(),
		Applied:     c.Applied(),
		Remaining:   c.Remaining(),
		DueDate:     c.DueDate,
		Status:      c.Status,
		OverdueDays: c.OverdueDays(),
		Note:        c.Note,
		Active:      c.Active,
		CreatedAt:   c.CreatedAt,
	}
}
