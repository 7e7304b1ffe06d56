package models

import (
	"testing"
	"time"

	"github.com/condovia/condovia-api/internal/money"
	"github.com/stretchr/testify/assert"
)

func TestComputeStatus(t *testing.T) {
	today := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	future := time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)
	past := time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		total    money.Money
		applied  money.Money
		dueDate  time.Time
		expected string
	}{
		{"nothing applied, due in the future", money.New(15000), money.Zero, future, ChargeStatusNotDue},
		{"nothing applied, past due", money.New(15000), money.Zero, past, ChargeStatusOverdue},
		{"nothing applied, due today", money.New(15000), money.Zero, today, ChargeStatusOverdue},
		{"partially covered before due date", money.New(15000), money.New(5000), future, ChargeStatusPartiallyPaid},
		{"partially covered past due stays partially paid", money.New(15000), money.New(5000), past, ChargeStatusPartiallyPaid},
		{"fully covered", money.New(15000), money.New(15000), future, ChargeStatusPaid},
		{"covered beyond total", money.New(15000), money.New(16000), past, ChargeStatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ComputeStatus(tt.total, tt.applied, tt.dueDate, today))
		})
	}
}

func TestChargeTotals(t *testing.T) {
	charge := &Charge{
		AmountDue: money.New(15000),
		Surcharge: money.New(500),
		Allocations: []Allocation{
			{AmountApplied: money.New(4000)},
			{AmountApplied: money.New(3500)},
		},
	}

	assert.True(t, charge.Total().Equal(money.New(15500)))
	assert.True(t, charge.Applied().Equal(money.New(7500)))
	assert.True(t, charge.Remaining().Equal(money.New(8000)))
}

func TestChargeIsOpen(t *testing.T) {
	assert.True(t, (&Charge{Active: true, Status: ChargeStatusOverdue}).IsOpen())
	assert.False(t, (&Charge{Active: true, Status: ChargeStatusPaid}).IsOpen())
	assert.False(t, (&Charge{Active: false, Status: ChargeStatusNotDue}).IsOpen())
}

func TestPaymentAllocatedAndUnallocated(t *testing.T) {
	payment := &Payment{
		Amount: money.New(20000),
		Allocations: []Allocation{
			{AmountApplied: money.New(15000)},
		},
	}

	assert.True(t, payment.Allocated().Equal(money.New(15000)))
	assert.True(t, payment.Unallocated().Equal(money.New(5000)))

	empty := &Payment{Amount: money.New(20000)}
	assert.True(t, empty.Allocated().IsZero())
	assert.True(t, empty.Unallocated().Equal(money.New(20000)))
}
