package statemachine

import (
	"context"
	"fmt"

	"github.com/condovia/condovia-api/internal/models"
	"github.com/looplab/fsm"
)

// ChargeFSM wraps a charge with its state machine. Time moves a charge
// between not_due and overdue; money moves it toward paid, and paid is
// terminal.
type ChargeFSM struct {
	charge *models.Charge
	fsm    *fsm.FSM
}

// NewChargeFSM creates a new charge state machine
func NewChargeFSM(charge *models.Charge) *ChargeFSM {
	cfsm := &ChargeFSM{
		charge: charge,
	}

	cfsm.fsm = fsm.NewFSM(
		charge.Status,
		fsm.Events{
			// not_due → overdue (due date passed with nothing applied)
			{Name: "fall_due", Src: []string{models.ChargeStatusNotDue}, Dst: models.ChargeStatusOverdue},

			// not_due/overdue/partially_paid → partially_paid
			{Name: "apply", Src: []string{models.ChargeStatusNotDue, models.ChargeStatusOverdue, models.ChargeStatusPartiallyPaid}, Dst: models.ChargeStatusPartiallyPaid},

			// not_due/overdue/partially_paid → paid (terminal)
			{Name: "settle", Src: []string{models.ChargeStatusNotDue, models.ChargeStatusOverdue, models.ChargeStatusPartiallyPaid}, Dst: models.ChargeStatusPaid},
		},
		fsm.Callbacks{},
	)

	return cfsm
}

// FallDue transitions an unpaid charge past its due date to overdue
func (c *ChargeFSM) FallDue(ctx context.Context) error {
	if err := c.fsm.Event(ctx, "fall_due"); err != nil {
		return fmt.Errorf("charge cannot fall due from state %s: %w", c.charge.Status, err)
	}

	c.charge.Status = c.fsm.Current()
	return nil
}

// Apply transitions a charge to partially_paid after a partial allocation
func (c *ChargeFSM) Apply(ctx context.Context) error {
	if err := c.fsm.Event(ctx, "apply"); err != nil {
		return fmt.Errorf("charge cannot receive a partial allocation in state %s: %w", c.charge.Status, err)
	}

	c.charge.Status = c.fsm.Current()
	return nil
}

// Settle transitions a fully covered charge to paid
func (c *ChargeFSM) Settle(ctx context.Context) error {
	if err := c.fsm.Event(ctx, "settle"); err != nil {
		return fmt.Errorf("charge cannot be settled in state %s: %w", c.charge.Status, err)
	}

	c.charge.Status = c.fsm.Current()
	return nil
}

// Transition moves the charge to the status computed by
// models.ComputeStatus, validating the hop through the state machine.
// A no-op when the computed status equals the current one.
func (c *ChargeFSM) Transition(ctx context.Context, computed string) error {
	if c.charge.Status == computed {
		return nil
	}

	switch computed {
	case models.ChargeStatusOverdue:
		return c.FallDue(ctx)
	case models.ChargeStatusPartiallyPaid:
		return c.Apply(ctx)
	case models.ChargeStatusPaid:
		return c.Settle(ctx)
	}
	return fmt.Errorf("no transition from %s to %s", c.charge.Status, computed)
}

// Current returns the current state
func (c *ChargeFSM) Current() string {
	return c.fsm.Current()
}

// Can checks if a transition is possible
func (c *ChargeFSM) Can(event string) bool {
	return c.fsm.Can(event)
}
