package statemachine

import (
	"context"
	"testing"

	"github.com/condovia/condovia-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func chargeIn(status string) *models.Charge {
	return &models.Charge{ID: 1, Status: status}
}

func TestChargeFSM_FallDue(t *testing.T) {
	charge := chargeIn(models.ChargeStatusNotDue)
	err := NewChargeFSM(charge).FallDue(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, models.ChargeStatusOverdue, charge.Status)
}

func TestChargeFSM_FallDueRejectedOncePaid(t *testing.T) {
	charge := chargeIn(models.ChargeStatusPaid)
	err := NewChargeFSM(charge).FallDue(context.Background())
	assert.Error(t, err)
	assert.Equal(t, models.ChargeStatusPaid, charge.Status)
}

func TestChargeFSM_ApplyFromAnyOpenState(t *testing.T) {
	for _, status := range []string{models.ChargeStatusNotDue, models.ChargeStatusOverdue} {
		charge := chargeIn(status)
		err := NewChargeFSM(charge).Apply(context.Background())
		assert.NoError(t, err, "from %s", status)
		assert.Equal(t, models.ChargeStatusPartiallyPaid, charge.Status)
	}
}

func TestChargeFSM_SettleIsTerminal(t *testing.T) {
	charge := chargeIn(models.ChargeStatusPartiallyPaid)
	fsm := NewChargeFSM(charge)
	assert.NoError(t, fsm.Settle(context.Background()))
	assert.Equal(t, models.ChargeStatusPaid, charge.Status)

	// No event leaves paid
	paid := NewChargeFSM(charge)
	assert.Error(t, paid.Apply(context.Background()))
	assert.Error(t, paid.Settle(context.Background()))
	assert.Equal(t, models.ChargeStatusPaid, charge.Status)
}

func TestChargeFSM_TransitionNoOpOnSameStatus(t *testing.T) {
	charge := chargeIn(models.ChargeStatusPartiallyPaid)
	err := NewChargeFSM(charge).Transition(context.Background(), models.ChargeStatusPartiallyPaid)
	assert.NoError(t, err)
	assert.Equal(t, models.ChargeStatusPartiallyPaid, charge.Status)
}

func TestChargeFSM_TransitionFollowsComputedStatus(t *testing.T) {
	charge := chargeIn(models.ChargeStatusNotDue)
	fsm := NewChargeFSM(charge)

	assert.NoError(t, fsm.Transition(context.Background(), models.ChargeStatusOverdue))
	assert.Equal(t, models.ChargeStatusOverdue, charge.Status)

	fsm = NewChargeFSM(charge)
	assert.NoError(t, fsm.Transition(context.Background(), models.ChargeStatusPaid))
	assert.Equal(t, models.ChargeStatusPaid, charge.Status)
}

func TestChargeFSM_TransitionRejectsBackwardHop(t *testing.T) {
	charge := chargeIn(models.ChargeStatusPaid)
	err := NewChargeFSM(charge).Transition(context.Background(), models.ChargeStatusNotDue)
	assert.Error(t, err)
	assert.Equal(t, models.ChargeStatusPaid, charge.Status)
}
