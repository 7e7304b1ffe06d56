package services

import (
	"context"
	"testing"
	"time"

	"github.com/condovia/condovia-api/internal/models"
	"github.com/condovia/condovia-api/internal/money"
	"github.com/stretchr/testify/assert"
)

func TestRefreshOverdue_MovesPastDueCharges(t *testing.T) {
	pastDue := models.Charge{
		ID:        10,
		AmountDue: money.New(15000),
		DueDate:   time.Now().AddDate(0, 0, -5),
		Status:    models.ChargeStatusNotDue,
		Active:    true,
	}

	updates := make(map[uint]string)
	chargeRepo := &mockChargeRepository{
		mockFindDueForStatusRefresh: func(ctx context.Context, asOf time.Time) ([]models.Charge, error) {
			return []models.Charge{pastDue}, nil
		},
		mockUpdateStatus: func(ctx context.Context, id uint, status string) error {
			updates[id] = status
			return nil
		},
	}

	svc := NewStatusService(chargeRepo)
	updated, err := svc.RefreshOverdue(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 1, updated)
	assert.Equal(t, models.ChargeStatusOverdue, updates[10])
}

func TestRefreshOverdue_NothingDue(t *testing.T) {
	chargeRepo := &mockChargeRepository{
		mockFindDueForStatusRefresh: func(ctx context.Context, asOf time.Time) ([]models.Charge, error) {
			return nil, nil
		},
	}

	svc := NewStatusService(chargeRepo)
	updated, err := svc.RefreshOverdue(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 0, updated)
}
