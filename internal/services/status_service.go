package services

import (
	"context"
	"time"

	"github.com/condovia/condovia-api/internal/models"
	"github.com/condovia/condovia-api/internal/repository"
	"github.com/condovia/condovia-api/internal/statemachine"
)

// StatusService rolls time-derived charge statuses forward. Allocation
// already persists payment-derived statuses; this covers the clock.
type StatusService struct {
	chargeRepo repository.ChargeRepository
}

// NewStatusService creates a new status service
func NewStatusService(chargeRepo repository.ChargeRepository) *StatusService {
	return &StatusService{chargeRepo: chargeRepo}
}

// RefreshOverdue moves charges whose due date has passed from not_due
// to overdue. Returns the number of charges updated. Meant to run
// daily from the worker.
func (s *StatusService) RefreshOverdue(ctx context.Context) (int, error) {
	charges, err := s.chargeRepo.FindDueForStatusRefresh(ctx, time.Now())
	if err != nil {
		return 0, err
	}

	updated := 0
	for i := range charges {
		charge := &charges[i]
		newStatus := models.ComputeStatus(charge.Total(), charge.Applied(), charge.DueDate, time.Now())
		if newStatus == charge.Status {
			continue
		}
		if err := statemachine.NewChargeFSM(charge).Transition(ctx, newStatus); err != nil {
			continue
		}
		if err := s.chargeRepo.UpdateStatus(ctx, charge.ID, newStatus); err != nil {
			return updated, err
		}
		updated++
	}

	return updated, nil
}
