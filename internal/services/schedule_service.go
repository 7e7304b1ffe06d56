package services

import (
	"context"
	"fmt"
	"time"

	"github.com/condovia/condovia-api/internal/models"
	"github.com/condovia/condovia-api/internal/money"
	"github.com/condovia/condovia-api/internal/repository"
)

// ScheduleService expands a signed contract into its charge schedule
type ScheduleService struct {
	contractRepo repository.ContractRepository
	chargeRepo   repository.ChargeRepository
	auditSvc     *AuditService
}

// NewScheduleService creates a new schedule service
func NewScheduleService(
	contractRepo repository.ContractRepository,
	chargeRepo repository.ChargeRepository,
	auditSvc *AuditService,
) *ScheduleService {
	return &ScheduleService{
		contractRepo: contractRepo,
		chargeRepo:   chargeRepo,
		auditSvc:     auditSvc,
	}
}

// GenerateSchedule creates and persists the full charge schedule for a
// contract. A contract that already has active charges is rejected, so
// the operation is safe to retry.
func (s *ScheduleService) GenerateSchedule(ctx context.Context, contractID uint) ([]models.Charge, error) {
	contract, err := s.contractRepo.FindByID(ctx, contractID)
	if err != nil {
		return nil, ErrNotFound
	}
	if !contract.Active {
		return nil, ErrInactiveEntity
	}

	scheduled, err := s.contractRepo.HasActiveCharges(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if scheduled {
		return nil, ErrAlreadyScheduled
	}

	charges, err := BuildCharges(contract, time.Now())
	if err != nil {
		return nil, err
	}

	if err := s.chargeRepo.CreateBatch(ctx, charges); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, "GENERATE_SCHEDULE", "Contract", contract.ID,
		fmt.Sprintf("Calendario generado: %d cargos de %s (%s), folio %s",
			len(charges), contract.PartialPaymentAmount.StringFixed(2), contract.Periodicity, contract.Folio), "", "")

	return charges, nil
}

// BuildCharges computes the charge schedule for a contract without
// touching storage. Each installment carries the contract's partial
// payment amount; due dates step by periodicity with the day of month
// clamped to short months.
func BuildCharges(contract *models.Contract, now time.Time) ([]models.Charge, error) {
	if contract.NumberOfInstallments < 1 {
		return nil, fmt.Errorf("%w: número de cuotas debe ser al menos 1", ErrInvalidSchedule)
	}
	if !contract.PartialPaymentAmount.IsPositive() {
		return nil, fmt.Errorf("%w: monto de cuota debe ser mayor que cero", ErrInvalidSchedule)
	}
	if contract.DueDayOfMonth < 1 || contract.DueDayOfMonth > 31 {
		return nil, fmt.Errorf("%w: día de vencimiento fuera de rango (1-31)", ErrInvalidSchedule)
	}
	if !models.ValidPeriodicity(contract.Periodicity) {
		return nil, fmt.Errorf("%w: periodicidad desconocida %q", ErrInvalidSchedule, contract.Periodicity)
	}

	charges := make([]models.Charge, 0, contract.NumberOfInstallments)
	for i := 0; i < contract.NumberOfInstallments; i++ {
		var dueDate time.Time
		if contract.Periodicity == models.PeriodicityAnnual {
			dueDate = money.AddYears(contract.StartDate, i, contract.DueDayOfMonth)
		} else {
			dueDate = money.AddMonths(contract.StartDate, i*models.MonthsPerPeriod(contract.Periodicity), contract.DueDayOfMonth)
		}

		note := fmt.Sprintf("Cuota %d de %d", i+1, contract.NumberOfInstallments)
		charges = append(charges, models.Charge{
			ContractID:  contract.ID,
			CommunityID: contract.CommunityID,
			AmountDue:   contract.PartialPaymentAmount,
			Surcharge:   money.Zero,
			DueDate:     dueDate,
			Status:      models.ComputeStatus(contract.PartialPaymentAmount, money.Zero, dueDate, now),
			Note:        &note,
			Active:      true,
		})
	}

	return charges, nil
}
