package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/condovia/condovia-api/internal/models"
	"github.com/condovia/condovia-api/internal/money"
	"github.com/condovia/condovia-api/internal/repository"
	"github.com/condovia/condovia-api/internal/statemachine"
	"github.com/google/uuid"
)

// AllocationRequest is one explicit (charge, amount) pair supplied by
// the caller when distributing a payment by hand.
type AllocationRequest struct {
	ChargeID uint        `json:"charge_id" binding:"required"`
	Amount   money.Money `json:"amount" binding:"required"`
}

// AllocationResult reports what an allocation run actually did. The
// remainder is whatever part of the payment found no open charge to
// land on; it stays on the payment as floating credit.
type AllocationResult struct {
	Payment     *models.Payment     `json:"payment"`
	Allocations []models.Allocation `json:"allocations"`
	Remainder   money.Money         `json:"remainder"`
}

// AllocationService applies payments against outstanding charges
type AllocationService struct {
	paymentRepo    repository.PaymentRepository
	chargeRepo     repository.ChargeRepository
	allocationRepo repository.AllocationRepository
	contractRepo   repository.ContractRepository
	communityRepo  repository.CommunityRepository
	auditSvc       *AuditService

	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

// NewAllocationService creates a new allocation service
func NewAllocationService(
	paymentRepo repository.PaymentRepository,
	chargeRepo repository.ChargeRepository,
	allocationRepo repository.AllocationRepository,
	contractRepo repository.ContractRepository,
	communityRepo repository.CommunityRepository,
	auditSvc *AuditService,
) *AllocationService {
	return &AllocationService{
		paymentRepo:    paymentRepo,
		chargeRepo:     chargeRepo,
		allocationRepo: allocationRepo,
		contractRepo:   contractRepo,
		communityRepo:  communityRepo,
		auditSvc:       auditSvc,
		locks:          make(map[uint]*sync.Mutex),
	}
}

// communityLock serializes mutations per community. Charges touched by
// one allocation always share the payment's community, so this is a
// superset of per-contract exclusion.
func (s *AllocationService) communityLock(communityID uint) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[communityID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[communityID] = lock
	}
	return lock
}

// RecordPayment persists a new payment. The payment is not applied to
// any charge yet; Allocate does that.
func (s *AllocationService) RecordPayment(ctx context.Context, payment *models.Payment) error {
	if !payment.Amount.IsPositive() {
		return fmt.Errorf("%w: el monto del pago debe ser mayor que cero", ErrInvalidAllocation)
	}
	if _, err := s.communityRepo.FindByID(ctx, payment.CommunityID); err != nil {
		return ErrNotFound
	}
	if payment.Reference == "" {
		payment.Reference = uuid.New().String()
	}
	if payment.PaidAt.IsZero() {
		payment.PaidAt = time.Now()
	}
	payment.Active = true

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return err
	}

	s.auditSvc.Log(ctx, "CREATE", "Payment", payment.ID,
		fmt.Sprintf("Pago registrado: %s (%s), referencia %s", payment.Amount.StringFixed(2), payment.Method, payment.Reference), "", "")

	return nil
}

// FindPayment returns a payment with its allocations
func (s *AllocationService) FindPayment(ctx context.Context, id uint) (*models.Payment, error) {
	payment, err := s.paymentRepo.FindByIDWithAllocations(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return payment, nil
}

// Allocate applies a payment's unallocated amount against charges.
//
// When explicit pairs are given, every pair is validated and the whole
// request is rejected if any pair fails: unknown or inactive charge,
// charge outside the payment's community, non-positive amount,
// duplicate target, or an amount that would over-pay the charge.
//
// With no explicit pairs the payment is spread oldest due date first
// across open charges in the given scope (contract or community), and
// whatever does not fit is returned as the remainder.
//
// A payment with existing allocations is refused unless topUp is set.
func (s *AllocationService) Allocate(
	ctx context.Context,
	paymentID uint,
	explicit []AllocationRequest,
	contractID *uint,
	topUp bool,
) (*AllocationResult, error) {
	payment, err := s.paymentRepo.FindByIDWithAllocations(ctx, paymentID)
	if err != nil {
		return nil, ErrNotFound
	}
	if !payment.Active {
		return nil, ErrInactiveEntity
	}

	lock := s.communityLock(payment.CommunityID)
	lock.Lock()
	defer lock.Unlock()

	// Re-read under the lock so concurrent allocations to the same
	// community cannot both see a stale unallocated amount.
	payment, err = s.paymentRepo.FindByIDWithAllocations(ctx, paymentID)
	if err != nil {
		return nil, ErrNotFound
	}

	available := payment.Unallocated()
	if payment.Allocated().IsPositive() && !topUp {
		return nil, ErrAlreadyAllocated
	}
	if !available.IsPositive() {
		return nil, ErrAlreadyAllocated
	}

	var result *AllocationResult
	if len(explicit) > 0 {
		result, err = s.allocateExplicit(ctx, payment, explicit, available)
	} else {
		result, err = s.allocateImplicit(ctx, payment, contractID, available)
	}
	if err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, "ALLOCATE", "Payment", payment.ID,
		fmt.Sprintf("Pago asignado a %d cargos, remanente %s", len(result.Allocations), result.Remainder.StringFixed(2)), "", "")

	return result, nil
}

func (s *AllocationService) allocateExplicit(
	ctx context.Context,
	payment *models.Payment,
	requests []AllocationRequest,
	available money.Money,
) (*AllocationResult, error) {
	now := time.Now()

	seen := make(map[uint]bool, len(requests))
	allocations := make([]models.Allocation, 0, len(requests))
	statuses := make(map[uint]string, len(requests))
	total := money.Zero

	for _, req := range requests {
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: el monto asignado al cargo %d debe ser mayor que cero", ErrInvalidAllocation, req.ChargeID)
		}
		if seen[req.ChargeID] {
			return nil, fmt.Errorf("%w: cargo %d repetido en la solicitud", ErrInvalidAllocation, req.ChargeID)
		}
		seen[req.ChargeID] = true

		charge, err := s.chargeRepo.FindByIDWithAllocations(ctx, req.ChargeID)
		if err != nil {
			return nil, ErrNotFound
		}
		if !charge.Active {
			return nil, ErrInactiveEntity
		}
		if charge.CommunityID != payment.CommunityID {
			return nil, fmt.Errorf("%w: el cargo %d no pertenece a la comunidad del pago", ErrInvalidAllocation, req.ChargeID)
		}
		if req.Amount.GreaterThan(charge.Remaining()) {
			return nil, fmt.Errorf("%w: cargo %d, pendiente %s, solicitado %s",
				ErrOverAllocation, charge.ID, charge.Remaining().StringFixed(2), req.Amount.StringFixed(2))
		}

		newStatus := models.ComputeStatus(charge.Total(), charge.Applied().Add(req.Amount), charge.DueDate, now)
		if err := statemachine.NewChargeFSM(charge).Transition(ctx, newStatus); err != nil {
			return nil, ErrInvalidState
		}

		allocations = append(allocations, models.Allocation{
			PaymentID:     payment.ID,
			ChargeID:      charge.ID,
			AmountApplied: req.Amount,
		})
		statuses[charge.ID] = newStatus
		total = total.Add(req.Amount)
	}

	if total.GreaterThan(available) {
		return nil, fmt.Errorf("%w: el pago tiene %s sin asignar, solicitado %s",
			ErrOverAllocation, available.StringFixed(2), total.StringFixed(2))
	}

	if err := s.allocationRepo.ApplyBatch(ctx, allocations, statuses); err != nil {
		return nil, err
	}

	return &AllocationResult{
		Payment:     payment,
		Allocations: allocations,
		Remainder:   available.Sub(total),
	}, nil
}

func (s *AllocationService) allocateImplicit(
	ctx context.Context,
	payment *models.Payment,
	contractID *uint,
	available money.Money,
) (*AllocationResult, error) {
	now := time.Now()

	var charges []models.Charge
	var err error
	if contractID != nil {
		contract, ferr := s.contractRepo.FindByID(ctx, *contractID)
		if ferr != nil {
			return nil, ErrNotFound
		}
		if !contract.Active {
			return nil, ErrInactiveEntity
		}
		if contract.CommunityID != payment.CommunityID {
			return nil, fmt.Errorf("%w: el contrato %d no pertenece a la comunidad del pago", ErrInvalidAllocation, contract.ID)
		}
		charges, err = s.chargeRepo.FindOpenByContract(ctx, *contractID)
	} else {
		charges, err = s.chargeRepo.FindOpenByCommunity(ctx, payment.CommunityID)
	}
	if err != nil {
		return nil, err
	}

	remaining := available
	var allocations []models.Allocation
	statuses := make(map[uint]string)

	for i := range charges {
		if !remaining.IsPositive() {
			break
		}
		charge := &charges[i]
		open := charge.Remaining()
		if !open.IsPositive() {
			continue
		}

		amount := money.Min(remaining, open)
		newStatus := models.ComputeStatus(charge.Total(), charge.Applied().Add(amount), charge.DueDate, now)
		if err := statemachine.NewChargeFSM(charge).Transition(ctx, newStatus); err != nil {
			return nil, ErrInvalidState
		}

		allocations = append(allocations, models.Allocation{
			PaymentID:     payment.ID,
			ChargeID:      charge.ID,
			AmountApplied: amount,
		})
		statuses[charge.ID] = newStatus
		remaining = remaining.Sub(amount)
	}

	if err := s.allocationRepo.ApplyBatch(ctx, allocations, statuses); err != nil {
		return nil, err
	}

	return &AllocationResult{
		Payment:     payment,
		Allocations: allocations,
		Remainder:   remaining,
	}, nil
}
