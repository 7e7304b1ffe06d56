package services

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/condovia/condovia-api/internal/models"
	"github.com/condovia/condovia-api/internal/money"
	"github.com/stretchr/testify/assert"
)

func newAllocationService(
	paymentRepo *mockPaymentRepository,
	chargeRepo *mockChargeRepository,
	allocationRepo *mockAllocationRepository,
	contractRepo *mockContractRepository,
) *AllocationService {
	return NewAllocationService(paymentRepo, chargeRepo, allocationRepo, contractRepo, &mockCommunityRepository{}, nil)
}

func openCharge(id uint, amount int64, dueDate time.Time) models.Charge {
	return models.Charge{
		ID:          id,
		ContractID:  100,
		CommunityID: 1,
		AmountDue:   money.New(amount),
		Surcharge:   money.Zero,
		DueDate:     dueDate,
		Status:      models.ChargeStatusNotDue,
		Active:      true,
	}
}

func floatingPayment(id uint, amount int64) *models.Payment {
	return &models.Payment{
		ID:          id,
		CommunityID: 1,
		Reference:   "REF-001",
		Amount:      money.New(amount),
		Method:      "transfer",
		PaidAt:      time.Now(),
		Active:      true,
	}
}

func TestAllocate_ExplicitFullPayment(t *testing.T) {
	charge := openCharge(10, 15000, time.Now().AddDate(0, 1, 0))
	payment := floatingPayment(1, 15000)

	paymentRepo := &mockPaymentRepository{
		mockFindByIDWithAllocations: func(ctx context.Context, id uint) (*models.Payment, error) {
			return payment, nil
		},
	}
	chargeRepo := &mockChargeRepository{
		mockFindByIDWithAllocations: func(ctx context.Context, id uint) (*models.Charge, error) {
			c := charge
			return &c, nil
		},
	}

	var appliedAllocations []models.Allocation
	var appliedStatuses map[uint]string
	allocationRepo := &mockAllocationRepository{
		mockApplyBatch: func(ctx context.Context, allocations []models.Allocation, chargeStatuses map[uint]string) error {
			appliedAllocations = allocations
			appliedStatuses = chargeStatuses
			return nil
		},
	}

	svc := newAllocationService(paymentRepo, chargeRepo, allocationRepo, &mockContractRepository{})
	result, err := svc.Allocate(context.Background(), payment.ID,
		[]AllocationRequest{{ChargeID: 10, Amount: money.New(15000)}}, nil, false)

	assert.NoError(t, err)
	assert.Len(t, result.Allocations, 1)
	assert.True(t, result.Remainder.IsZero())
	assert.Len(t, appliedAllocations, 1)
	assert.Equal(t, payment.ID, appliedAllocations[0].PaymentID)
	assert.Equal(t, uint(10), appliedAllocations[0].ChargeID)
	assert.True(t, appliedAllocations[0].AmountApplied.Equal(money.New(15000)))
	assert.Equal(t, models.ChargeStatusPaid, appliedStatuses[10])
}

func TestAllocate_PartialAccumulationReachesPaid(t *testing.T) {
	// One 100 charge paid off in three installments of 40, 35 and 25.
	// The charge accumulates the allocations between calls, the way the
	// database would.
	charge := openCharge(10, 100, time.Now().AddDate(0, 1, 0))

	chargeRepo := &mockChargeRepository{
		mockFindByIDWithAllocations: func(ctx context.Context, id uint) (*models.Charge, error) {
			c := charge
			return &c, nil
		},
	}

	allocationRepo := &mockAllocationRepository{
		mockApplyBatch: func(ctx context.Context, allocations []models.Allocation, chargeStatuses map[uint]string) error {
			charge.Allocations = append(charge.Allocations, allocations...)
			charge.Status = chargeStatuses[charge.ID]
			return nil
		},
	}

	steps := []struct {
		paymentID      uint
		amount         int64
		expectedStatus string
	}{
		{1, 40, models.ChargeStatusPartiallyPaid},
		{2, 35, models.ChargeStatusPartiallyPaid},
		{3, 25, models.ChargeStatusPaid},
	}

	for _, step := range steps {
		payment := floatingPayment(step.paymentID, step.amount)
		paymentRepo := &mockPaymentRepository{
			mockFindByIDWithAllocations: func(ctx context.Context, id uint) (*models.Payment, error) {
				return payment, nil
			},
		}

		svc := newAllocationService(paymentRepo, chargeRepo, allocationRepo, &mockContractRepository{})
		result, err := svc.Allocate(context.Background(), payment.ID,
			[]AllocationRequest{{ChargeID: 10, Amount: money.New(step.amount)}}, nil, false)

		assert.NoError(t, err)
		assert.True(t, result.Remainder.IsZero())
		assert.Equal(t, step.expectedStatus, charge.Status, "after payment of %d", step.amount)
	}

	assert.Len(t, charge.Allocations, 3)
	assert.True(t, charge.Applied().Equal(money.New(100)))
	assert.True(t, charge.Remaining().IsZero())
}

func TestAllocate_ImplicitSplitsAcrossCharges(t *testing.T) {
	// One payment covers two open charges in due date order.
	first := openCharge(10, 15000, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	second := openCharge(11, 15000, time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC))
	payment := floatingPayment(1, 30000)
	contractID := uint(100)

	paymentRepo := &mockPaymentRepository{
		mockFindByIDWithAllocations: func(ctx context.Context, id uint) (*models.Payment, error) {
			return payment, nil
		},
	}
	chargeRepo := &mockChargeRepository{
		mockFindOpenByContract: func(ctx context.Context, id uint) ([]models.Charge, error) {
			return []models.Charge{first, second}, nil
		},
	}
	contractRepo := &mockContractRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Contract, error) {
			return &models.Contract{ID: id, CommunityID: 1, Active: true}, nil
		},
	}

	var appliedStatuses map[uint]string
	allocationRepo := &mockAllocationRepository{
		mockApplyBatch: func(ctx context.Context, allocations []models.Allocation, chargeStatuses map[uint]string) error {
			appliedStatuses = chargeStatuses
			return nil
		},
	}

	svc := newAllocationService(paymentRepo, chargeRepo, allocationRepo, contractRepo)
	result, err := svc.Allocate(context.Background(), payment.ID, nil, &contractID, false)

	assert.NoError(t, err)
	assert.Len(t, result.Allocations, 2)
	assert.True(t, result.Remainder.IsZero())

	// Oldest due date first, both fully covered
	assert.Equal(t, uint(10), result.Allocations[0].ChargeID)
	assert.Equal(t, uint(11), result.Allocations[1].ChargeID)
	for _, allocation := range result.Allocations {
		assert.Equal(t, payment.ID, allocation.PaymentID)
		assert.True(t, allocation.AmountApplied.Equal(money.New(15000)))
	}
	assert.Equal(t, models.ChargeStatusPaid, appliedStatuses[10])
	assert.Equal(t, models.ChargeStatusPaid, appliedStatuses[11])
}

func TestAllocate_ImplicitReturnsRemainder(t *testing.T) {
	charge := openCharge(10, 15000, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	payment := floatingPayment(1, 20000)

	paymentRepo := &mockPaymentRepository{
		mockFindByIDWithAllocations: func(ctx context.Context, id uint) (*models.Payment, error) {
			return payment, nil
		},
	}
	chargeRepo := &mockChargeRepository{
		mockFindOpenByCommunity: func(ctx context.Context, communityID uint) ([]models.Charge, error) {
			return []models.Charge{charge}, nil
		},
	}

	svc := newAllocationService(paymentRepo, chargeRepo, &mockAllocationRepository{}, &mockContractRepository{})
	result, err := svc.Allocate(context.Background(), payment.ID, nil, nil, false)

	assert.NoError(t, err)
	assert.Len(t, result.Allocations, 1)
	assert.True(t, result.Allocations[0].AmountApplied.Equal(money.New(15000)))
	assert.True(t, result.Remainder.Equal(money.New(5000)))
}

func TestAllocate_RejectsOverAllocation(t *testing.T) {
	charge := openCharge(10, 15000, time.Now().AddDate(0, 1, 0))
	payment := floatingPayment(1, 50000)

	paymentRepo := &mockPaymentRepository{
		mockFindByIDWithAllocations: func(ctx context.Context, id uint) (*models.Payment, error) {
			return payment, nil
		},
	}
	chargeRepo := &mockChargeRepository{
		mockFindByIDWithAllocations: func(ctx context.Context, id uint) (*models.Charge, error) {
			c := charge
			return &c, nil
		},
	}

	applyCalled := false
	allocationRepo := &mockAllocationRepository{
		mockApplyBatch: func(ctx context.Context, allocations []models.Allocation, chargeStatuses map[uint]string) error {
			applyCalled = true
			return nil
		},
	}

	svc := newAllocationService(paymentRepo, chargeRepo, allocationRepo, &mockContractRepository{})
	_, err := svc.Allocate(context.Background(), payment.ID,
		[]AllocationRequest{{ChargeID: 10, Amount: money.New(16000)}}, nil, false)

	assert.ErrorIs(t, err, ErrOverAllocation)
	assert.False(t, applyCalled)
}

func TestAllocate_RejectsTotalBeyondPayment(t *testing.T) {
	// Each pair fits its charge but the pairs together exceed the
	// payment's unallocated amount.
	first := openCharge(10, 15000, time.Now().AddDate(0, 1, 0))
	second := openCharge(11, 15000, time.Now().AddDate(0, 4, 0))
	payment := floatingPayment(1, 20000)

	paymentRepo := &mockPaymentRepository{
		mockFindByIDWithAllocations: func(ctx context.Context, id uint) (*models.Payment, error) {
			return payment, nil
		},
	}
	chargeRepo := &mockChargeRepository{
		mockFindByIDWithAllocations: func(ctx context.Context, id uint) (*models.Charge, error) {
			if id == 10 {
				c := first
				return &c, nil
			}
			c := second
			return &c, nil
		},
	}

	svc := newAllocationService(paymentRepo, chargeRepo, &mockAllocationRepository{}, &mockContractRepository{})
	_, err := svc.Allocate(context.Background(), payment.ID, []AllocationRequest{
		{ChargeID: 10, Amount: money.New(15000)},
		{ChargeID: 11, Amount: money.New(15000)},
	}, nil, false)

	assert.ErrorIs(t, err, ErrOverAllocation)
}

func TestAllocate_RefusesSecondRunWithoutTopUp(t *testing.T) {
	payment := floatingPayment(1, 20000)
	payment.Allocations = []models.Allocation{
		{ID: 1, PaymentID: 1, ChargeID: 10, AmountApplied: money.New(15000)},
	}

	paymentRepo := &mockPaymentRepository{
		mockFindByIDWithAllocations: func(ctx context.Context, id uint) (*models.Payment, error) {
			return payment, nil
		},
	}

	svc := newAllocationService(paymentRepo, &mockChargeRepository{}, &mockAllocationRepository{}, &mockContractRepository{})
	_, err := svc.Allocate(context.Background(), payment.ID, nil, nil, false)
	assert.ErrorIs(t, err, ErrAlreadyAllocated)
}

func TestAllocate_TopUpAppliesRemainingAmount(t *testing.T) {
	charge := openCharge(11, 15000, time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC))
	payment := floatingPayment(1, 20000)
	payment.Allocations = []models.Allocation{
		{ID: 1, PaymentID: 1, ChargeID: 10, AmountApplied: money.New(15000)},
	}

	paymentRepo := &mockPaymentRepository{
		mockFindByIDWithAllocations: func(ctx context.Context, id uint) (*models.Payment, error) {
			return payment, nil
		},
	}
	chargeRepo := &mockChargeRepository{
		mockFindOpenByCommunity: func(ctx context.Context, communityID uint) ([]models.Charge, error) {
			return []models.Charge{charge}, nil
		},
	}

	svc := newAllocationService(paymentRepo, chargeRepo, &mockAllocationRepository{}, &mockContractRepository{})
	result, err := svc.Allocate(context.Background(), payment.ID, nil, nil, true)

	assert.NoError(t, err)
	assert.Len(t, result.Allocations, 1)
	assert.True(t, result.Allocations[0].AmountApplied.Equal(money.New(5000)))
	assert.True(t, result.Remainder.IsZero())
}

func TestAllocate_RefusesFullyAllocatedPayment(t *testing.T) {
	payment := floatingPayment(1, 15000)
	payment.Allocations = []models.Allocation{
		{ID: 1, PaymentID: 1, ChargeID: 10, AmountApplied: money.New(15000)},
	}

	paymentRepo := &mockPaymentRepository{
		mockFindByIDWithAllocations: func(ctx context.Context, id uint) (*models.Payment, error) {
			return payment, nil
		},
	}

	svc := newAllocationService(paymentRepo, &mockChargeRepository{}, &mockAllocationRepository{}, &mockContractRepository{})
	_, err := svc.Allocate(context.Background(), payment.ID, nil, nil, true)
	assert.ErrorIs(t, err, ErrAlreadyAllocated)
}

func TestAllocate_RejectsInactiveCharge(t *testing.T) {
	charge := openCharge(10, 15000, time.Now().AddDate(0, 1, 0))
	charge.Active = false
	payment := floatingPayment(1, 15000)

	paymentRepo := &mockPaymentRepository{
		mockFindByIDWithAllocations: func(ctx context.Context, id uint) (*models.Payment, error) {
			return payment, nil
		},
	}
	chargeRepo := &mockChargeRepository{
		mockFindByIDWithAllocations: func(ctx context.Context, id uint) (*models.Charge, error) {
			c := charge
			return &c, nil
		},
	}

	svc := newAllocationService(paymentRepo, chargeRepo, &mockAllocationRepository{}, &mockContractRepository{})
	_, err := svc.Allocate(context.Background(), payment.ID,
		[]AllocationRequest{{ChargeID: 10, Amount: money.New(15000)}}, nil, false)
	assert.ErrorIs(t, err, ErrInactiveEntity)
}

func TestAllocate_RejectsDuplicateCharge(t *testing.T) {
	charge := openCharge(10, 15000, time.Now().AddDate(0, 1, 0))
	payment := floatingPayment(1, 15000)

	paymentRepo := &mockPaymentRepository{
		mockFindByIDWithAllocations: func(ctx context.Context, id uint) (*models.Payment, error) {
			return payment, nil
		},
	}
	chargeRepo := &mockChargeRepository{
		mockFindByIDWithAllocations: func(ctx context.Context, id uint) (*models.Charge, error) {
			c := charge
			return &c, nil
		},
	}

	svc := newAllocationService(paymentRepo, chargeRepo, &mockAllocationRepository{}, &mockContractRepository{})
	_, err := svc.Allocate(context.Background(), payment.ID, []AllocationRequest{
		{ChargeID: 10, Amount: money.New(5000)},
		{ChargeID: 10, Amount: money.New(5000)},
	}, nil, false)
	assert.ErrorIs(t, err, ErrInvalidAllocation)
}

func TestAllocate_RejectsChargeFromOtherCommunity(t *testing.T) {
	charge := openCharge(10, 15000, time.Now().AddDate(0, 1, 0))
	charge.CommunityID = 2
	payment := floatingPayment(1, 15000)

	paymentRepo := &mockPaymentRepository{
		mockFindByIDWithAllocations: func(ctx context.Context, id uint) (*models.Payment, error) {
			return payment, nil
		},
	}
	chargeRepo := &mockChargeRepository{
		mockFindByIDWithAllocations: func(ctx context.Context, id uint) (*models.Charge, error) {
			c := charge
			return &c, nil
		},
	}

	svc := newAllocationService(paymentRepo, chargeRepo, &mockAllocationRepository{}, &mockContractRepository{})
	_, err := svc.Allocate(context.Background(), payment.ID,
		[]AllocationRequest{{ChargeID: 10, Amount: money.New(15000)}}, nil, false)
	assert.ErrorIs(t, err, ErrInvalidAllocation)
}

func TestAllocate_UnknownPayment(t *testing.T) {
	svc := newAllocationService(&mockPaymentRepository{}, &mockChargeRepository{}, &mockAllocationRepository{}, &mockContractRepository{})
	_, err := svc.Allocate(context.Background(), 999, nil, nil, false)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAllocate_ConcurrentCallsApplyOnce(t *testing.T) {
	// Two goroutines race to allocate the same payment. The community
	// lock and the re-read guard let exactly one of them apply it.
	charge := openCharge(10, 15000, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	payment := floatingPayment(1, 15000)

	var stateMu sync.Mutex
	paymentRepo := &mockPaymentRepository{
		mockFindByIDWithAllocations: func(ctx context.Context, id uint) (*models.Payment, error) {
			stateMu.Lock()
			defer stateMu.Unlock()
			p := *payment
			p.Allocations = append([]models.Allocation(nil), payment.Allocations...)
			return &p, nil
		},
	}
	chargeRepo := &mockChargeRepository{
		mockFindOpenByCommunity: func(ctx context.Context, communityID uint) ([]models.Charge, error) {
			return []models.Charge{charge}, nil
		},
	}

	var applies int32
	allocationRepo := &mockAllocationRepository{
		mockApplyBatch: func(ctx context.Context, allocations []models.Allocation, chargeStatuses map[uint]string) error {
			atomic.AddInt32(&applies, 1)
			stateMu.Lock()
			payment.Allocations = append(payment.Allocations, allocations...)
			stateMu.Unlock()
			return nil
		},
	}

	svc := newAllocationService(paymentRepo, chargeRepo, allocationRepo, &mockContractRepository{})

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Allocate(context.Background(), payment.ID, nil, nil, false)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&applies))
	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrAlreadyAllocated)
		}
	}
	assert.Equal(t, 1, succeeded)
}

func TestRecordPayment_DefaultsReferenceAndDate(t *testing.T) {
	var created *models.Payment
	paymentRepo := &mockPaymentRepository{
		mockCreate: func(ctx context.Context, payment *models.Payment) error {
			created = payment
			return nil
		},
	}

	svc := newAllocationService(paymentRepo, &mockChargeRepository{}, &mockAllocationRepository{}, &mockContractRepository{})
	payment := &models.Payment{CommunityID: 1, Amount: money.New(15000), Method: "transfer"}
	err := svc.RecordPayment(context.Background(), payment)

	assert.NoError(t, err)
	assert.NotNil(t, created)
	assert.NotEmpty(t, created.Reference)
	assert.False(t, created.PaidAt.IsZero())
	assert.True(t, created.Active)
}

func TestRecordPayment_RejectsNonPositiveAmount(t *testing.T) {
	svc := newAllocationService(&mockPaymentRepository{}, &mockChargeRepository{}, &mockAllocationRepository{}, &mockContractRepository{})
	err := svc.RecordPayment(context.Background(), &models.Payment{CommunityID: 1, Amount: money.Zero})
	assert.ErrorIs(t, err, ErrInvalidAllocation)
}
