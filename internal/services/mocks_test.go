package services

import (
	"context"
	"time"

	"github.com/condovia/condovia-api/internal/models"
	"github.com/condovia/condovia-api/internal/money"
	"github.com/condovia/condovia-api/internal/repository"
	"gorm.io/gorm"
)

// Mock ContractRepository
type mockContractRepository struct {
	mockFindByID         func(ctx context.Context, id uint) (*models.Contract, error)
	mockHasActiveCharges func(ctx context.Context, contractID uint) (bool, error)
	mockCreate           func(ctx context.Context, contract *models.Contract) error
}

func (m *mockContractRepository) FindByID(ctx context.Context, id uint) (*models.Contract, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockContractRepository) FindByIDWithCharges(ctx context.Context, id uint) (*models.Contract, error) {
	return m.FindByID(ctx, id)
}
func (m *mockContractRepository) FindByCommunity(ctx context.Context, communityID uint) ([]models.Contract, error) {
	return nil, nil
}
func (m *mockContractRepository) Create(ctx context.Context, contract *models.Contract) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, contract)
	}
	return nil
}
func (m *mockContractRepository) Update(ctx context.Context, contract *models.Contract) error {
	return nil
}
func (m *mockContractRepository) List(ctx context.Context, query *repository.ListQuery) ([]models.Contract, int64, error) {
	return nil, 0, nil
}
func (m *mockContractRepository) HasActiveCharges(ctx context.Context, contractID uint) (bool, error) {
	if m.mockHasActiveCharges != nil {
		return m.mockHasActiveCharges(ctx, contractID)
	}
	return false, nil
}

// Mock CommunityRepository
type mockCommunityRepository struct {
	mockFindByID func(ctx context.Context, id uint) (*models.Community, error)
}

func (m *mockCommunityRepository) FindByID(ctx context.Context, id uint) (*models.Community, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return &models.Community{ID: id, Name: "Residencial Las Colinas", Active: true}, nil
}

// Mock ChargeRepository
type mockChargeRepository struct {
	mockFindByIDWithAllocations func(ctx context.Context, id uint) (*models.Charge, error)
	mockFindOpenByContract      func(ctx context.Context, contractID uint) ([]models.Charge, error)
	mockFindOpenByCommunity     func(ctx context.Context, communityID uint) ([]models.Charge, error)
	mockFindByCommunity         func(ctx context.Context, communityID uint) ([]models.Charge, error)
	mockCreateBatch             func(ctx context.Context, charges []models.Charge) error
	mockUpdateStatus            func(ctx context.Context, id uint, status string) error
	mockFindDueForStatusRefresh func(ctx context.Context, asOf time.Time) ([]models.Charge, error)
}

func (m *mockChargeRepository) FindByID(ctx context.Context, id uint) (*models.Charge, error) {
	return m.FindByIDWithAllocations(ctx, id)
}
func (m *mockChargeRepository) FindByIDWithAllocations(ctx context.Context, id uint) (*models.Charge, error) {
	if m.mockFindByIDWithAllocations != nil {
		return m.mockFindByIDWithAllocations(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockChargeRepository) FindByContract(ctx context.Context, contractID uint) ([]models.Charge, error) {
	return nil, nil
}
func (m *mockChargeRepository) FindOpenByContract(ctx context.Context, contractID uint) ([]models.Charge, error) {
	if m.mockFindOpenByContract != nil {
		return m.mockFindOpenByContract(ctx, contractID)
	}
	return nil, nil
}
func (m *mockChargeRepository) FindOpenByCommunity(ctx context.Context, communityID uint) ([]models.Charge, error) {
	if m.mockFindOpenByCommunity != nil {
		return m.mockFindOpenByCommunity(ctx, communityID)
	}
	return nil, nil
}
func (m *mockChargeRepository) FindByCommunity(ctx context.Context, communityID uint) ([]models.Charge, error) {
	if m.mockFindByCommunity != nil {
		return m.mockFindByCommunity(ctx, communityID)
	}
	return nil, nil
}
func (m *mockChargeRepository) CreateBatch(ctx context.Context, charges []models.Charge) error {
	if m.mockCreateBatch != nil {
		return m.mockCreateBatch(ctx, charges)
	}
	return nil
}
func (m *mockChargeRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	if m.mockUpdateStatus != nil {
		return m.mockUpdateStatus(ctx, id, status)
	}
	return nil
}
func (m *mockChargeRepository) FindDueForStatusRefresh(ctx context.Context, asOf time.Time) ([]models.Charge, error) {
	if m.mockFindDueForStatusRefresh != nil {
		return m.mockFindDueForStatusRefresh(ctx, asOf)
	}
	return nil, nil
}
func (m *mockChargeRepository) GetStats(ctx context.Context, communityID *uint) (*repository.ChargeStats, error) {
	return &repository.ChargeStats{}, nil
}

// Mock PaymentRepository
type mockPaymentRepository struct {
	mockFindByIDWithAllocations func(ctx context.Context, id uint) (*models.Payment, error)
	mockFindByCommunity         func(ctx context.Context, communityID uint) ([]models.Payment, error)
	mockCreate                  func(ctx context.Context, payment *models.Payment) error
}

func (m *mockPaymentRepository) FindByID(ctx context.Context, id uint) (*models.Payment, error) {
	return m.FindByIDWithAllocations(ctx, id)
}
func (m *mockPaymentRepository) FindByIDWithAllocations(ctx context.Context, id uint) (*models.Payment, error) {
	if m.mockFindByIDWithAllocations != nil {
		return m.mockFindByIDWithAllocations(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockPaymentRepository) FindByCommunity(ctx context.Context, communityID uint) ([]models.Payment, error) {
	if m.mockFindByCommunity != nil {
		return m.mockFindByCommunity(ctx, communityID)
	}
	return nil, nil
}
func (m *mockPaymentRepository) FindByContract(ctx context.Context, contractID uint) ([]models.Payment, error) {
	return nil, nil
}
func (m *mockPaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, payment)
	}
	return nil
}

// Mock AllocationRepository
type mockAllocationRepository struct {
	mockApplyBatch func(ctx context.Context, allocations []models.Allocation, chargeStatuses map[uint]string) error
}

func (m *mockAllocationRepository) FindByPayment(ctx context.Context, paymentID uint) ([]models.Allocation, error) {
	return nil, nil
}
func (m *mockAllocationRepository) FindByCharge(ctx context.Context, chargeID uint) ([]models.Allocation, error) {
	return nil, nil
}
func (m *mockAllocationRepository) SumAppliedByCharge(ctx context.Context, chargeID uint) (money.Money, error) {
	return money.Zero, nil
}
func (m *mockAllocationRepository) SumAppliedByPayment(ctx context.Context, paymentID uint) (money.Money, error) {
	return money.Zero, nil
}
func (m *mockAllocationRepository) ApplyBatch(ctx context.Context, allocations []models.Allocation, chargeStatuses map[uint]string) error {
	if m.mockApplyBatch != nil {
		return m.mockApplyBatch(ctx, allocations, chargeStatuses)
	}
	return nil
}
