package services

import (
	"context"
	"testing"
	"time"

	"github.com/condovia/condovia-api/internal/models"
	"github.com/condovia/condovia-api/internal/money"
	"github.com/stretchr/testify/assert"
)

func newContractService(
	contractRepo *mockContractRepository,
	communityRepo *mockCommunityRepository,
	chargeRepo *mockChargeRepository,
) *ContractService {
	scheduleSvc := NewScheduleService(contractRepo, chargeRepo, nil)
	return NewContractService(contractRepo, communityRepo, chargeRepo, scheduleSvc, nil)
}

func TestContractCreate_GeneratesScheduleAtomically(t *testing.T) {
	contract := quarterlyContract()
	contract.ID = 0
	contract.Folio = ""

	contractRepo := &mockContractRepository{
		mockCreate: func(ctx context.Context, c *models.Contract) error {
			c.ID = 100
			return nil
		},
	}
	contractRepo.mockFindByID = func(ctx context.Context, id uint) (*models.Contract, error) {
		return contract, nil
	}

	var created []models.Charge
	chargeRepo := &mockChargeRepository{
		mockCreateBatch: func(ctx context.Context, charges []models.Charge) error {
			created = charges
			return nil
		},
	}

	svc := newContractService(contractRepo, &mockCommunityRepository{}, chargeRepo)
	charges, err := svc.Create(context.Background(), contract)

	assert.NoError(t, err)
	assert.Len(t, charges, 3)
	assert.Len(t, created, 3)
	assert.NotEmpty(t, contract.Folio)
	assert.True(t, contract.Active)
}

func TestContractCreate_RejectsInvalidScheduleBeforePersisting(t *testing.T) {
	contract := quarterlyContract()
	contract.PartialPaymentAmount = money.Zero

	createCalled := false
	contractRepo := &mockContractRepository{
		mockCreate: func(ctx context.Context, c *models.Contract) error {
			createCalled = true
			return nil
		},
	}

	svc := newContractService(contractRepo, &mockCommunityRepository{}, &mockChargeRepository{})
	_, err := svc.Create(context.Background(), contract)

	assert.ErrorIs(t, err, ErrInvalidSchedule)
	assert.False(t, createCalled)
}

func TestContractCreate_RejectsInactiveCommunity(t *testing.T) {
	communityRepo := &mockCommunityRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Community, error) {
			return &models.Community{ID: id, Name: "Residencial Las Colinas", Active: false}, nil
		},
	}

	svc := newContractService(&mockContractRepository{}, communityRepo, &mockChargeRepository{})
	_, err := svc.Create(context.Background(), quarterlyContract())
	assert.ErrorIs(t, err, ErrInactiveEntity)
}

func TestContractFindByID_Unknown(t *testing.T) {
	svc := newContractService(&mockContractRepository{}, &mockCommunityRepository{}, &mockChargeRepository{})
	_, err := svc.FindByID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContractCreate_StartDateDrivesFirstDueDate(t *testing.T) {
	contract := quarterlyContract()
	contract.StartDate = time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	contract.DueDayOfMonth = 10

	contractRepo := &mockContractRepository{
		mockCreate: func(ctx context.Context, c *models.Contract) error {
			c.ID = 100
			return nil
		},
	}
	contractRepo.mockFindByID = func(ctx context.Context, id uint) (*models.Contract, error) {
		return contract, nil
	}

	svc := newContractService(contractRepo, &mockCommunityRepository{}, &mockChargeRepository{})
	charges, err := svc.Create(context.Background(), contract)

	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), charges[0].DueDate)
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), charges[1].DueDate)
}
