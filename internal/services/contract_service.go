package services

import (
	"context"
	"fmt"
	"time"

	"github.com/condovia/condovia-api/internal/models"
	"github.com/condovia/condovia-api/internal/repository"
	"github.com/google/uuid"
)

type ContractService struct {
	repo          repository.ContractRepository
	communityRepo repository.CommunityRepository
	chargeRepo    repository.ChargeRepository
	scheduleSvc   *ScheduleService
	auditSvc      *AuditService
}

func NewContractService(
	repo repository.ContractRepository,
	communityRepo repository.CommunityRepository,
	chargeRepo repository.ChargeRepository,
	scheduleSvc *ScheduleService,
	auditSvc *AuditService,
) *ContractService {
	return &ContractService{
		repo:          repo,
		communityRepo: communityRepo,
		chargeRepo:    chargeRepo,
		scheduleSvc:   scheduleSvc,
		auditSvc:      auditSvc,
	}
}

// FindByID gets a contract by ID
func (s *ContractService) FindByID(ctx context.Context, id uint) (*models.Contract, error) {
	contract, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return contract, nil
}

// FindByIDWithCharges gets a contract with its charge schedule preloaded
func (s *ContractService) FindByIDWithCharges(ctx context.Context, id uint) (*models.Contract, error) {
	contract, err := s.repo.FindByIDWithCharges(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return contract, nil
}

func (s *ContractService) List(ctx context.Context, query *repository.ListQuery) ([]models.Contract, int64, error) {
	return s.repo.List(ctx, query)
}

// Create persists a new contract and generates its charge schedule.
// Schedule parameters are validated before the contract is written so
// an invalid contract never lands without charges.
func (s *ContractService) Create(ctx context.Context, contract *models.Contract) ([]models.Charge, error) {
	community, err := s.communityRepo.FindByID(ctx, contract.CommunityID)
	if err != nil {
		return nil, ErrNotFound
	}
	if !community.Active {
		return nil, ErrInactiveEntity
	}

	if _, err := BuildCharges(contract, time.Now()); err != nil {
		return nil, err
	}

	if contract.Folio == "" {
		contract.Folio = uuid.New().String()
	}
	contract.Active = true

	if err := s.repo.Create(ctx, contract); err != nil {
		return nil, err
	}

	charges, err := s.scheduleSvc.GenerateSchedule(ctx, contract.ID)
	if err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, "CREATE", "Contract", contract.ID,
		fmt.Sprintf("Contrato creado para la comunidad %s. Folio: %s, total: %s", community.Name, contract.Folio, contract.TotalCost.StringFixed(2)), "", "")

	return charges, nil
}

// GetCharges returns a contract's charges ordered by due date
func (s *ContractService) GetCharges(ctx context.Context, contractID uint) ([]models.Charge, error) {
	if _, err := s.repo.FindByID(ctx, contractID); err != nil {
		return nil, ErrNotFound
	}
	return s.chargeRepo.FindByContract(ctx, contractID)
}
