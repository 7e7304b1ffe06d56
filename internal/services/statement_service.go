package services

import (
	"context"

	"github.com/condovia/condovia-api/internal/models"
	"github.com/condovia/condovia-api/internal/repository"
)

// Statement is the read-only projection of charges and payments for a
// contract or a community, ordered for display.
type Statement struct {
	Contract  *models.ContractResponse `json:"contract,omitempty"`
	Community *models.Community        `json:"community,omitempty"`
	Charges   []models.ChargeResponse  `json:"charges"`
	Payments  []models.PaymentResponse `json:"payments"`
}

// StatementService builds account statements
type StatementService struct {
	contractRepo  repository.ContractRepository
	communityRepo repository.CommunityRepository
	chargeRepo    repository.ChargeRepository
	paymentRepo   repository.PaymentRepository
}

// NewStatementService creates a new statement service
func NewStatementService(
	contractRepo repository.ContractRepository,
	communityRepo repository.CommunityRepository,
	chargeRepo repository.ChargeRepository,
	paymentRepo repository.PaymentRepository,
) *StatementService {
	return &StatementService{
		contractRepo:  contractRepo,
		communityRepo: communityRepo,
		chargeRepo:    chargeRepo,
		paymentRepo:   paymentRepo,
	}
}

// GetContractStatement returns a contract's charges (due date ascending)
// and the payments applied to them (paid date ascending). A contract
// with no activity yields empty collections.
func (s *StatementService) GetContractStatement(ctx context.Context, contractID uint) (*Statement, error) {
	contract, err := s.contractRepo.FindByID(ctx, contractID)
	if err != nil {
		return nil, ErrNotFound
	}

	charges, err := s.chargeRepo.FindByContract(ctx, contractID)
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.FindByContract(ctx, contractID)
	if err != nil {
		return nil, err
	}

	contractResp := contract.ToResponse()
	return &Statement{
		Contract: &contractResp,
		Charges:  chargeResponses(charges),
		Payments: paymentResponses(payments),
	}, nil
}

// GetCommunityStatement returns all active charges and payments scoped
// to one community.
func (s *StatementService) GetCommunityStatement(ctx context.Context, communityID uint) (*Statement, error) {
	community, err := s.communityRepo.FindByID(ctx, communityID)
	if err != nil {
		return nil, ErrNotFound
	}

	charges, err := s.chargeRepo.FindByCommunity(ctx, communityID)
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.FindByCommunity(ctx, communityID)
	if err != nil {
		return nil, err
	}

	return &Statement{
		Community: community,
		Charges:   chargeResponses(charges),
		Payments:  paymentResponses(payments),
	}, nil
}

// GetStats aggregates charge counts and collected totals, optionally
// scoped to one community.
func (s *StatementService) GetStats(ctx context.Context, communityID *uint) (*repository.ChargeStats, error) {
	if communityID != nil {
		if _, err := s.communityRepo.FindByID(ctx, *communityID); err != nil {
			return nil, ErrNotFound
		}
	}
	return s.chargeRepo.GetStats(ctx, communityID)
}

func chargeResponses(charges []models.Charge) []models.ChargeResponse {
	out := make([]models.ChargeResponse, 0, len(charges))
	for i := range charges {
		out = append(out, charges[i].ToResponse())
	}
	return out
}

func paymentResponses(payments []models.Payment) []models.PaymentResponse {
	out := make([]models.PaymentResponse, 0, len(payments))
	for i := range payments {
		out = append(out, payments[i].ToResponse())
	}
	return out
}
