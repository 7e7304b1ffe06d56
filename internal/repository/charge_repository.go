package repository

import (
	"context"
	"time"

	"github.com/condovia/condovia-api/internal/models"
	"gorm.io/gorm"
)

// ChargeStats holds aggregate charge figures for a community or the
// whole platform, grouped by persisted status.
type ChargeStats struct {
	TotalCharges   int64   `json:"total_charges"`
	PaidCount      int64   `json:"paid_count"`
	OverdueCount   int64   `json:"overdue_count"`
	PartialCount   int64   `json:"partial_count"`
	NotDueCount    int64   `json:"not_due_count"`
	TotalBilled    float64 `json:"total_billed"`
	TotalCollected float64 `json:"total_collected"`
}

// ChargeRepository defines the interface for charge data access
type ChargeRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Charge, error)
	FindByIDWithAllocations(ctx context.Context, id uint) (*models.Charge, error)
	FindByContract(ctx context.Context, contractID uint) ([]models.Charge, error)
	FindOpenByContract(ctx context.Context, contractID uint) ([]models.Charge, error)
	FindOpenByCommunity(ctx context.Context, communityID uint) ([]models.Charge, error)
	FindByCommunity(ctx context.Context, communityID uint) ([]models.Charge, error)
	CreateBatch(ctx context.Context, charges []models.Charge) error
	UpdateStatus(ctx context.Context, id uint, status string) error
	FindDueForStatusRefresh(ctx context.Context, asOf time.Time) ([]models.Charge, error)
	GetStats(ctx context.Context, communityID *uint) (*ChargeStats, error)
}

type chargeRepository struct {
	db *gorm.DB
}

// NewChargeRepository creates a new charge repository
func NewChargeRepository(db *gorm.DB) ChargeRepository {
	return &chargeRepository{db: db}
}

func (r *chargeRepository) FindByID(ctx context.Context, id uint) (*models.Charge, error) {
	var charge models.Charge
	err := r.db.WithContext(ctx).First(&charge, id).Error
	if err != nil {
		return nil, err
	}
	return &charge, nil
}

func (r *chargeRepository) FindByIDWithAllocations(ctx context.Context, id uint) (*models.Charge, error) {
	var charge models.Charge
	err := r.db.WithContext(ctx).
		Preload("Allocations").
		First(&charge, id).Error
	if err != nil {
		return nil, err
	}
	return &charge, nil
}

func (r *chargeRepository) FindByContract(ctx context.Context, contractID uint) ([]models.Charge, error) {
	var charges []models.Charge
	err := r.db.WithContext(ctx).
		Preload("Allocations").
		Where("contract_id = ? AND active = ?", contractID, true).
		Order("due_date ASC, id ASC").
		Find(&charges).Error
	return charges, err
}

// FindOpenByContract returns unsettled charges ordered oldest due date
// first, id ascending as the tie breaker. Implicit allocation walks
// this list front to back.
func (r *chargeRepository) FindOpenByContract(ctx context.Context, contractID uint) ([]models.Charge, error) {
	var charges []models.Charge
	err := r.db.WithContext(ctx).
		Preload("Allocations").
		Where("contract_id = ? AND active = ? AND status <> ?", contractID, true, models.ChargeStatusPaid).
		Order("due_date ASC, id ASC").
		Find(&charges).Error
	return charges, err
}

func (r *chargeRepository) FindOpenByCommunity(ctx context.Context, communityID uint) ([]models.Charge, error) {
	var charges []models.Charge
	err := r.db.WithContext(ctx).
		Preload("Allocations").
		Where("community_id = ? AND active = ? AND status <> ?", communityID, true, models.ChargeStatusPaid).
		Order("due_date ASC, id ASC").
		Find(&charges).Error
	return charges, err
}

func (r *chargeRepository) FindByCommunity(ctx context.Context, communityID uint) ([]models.Charge, error) {
	var charges []models.Charge
	err := r.db.WithContext(ctx).
		Preload("Allocations").
		Where("community_id = ? AND active = ?", communityID, true).
		Order("due_date ASC, id ASC").
		Find(&charges).Error
	return charges, err
}

func (r *chargeRepository) CreateBatch(ctx context.Context, charges []models.Charge) error {
	return r.db.WithContext(ctx).Create(&charges).Error
}

func (r *chargeRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	return r.db.WithContext(ctx).
		Model(&models.Charge{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// FindDueForStatusRefresh returns charges still marked not_due whose due
// date has passed. The daily refresh job moves them to overdue.
func (r *chargeRepository) FindDueForStatusRefresh(ctx context.Context, asOf time.Time) ([]models.Charge, error) {
	var charges []models.Charge
	err := r.db.WithContext(ctx).
		Where("status = ? AND active = ? AND due_date < ?", models.ChargeStatusNotDue, true, asOf).
		Find(&charges).Error
	return charges, err
}

func (r *chargeRepository) GetStats(ctx context.Context, communityID *uint) (*ChargeStats, error) {
	stats := &ChargeStats{}

	db := r.db.WithContext(ctx).Model(&models.Charge{}).Where("active = ?", true)
	if communityID != nil {
		db = db.Where("community_id = ?", *communityID)
	}

	type row struct {
		Status string
		Count  int64
		Billed float64
	}
	var rows []row
	err := db.Session(&gorm.Session{}).
		Select("status, COUNT(*) as count, COALESCE(SUM(amount_due + surcharge), 0) as billed").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, rw := range rows {
		stats.TotalCharges += rw.Count
		stats.TotalBilled += rw.Billed
		switch rw.Status {
		case models.ChargeStatusPaid:
			stats.PaidCount = rw.Count
		case models.ChargeStatusOverdue:
			stats.OverdueCount = rw.Count
		case models.ChargeStatusPartiallyPaid:
			stats.PartialCount = rw.Count
		case models.ChargeStatusNotDue:
			stats.NotDueCount = rw.Count
		}
	}

	collected := r.db.WithContext(ctx).
		Model(&models.Allocation{}).
		Joins("JOIN charges ON charges.id = allocations.charge_id").
		Where("charges.active = ?", true)
	if communityID != nil {
		collected = collected.Where("charges.community_id = ?", *communityID)
	}
	var result struct {
		Total float64
	}
	err = collected.Select("COALESCE(SUM(allocations.amount_applied), 0) as total").Scan(&result).Error
	if err != nil {
		return nil, err
	}
	stats.TotalCollected = result.Total

	return stats, nil
}
