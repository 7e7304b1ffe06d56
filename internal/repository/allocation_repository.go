package repository

import (
	"context"

	"github.com/condovia/condovia-api/internal/models"
	"github.com/condovia/condovia-api/internal/money"

	"gorm.io/gorm"
)

// AllocationRepository defines the interface for allocation data access
type AllocationRepository interface {
	FindByPayment(ctx context.Context, paymentID uint) ([]models.Allocation, error)
	FindByCharge(ctx context.Context, chargeID uint) ([]models.Allocation, error)
	SumAppliedByCharge(ctx context.Context, chargeID uint) (money.Money, error)
	SumAppliedByPayment(ctx context.Context, paymentID uint) (money.Money, error)
	ApplyBatch(ctx context.Context, allocations []models.Allocation, chargeStatuses map[uint]string) error
}

// allocationRepository handles database operations for payment allocations
type allocationRepository struct {
	db *gorm.DB
}

// NewAllocationRepository creates a new allocation repository
func NewAllocationRepository(db *gorm.DB) AllocationRepository {
	return &allocationRepository{db: db}
}

func (r *allocationRepository) FindByPayment(ctx context.Context, paymentID uint) ([]models.Allocation, error) {
	var allocations []models.Allocation
	err := r.db.WithContext(ctx).
		Where("payment_id = ?", paymentID).
		Order("created_at ASC, id ASC").
		Find(&allocations).Error
	return allocations, err
}

func (r *allocationRepository) FindByCharge(ctx context.Context, chargeID uint) ([]models.Allocation, error) {
	var allocations []models.Allocation
	err := r.db.WithContext(ctx).
		Where("charge_id = ?", chargeID).
		Order("created_at ASC, id ASC").
		Find(&allocations).Error
	return allocations, err
}

// SumAppliedByCharge returns the total amount applied against a charge.
func (r *allocationRepository) SumAppliedByCharge(ctx context.Context, chargeID uint) (money.Money, error) {
	var result struct {
		Total string
	}
	err := r.db.WithContext(ctx).
		Model(&models.Allocation{}).
		Select("COALESCE(SUM(amount_applied), 0) as total").
		Where("charge_id = ?", chargeID).
		Scan(&result).Error
	if err != nil {
		return money.Zero, err
	}
	return money.FromString(result.Total)
}

// SumAppliedByPayment returns the total amount a payment has allocated so far.
func (r *allocationRepository) SumAppliedByPayment(ctx context.Context, paymentID uint) (money.Money, error) {
	var result struct {
		Total string
	}
	err := r.db.WithContext(ctx).
		Model(&models.Allocation{}).
		Select("COALESCE(SUM(amount_applied), 0) as total").
		Where("payment_id = ?", paymentID).
		Scan(&result).Error
	if err != nil {
		return money.Zero, err
	}
	return money.FromString(result.Total)
}

// ApplyBatch writes a payment's allocations and the resulting charge
// statuses in a single transaction. Either every row lands or none do.
func (r *allocationRepository) ApplyBatch(ctx context.Context, allocations []models.Allocation, chargeStatuses map[uint]string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(allocations) > 0 {
			if err := tx.Create(&allocations).Error; err != nil {
				return err
			}
		}
		for chargeID, status := range chargeStatuses {
			err := tx.Model(&models.Charge{}).
				Where("id = ?", chargeID).
				Update("status", status).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
