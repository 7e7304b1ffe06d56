package repository

import (
	"context"

	"github.com/condovia/condovia-api/internal/models"
	"gorm.io/gorm"
)

// PaymentRepository defines the interface for payment data access
type PaymentRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Payment, error)
	FindByIDWithAllocations(ctx context.Context, id uint) (*models.Payment, error)
	FindByCommunity(ctx context.Context, communityID uint) ([]models.Payment, error)
	FindByContract(ctx context.Context, contractID uint) ([]models.Payment, error)
	Create(ctx context.Context, payment *models.Payment) error
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) FindByID(ctx context.Context, id uint) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).First(&payment, id).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) FindByIDWithAllocations(ctx context.Context, id uint) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).
		Preload("Allocations", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		First(&payment, id).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) FindByCommunity(ctx context.Context, communityID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.WithContext(ctx).
		Preload("Allocations").
		Where("community_id = ? AND active = ?", communityID, true).
		Order("paid_at ASC, id ASC").
		Find(&payments).Error
	return payments, err
}

// FindByContract returns payments that have at least one allocation
// against one of the contract's charges, oldest first.
func (r *paymentRepository) FindByContract(ctx context.Context, contractID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.WithContext(ctx).
		Preload("Allocations").
		Joins("JOIN allocations ON allocations.payment_id = payments.id").
		Joins("JOIN charges ON charges.id = allocations.charge_id").
		Where("charges.contract_id = ?", contractID).
		Distinct().
		Order("payments.paid_at ASC, payments.id ASC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}
