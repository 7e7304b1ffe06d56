package repository

import (
	"context"
	"strings"

	"github.com/condovia/condovia-api/internal/models"
	"gorm.io/gorm"
)

// ContractRepository defines the interface for contract data access
type ContractRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Contract, error)
	FindByIDWithCharges(ctx context.Context, id uint) (*models.Contract, error)
	FindByCommunity(ctx context.Context, communityID uint) ([]models.Contract, error)
	Create(ctx context.Context, contract *models.Contract) error
	Update(ctx context.Context, contract *models.Contract) error
	List(ctx context.Context, query *ListQuery) ([]models.Contract, int64, error)
	HasActiveCharges(ctx context.Context, contractID uint) (bool, error)
}

type contractRepository struct {
	db *gorm.DB
}

// NewContractRepository creates a new contract repository
func NewContractRepository(db *gorm.DB) ContractRepository {
	return &contractRepository{db: db}
}

func (r *contractRepository) FindByID(ctx context.Context, id uint) (*models.Contract, error) {
	var contract models.Contract
	err := r.db.WithContext(ctx).First(&contract, id).Error
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *contractRepository) FindByIDWithCharges(ctx context.Context, id uint) (*models.Contract, error) {
	var contract models.Contract
	err := r.db.WithContext(ctx).
		Joins("Community").
		Preload("Charges", func(db *gorm.DB) *gorm.DB {
			return db.Where("active = ?", true).Order("due_date ASC, id ASC")
		}).
		Preload("Charges.Allocations").
		First(&contract, id).Error
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *contractRepository) FindByCommunity(ctx context.Context, communityID uint) ([]models.Contract, error) {
	var contracts []models.Contract
	err := r.db.WithContext(ctx).
		Where("community_id = ?", communityID).
		Order("signed_date ASC").
		Find(&contracts).Error
	return contracts, err
}

func (r *contractRepository) Create(ctx context.Context, contract *models.Contract) error {
	return r.db.WithContext(ctx).Create(contract).Error
}

func (r *contractRepository) Update(ctx context.Context, contract *models.Contract) error {
	return r.db.WithContext(ctx).Save(contract).Error
}

func (r *contractRepository) List(ctx context.Context, query *ListQuery) ([]models.Contract, int64, error) {
	var contracts []models.Contract
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Contract{})

	if val, ok := query.Filters["community_id"]; ok && val != "" {
		db = db.Where("contracts.community_id = ?", val)
	}
	if val, ok := query.Filters["active"]; ok && val != "" {
		db = db.Where("contracts.active = ?", val == "true")
	}
	if val, ok := query.Filters["periodicity"]; ok && val != "" {
		db = db.Where("contracts.periodicity = ?", val)
	}

	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Joins("LEFT JOIN communities ON communities.id = contracts.community_id").
			Where("contracts.folio ILIKE ? OR communities.name ILIKE ?", search, search)
	}

	// Count total using a separate session so the main query is not altered by Count()
	countDB := db.Session(&gorm.Session{})
	if err := countDB.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if query.SortBy != "" {
		order := query.SortBy
		if strings.ToLower(query.SortDir) == "desc" {
			order += " DESC"
		}
		db = db.Order(order)
	} else {
		db = db.Order("contracts.created_at DESC")
	}

	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.Preload("Community").Find(&contracts).Error
	if err != nil {
		return nil, 0, err
	}

	return contracts, total, nil
}

// HasActiveCharges reports whether a schedule has already been generated
// for the contract. Used to guard against double generation.
func (r *contractRepository) HasActiveCharges(ctx context.Context, contractID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Charge{}).
		Where("contract_id = ? AND active = ?", contractID, true).
		Count(&count).Error
	return count > 0, err
}

// CommunityRepository defines the interface for community data access.
// Communities are owned by the surrounding CRUD layer; the billing core
// only reads them to scope queries.
type CommunityRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Community, error)
}

type communityRepository struct {
	db *gorm.DB
}

// NewCommunityRepository creates a new community repository
func NewCommunityRepository(db *gorm.DB) CommunityRepository {
	return &communityRepository{db: db}
}

func (r *communityRepository) FindByID(ctx context.Context, id uint) (*models.Community, error) {
	var community models.Community
	err := r.db.WithContext(ctx).First(&community, id).Error
	if err != nil {
		return nil, err
	}
	return &community, nil
}
