package repository

import (
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	Community  CommunityRepository
	Contract   ContractRepository
	Charge     ChargeRepository
	Payment    PaymentRepository
	Allocation AllocationRepository
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Community:  NewCommunityRepository(db),
		Contract:   NewContractRepository(db),
		Charge:     NewChargeRepository(db),
		Payment:    NewPaymentRepository(db),
		Allocation: NewAllocationRepository(db),
	}
}
