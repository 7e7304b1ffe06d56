package services

import (
	"github.com/condovia/condovia-api/internal/jobs"
	"github.com/condovia/condovia-api/internal/repository"
	"github.com/condovia/condovia-api/internal/storage"
	"gorm.io/gorm"
)

// Services holds all service instances
type Services struct {
	Contract   *ContractService
	Schedule   *ScheduleService
	Allocation *AllocationService
	Statement  *StatementService
	Status     *StatusService
	Export     *ExportService
	Audit      *AuditService
	Job        *JobService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, worker *jobs.Worker, db *gorm.DB, archive *storage.ExportArchive) *Services {
	auditSvc := NewAuditService(db)
	scheduleSvc := NewScheduleService(repos.Contract, repos.Charge, auditSvc)

	return &Services{
		Contract:   NewContractService(repos.Contract, repos.Community, repos.Charge, scheduleSvc, auditSvc),
		Schedule:   scheduleSvc,
		Allocation: NewAllocationService(repos.Payment, repos.Charge, repos.Allocation, repos.Contract, repos.Community, auditSvc),
		Statement:  NewStatementService(repos.Contract, repos.Community, repos.Charge, repos.Payment),
		Status:     NewStatusService(repos.Charge),
		Export:     NewExportService(archive),
		Audit:      auditSvc,
		Job:        NewJobService(worker),
	}
}
