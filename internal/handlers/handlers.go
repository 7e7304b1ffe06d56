package handlers

import (
	"github.com/condovia/condovia-api/internal/services"
)

// Handlers holds all handler instances
type Handlers struct {
	Health    *HealthHandler
	Contract  *ContractHandler
	Payment   *PaymentHandler
	Statement *StatementHandler
	Audit     *AuditHandler
	Job       *JobHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services) *Handlers {
	return &Handlers{
		Health:    NewHealthHandler(),
		Contract:  NewContractHandler(svcs.Contract, svcs.Schedule),
		Payment:   NewPaymentHandler(svcs.Allocation),
		Statement: NewStatementHandler(svcs.Statement, svcs.Export),
		Audit:     NewAuditHandler(svcs.Audit),
		Job:       NewJobHandler(svcs.Job),
	}
}
