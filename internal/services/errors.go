package services

import "errors"

// Common service errors
var (
	ErrNotFound          = errors.New("registro no encontrado")
	ErrInvalidSchedule   = errors.New("parámetros de calendario inválidos")
	ErrAlreadyScheduled  = errors.New("el contrato ya tiene cargos generados")
	ErrOverAllocation    = errors.New("la asignación excede el saldo pendiente del cargo")
	ErrInvalidAllocation = errors.New("solicitud de asignación inválida")
	ErrAlreadyAllocated  = errors.New("el pago ya fue asignado")
	ErrInactiveEntity    = errors.New("registro inactivo")
	ErrInvalidState      = errors.New("transición de estado inválida")
)
