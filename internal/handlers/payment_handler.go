package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/condovia/condovia-api/internal/models"
	"github.com/condovia/condovia-api/internal/money"
	"github.com/condovia/condovia-api/internal/services"
	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	allocationService *services.AllocationService
}

func NewPaymentHandler(allocationService *services.AllocationService) *PaymentHandler {
	return &PaymentHandler{allocationService: allocationService}
}

// CreatePaymentRequest is the body for POST /payments. Explicit
// allocations, a contract scope, or neither may be given; with neither
// the payment is recorded unallocated.
type CreatePaymentRequest struct {
	CommunityID uint                         `json:"community_id" binding:"required"`
	Amount      money.Money                  `json:"amount" binding:"required"`
	Method      string                       `json:"method"`
	Reference   string                       `json:"reference"`
	PaidAt      string                       `json:"paid_at"`
	Allocations []services.AllocationRequest `json:"allocations"`
	ContractID  *uint                        `json:"contract_id"`
	Allocate    bool                         `json:"allocate"`
}

// @Summary Create Payment
// @Description Record a payment and optionally allocate it against charges
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body CreatePaymentRequest true "Payment Data"
// @Success 201 {object} map[string]interface{}
// @Failure 400,404,422 {object} map[string]string
// @Router /payments [post]
func (h *PaymentHandler) Create(c *gin.Context) {
	var req CreatePaymentRequest
	if err := BindNestedOrFlat(c, "payment", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var paidAt time.Time
	if req.PaidAt != "" {
		parsed, err := time.Parse("2006-01-02", req.PaidAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "La fecha de pago debe tener formato YYYY-MM-DD"})
			return
		}
		paidAt = parsed
	}

	payment := &models.Payment{
		CommunityID: req.CommunityID,
		Amount:      req.Amount,
		Method:      req.Method,
		Reference:   req.Reference,
		PaidAt:      paidAt,
	}

	if err := h.allocationService.RecordPayment(c.Request.Context(), payment); err != nil {
		respondServiceError(c, err)
		return
	}

	if len(req.Allocations) == 0 && !req.Allocate {
		c.JSON(http.StatusCreated, gin.H{
			"message": "Pago registrado",
			"payment": payment.ToResponse(),
		})
		return
	}

	result, err := h.allocationService.Allocate(c.Request.Context(), payment.ID, req.Allocations, req.ContractID, false)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Pago registrado y asignado",
		"payment":     payment.ToResponse(),
		"allocations": allocationResponses(result.Allocations),
		"remainder":   result.Remainder,
	})
}

// @Summary Get Payment
// @Description Get a payment by ID with its allocations
// @Tags Payments
// @Accept json
// @Produce json
// @Param payment_id path int true "Payment ID"
// @Success 200 {object} models.PaymentResponse
// @Failure 404 {object} map[string]string
// @Router /payments/{payment_id} [get]
func (h *PaymentHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("payment_id"), 10, 32)
	payment, err := h.allocationService.FindPayment(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pago no encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": payment.ToResponse()})
}

// AllocatePaymentRequest is the body for POST /payments/{id}/allocations
type AllocatePaymentRequest struct {
	Allocations []services.AllocationRequest `json:"allocations"`
	ContractID  *uint                        `json:"contract_id"`
	TopUp       bool                         `json:"top_up"`
}

// @Summary Allocate Payment
// @Description Apply a payment's unallocated amount against charges, either by explicit pairs or oldest due date first
// @Tags Payments
// @Accept json
// @Produce json
// @Param payment_id path int true "Payment ID"
// @Param request body AllocatePaymentRequest true "Allocation Data"
// @Success 200 {object} map[string]interface{}
// @Failure 400,404,422 {object} map[string]string
// @Router /payments/{payment_id}/allocations [post]
func (h *PaymentHandler) Allocate(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("payment_id"), 10, 32)

	var req AllocatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.allocationService.Allocate(c.Request.Context(), uint(id), req.Allocations, req.ContractID, req.TopUp)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Pago asignado",
		"allocations": allocationResponses(result.Allocations),
		"remainder":   result.Remainder,
	})
}

func allocationResponses(allocations []models.Allocation) []interface{} {
	out := make([]interface{}, 0, len(allocations))
	for i := range allocations {
		out = append(out, allocations[i].ToResponse())
	}
	return out
}
