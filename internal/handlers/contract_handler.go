package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/condovia/condovia-api/internal/models"
	"github.com/condovia/condovia-api/internal/money"
	"github.com/condovia/condovia-api/internal/repository"
	"github.com/condovia/condovia-api/internal/services"
	"github.com/gin-gonic/gin"
)

type ContractHandler struct {
	contractService *services.ContractService
	scheduleService *services.ScheduleService
}

func NewContractHandler(contractService *services.ContractService, scheduleService *services.ScheduleService) *ContractHandler {
	return &ContractHandler{contractService: contractService, scheduleService: scheduleService}
}

// @Summary List Contracts
// @Description Get a paginated list of contracts
// @Tags Contracts
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Search term (folio or community name)"
// @Param community_id query int false "Filter by community"
// @Param periodicity query string false "Filter by periodicity"
// @Success 200 {object} map[string]interface{}
// @Router /contracts [get]
func (h *ContractHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search_term")
	if communityID := c.Query("community_id"); communityID != "" {
		query.Filters["community_id"] = communityID
	}
	if periodicity := c.Query("periodicity"); periodicity != "" {
		query.Filters["periodicity"] = periodicity
	}
	if active := c.Query("active"); active != "" {
		query.Filters["active"] = active
	}

	contracts, total, err := h.contractService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var responses []interface{}
	for _, contract := range contracts {
		responses = append(responses, contract.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"contracts": responses,
		"pagination": gin.H{
			"page":        query.Page,
			"per_page":    query.PerPage,
			"total":       total,
			"total_pages": (total + int64(query.PerPage) - 1) / int64(query.PerPage),
		},
	})
}

// @Summary Get Contract
// @Description Get a contract by ID with its charge schedule
// @Tags Contracts
// @Accept json
// @Produce json
// @Param contract_id path int true "Contract ID"
// @Success 200 {object} models.ContractResponse
// @Failure 404 {object} map[string]string
// @Router /contracts/{contract_id} [get]
func (h *ContractHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("contract_id"), 10, 32)
	contract, err := h.contractService.FindByIDWithCharges(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contrato no encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"contract": contract.ToResponse()})
}

// CreateContractRequest is the body for POST /contracts
type CreateContractRequest struct {
	CommunityID          uint        `json:"community_id" binding:"required"`
	Folio                string      `json:"folio"`
	TotalCost            money.Money `json:"total_cost" binding:"required"`
	PartialPaymentAmount money.Money `json:"partial_payment_amount" binding:"required"`
	NumberOfInstallments int         `json:"number_of_installments" binding:"required"`
	DueDayOfMonth        int         `json:"due_day_of_month" binding:"required"`
	Periodicity          string      `json:"periodicity" binding:"required"`
	PaymentMethod        string      `json:"payment_method"`
	StartDate            string      `json:"start_date" binding:"required"`
	SignedDate           string      `json:"signed_date"`
	EndDate              *string     `json:"end_date"`
	Note                 *string     `json:"note"`
}

// @Summary Create Contract
// @Description Create a new contract and generate its charge schedule
// @Tags Contracts
// @Accept json
// @Produce json
// @Param request body CreateContractRequest true "Contract Data"
// @Success 201 {object} map[string]interface{}
// @Failure 400,404,422 {object} map[string]string
// @Router /contracts [post]
func (h *ContractHandler) Create(c *gin.Context) {
	var req CreateContractRequest
	if err := BindNestedOrFlat(c, "contract", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "La fecha de inicio debe tener formato YYYY-MM-DD"})
		return
	}

	signedDate := startDate
	if req.SignedDate != "" {
		signedDate, err = time.Parse("2006-01-02", req.SignedDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "La fecha de firma debe tener formato YYYY-MM-DD"})
			return
		}
	}

	var endDate *time.Time
	if req.EndDate != nil && *req.EndDate != "" {
		parsed, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "La fecha de fin debe tener formato YYYY-MM-DD"})
			return
		}
		endDate = &parsed
	}

	contract := &models.Contract{
		CommunityID:          req.CommunityID,
		Folio:                req.Folio,
		TotalCost:            req.TotalCost,
		PartialPaymentAmount: req.PartialPaymentAmount,
		NumberOfInstallments: req.NumberOfInstallments,
		DueDayOfMonth:        req.DueDayOfMonth,
		Periodicity:          req.Periodicity,
		PaymentMethod:        req.PaymentMethod,
		StartDate:            startDate,
		SignedDate:           signedDate,
		EndDate:              endDate,
		Note:                 req.Note,
	}

	charges, err := h.contractService.Create(c.Request.Context(), contract)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var chargeResponses []interface{}
	for i := range charges {
		chargeResponses = append(chargeResponses, charges[i].ToResponse())
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Contrato creado exitosamente",
		"contract": contract.ToResponse(),
		"charges":  chargeResponses,
	})
}

// @Summary Generate Schedule
// @Description Generate the charge schedule for a contract that has no charges yet
// @Tags Contracts
// @Accept json
// @Produce json
// @Param contract_id path int true "Contract ID"
// @Success 201 {object} map[string]interface{}
// @Failure 404,422 {object} map[string]string
// @Router /contracts/{contract_id}/schedule [post]
func (h *ContractHandler) GenerateSchedule(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("contract_id"), 10, 32)
	charges, err := h.scheduleService.GenerateSchedule(c.Request.Context(), uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var responses []interface{}
	for i := range charges {
		responses = append(responses, charges[i].ToResponse())
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Calendario generado", "charges": responses})
}

// @Summary List Contract Charges
// @Description Get a contract's charges ordered by due date
// @Tags Contracts
// @Accept json
// @Produce json
// @Param contract_id path int true "Contract ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /contracts/{contract_id}/charges [get]
func (h *ContractHandler) Charges(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("contract_id"), 10, 32)
	charges, err := h.contractService.GetCharges(c.Request.Context(), uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses := make([]interface{}, 0, len(charges))
	for i := range charges {
		responses = append(responses, charges[i].ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"charges": responses})
}
