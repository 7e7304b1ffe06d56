package handlers

import (
	"net/http"
	"strconv"

	"github.com/condovia/condovia-api/internal/services"
	"github.com/gin-gonic/gin"
)

type StatementHandler struct {
	statementService *services.StatementService
	exportService    *services.ExportService
}

func NewStatementHandler(statementService *services.StatementService, exportService *services.ExportService) *StatementHandler {
	return &StatementHandler{statementService: statementService, exportService: exportService}
}

// @Summary Contract Statement
// @Description Get the account statement for a contract. Use format=csv|xlsx|pdf to download.
// @Tags Statements
// @Accept json
// @Produce json
// @Param contract_id path int true "Contract ID"
// @Param format query string false "Export format (csv, xlsx, pdf)"
// @Success 200 {object} services.Statement
// @Failure 404 {object} map[string]string
// @Router /contracts/{contract_id}/statement [get]
func (h *StatementHandler) ContractStatement(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("contract_id"), 10, 32)
	statement, err := h.statementService.GetContractStatement(c.Request.Context(), uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.respond(c, statement)
}

// @Summary Community Statement
// @Description Get the account statement for a community. Use format=csv|xlsx|pdf to download.
// @Tags Statements
// @Accept json
// @Produce json
// @Param community_id path int true "Community ID"
// @Param format query string false "Export format (csv, xlsx, pdf)"
// @Success 200 {object} services.Statement
// @Failure 404 {object} map[string]string
// @Router /communities/{community_id}/statement [get]
func (h *StatementHandler) CommunityStatement(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("community_id"), 10, 32)
	statement, err := h.statementService.GetCommunityStatement(c.Request.Context(), uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.respond(c, statement)
}

// @Summary Charge Stats
// @Description Get aggregate charge figures, optionally scoped to a community
// @Tags Statements
// @Accept json
// @Produce json
// @Param community_id query int false "Community ID"
// @Success 200 {object} repository.ChargeStats
// @Router /charges/stats [get]
func (h *StatementHandler) Stats(c *gin.Context) {
	var communityID *uint
	if raw := c.Query("community_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "community_id inválido"})
			return
		}
		val := uint(id)
		communityID = &val
	}

	stats, err := h.statementService.GetStats(c.Request.Context(), communityID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *StatementHandler) respond(c *gin.Context, statement *services.Statement) {
	switch c.Query("format") {
	case "csv":
		data, filename, err := h.exportService.ExportCSV(c.Request.Context(), statement)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename="+filename)
		c.Data(http.StatusOK, "text/csv", data)
	case "xlsx":
		data, filename, err := h.exportService.ExportXLSX(c.Request.Context(), statement)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename="+filename)
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
	case "pdf":
		data, filename, err := h.exportService.ExportPDF(c.Request.Context(), statement)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename="+filename)
		c.Data(http.StatusOK, "application/pdf", data)
	default:
		c.JSON(http.StatusOK, statement)
	}
}
