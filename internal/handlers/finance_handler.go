package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "hearth/internal/errors"
	"hearth/internal/models"
	"hearth/internal/services"
)

// FinanceHandler handles finance-ledger requests.
type FinanceHandler struct {
	financeService services.FinanceServicer
	auditService   services.AuditServicer
}

// NewFinanceHandler creates a new FinanceHandler.
func NewFinanceHandler(financeService services.FinanceServicer, auditService services.AuditServicer) *FinanceHandler {
	return &FinanceHandler{financeService: financeService, auditService: auditService}
}

// FinanceRecordRequest represents the request payload for creating or
// updating a finance record.
type FinanceRecordRequest struct {
	Type             string  `json:"type" binding:"required,finance_type"`
	Category         string  `json:"category" binding:"required,max=100"`
	Amount           float64 `json:"amount" binding:"required,gt=0"`
	Description      string  `json:"description" binding:"max=500"`
	TransactionDate  string  `json:"transaction_date" binding:"required"`
	IsRecurring      bool    `json:"is_recurring"`
	DueDate          *string `json:"due_date"`
	PaymentMonths    *int    `json:"payment_months" binding:"omitempty,min=1"`
	VisibleToUserIDs []uint  `json:"visible_to_user_ids"`
}

// toInput converts the request payload into a service input, parsing dates.
func (r *FinanceRecordRequest) toInput() (services.FinanceInput, error) {
	in := services.FinanceInput{
		Type:             models.FinanceType(r.Type),
		Category:         r.Category,
		Amount:           r.Amount,
		Description:      r.Description,
		IsRecurring:      r.IsRecurring,
		PaymentMonths:    r.PaymentMonths,
		VisibleToUserIDs: r.VisibleToUserIDs,
	}

	txDate, err := parseFlexibleDate(r.TransactionDate)
	if err != nil {
		return in, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	in.TransactionDate = txDate

	if r.DueDate != nil && *r.DueDate != "" {
		due, err := parseFlexibleDate(*r.DueDate)
		if err != nil {
			return in, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
		}
		in.DueDate = &due
	}
	return in, nil
}

// CreateFinanceRecord handles the creation of a finance record
// @Summary     Create a finance record
// @Description Create an income or expense record in a home (owner only)
// @Tags        finances
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Home ID"
// @Param       request body FinanceRecordRequest true "Record details"
// @Success     201 {object} map[string]interface{} "Record created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Not the home owner"
// @Failure     404 {object} ErrorResponse "Home not found"
// @Router      /homes/{id}/finances [post]
func (h *FinanceHandler) CreateFinanceRecord(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	homeID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req FinanceRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	in, err := req.toInput()
	if err != nil {
		respondWithError(c, err)
		return
	}

	record, err := h.financeService.CreateFinanceRecord(userID, homeID, in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_FINANCE", "finance_record", record.ID, c.ClientIP(),
		map[string]any{"home_id": homeID, "type": req.Type, "category": req.Category})

	c.JSON(http.StatusCreated, gin.H{"finance": record})
}

// UpdateFinanceRecord handles updating a finance record
// @Summary     Update a finance record
// @Description Replace a finance record's fields; a visibility list, when present, fully replaces the old one
// @Tags        finances
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Finance record ID"
// @Param       request body FinanceRecordRequest true "Record details"
// @Success     200 {object} map[string]interface{} "Record updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Not the home owner"
// @Failure     404 {object} ErrorResponse "Record not found"
// @Router      /finances/{id} [put]
func (h *FinanceHandler) UpdateFinanceRecord(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	financeID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req FinanceRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	in, err := req.toInput()
	if err != nil {
		respondWithError(c, err)
		return
	}

	record, err := h.financeService.UpdateFinanceRecord(userID, financeID, in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_FINANCE", "finance_record", record.ID, c.ClientIP(),
		map[string]any{"type": req.Type, "category": req.Category})

	c.JSON(http.StatusOK, gin.H{"finance": record})
}

// DeleteFinanceRecord handles deleting a finance record
// @Summary     Delete a finance record
// @Description Delete a finance record and its visibility rows (owner only)
// @Tags        finances
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Finance record ID"
// @Success     200 {object} map[string]interface{} "Record deleted"
// @Failure     403 {object} ErrorResponse "Not the home owner"
// @Failure     404 {object} ErrorResponse "Record not found"
// @Router      /finances/{id} [delete]
func (h *FinanceHandler) DeleteFinanceRecord(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	financeID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.financeService.DeleteFinanceRecord(userID, financeID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_FINANCE", "finance_record", financeID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Finance record deleted"})
}

// financeListQuery holds the optional list filters.
type financeListQuery struct {
	Type  *string `form:"type" binding:"omitempty,finance_type"`
	Month *int    `form:"month" binding:"omitempty,min=1,max=12"`
	Year  *int    `form:"year" binding:"omitempty,min=1970,max=9999"`
}

// ListFinanceRecords handles listing the finance records visible to the user
// @Summary     List finance records
// @Description List the records the user created or was granted sight of; with month and year, installment plans expand into per-month entries
// @Tags        finances
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Home ID"
// @Param       type query string false "income or expense"
// @Param       month query int false "Month (1-12)"
// @Param       year query int false "Year"
// @Success     200 {object} map[string]interface{} "Finance entries"
// @Failure     403 {object} ErrorResponse "Not a home member"
// @Failure     404 {object} ErrorResponse "Home not found"
// @Router      /homes/{id}/finances [get]
func (h *FinanceHandler) ListFinanceRecords(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	homeID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q financeListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := services.FinanceFilter{Month: q.Month, Year: q.Year}
	if q.Type != nil {
		t := models.FinanceType(*q.Type)
		filter.Type = &t
	}

	entries, err := h.financeService.ListFinanceRecords(userID, homeID, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"finances": entries})
}

// GetMonthlyBalance handles the monthly balance query
// @Summary     Get monthly balance
// @Description Aggregate visible income and expenses for a month; month and year are required
// @Tags        finances
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Home ID"
// @Param       month query int true "Month (1-12)"
// @Param       year query int true "Year"
// @Success     200 {object} ledger.Summary "Balance summary"
// @Failure     400 {object} ErrorResponse "Missing or invalid month/year"
// @Failure     403 {object} ErrorResponse "Not a home member"
// @Router      /homes/{id}/finances/balance [get]
func (h *FinanceHandler) GetMonthlyBalance(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	homeID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	// No default period is assumed: both parameters must be present.
	monthStr := c.Query("month")
	yearStr := c.Query("year")
	if monthStr == "" || yearStr == "" {
		respondWithError(c, apperrors.ErrMissingBalancePeriod)
		return
	}

	var q struct {
		Month int `form:"month" binding:"required,min=1,max=12"`
		Year  int `form:"year" binding:"required,min=1970,max=9999"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.ErrInvalidBalancePeriod)
		return
	}

	summary, err := h.financeService.GetMonthlyBalance(userID, homeID, q.Month, q.Year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
