package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "debttrack/internal/errors"
	"debttrack/internal/pagination"
	"debttrack/internal/services"
)

// RevenueHandler handles revenue-related requests.
type RevenueHandler struct {
	revenueService services.RevenueServicer
}

// NewRevenueHandler creates a new RevenueHandler.
func NewRevenueHandler(revenueService services.RevenueServicer) *RevenueHandler {
	return &RevenueHandler{revenueService: revenueService}
}

// RecordRevenueRequest represents the request payload for recording revenue
type RecordRevenueRequest struct {
	Source       string                     `json:"source" binding:"required,min=1,max=100"`
	Amount       decimal.Decimal            `json:"amount" binding:"required"`
	DateReceived string                     `json:"date_received" binding:"required"`
	Notes        string                     `json:"notes" binding:"max=500"`
	Allocations  []services.AllocationInput `json:"allocations" binding:"omitempty,dive"`
}

// RevenueResponse represents a revenue entry in the response
type RevenueResponse struct {
	ID           string          `json:"id"`
	UserID       string          `json:"user_id"`
	Source       string          `json:"source"`
	Amount       decimal.Decimal `json:"amount"`
	DateReceived time.Time       `json:"date_received"`
	Notes        string          `json:"notes"`
}

// RecordRevenue handles recording a new revenue entry
// @Summary     Record revenue
// @Description Record incoming revenue split across accounts by percentage allocations. Allocation percentages may not exceed 100 in total.
// @Tags        revenues
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body RecordRevenueRequest true "Revenue details"
// @Success     201 {object} RevenueResponse "Revenue recorded"
// @Failure     400 {object} ErrorResponse "Invalid input or over-allocated"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Allocation account not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /revenues [post]
func (h *RevenueHandler) RecordRevenue(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RecordRevenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseDate(req.DateReceived)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid date_received format"))
		return
	}

	revenue, err := h.revenueService.RecordRevenue(
		userID,
		req.Source,
		req.Amount,
		date,
		req.Notes,
		req.Allocations,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"revenue": revenue})
}

// GetUserRevenues handles the retrieval of revenue entries for a user
// @Summary     Get user revenues
// @Description Get a paginated list of revenue entries for the authenticated user, newest first
// @Tags        revenues
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Revenue] "Paginated revenues"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /revenues [get]
func (h *RevenueHandler) GetUserRevenues(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.revenueService.GetUserRevenues(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetRevenueByID handles the retrieval of a specific revenue entry
// @Summary     Get revenue by ID
// @Description Get a specific revenue entry by ID for the authenticated user, including its allocations
// @Tags        revenues
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Revenue ID"
// @Success     200 {object} RevenueResponse "Revenue details"
// @Failure     400 {object} ErrorResponse "Invalid revenue ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Revenue not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /revenues/{id} [get]
func (h *RevenueHandler) GetRevenueByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	revenueID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	revenue, err := h.revenueService.GetRevenueByID(userID, revenueID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"revenue": revenue})
}

// DeleteRevenue handles deleting a revenue entry
// @Summary     Delete revenue
// @Description Remove an erroneous revenue entry with its allocations. Derived balances are recomputed from the remaining ledger.
// @Tags        revenues
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Revenue ID"
// @Success     204 "Revenue deleted"
// @Failure     400 {object} ErrorResponse "Invalid revenue ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Revenue not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /revenues/{id} [delete]
func (h *RevenueHandler) DeleteRevenue(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	revenueID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.revenueService.DeleteRevenue(userID, revenueID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
