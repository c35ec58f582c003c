package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "debttrack/internal/errors"
	"debttrack/internal/projection"
	"debttrack/internal/services"
)

// ProjectionHandler handles projection and recomputation requests.
type ProjectionHandler struct {
	projectionService services.ProjectionServicer
	recomputeService  services.RecomputeServicer
}

// NewProjectionHandler creates a new ProjectionHandler.
func NewProjectionHandler(projectionService services.ProjectionServicer, recomputeService services.RecomputeServicer) *ProjectionHandler {
	return &ProjectionHandler{projectionService: projectionService, recomputeService: recomputeService}
}

// ProjectionRequest represents the request payload for running a projection.
// Omitted fields fall back to the configured defaults.
type ProjectionRequest struct {
	HorizonYears               *int             `json:"horizon_years" binding:"omitempty,min=1"`
	MonthlySavingsGrowthRate   *decimal.Decimal `json:"monthly_savings_growth_rate"`
	MonthlySavingsContribution *decimal.Decimal `json:"monthly_savings_contribution"`
	Strategy                   *string          `json:"strategy" binding:"omitempty,payoff_strategy"`
}

// ProjectionSnapshotResponse represents one yearly snapshot in the response
type ProjectionSnapshotResponse struct {
	Year          int             `json:"year"`
	DebtRemaining decimal.Decimal `json:"debt_remaining"`
	Savings       decimal.Decimal `json:"savings"`
	NetWorth      decimal.Decimal `json:"net_worth"`
}

func (h *ProjectionHandler) buildConfig(req ProjectionRequest) projection.Config {
	cfg := h.projectionService.DefaultConfig()
	if req.HorizonYears != nil {
		cfg.HorizonYears = *req.HorizonYears
	}
	if req.MonthlySavingsGrowthRate != nil {
		cfg.MonthlySavingsGrowthRate = *req.MonthlySavingsGrowthRate
	}
	if req.MonthlySavingsContribution != nil {
		cfg.MonthlySavingsContribution = *req.MonthlySavingsContribution
	}
	if req.Strategy != nil {
		cfg.Strategy = projection.Strategy(*req.Strategy)
	}
	return cfg
}

// Project runs a multi-year payoff and savings projection
// @Summary     Run a projection
// @Description Simulate debt payoff and savings growth over the configured horizon using the snowball or avalanche strategy. Configuration is validated before any simulation runs.
// @Tags        projection
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ProjectionRequest true "Projection configuration overrides"
// @Success     200 {object} projection.Result "Yearly snapshots and payoff events"
// @Failure     400 {object} ErrorResponse "Invalid projection configuration"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /projection [post]
func (h *ProjectionHandler) Project(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ProjectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.projectionService.Project(userID, h.buildConfig(req))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"projection": result})
}

// ExportCSV runs a projection and streams the snapshots as CSV
// @Summary     Export projection as CSV
// @Description Run a projection with query-parameter overrides and download the yearly snapshots as a CSV file
// @Tags        projection
// @Produce     text/csv
// @Security    BearerAuth
// @Param       horizon_years query int    false "Projection horizon in years"
// @Param       strategy      query string false "Payoff strategy (snowball or avalanche)"
// @Success     200 {string} string "CSV data"
// @Failure     400 {object} ErrorResponse "Invalid projection configuration"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /projection/export [get]
func (h *ProjectionHandler) ExportCSV(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	cfg := h.projectionService.DefaultConfig()
	if raw := c.Query("horizon_years"); raw != "" {
		years, convErr := strconv.Atoi(raw)
		if convErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid horizon_years"))
			return
		}
		cfg.HorizonYears = years
	}
	if raw := c.Query("strategy"); raw != "" {
		cfg.Strategy = projection.Strategy(raw)
	}

	result, err := h.projectionService.Project(userID, cfg)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filename := "projection-" + time.Now().Format("2006-01-02") + ".csv"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "text/csv")
	if err := h.projectionService.WriteCSV(c.Writer, result); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
}

// Recompute rebuilds all derived state from the ledger
// @Summary     Recompute derived state
// @Description Rebuild account balances, debt totals, and goal progress from the full transaction history. Returns any referential warnings found.
// @Tags        projection
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Recomputation result with warnings"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recompute [post]
func (h *ProjectionHandler) Recompute(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.recomputeService.Run(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	warnings := make([]string, 0, len(result.Warnings))
	for _, w := range result.Warnings {
		warnings = append(warnings, w.String())
	}

	c.JSON(http.StatusOK, gin.H{
		"accounts_updated": len(result.AccountBalances),
		"debts_updated":    len(result.DebtTotals),
		"goals_updated":    len(result.GoalProgress),
		"warnings":         warnings,
	})
}
