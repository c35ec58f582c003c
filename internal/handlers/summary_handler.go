package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"debttrack/internal/projection"
	"debttrack/internal/services"
)

// SummaryHandler handles dashboard summary requests.
type SummaryHandler struct {
	summaryService services.SummaryServicer
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(summaryService services.SummaryServicer) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService}
}

// GetSummary returns the dashboard totals
// @Summary     Get dashboard summary
// @Description Get total debt, liquid savings, net worth, and the payoff targeting order. Derived state is refreshed from the ledger before totals are computed.
// @Tags        summary
// @Produce     json
// @Security    BearerAuth
// @Param       strategy query string false "Payoff strategy for the targeting order (snowball or avalanche, default snowball)"
// @Success     200 {object} services.Summary "Dashboard summary"
// @Failure     400 {object} ErrorResponse "Invalid strategy"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /summary [get]
func (h *SummaryHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	strategy := projection.StrategySnowball
	if raw := c.Query("strategy"); raw != "" {
		strategy = projection.Strategy(raw)
	}

	summary, err := h.summaryService.GetSummary(userID, strategy)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
