package handlers

import (
	"net/http"

	"github.com/pratik-mahalle/cloudcost/internal/domain/cost"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/errors"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/logger"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/utils"
)

// CostHandler serves cost analytics
type CostHandler struct {
	service cost.Service
	logger  *logger.Logger
}

// NewCostHandler creates a new cost handler
func NewCostHandler(service cost.Service, log *logger.Logger) *CostHandler {
	return &CostHandler{
		service: service,
		logger:  log,
	}
}

// Summary returns the dashboard headline
// @Summary Cost summary
// @Tags Costs
// @Produce json
// @Security BearerAuth
// @Param cloudAccountId query string false "Limit to one account"
// @Success 200 {object} cost.Summary
// @Router /costs/summary [get]
func (h *CostHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	summary, err := h.service.Summary(r.Context(), userID, utils.QueryString(r, "cloudAccountId"))
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to get cost summary")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, summary)
}

// Trends returns daily totals
// @Summary Daily cost trend
// @Tags Costs
// @Produce json
// @Security BearerAuth
// @Param days query int false "Days to include (1-365)" default(30)
// @Param cloudAccountId query string false "Limit to one account"
// @Success 200 {array} cost.DailyCost
// @Failure 400 {object} utils.ErrorResponse
// @Router /costs/trends [get]
func (h *CostHandler) Trends(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	days, ok := utils.QueryInt(r, "days", cost.Window)
	if !ok {
		utils.WriteError(w, errors.BadRequest("days must be between 1 and 365"))
		return
	}

	points, err := h.service.Trends(r.Context(), userID, utils.QueryString(r, "cloudAccountId"), days)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to get cost trends")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, points)
}

// Breakdown splits recent spend by service
// @Summary Cost by service
// @Tags Costs
// @Produce json
// @Security BearerAuth
// @Param cloudAccountId query string false "Limit to one account"
// @Success 200 {array} cost.ServiceCost
// @Router /costs/breakdown [get]
func (h *CostHandler) Breakdown(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	rows, err := h.service.Breakdown(r.Context(), userID, utils.QueryString(r, "cloudAccountId"))
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to get cost breakdown")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, rows)
}

// Providers splits recent spend by provider
// @Summary Cost by provider
// @Tags Costs
// @Produce json
// @Security BearerAuth
// @Success 200 {array} cost.ProviderCost
// @Router /costs/providers [get]
func (h *CostHandler) Providers(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	rows, err := h.service.Providers(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to get provider costs")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, rows)
}
