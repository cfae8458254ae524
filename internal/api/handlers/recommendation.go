package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pratik-mahalle/cloudcost/internal/api/dto"
	"github.com/pratik-mahalle/cloudcost/internal/domain/recommendation"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/errors"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/logger"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/utils"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/validator"
)

// RecommendationHandler handles recommendation requests
type RecommendationHandler struct {
	service   recommendation.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewRecommendationHandler creates a new recommendation handler
func NewRecommendationHandler(service recommendation.Service, log *logger.Logger, val *validator.Validator) *RecommendationHandler {
	return &RecommendationHandler{
		service:   service,
		logger:    log,
		validator: val,
	}
}

// Generate runs the rules over an account's resources
// @Summary Generate recommendations
// @Description Replaces the account's recommendations with a fresh rule run
// @Tags Recommendations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.GenerateRecommendationsRequest true "Account to analyse"
// @Success 200 {object} dto.GenerateRecommendationsResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /recommendations/generate [post]
func (h *RecommendationHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req dto.GenerateRecommendationsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("cloudAccountId is required", validationErrs))
		return
	}

	count, err := h.service.Generate(r.Context(), userID, req.CloudAccountID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to generate recommendations")
		return
	}

	msg := fmt.Sprintf("Generated %d recommendations", count)
	utils.WriteSuccessWithMessage(w, http.StatusOK, msg, dto.GenerateRecommendationsResponse{
		Message: msg,
		Count:   count,
	})
}

// List returns pending recommendations
// @Summary List pending recommendations
// @Tags Recommendations
// @Produce json
// @Security BearerAuth
// @Param cloudAccountId query string false "Limit to one account"
// @Success 200 {array} recommendation.Recommendation
// @Router /recommendations [get]
func (h *RecommendationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	recs, err := h.service.List(r.Context(), userID, utils.QueryString(r, "cloudAccountId"))
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to list recommendations")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, recs)
}

// Savings returns potential and realised savings
// @Summary Savings summary
// @Tags Recommendations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} recommendation.Savings
// @Router /recommendations/savings [get]
func (h *RecommendationHandler) Savings(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	savings, err := h.service.Savings(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to get savings")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, savings)
}

// Implement marks a recommendation implemented
// @Summary Implement a recommendation
// @Tags Recommendations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Recommendation ID"
// @Success 200 {object} recommendation.Recommendation
// @Failure 404 {object} utils.ErrorResponse
// @Router /recommendations/{id}/implement [post]
func (h *RecommendationHandler) Implement(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	rec, err := h.service.Implement(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to implement recommendation")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, rec)
}

// Dismiss marks a recommendation dismissed
// @Summary Dismiss a recommendation
// @Tags Recommendations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Recommendation ID"
// @Success 200 {object} recommendation.Recommendation
// @Failure 404 {object} utils.ErrorResponse
// @Router /recommendations/{id}/dismiss [post]
func (h *RecommendationHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	rec, err := h.service.Dismiss(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to dismiss recommendation")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, rec)
}
