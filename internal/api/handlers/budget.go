package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pratik-mahalle/cloudcost/internal/api/dto"
	"github.com/pratik-mahalle/cloudcost/internal/domain/budget"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/errors"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/logger"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/utils"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/validator"
)

// BudgetHandler handles budget requests
type BudgetHandler struct {
	service   budget.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewBudgetHandler creates a new budget handler
func NewBudgetHandler(service budget.Service, log *logger.Logger, val *validator.Validator) *BudgetHandler {
	return &BudgetHandler{
		service:   service,
		logger:    log,
		validator: val,
	}
}

// List returns budgets with current spend
// @Summary List budgets
// @Tags Budgets
// @Produce json
// @Security BearerAuth
// @Success 200 {array} budget.Status
// @Router /budgets [get]
func (h *BudgetHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	budgets, err := h.service.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to list budgets")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, budgets)
}

// Create creates a budget
// @Summary Create a budget
// @Tags Budgets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateBudgetRequest true "Budget details"
// @Success 201 {object} budget.Budget
// @Failure 400 {object} utils.ErrorResponse
// @Router /budgets [post]
func (h *BudgetHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req dto.CreateBudgetRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		msg := "Validation failed"
		if validator.HasTag(validationErrs, "required") || validator.HasTag(validationErrs, "notblank") {
			msg = "Name, amount and period are required"
		}
		utils.WriteError(w, errors.ValidationError(msg, validationErrs))
		return
	}

	b, err := h.service.Create(r.Context(), userID, req.ToInput())
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to create budget")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, b)
}

// Update changes the provided budget fields
// @Summary Update a budget
// @Tags Budgets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Budget ID"
// @Param request body dto.UpdateBudgetRequest true "Fields to update"
// @Success 200 {object} budget.Budget
// @Failure 404 {object} utils.ErrorResponse
// @Router /budgets/{id} [put]
func (h *BudgetHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req dto.UpdateBudgetRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	b, err := h.service.Update(r.Context(), userID, chi.URLParam(r, "id"), req.ToInput())
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to update budget")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, b)
}

// Delete removes a budget
// @Summary Delete a budget
// @Tags Budgets
// @Produce json
// @Security BearerAuth
// @Param id path string true "Budget ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /budgets/{id} [delete]
func (h *BudgetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.logger, err, "Failed to delete budget")
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Budget deleted successfully", nil)
}
