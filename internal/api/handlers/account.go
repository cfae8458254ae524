package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pratik-mahalle/cloudcost/internal/api/dto"
	"github.com/pratik-mahalle/cloudcost/internal/domain/account"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/errors"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/logger"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/utils"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/validator"
)

// AccountHandler handles cloud account requests
type AccountHandler struct {
	service   account.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewAccountHandler creates a new cloud account handler
func NewAccountHandler(service account.Service, log *logger.Logger, val *validator.Validator) *AccountHandler {
	return &AccountHandler{
		service:   service,
		logger:    log,
		validator: val,
	}
}

// List returns the caller's cloud accounts
// @Summary List cloud accounts
// @Tags CloudAccounts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} account.Account
// @Router /cloud-accounts [get]
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	accounts, err := h.service.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to list cloud accounts")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, accounts)
}

// Create connects a cloud account
// @Summary Connect a cloud account
// @Description Demo accounts are seeded with 30 days of synthetic cost data
// @Tags CloudAccounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} account.Account
// @Failure 400 {object} utils.ErrorResponse
// @Router /cloud-accounts [post]
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req dto.CreateAccountRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	acct, err := h.service.Create(r.Context(), userID, req.ToInput())
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to create cloud account")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, acct)
}

// Delete removes a cloud account and everything recorded under it
// @Summary Delete a cloud account
// @Tags CloudAccounts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Cloud account ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /cloud-accounts/{id} [delete]
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.logger, err, "Failed to delete cloud account")
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Cloud account deleted successfully", nil)
}

// Sync refreshes an account's cost data
// @Summary Sync a cloud account
// @Tags CloudAccounts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Cloud account ID"
// @Success 200 {object} account.Account
// @Failure 404 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse "Provider billing API failed"
// @Router /cloud-accounts/{id}/sync [post]
func (h *AccountHandler) Sync(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	acct, err := h.service.Sync(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to sync cloud account")
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Sync completed successfully", acct)
}
