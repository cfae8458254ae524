package handlers

import (
	"net/http"
	"time"

	"github.com/pratik-mahalle/cloudcost/internal/api/dto"
	"github.com/pratik-mahalle/cloudcost/internal/domain/deletion"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/errors"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/logger"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/utils"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/validator"
)

// DeletionHandler serves the Nuke tracker
type DeletionHandler struct {
	service   deletion.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewDeletionHandler creates a new deletion handler
func NewDeletionHandler(service deletion.Service, log *logger.Logger, val *validator.Validator) *DeletionHandler {
	return &DeletionHandler{
		service:   service,
		logger:    log,
		validator: val,
	}
}

// List returns recorded deletions, newest first
// @Summary List deletions
// @Tags Deletions
// @Produce json
// @Security BearerAuth
// @Param cloudAccountId query string false "Limit to one account"
// @Param resourceType query string false "Resource type"
// @Param startDate query string false "YYYY-MM-DD or RFC 3339"
// @Param endDate query string false "YYYY-MM-DD (whole day) or RFC 3339"
// @Success 200 {array} deletion.Deletion
// @Failure 400 {object} utils.ErrorResponse
// @Router /deletions [get]
func (h *DeletionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	filter, appErr := deletionFilter(r)
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	deletions, err := h.service.List(r.Context(), userID, filter)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to list deletions")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, deletions)
}

// Record stores a deleted resource
// @Summary Record a deletion
// @Tags Deletions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RecordDeletionRequest true "Deletion details"
// @Success 201 {object} deletion.Deletion
// @Failure 400 {object} utils.ErrorResponse "Missing required fields"
// @Failure 404 {object} utils.ErrorResponse
// @Router /deletions [post]
func (h *DeletionHandler) Record(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req dto.RecordDeletionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		msg := "Validation failed"
		if validator.HasTag(validationErrs, "required") || validator.HasTag(validationErrs, "notblank") {
			msg = "Missing required fields"
		}
		utils.WriteError(w, errors.ValidationError(msg, validationErrs))
		return
	}

	d, err := h.service.Record(r.Context(), userID, req.ToInput())
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to record deletion")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, d)
}

// Analytics returns deletion totals
// @Summary Deletion analytics
// @Tags Deletions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} deletion.Analytics
// @Router /deletions/analytics [get]
func (h *DeletionHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	analytics, err := h.service.Analytics(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to get deletion analytics")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, analytics)
}

func deletionFilter(r *http.Request) (deletion.Filter, *errors.AppError) {
	filter := deletion.Filter{
		CloudAccountID: utils.QueryString(r, "cloudAccountId"),
		ResourceType:   utils.QueryString(r, "resourceType"),
	}

	if raw := utils.QueryString(r, "startDate"); raw != "" {
		start, _, err := utils.ParseDate(raw)
		if err != nil {
			return filter, errors.BadRequest("Invalid startDate")
		}
		filter.StartDate = &start
	}

	if raw := utils.QueryString(r, "endDate"); raw != "" {
		end, dateOnly, err := utils.ParseDate(raw)
		if err != nil {
			return filter, errors.BadRequest("Invalid endDate")
		}
		if dateOnly {
			end = end.Add(24*time.Hour - time.Nanosecond)
		}
		filter.EndDate = &end
	}

	return filter, nil
}
