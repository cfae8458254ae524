package handlers

import (
	"net/http"

	"github.com/pratik-mahalle/cloudcost/internal/domain/cost"
	"github.com/pratik-mahalle/cloudcost/internal/domain/export"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/errors"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/logger"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/utils"
)

// ExportHandler serves CSV reports
type ExportHandler struct {
	service export.Service
	logger  *logger.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(service export.Service, log *logger.Logger) *ExportHandler {
	return &ExportHandler{
		service: service,
		logger:  log,
	}
}

// Costs exports daily cost rows
// @Summary Export costs as CSV
// @Tags Export
// @Produce text/csv
// @Security BearerAuth
// @Param days query int false "Days to include (1-365)" default(30)
// @Success 200 {file} file "cloud-costs.csv"
// @Failure 400 {object} utils.ErrorResponse
// @Router /export/costs [get]
func (h *ExportHandler) Costs(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	days, ok := utils.QueryInt(r, "days", cost.Window)
	if !ok {
		utils.WriteError(w, errors.BadRequest("days must be between 1 and 365"))
		return
	}

	report, err := h.service.Costs(r.Context(), userID, days)
	h.write(w, report, err, "Failed to export costs")
}

// Recommendations exports every recommendation
// @Summary Export recommendations as CSV
// @Tags Export
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {file} file "recommendations.csv"
// @Router /export/recommendations [get]
func (h *ExportHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	report, err := h.service.Recommendations(r.Context(), userID)
	h.write(w, report, err, "Failed to export recommendations")
}

// Deletions exports the deletion history
// @Summary Export deletions as CSV
// @Tags Export
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {file} file "deletions.csv"
// @Router /export/deletions [get]
func (h *ExportHandler) Deletions(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	report, err := h.service.Deletions(r.Context(), userID)
	h.write(w, report, err, "Failed to export deletions")
}

func (h *ExportHandler) write(w http.ResponseWriter, report *export.Report, err error, message string) {
	if err != nil {
		writeServiceError(w, h.logger, err, message)
		return
	}
	if err := utils.WriteCSV(w, report.Filename, report.Content); err != nil {
		h.logger.ErrorWithErr(err, "Failed to write CSV response")
	}
}
