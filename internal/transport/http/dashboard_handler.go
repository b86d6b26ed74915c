package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "sheetlog/internal/errors"
	"sheetlog/internal/exporter"
	"sheetlog/internal/services"
)

// Export type selectors accepted by the export endpoint.
const (
	ExportTypeDetail      = "detail"
	ExportTypeMonthPeople = "month-people"
)

// DashboardHandler serves the workbook listing, the dashboard payload and
// the two file exports.
type DashboardHandler struct {
	service      DashboardService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	// fileWriter, when set, persists each export under the reports
	// directory in addition to streaming it to the client.
	fileWriter *exporter.FileWriter
}

// NewDashboardHandler creates a dashboard handler. fileWriter may be nil to
// disable server-side export copies.
func NewDashboardHandler(service DashboardService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler, fileWriter *exporter.FileWriter) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
		fileWriter:   fileWriter,
	}
}

// Routes returns the API routes.
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/workbooks", h.GetWorkbooks)
	r.Get("/dashboard", h.GetDashboard)
	r.Get("/dashboard/export", h.GetExport)

	return r
}

// GetWorkbooks handles GET /api/workbooks.
func (h *DashboardHandler) GetWorkbooks(w http.ResponseWriter, r *http.Request) {
	found, err := h.service.ListWorkbooks(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"workbooks": found,
		"count":     len(found),
	})
}

// GetDashboard handles GET /api/dashboard.
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	query, apiErr := parseDashboardRequest(r)
	if apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}

	dashboard, err := h.service.Dashboard(r.Context(), query)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, dashboard)
}

// GetExport handles GET /api/dashboard/export. The response body is the
// delimiter-separated file itself, served as an attachment.
func (h *DashboardHandler) GetExport(w http.ResponseWriter, r *http.Request) {
	query, apiErr := parseDashboardRequest(r)
	if apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}

	var (
		fileName string
		headers  []string
		records  [][]string
		err      error
	)
	switch exportType := r.URL.Query().Get("type"); exportType {
	case ExportTypeDetail, "":
		fileName, headers, records, err = h.service.ExportDetail(r.Context(), query)
	case ExportTypeMonthPeople:
		fileName, headers, records, err = h.service.ExportMonthPeople(r.Context(), query)
	default:
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("type", fmt.Sprintf("unknown export type %q", exportType)))
		return
	}
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	if h.fileWriter != nil {
		if _, err := h.fileWriter.WriteFile(fileName, headers, records); err != nil {
			h.logger.WarnContext(r.Context(), "export copy not persisted",
				slog.String("file", fileName),
				slog.String("error", err.Error()))
		}
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	if err := exporter.Write(w, headers, records); err != nil {
		h.logger.ErrorContext(r.Context(), "export write failed", slog.String("error", err.Error()))
	}
}

// handleServiceError maps service sentinel errors onto API errors.
func (h *DashboardHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrWorkbookNotFound):
		h.errorHandler.HandleError(w, r, apierrors.WorkbookNotFoundError(r.URL.Query().Get("workbook")))
	case errors.Is(err, services.ErrWorkbookUnreadable):
		h.errorHandler.HandleError(w, r, apierrors.WorkbookUnreadableError(err))
	case errors.Is(err, services.ErrInvalidQuery):
		h.errorHandler.HandleError(w, r, apierrors.New(http.StatusBadRequest, "INVALID_QUERY", err.Error()))
	default:
		h.errorHandler.HandleError(w, r, err)
	}
}
