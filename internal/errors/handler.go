package errors

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
)

// ErrorHandler renders errors as structured JSON responses and logs them
// with request context.
type ErrorHandler struct {
	logger *slog.Logger
}

// NewErrorHandler creates an error handler.
func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ErrorHandler{logger: logger.With(slog.String("component", "error_handler"))}
}

// HandleError logs err and writes its API representation. Unknown error
// values are wrapped as internal server errors so no internals leak.
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	h.logger.ErrorContext(r.Context(), "request failed",
		slog.String("error", err.Error()),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path))

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		apiErr = ErrInternalServer
	}

	if renderErr := render.Render(w, r, apiErr); renderErr != nil {
		h.logger.ErrorContext(r.Context(), "failed to render error response",
			slog.String("error", renderErr.Error()))
	}
}
