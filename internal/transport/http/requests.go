package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"sheetlog/internal/changelog"
	apierrors "sheetlog/internal/errors"
	"sheetlog/internal/services"
)

// queryDateLayout is the wire format for from/to parameters.
const queryDateLayout = "2006-01-02"

var validate = validator.New()

// DashboardRequest is the decoded and validated query string of a dashboard
// or export request.
type DashboardRequest struct {
	Workbook  string `validate:"required"`
	Dimension string `validate:"omitempty,oneof=week day month person tag"`
	Week      string `validate:"omitempty"`
	From      string `validate:"omitempty,datetime=2006-01-02"`
	To        string `validate:"omitempty,datetime=2006-01-02"`
	Drilldown string
}

// parseDashboardRequest decodes the query string into a service query.
// Validation failures come back as renderable API errors naming the field.
func parseDashboardRequest(r *http.Request) (services.Query, *apierrors.APIError) {
	q := r.URL.Query()
	req := DashboardRequest{
		Workbook:  q.Get("workbook"),
		Dimension: q.Get("dimension"),
		Week:      q.Get("week"),
		From:      q.Get("from"),
		To:        q.Get("to"),
		Drilldown: q.Get("drilldown"),
	}

	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			field := verrs[0].Field()
			return services.Query{}, apierrors.ErrValidation(field, "invalid value for "+field)
		}
		return services.Query{}, apierrors.ErrInvalidRequest
	}

	out := services.Query{
		Workbook:  req.Workbook,
		Dimension: changelog.Dimension(req.Dimension),
		Week:      req.Week,
		Drilldown: req.Drilldown,
	}
	if req.From != "" {
		from, err := time.Parse(queryDateLayout, req.From)
		if err != nil {
			return services.Query{}, apierrors.ErrValidation("From", "invalid value for From")
		}
		out.From = from
	}
	if req.To != "" {
		to, err := time.Parse(queryDateLayout, req.To)
		if err != nil {
			return services.Query{}, apierrors.ErrValidation("To", "invalid value for To")
		}
		out.To = to
	}
	return out, nil
}
