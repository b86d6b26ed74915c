package http

import (
	"context"

	"sheetlog/internal/files"
	"sheetlog/internal/services"
)

// DashboardService is the service surface the handlers depend on, kept as an
// interface so tests can substitute a stub.
type DashboardService interface {
	ListWorkbooks(ctx context.Context) ([]files.FileInfo, error)
	Dashboard(ctx context.Context, q services.Query) (*services.Dashboard, error)
	ExportDetail(ctx context.Context, q services.Query) (string, []string, [][]string, error)
	ExportMonthPeople(ctx context.Context, q services.Query) (string, []string, [][]string, error)
}
