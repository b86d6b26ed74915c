// Package services orchestrates the change-log engine: one complete
// read → extract → link → filter → aggregate pass per interaction, plus the
// export flows. There is no state shared between passes beyond an optional
// extraction cache.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"sheetlog/internal/changelog"
	"sheetlog/internal/config"
	"sheetlog/internal/exporter"
	"sheetlog/internal/files"
	"sheetlog/internal/workbook"
)

// Query describes one dashboard interaction.
type Query struct {
	// Workbook is the identifier of the selected register.
	Workbook string
	// Dimension selects the aggregation axis; empty means week.
	Dimension changelog.Dimension
	// Week, when set, keeps only events in that week bucket.
	Week string
	// From and To activate the inclusive date-range filter only when both
	// are set; a single bound is a documented no-op.
	From, To time.Time
	// Drilldown, when set, is the clicked bucket key to resolve.
	Drilldown string
}

// DetailRow is the fixed display projection of one linked event.
type DetailRow struct {
	Tag    string `json:"tag"`
	Area   string `json:"area"`
	System string `json:"system"`
	Type   string `json:"type"`
	Field  string `json:"field"`
	Date   string `json:"date"` // DD/MM/YYYY, the regional display format
	Time   string `json:"time"` // HH:MM:SS
}

// Detail is a resolved drill-down: the exact events behind one bucket.
type Detail struct {
	Title string      `json:"title"`
	Rows  []DetailRow `json:"rows"`
}

// Dashboard is the full payload for one interaction.
type Dashboard struct {
	Workbook  string              `json:"workbook"`
	Dimension changelog.Dimension `json:"dimension"`
	Title     string              `json:"title"`
	// NoData flags the valid empty terminal state: nothing extracted, or
	// nothing left after filtering. Not an error.
	NoData  bool               `json:"no_data"`
	Buckets []changelog.Bucket `json:"buckets"`
	Total   changelog.Total    `json:"total"`
	// Weeks and the date bounds describe the unfiltered event set so
	// callers can populate filter widgets.
	Weeks   []string `json:"weeks"`
	MinDate string   `json:"min_date,omitempty"`
	MaxDate string   `json:"max_date,omitempty"`
	Detail  *Detail  `json:"detail,omitempty"`
}

const displayDateLayout = "02/01/2006"

type cacheEntry struct {
	modTime time.Time
	events  []changelog.LinkedEvent
}

// DashboardService answers dashboard queries over discovered workbooks.
type DashboardService struct {
	cfg        *config.Config
	discovery  *files.Discovery
	extractor  *changelog.Extractor
	aggregator *changelog.Aggregator
	drill      *changelog.Drilldown
	logger     *slog.Logger

	mu    sync.Mutex
	cache map[string]cacheEntry
}

// NewDashboardService wires the engine together from configuration.
func NewDashboardService(cfg *config.Config, logger *slog.Logger) (*DashboardService, error) {
	if logger == nil {
		logger = slog.Default()
	}

	registry, err := changelog.NewRegistry()
	if err != nil {
		return nil, fmt.Errorf("build monitored column registry: %w", err)
	}

	var identity *changelog.Normalizer
	if cfg.Engine.FoldCase || cfg.Engine.FoldAccents {
		identity = changelog.NewNormalizer(cfg.Engine.FoldCase, cfg.Engine.FoldAccents)
	}

	return &DashboardService{
		cfg:        cfg,
		discovery:  files.NewDiscovery(cfg.Paths.WorkbooksDir),
		extractor:  changelog.NewExtractor(registry, logger),
		aggregator: changelog.NewAggregator(identity),
		drill:      changelog.NewDrilldown(identity),
		logger:     logger.With(slog.String("component", "dashboard_service")),
		cache:      make(map[string]cacheEntry),
	}, nil
}

// ListWorkbooks returns the workbooks available for selection.
func (s *DashboardService) ListWorkbooks(ctx context.Context) ([]files.FileInfo, error) {
	found, err := s.discovery.FindWorkbooks()
	if err != nil {
		return nil, err
	}
	s.logger.DebugContext(ctx, "workbooks discovered", slog.Int("count", len(found)))
	return found, nil
}

// loadEvents reads and extracts one workbook, consulting the optional
// (path, modtime) cache. Each cache miss is a complete fresh pass.
func (s *DashboardService) loadEvents(ctx context.Context, name string) ([]changelog.LinkedEvent, error) {
	info, err := s.discovery.Resolve(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrWorkbookNotFound, name)
	}

	if s.cfg.Engine.CacheExtraction {
		s.mu.Lock()
		entry, ok := s.cache[info.Path]
		s.mu.Unlock()
		if ok && entry.modTime.Equal(info.ModTime) {
			s.logger.DebugContext(ctx, "extraction cache hit", slog.String("workbook", name))
			return entry.events, nil
		}
	}

	table, err := workbook.Read(info.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWorkbookUnreadable, err)
	}

	linked := changelog.Link(s.extractor.Extract(table), table)

	if s.cfg.Engine.CacheExtraction {
		s.mu.Lock()
		s.cache[info.Path] = cacheEntry{modTime: info.ModTime, events: linked}
		s.mu.Unlock()
	}

	s.logger.InfoContext(ctx, "workbook extracted",
		slog.String("workbook", name),
		slog.Int("events", len(linked)))
	return linked, nil
}

// Dashboard runs one complete pass for the query.
func (s *DashboardService) Dashboard(ctx context.Context, q Query) (*Dashboard, error) {
	dim := q.Dimension
	if dim == "" {
		dim = changelog.DimensionWeek
	}
	if !dim.Valid() {
		return nil, fmt.Errorf("%w: dimension %q", ErrInvalidQuery, q.Dimension)
	}

	linked, err := s.loadEvents(ctx, q.Workbook)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		Workbook:  q.Workbook,
		Dimension: dim,
		Weeks:     weekBuckets(linked),
	}
	if lo, hi, ok := dateBounds(linked); ok {
		d.MinDate = lo.Format(displayDateLayout)
		d.MaxDate = hi.Format(displayDateLayout)
	}

	filtered := changelog.FilterWeek(linked, q.Week)
	filtered = changelog.FilterDateRange(filtered, q.From, q.To)

	d.Buckets = s.aggregator.Aggregate(filtered, dim)
	d.Total = s.aggregator.GrandTotal(filtered)

	if len(filtered) == 0 {
		d.NoData = true
		d.Title = "No data for the selected filters"
	} else {
		d.Title = dim.Title()
	}

	if q.Drilldown != "" {
		events, title := s.drill.Resolve(filtered, dim, q.Drilldown)
		d.Detail = &Detail{Title: title, Rows: detailRows(events)}
	}

	return d, nil
}

// ExportDetail produces the detail-table export: the drill-down rows when a
// key is set, otherwise every filtered event.
func (s *DashboardService) ExportDetail(ctx context.Context, q Query) (string, []string, [][]string, error) {
	linked, err := s.loadEvents(ctx, q.Workbook)
	if err != nil {
		return "", nil, nil, err
	}

	dim := q.Dimension
	if dim == "" {
		dim = changelog.DimensionWeek
	}

	filtered := changelog.FilterWeek(linked, q.Week)
	filtered = changelog.FilterDateRange(filtered, q.From, q.To)
	if q.Drilldown != "" {
		filtered, _ = s.drill.Resolve(filtered, dim, q.Drilldown)
	}

	headers := []string{"TAG", "Área", "Sistema", "Tipo", "Campo", "Data", "Hora"}
	records := make([][]string, 0, len(filtered))
	for _, row := range detailRows(filtered) {
		records = append(records, []string{row.Tag, row.Area, row.System, row.Type, row.Field, row.Date, row.Time})
	}
	return exporter.DetailFileName, headers, records, nil
}

// ExportMonthPeople produces the month → people export over the filtered
// set: one row per month with the sorted unique person list.
func (s *DashboardService) ExportMonthPeople(ctx context.Context, q Query) (string, []string, [][]string, error) {
	linked, err := s.loadEvents(ctx, q.Workbook)
	if err != nil {
		return "", nil, nil, err
	}

	filtered := changelog.FilterWeek(linked, q.Week)
	filtered = changelog.FilterDateRange(filtered, q.From, q.To)

	headers := []string{"Mês", "Pessoas"}
	var records [][]string
	for _, b := range s.aggregator.Aggregate(filtered, changelog.DimensionMonth) {
		records = append(records, []string{b.Key, b.People})
	}
	return exporter.MonthPeopleFileName, headers, records, nil
}

func detailRows(events []changelog.LinkedEvent) []DetailRow {
	rows := make([]DetailRow, 0, len(events))
	for _, ev := range events {
		rows = append(rows, DetailRow{
			Tag:    ev.Tag,
			Area:   ev.Area,
			System: ev.System,
			Type:   ev.Type,
			Field:  ev.Field,
			Date:   ev.Date.Format(displayDateLayout),
			Time:   ev.Timestamp.Format("15:04:05"),
		})
	}
	return rows
}

func weekBuckets(events []changelog.LinkedEvent) []string {
	seen := make(map[string]struct{})
	var weeks []string
	for _, ev := range events {
		if _, ok := seen[ev.WeekBucket]; !ok {
			seen[ev.WeekBucket] = struct{}{}
			weeks = append(weeks, ev.WeekBucket)
		}
	}
	sort.Strings(weeks)
	return weeks
}

func dateBounds(events []changelog.LinkedEvent) (lo, hi time.Time, ok bool) {
	for _, ev := range events {
		if !ok {
			lo, hi, ok = ev.Date, ev.Date, true
			continue
		}
		if ev.Date.Before(lo) {
			lo = ev.Date
		}
		if ev.Date.After(hi) {
			hi = ev.Date
		}
	}
	return lo, hi, ok
}
