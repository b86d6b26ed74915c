// Command extractor runs the change-log pipeline over workbooks without
// starting the server: every .xlsx in the input directory (or one file via
// -workbook) is extracted, aggregated and exported.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"sheetlog/internal/changelog"
	"sheetlog/internal/exporter"
	"sheetlog/internal/files"
	"sheetlog/internal/workbook"
)

func main() {
	inDir := flag.String("in", "workbooks", "directory scanned for .xlsx registers")
	single := flag.String("workbook", "", "process only this workbook file instead of scanning -in")
	dimension := flag.String("dimension", "week", "summary dimension: week, day, month, person or tag")
	week := flag.String("week", "", "restrict to one week bucket, e.g. 2024-03-04/2024-03-10")
	from := flag.String("from", "", "start of date range (YYYY-MM-DD, requires -to)")
	to := flag.String("to", "", "end of date range (YYYY-MM-DD, requires -from)")
	outDir := flag.String("out", "reports", "output directory for export files")
	foldCase := flag.Bool("fold-case", false, "treat person names case-insensitively")
	foldAccents := flag.Bool("fold-accents", false, "strip accents when comparing person names")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	dim := changelog.Dimension(*dimension)
	if !dim.Valid() {
		logger.Error("unknown dimension", "dimension", *dimension)
		os.Exit(2)
	}

	fromDay, toDay, err := parseRange(*from, *to)
	if err != nil {
		logger.Error("invalid date range", "error", err)
		os.Exit(2)
	}

	registry, err := changelog.NewRegistry()
	if err != nil {
		logger.Error("failed to build column registry", "error", err)
		os.Exit(1)
	}

	var identity *changelog.Normalizer
	if *foldCase || *foldAccents {
		identity = changelog.NewNormalizer(*foldCase, *foldAccents)
	}

	var paths []string
	if *single != "" {
		paths = []string{*single}
	} else {
		found, err := files.NewDiscovery(*inDir).FindWorkbooks()
		if err != nil {
			logger.Error("failed to scan workbook directory", "dir", *inDir, "error", err)
			os.Exit(1)
		}
		if len(found) == 0 {
			logger.Warn("no workbooks found", "dir", *inDir)
		}
		for _, f := range found {
			paths = append(paths, f.Path)
		}
	}

	extractor := changelog.NewExtractor(registry, logger)
	aggregator := changelog.NewAggregator(identity)

	failed := false
	for _, path := range paths {
		if err := process(path, *outDir, len(paths) > 1, dim, *week, fromDay, toDay, extractor, aggregator, logger); err != nil {
			logger.Error("workbook failed", "path", path, "error", err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func parseRange(from, to string) (fromDay, toDay time.Time, err error) {
	if from != "" {
		if fromDay, err = time.Parse("2006-01-02", from); err != nil {
			return
		}
	}
	if to != "" {
		toDay, err = time.Parse("2006-01-02", to)
	}
	return
}

// process runs one complete pass over a single workbook and writes its
// exports. With several workbooks each gets a subdirectory named after the
// file so the fixed export filenames do not collide.
func process(path, outDir string, subdir bool, dim changelog.Dimension, week string, fromDay, toDay time.Time,
	extractor *changelog.Extractor, aggregator *changelog.Aggregator, logger *slog.Logger) error {

	table, err := workbook.Read(path)
	if err != nil {
		return fmt.Errorf("read workbook: %w", err)
	}

	events := changelog.Link(extractor.Extract(table), table)
	events = changelog.FilterWeek(events, week)
	events = changelog.FilterDateRange(events, fromDay, toDay)

	buckets := aggregator.Aggregate(events, dim)
	total := aggregator.GrandTotal(events)

	fmt.Printf("%s: %s\n", filepath.Base(path), dim.Title())
	for _, b := range buckets {
		fmt.Printf("  %-30s %6d events  %4d tags  %4d persons\n", b.Key, b.Events, b.DistinctTags, b.DistinctPersons)
	}
	fmt.Printf("  total: %d events, %d distinct tags\n", total.Events, total.DistinctTags)

	if subdir {
		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		outDir = filepath.Join(outDir, stem)
	}
	writer := exporter.NewFileWriter(outDir, logger)

	detailHeaders := []string{"TAG", "Área", "Sistema", "Tipo", "Campo", "Data", "Hora"}
	detailRecords := make([][]string, 0, len(events))
	for _, ev := range events {
		detailRecords = append(detailRecords, []string{
			ev.Tag, ev.Area, ev.System, ev.Type, ev.Field,
			ev.Date.Format("02/01/2006"), ev.Timestamp.Format("15:04:05"),
		})
	}
	if _, err := writer.WriteFile(exporter.DetailFileName, detailHeaders, detailRecords); err != nil {
		return fmt.Errorf("write detail export: %w", err)
	}

	var monthRecords [][]string
	for _, b := range aggregator.Aggregate(events, changelog.DimensionMonth) {
		monthRecords = append(monthRecords, []string{b.Key, b.People})
	}
	if _, err := writer.WriteFile(exporter.MonthPeopleFileName, []string{"Mês", "Pessoas"}, monthRecords); err != nil {
		return fmt.Errorf("write month export: %w", err)
	}

	logger.Info("exports written", "workbook", filepath.Base(path), "dir", outDir, "events", len(events))
	return nil
}
