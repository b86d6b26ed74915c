// Package changelog is the log-extraction and aggregation engine for
// workbook-embedded audit annotations. Certain columns of an equipment
// register hold free-text "who changed this, when" cells; this package turns
// those cells into structured change events and answers aggregate and
// drill-down queries over them.
//
// # Pipeline
//
// Data flows one way through the package:
//
//	Table → Extractor (Registry + ParseAnnotation) → Link → filters →
//	Aggregator / Drilldown → result tables
//
// The engine is a pure function of (table, configuration). It performs no
// I/O, keeps no state between invocations and never mutates its inputs.
// Reading the workbook into a Table is the job of the workbook package.
//
// # Error policy
//
// Hand-maintained spreadsheets contain junk. Cells that do not parse, columns
// that are missing from a given workbook generation and rows without metadata
// are all recovered locally: they reduce the result, they never produce an
// error. An empty event collection is a valid terminal state that callers
// must render as "no data".
package changelog
