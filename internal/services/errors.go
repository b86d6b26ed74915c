package services

import "errors"

// Sentinel errors returned by the dashboard service. The transport layer
// maps these onto API error responses.
var (
	// ErrWorkbookNotFound means the requested workbook is not among the
	// discovered files.
	ErrWorkbookNotFound = errors.New("workbook not found")

	// ErrWorkbookUnreadable means the file exists but could not be opened
	// or parsed as a spreadsheet.
	ErrWorkbookUnreadable = errors.New("workbook unreadable")

	// ErrInvalidQuery means the query parameters are malformed, such as an
	// unknown dimension.
	ErrInvalidQuery = errors.New("invalid query")
)
