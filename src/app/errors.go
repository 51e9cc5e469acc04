package app

import "errors"

var (
	// client errors
	ErrNoFile      = errors.New("no file uploaded")
	ErrInvalidName = errors.New("invalid file name")

	// storage errors
	ErrNotFound         = errors.New("not found")
	ErrWorksheetMissing = errors.New("worksheet not found")
	ErrSpreadsheetInit  = errors.New("can not initialize spreadsheet")
	ErrUnknownBackend   = errors.New("unknown backend")

	// ErrCatalogParse marks catalog contents that are not a JSON array of records.
	ErrCatalogParse = errors.New("catalog parse error")
)
