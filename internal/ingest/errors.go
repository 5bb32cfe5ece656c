// Package ingest parses uploaded ticket-sales CSVs into validated datasets.
// The sentinel errors below are the full failure taxonomy of an upload; all
// of them are user-correctable and scoped to the single request that
// triggered them.  Handlers translate them into HTTP responses.
package ingest

import "errors"

// ErrMalformedInput is returned when the upload cannot be parsed as
// delimited text at all (binary garbage, broken quoting, encoding errors).
// Handlers should translate this into an HTTP 400 response.
var ErrMalformedInput = errors.New("malformed input")

// ErrMissingColumn is returned when a required column is absent from the
// header.  The wrapped message names the column.  Handlers should translate
// this into an HTTP 422 response.
var ErrMissingColumn = errors.New("missing required column")

// ErrNoValidRows is returned when every row was discarded during date
// validation and nothing is left to analyze.  Handlers should translate
// this into an HTTP 422 response.
var ErrNoValidRows = errors.New("no valid rows")
