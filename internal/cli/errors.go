// Package cli implements the command-line interface.
package cli

// Error codes for structured error responses.
// These codes are stable and can be relied upon by agents.
const (
	// Config errors
	ErrConfigInvalid = "CONFIG_INVALID"

	// Citation errors
	ErrCitationInvalid = "CITATION_INVALID"

	// Library errors
	ErrLibraryError = "LIBRARY_ERROR"

	// Retrieval errors
	ErrNotFound = "NOT_FOUND"

	// File errors
	ErrFileNotFound  = "FILE_NOT_FOUND"
	ErrFileReadError = "FILE_READ_ERROR"

	// Input errors
	ErrInvalidInput = "INVALID_INPUT"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)

// Warning codes for non-fatal issues.
const (
	WarnVersionNotFound = "VERSION_NOT_FOUND"
	WarnQueryFailed     = "QUERY_FAILED"
	WarnCitationSkipped = "CITATION_SKIPPED"
)
