package main

import (
	"errors"
	"os"

	pdf2text "github.com/alnah/go-pdf2text"
	"github.com/alnah/go-pdf2text/internal/config"
)

// Exit codes for pdf2text CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess  = 0 // Successful extraction
	ExitGeneral  = 1 // General/unexpected error
	ExitUsage    = 2 // Invalid flags, config, or validation
	ExitIO       = 3 // Output destination or file system errors
	ExitDocument = 4 // Document open/parse errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Document errors (exit 4)
	if errors.Is(err, pdf2text.ErrDocumentOpen) ||
		errors.Is(err, pdf2text.ErrNotExtractable) ||
		errors.Is(err, pdf2text.ErrImageExtract) {
		return ExitDocument
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, pdf2text.ErrSinkCreate) ||
		errors.Is(err, pdf2text.ErrMissingIntermediate) ||
		errors.Is(err, pdf2text.ErrChapterDir) ||
		errors.Is(err, pdf2text.ErrChapterFile) ||
		errors.Is(err, ErrInputNotFound) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, pdf2text.ErrNoInput) ||
		errors.Is(err, pdf2text.ErrInvalidFormat) ||
		errors.Is(err, pdf2text.ErrUnknownEncoding) ||
		errors.Is(err, pdf2text.ErrInvalidLayoutMode) ||
		errors.Is(err, pdf2text.ErrInvalidScale) ||
		errors.Is(err, pdf2text.ErrInvalidPage) ||
		errors.Is(err, pdf2text.ErrInvalidMargins) ||
		errors.Is(err, pdf2text.ErrEmptyKeyword) ||
		errors.Is(err, pdf2text.ErrChapterFormat) ||
		errors.Is(err, ErrPageSyntax) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}
