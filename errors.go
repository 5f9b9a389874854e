package pdf2text

import "errors"

// Sentinel errors for library operations.
var (
	ErrNoInput        = errors.New("no input documents")
	ErrSinkCreate     = errors.New("cannot create output destination")
	ErrDocumentOpen   = errors.New("cannot open document")
	ErrNotExtractable = errors.New("document text cannot be extracted")
	ErrImageExtract   = errors.New("image extraction failed")

	// Input validation errors.
	ErrInvalidFormat     = errors.New("invalid output format")
	ErrUnknownEncoding   = errors.New("unknown output encoding")
	ErrInvalidLayoutMode = errors.New("invalid layout mode")
	ErrInvalidScale      = errors.New("invalid scale")
	ErrInvalidPage       = errors.New("invalid page number")
	ErrInvalidMargins    = errors.New("invalid layout margins")

	// Chapter segmentation errors.
	ErrEmptyKeyword        = errors.New("chapter keyword cannot be empty")
	ErrChapterFormat       = errors.New("chapterize requires text output")
	ErrMissingIntermediate = errors.New("flat text intermediate not found")
	ErrChapterDir          = errors.New("cannot create chapter directory")
	ErrChapterFile         = errors.New("cannot create chapter file")
)
