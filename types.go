package pdf2text

import (
	"fmt"
	"io"
	"strings"
)

// Output format constants.
const (
	FormatText = "text"
	FormatHTML = "html"
	FormatXML  = "xml"
	FormatTag  = "tag"
)

// Layout mode constants for HTML output.
const (
	LayoutModeNormal = "normal"
	LayoutModeLoose  = "loose"
	LayoutModeExact  = "exact"
)

// Scale bounds for HTML output.
const (
	MinScale     = 0.05
	MaxScale     = 20.0
	DefaultScale = 1.0
)

// Layout analysis defaults, relative to fragment font size.
const (
	DefaultCharMargin = 2.0
	DefaultLineMargin = 0.5
	DefaultWordMargin = 0.1
	DefaultBoxesFlow  = 0.5
)

// LayoutParams tunes the grouping of text fragments into lines and words.
// Margins are multiples of the fragment font size.
type LayoutParams struct {
	CharMargin     float64 // max horizontal gap bridged inside one line
	LineMargin     float64 // max vertical drift tolerated within one line
	WordMargin     float64 // min gap that separates two words
	BoxesFlow      float64 // -1..1 weighting of horizontal vs vertical reading order
	DetectVertical bool    // consider vertical writing (columns read right to left)
}

// DefaultLayoutParams returns layout analysis defaults.
func DefaultLayoutParams() *LayoutParams {
	return &LayoutParams{
		CharMargin: DefaultCharMargin,
		LineMargin: DefaultLineMargin,
		WordMargin: DefaultWordMargin,
		BoxesFlow:  DefaultBoxesFlow,
	}
}

// Validate checks that layout parameters are within range.
// Returns nil if p is nil (nil means layout analysis is skipped).
func (p *LayoutParams) Validate() error {
	if p == nil {
		return nil
	}
	if p.CharMargin < 0 || p.LineMargin < 0 || p.WordMargin < 0 {
		return fmt.Errorf("%w: margins must be >= 0", ErrInvalidMargins)
	}
	if p.BoxesFlow < -1 || p.BoxesFlow > 1 {
		return fmt.Errorf("%w: boxes flow %.2f (must be between -1 and 1)", ErrInvalidMargins, p.BoxesFlow)
	}
	return nil
}

// Input contains conversion parameters.
type Input struct {
	Paths    []string // input document paths, processed in order (required)
	Output   string   // output file path (empty = stdout)
	Format   string   // "text", "html", "xml", "tag" (empty = infer from Output)
	Pages    []int    // zero-based page indices to keep (empty = all pages)
	MaxPages int      // max pages rendered per document (0 = no limit)
	Rotation int      // degrees added to each page's own rotation
	Password string   // document password (optional)
	Encoding string   // IANA encoding name for file sinks (empty = utf-8)
	ImageDir string   // directory for extracted embedded images (empty = off)
	NoCache  bool     // disable the per-document font cache

	Layout       *LayoutParams // layout analysis tuning (nil = stream order)
	Scale        float64       // HTML coordinate scale (0 = 1.0)
	LayoutMode   string        // HTML layout mode: "normal", "loose", "exact"
	StripControl bool          // strip control characters in XML output
}

// TextFragment is one positioned run of text on a page. Coordinates follow
// the PDF convention: origin at the bottom-left corner, in points.
type TextFragment struct {
	Font     string
	FontSize float64
	X        float64 // left edge of the run
	Y        float64 // baseline
	W        float64 // advance width
	Text     string
}

// Rect is an axis-aligned rectangle painted on a page, such as a table
// border or the bar of an equation. X0,Y0 is the lower-left corner.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 { return r.X1 - r.X0 }

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// PageContent holds the engine's decoded content for one page.
type PageContent struct {
	Number   int     // 1-based page number within its document
	Width    float64 // media box width in points
	Height   float64 // media box height in points
	Rotation int     // effective rotation in degrees
	Texts    []TextFragment
	Rects    []Rect
	RawText  string // engine plain text extraction, content-stream order
}

// isValidFormat checks if format is a known output format (case-insensitive).
func isValidFormat(format string) bool {
	switch strings.ToLower(format) {
	case FormatText, FormatHTML, FormatXML, FormatTag:
		return true
	}
	return false
}

// isValidLayoutMode checks if mode is a known HTML layout mode (case-insensitive).
func isValidLayoutMode(mode string) bool {
	switch strings.ToLower(mode) {
	case "", LayoutModeNormal, LayoutModeLoose, LayoutModeExact:
		return true
	}
	return false
}

// normalizeRotation maps any degree value onto 0, 90, 180 or 270,
// rounding to the nearest quarter turn.
func normalizeRotation(deg int) int {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	return (deg + 45) / 90 % 4 * 90
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	stdout io.Writer
}

// WithStdout redirects output that would go to standard output.
// Panics if w is nil (programmer error, similar to bufio.NewWriterSize).
func WithStdout(w io.Writer) Option {
	if w == nil {
		panic("pdf2text: WithStdout writer must not be nil")
	}
	return func(s *Service) {
		s.cfg.stdout = w
	}
}
