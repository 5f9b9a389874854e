package pdf2text

import (
	"fmt"
	"io"
)

// renderer writes extracted page content to the output sink. RenderPage is
// called once per page in document order, across every input document;
// Close finalizes the stream once after the last page.
type renderer interface {
	RenderPage(page PageContent) error
	Close() error
}

// renderOptions carries the output tuning shared across renderers.
type renderOptions struct {
	layout       *LayoutParams
	scale        float64
	layoutMode   string
	stripControl bool
	encoding     string
}

// newRenderer selects a renderer for the resolved output format.
func newRenderer(format string, out io.Writer, opts renderOptions) (renderer, error) {
	if opts.scale == 0 {
		opts.scale = DefaultScale
	}
	if opts.layoutMode == "" {
		opts.layoutMode = LayoutModeNormal
	}
	switch format {
	case FormatText:
		return &textRenderer{out: out, layout: opts.layout}, nil
	case FormatHTML:
		return newHTMLRenderer(out, opts), nil
	case FormatXML:
		return newXMLRenderer(out, opts), nil
	case FormatTag:
		return &tagRenderer{out: out}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, format)
	}
}
