package pdf2text

import (
	"fmt"
	"io"
)

// tagRenderer wraps each page's raw extracted text in a page element,
// skipping layout analysis entirely.
type tagRenderer struct {
	out io.Writer
}

func (r *tagRenderer) RenderPage(page PageContent) error {
	page = normalizePage(page)
	_, err := fmt.Fprintf(r.out, "<page id=\"%d\" bbox=\"%s\">%s</page>\n",
		page.Number, bbox(0, 0, page.Width, page.Height), xmlEscape(page.RawText))
	return err
}

func (r *tagRenderer) Close() error { return nil }
