package pdf2text

import (
	"fmt"
	"io"
	"strings"
)

// xmlRenderer writes pages as compact markup: one page element per page,
// a textline element per assembled line with a text element per fragment,
// and a line or rect element per drawn rectangle. The closing pages tag is
// deferred to Close.
type xmlRenderer struct {
	out    io.Writer
	opts   renderOptions
	header bool
}

func newXMLRenderer(out io.Writer, opts renderOptions) *xmlRenderer {
	return &xmlRenderer{out: out, opts: opts}
}

func (r *xmlRenderer) RenderPage(page PageContent) error {
	if err := r.ensureHeader(); err != nil {
		return err
	}
	page = normalizePage(page)
	if err := r.writef("<page id=\"%d\" bbox=\"%s\" rotate=\"%d\">\n",
		page.Number, bbox(0, 0, page.Width, page.Height), page.Rotation); err != nil {
		return err
	}
	for _, line := range assembleLines(page, r.opts.layout) {
		if err := r.renderLine(line); err != nil {
			return err
		}
	}
	for _, rect := range page.Rects {
		kind := "rect"
		if isRule(rect) {
			kind = "line"
		}
		if err := r.writef("<%s linewidth=\"1\" bbox=\"%s\" />\n",
			kind, bbox(rect.X0, rect.Y0, rect.X1, rect.Y1)); err != nil {
			return err
		}
	}
	return r.writef("</page>\n")
}

func (r *xmlRenderer) renderLine(line textLine) error {
	if err := r.writef("<textline bbox=\"%s\">\n", bbox(lineBounds(line))); err != nil {
		return err
	}
	for _, f := range line.fragments {
		text := f.Text
		if r.opts.stripControl {
			text = stripControlChars(text)
		}
		if err := r.writef("<text font=\"%s\" bbox=\"%s\" size=\"%.3f\">%s</text>\n",
			xmlEscape(f.Font), bbox(f.X, f.Y, f.X+f.W, f.Y+effSize(f.FontSize)),
			f.FontSize, xmlEscape(text)); err != nil {
			return err
		}
	}
	if err := r.writef("<text>\n</text>\n"); err != nil {
		return err
	}
	return r.writef("</textline>\n")
}

func (r *xmlRenderer) Close() error {
	if err := r.ensureHeader(); err != nil {
		return err
	}
	return r.writef("</pages>\n")
}

func (r *xmlRenderer) ensureHeader() error {
	if r.header {
		return nil
	}
	r.header = true
	return r.writef("<?xml version=\"1.0\" encoding=\"%s\" ?>\n<pages>\n",
		encodingLabel(r.opts.encoding))
}

func (r *xmlRenderer) writef(format string, args ...any) error {
	_, err := fmt.Fprintf(r.out, format, args...)
	return err
}

// lineBounds returns the bounding box enclosing every fragment of a line.
func lineBounds(line textLine) (x0, y0, x1, y1 float64) {
	first := line.fragments[0]
	x0, y0 = first.X, first.Y
	x1, y1 = first.X+first.W, first.Y+effSize(first.FontSize)
	for _, f := range line.fragments[1:] {
		x0 = min(x0, f.X)
		y0 = min(y0, f.Y)
		x1 = max(x1, f.X+f.W)
		y1 = max(y1, f.Y+effSize(f.FontSize))
	}
	return x0, y0, x1, y1
}

// bbox formats a bounding box the way the markup outputs expect it.
func bbox(x0, y0, x1, y1 float64) string {
	return fmt.Sprintf("%.3f,%.3f,%.3f,%.3f", x0, y0, x1, y1)
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func xmlEscape(s string) string { return xmlEscaper.Replace(s) }

// stripControlChars drops C0 control characters that are not legal in XML
// text content, keeping tab, newline and carriage return.
func stripControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 && r != '\t' && r != '\n' && r != '\r' {
			return -1
		}
		return r
	}, s)
}
