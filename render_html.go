package pdf2text

import (
	"fmt"
	"html"
	"io"
	"strings"
)

// htmlPageMargin is the vertical gap in points stacked between page boxes.
const htmlPageMargin = 50

// htmlRenderer writes pages as absolutely positioned HTML: a gray border
// span and a named anchor per page, a div per assembled text line, and a
// black border span per drawn rectangle. The closing envelope and the page
// link index are deferred to Close.
//
// Layout modes trade fidelity for readability: "normal" sizes each line
// div from its dominant font, "loose" drops font sizing so text reflows at
// the browser default, "exact" places every fragment in its own span.
type htmlRenderer struct {
	out     io.Writer
	opts    renderOptions
	yoffset float64
	anchors []int
	header  bool
}

func newHTMLRenderer(out io.Writer, opts renderOptions) *htmlRenderer {
	return &htmlRenderer{out: out, opts: opts}
}

func (r *htmlRenderer) RenderPage(page PageContent) error {
	if err := r.ensureHeader(); err != nil {
		return err
	}
	page = normalizePage(page)
	r.yoffset += page.Height
	r.anchors = append(r.anchors, page.Number)

	if err := r.placeBorder("gray", 0, r.yoffset-page.Height, page.Width, page.Height); err != nil {
		return err
	}
	if err := r.writef(`<div style="position:absolute; top:%dpx;"><a name="%d">Page %d</a></div>`+"\n",
		px((r.yoffset-page.Height)*r.opts.scale), page.Number, page.Number); err != nil {
		return err
	}
	for _, rect := range page.Rects {
		if err := r.placeBorder("black", rect.X0, r.yoffset-rect.Y1, rect.Width(), rect.Height()); err != nil {
			return err
		}
	}
	if err := r.renderLines(assembleLines(page, r.opts.layout)); err != nil {
		return err
	}
	r.yoffset += htmlPageMargin
	return nil
}

func (r *htmlRenderer) renderLines(lines []textLine) error {
	s := r.opts.scale
	for _, line := range lines {
		size := effSize(line.fontSize)
		switch r.opts.layoutMode {
		case LayoutModeExact:
			for _, f := range line.fragments {
				fsize := effSize(f.FontSize)
				if err := r.writef(`<span style="position:absolute; color: black; left:%dpx; top:%dpx; font-size:%dpx;">%s</span>`+"\n",
					px(f.X*s), px((r.yoffset-f.Y-fsize)*s), px(fsize*s), html.EscapeString(f.Text)); err != nil {
					return err
				}
			}
		case LayoutModeLoose:
			if err := r.writef(`<div style="position:absolute; left:%dpx; top:%dpx;">%s</div>`+"\n",
				px(line.x*s), px((r.yoffset-line.y-size)*s), html.EscapeString(line.text)); err != nil {
				return err
			}
		default:
			if err := r.writef(`<div style="position:absolute; left:%dpx; top:%dpx; font-size:%dpx;">%s</div>`+"\n",
				px(line.x*s), px((r.yoffset-line.y-size)*s), px(size*s), html.EscapeString(line.text)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *htmlRenderer) Close() error {
	if err := r.ensureHeader(); err != nil {
		return err
	}
	links := make([]string, len(r.anchors))
	for i, n := range r.anchors {
		links[i] = fmt.Sprintf(`<a href="#%d">%d</a>`, n, n)
	}
	return r.writef(`<div style="position:absolute; top:0px;">Page: %s</div>`+"\n</body></html>\n",
		strings.Join(links, ", "))
}

func (r *htmlRenderer) ensureHeader() error {
	if r.header {
		return nil
	}
	r.header = true
	return r.writef("<html><head>\n<meta http-equiv=\"Content-Type\" content=\"text/html; charset=%s\">\n</head><body>\n",
		encodingLabel(r.opts.encoding))
}

func (r *htmlRenderer) placeBorder(color string, left, top, w, h float64) error {
	s := r.opts.scale
	return r.writef(`<span style="position:absolute; border: %s 1px solid; left:%dpx; top:%dpx; width:%dpx; height:%dpx;"></span>`+"\n",
		color, px(left*s), px(top*s), px(w*s), px(h*s))
}

func (r *htmlRenderer) writef(format string, args ...any) error {
	_, err := fmt.Fprintf(r.out, format, args...)
	return err
}

// px converts a scaled point coordinate to a whole CSS pixel value.
func px(v float64) int { return int(v) }
