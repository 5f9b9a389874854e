package pdf2text

import "io"

// textRenderer writes assembled lines as plain text, one line per text
// line, with a form feed closing each page.
type textRenderer struct {
	out    io.Writer
	layout *LayoutParams
}

func (r *textRenderer) RenderPage(page PageContent) error {
	page = normalizePage(page)
	for _, line := range assembleLines(page, r.layout) {
		if _, err := io.WriteString(r.out, line.text); err != nil {
			return err
		}
		if _, err := io.WriteString(r.out, "\n"); err != nil {
			return err
		}
	}
	_, err := io.WriteString(r.out, "\f\n")
	return err
}

func (r *textRenderer) Close() error { return nil }
