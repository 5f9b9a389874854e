package pdf2text

import (
	"errors"
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
)

// Letter-size fallback when the page tree carries no usable MediaBox.
const (
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0
)

// document is an open input ready for page extraction. Page numbers are
// 1-based.
type document interface {
	PageCount() int
	Page(n int) (PageContent, error)
	Close() error
}

// documentOpener opens one input document, unlocking it with the password
// when the document is encrypted.
type documentOpener interface {
	Open(path, password string, cache bool) (document, error)
}

// pdfOpener opens documents with the embedded PDF engine.
type pdfOpener struct{}

// Open maps engine failures, including parser panics on damaged files, to
// ErrDocumentOpen.
func (pdfOpener) Open(path, password string, cache bool) (doc document, err error) {
	f, ferr := os.Open(path) // #nosec G304 -- user-provided document path
	if ferr != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDocumentOpen, path, ferr)
	}
	defer func() {
		if err != nil {
			_ = f.Close()
		}
	}()
	info, serr := f.Stat()
	if serr != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDocumentOpen, path, serr)
	}
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("%w: %s: %v", ErrDocumentOpen, path, r)
		}
	}()
	reader, rerr := pdf.NewReaderEncrypted(f, info.Size(), passwordFunc(password))
	if rerr != nil {
		if errors.Is(rerr, pdf.ErrInvalidPassword) {
			return nil, fmt.Errorf("%w: %s: invalid password", ErrDocumentOpen, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrDocumentOpen, path, rerr)
	}
	d := &pdfDocument{file: f, reader: reader, count: reader.NumPage()}
	if cache {
		d.fonts = make(map[string]*pdf.Font)
	}
	return d, nil
}

// passwordFunc yields the password once. The engine calls it repeatedly
// until it returns an empty string, so the second call must end the
// attempts.
func passwordFunc(password string) func() string {
	done := false
	return func() string {
		if done || password == "" {
			return ""
		}
		done = true
		return password
	}
}

// pdfDocument adapts an engine reader to the document interface. The fonts
// map caches glyph-width tables across pages; nil disables caching.
type pdfDocument struct {
	file   *os.File
	reader *pdf.Reader
	count  int
	fonts  map[string]*pdf.Font
}

func (d *pdfDocument) PageCount() int { return d.count }

// Page extracts one page's text fragments, rectangles and raw text. Engine
// panics on damaged page objects are mapped to ErrNotExtractable.
func (d *pdfDocument) Page(n int) (page PageContent, err error) {
	defer func() {
		if r := recover(); r != nil {
			page, err = PageContent{}, fmt.Errorf("%w: page %d: %v", ErrNotExtractable, n, r)
		}
	}()

	p := d.reader.Page(n)
	if p.V.IsNull() {
		return PageContent{}, fmt.Errorf("%w: page %d: missing page object", ErrNotExtractable, n)
	}

	x0, y0, width, height := mediaBox(p)
	page = PageContent{
		Number:   n,
		Width:    width,
		Height:   height,
		Rotation: normalizeRotation(int(inheritedAttr(p.V, "Rotate").Int64())),
	}

	content := p.Content()
	page.Texts = make([]TextFragment, 0, len(content.Text))
	for _, t := range content.Text {
		page.Texts = append(page.Texts, TextFragment{
			Font:     t.Font,
			FontSize: t.FontSize,
			X:        t.X - x0,
			Y:        t.Y - y0,
			W:        t.W,
			Text:     t.S,
		})
	}
	page.Rects = make([]Rect, 0, len(content.Rect))
	for _, rc := range content.Rect {
		page.Rects = append(page.Rects, Rect{
			X0: rc.Min.X - x0, Y0: rc.Min.Y - y0,
			X1: rc.Max.X - x0, Y1: rc.Max.Y - y0,
		})
	}

	// Raw text goes through the engine's own decoder; if that fails the
	// fragment runs still carry the decoded text.
	raw, rawErr := p.GetPlainText(d.pageFonts(p))
	if rawErr != nil {
		raw = concatText(page.Texts)
	}
	page.RawText = raw
	return page, nil
}

func (d *pdfDocument) Close() error { return d.file.Close() }

// pageFonts folds the page's fonts into the shared cache. With caching off
// it returns nil and the engine rebuilds width tables per call.
func (d *pdfDocument) pageFonts(p pdf.Page) map[string]*pdf.Font {
	if d.fonts == nil {
		return nil
	}
	for _, name := range p.Fonts() {
		if _, ok := d.fonts[name]; !ok {
			font := p.Font(name)
			d.fonts[name] = &font
		}
	}
	return d.fonts
}

// mediaBox resolves the page's inherited MediaBox, returning its origin and
// extent.
func mediaBox(p pdf.Page) (x0, y0, width, height float64) {
	box := inheritedAttr(p.V, "MediaBox")
	if box.Len() != 4 {
		return 0, 0, defaultPageWidth, defaultPageHeight
	}
	x0, y0 = box.Index(0).Float64(), box.Index(1).Float64()
	w := box.Index(2).Float64() - x0
	h := box.Index(3).Float64() - y0
	if w <= 0 || h <= 0 {
		return 0, 0, defaultPageWidth, defaultPageHeight
	}
	return x0, y0, w, h
}

// inheritedAttr resolves a page attribute that may live on an ancestor
// Pages node. Parent chains in damaged files can cycle, so the walk is
// bounded.
func inheritedAttr(v pdf.Value, key string) pdf.Value {
	for depth := 0; depth < 64 && !v.IsNull(); depth++ {
		if attr := v.Key(key); !attr.IsNull() {
			return attr
		}
		v = v.Key("Parent")
	}
	return pdf.Value{}
}
