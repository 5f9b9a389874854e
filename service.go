package pdf2text

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Service orchestrates the document-to-text pipeline.
type Service struct {
	cfg    serviceConfig
	opener documentOpener
	images imageDumper
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithStdout).
func New(opts ...Option) *Service {
	s := &Service{
		cfg: serviceConfig{stdout: os.Stdout},
	}

	for _, opt := range opts {
		opt(s)
	}

	// Bind the real engine if not injected (e.g., by tests)
	if s.opener == nil {
		s.opener = pdfOpener{}
	}
	if s.images == nil {
		s.images = pdfcpuDumper{}
	}

	return s
}

// Convert renders every input document to the resolved output sink, in
// input order, as one output stream. Pages are written as they are
// extracted; when a later document fails, output already written for
// earlier pages remains in place.
func (s *Service) Convert(ctx context.Context, input Input) error {
	if err := s.validateInput(input); err != nil {
		return err
	}
	format, err := resolveFormat(input.Format, input.Output)
	if err != nil {
		return err
	}

	out, err := openSink(input.Output, input.Encoding, s.cfg.stdout)
	if err != nil {
		return err
	}
	rend, err := newRenderer(format, out, renderOptions{
		layout:       input.Layout,
		scale:        input.Scale,
		layoutMode:   input.LayoutMode,
		stripControl: input.StripControl,
		encoding:     input.Encoding,
	})
	if err != nil {
		_ = out.Close()
		return err
	}

	for _, path := range input.Paths {
		if err := s.convertDocument(ctx, path, input, rend); err != nil {
			_ = out.Close()
			return err
		}
	}

	if err := rend.Close(); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// convertDocument opens one document and feeds its selected pages to the
// renderer.
func (s *Service) convertDocument(ctx context.Context, path string, input Input, rend renderer) error {
	doc, err := s.opener.Open(path, input.Password, !input.NoCache)
	if err != nil {
		return err
	}
	defer func() { _ = doc.Close() }()

	if input.ImageDir != "" {
		if err := s.images.ExtractImages(path, input.ImageDir, imagePageSelection(input.Pages)); err != nil {
			return err
		}
	}

	keep := pageSet(input.Pages)
	rendered := 0
	for n := 1; n <= doc.PageCount(); n++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if keep != nil && !keep[n-1] {
			continue
		}
		if input.MaxPages > 0 && rendered >= input.MaxPages {
			break
		}
		page, err := doc.Page(n)
		if err != nil {
			return err
		}
		page.Rotation = normalizeRotation(page.Rotation + input.Rotation)
		if err := rend.RenderPage(page); err != nil {
			return err
		}
		rendered++
	}
	return nil
}

// Chapterize renders each document to a flat text file beside it, segments
// the text into per-chapter files, and returns the chapter directory paths
// in input order. Flat files are removed once their chapters are written.
// Output and Format on the input are ignored; chapter mode always renders
// text to the intermediate path.
func (s *Service) Chapterize(ctx context.Context, input Input, keyword string) ([]string, error) {
	if strings.TrimSpace(keyword) == "" {
		return nil, ErrEmptyKeyword
	}
	if input.Format != "" && !strings.EqualFold(input.Format, FormatText) {
		return nil, fmt.Errorf("%w: %q", ErrChapterFormat, input.Format)
	}
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	var dirs []string
	for _, path := range input.Paths {
		if ctx.Err() != nil {
			return dirs, ctx.Err()
		}
		dir, err := s.chapterizeDocument(ctx, path, input, keyword)
		if err != nil {
			return dirs, err
		}
		dirs = append(dirs, dir)
	}
	return dirs, nil
}

// chapterizeDocument runs the two-phase cycle for one document: flatten to
// text, then segment.
func (s *Service) chapterizeDocument(ctx context.Context, path string, input Input, keyword string) (string, error) {
	one := input
	one.Paths = []string{path}
	one.Output = flatTextPath(path)
	one.Format = FormatText
	if err := s.Convert(ctx, one); err != nil {
		return "", err
	}
	return SegmentChapters(one.Output, keyword, path)
}

// flatTextPath is the intermediate flat text file for a document.
func flatTextPath(docPath string) string {
	return strings.TrimSuffix(docPath, filepath.Ext(docPath)) + "_flat.txt"
}

// validateInput checks that required fields are present and valid.
func (s *Service) validateInput(input Input) error {
	if len(input.Paths) == 0 {
		return ErrNoInput
	}
	if input.Format != "" && !isValidFormat(input.Format) {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, input.Format)
	}
	if input.LayoutMode != "" && !isValidLayoutMode(input.LayoutMode) {
		return fmt.Errorf("%w: %q", ErrInvalidLayoutMode, input.LayoutMode)
	}
	if input.Scale != 0 && (input.Scale < MinScale || input.Scale > MaxScale) {
		return fmt.Errorf("%w: %g not in [%g, %g]", ErrInvalidScale, input.Scale, MinScale, MaxScale)
	}
	for _, p := range input.Pages {
		if p < 0 {
			return fmt.Errorf("%w: %d", ErrInvalidPage, p+1)
		}
	}
	if input.MaxPages < 0 {
		return fmt.Errorf("%w: max pages %d", ErrInvalidPage, input.MaxPages)
	}
	if _, err := resolveEncoder(input.Encoding); err != nil {
		return err
	}
	return input.Layout.Validate()
}

// pageSet builds a zero-based page membership set; nil keeps every page.
func pageSet(pages []int) map[int]bool {
	if len(pages) == 0 {
		return nil
	}
	set := make(map[int]bool, len(pages))
	for _, p := range pages {
		set[p] = true
	}
	return set
}

// imagePageSelection maps the zero-based page filter to the 1-based
// selection strings the image extractor expects.
func imagePageSelection(pages []int) []string {
	if len(pages) == 0 {
		return nil
	}
	sel := make([]string, len(pages))
	for i, p := range pages {
		sel[i] = strconv.Itoa(p + 1)
	}
	return sel
}
