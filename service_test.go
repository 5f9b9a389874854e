package pdf2text

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Mock implementations for testing.

type mockDocument struct {
	pages   []PageContent
	pageErr error
	closed  bool
}

func (m *mockDocument) PageCount() int { return len(m.pages) }

func (m *mockDocument) Page(n int) (PageContent, error) {
	if m.pageErr != nil {
		return PageContent{}, m.pageErr
	}
	return m.pages[n-1], nil
}

func (m *mockDocument) Close() error {
	m.closed = true
	return nil
}

type mockOpener struct {
	docs     map[string]*mockDocument
	err      error
	opened   []string
	password string
	cache    bool
}

func (m *mockOpener) Open(path, password string, cache bool) (document, error) {
	m.opened = append(m.opened, path)
	m.password = password
	m.cache = cache
	if m.err != nil {
		return nil, m.err
	}
	doc, ok := m.docs[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDocumentOpen, path)
	}
	return doc, nil
}

type mockDumper struct {
	called bool
	path   string
	dir    string
	pages  []string
	err    error
}

func (m *mockDumper) ExtractImages(path, dir string, pages []string) error {
	m.called = true
	m.path = path
	m.dir = dir
	m.pages = pages
	return m.err
}

// recordingRenderer captures the pages the pipeline feeds it.

type recordingRenderer struct {
	pages  []PageContent
	closed bool
}

func (r *recordingRenderer) RenderPage(page PageContent) error {
	r.pages = append(r.pages, page)
	return nil
}

func (r *recordingRenderer) Close() error {
	r.closed = true
	return nil
}

// Test options for dependency injection (not exported).

func withOpener(o documentOpener) Option {
	return func(s *Service) {
		s.opener = o
	}
}

func withImageDumper(d imageDumper) Option {
	return func(s *Service) {
		s.images = d
	}
}

// pageOfLines builds a page whose fragments stack one text line per string.
func pageOfLines(n int, lines ...string) PageContent {
	page := PageContent{Number: n, Width: 612, Height: 792}
	y := 720.0
	for _, line := range lines {
		page.Texts = append(page.Texts, TextFragment{
			Font:     "Helvetica",
			FontSize: 12,
			X:        72,
			Y:        y,
			W:        float64(len(line)) * 6,
			Text:     line,
		})
		y -= 20
	}
	page.RawText = strings.Join(lines, "\n")
	return page
}

func TestNew_BindsEngine(t *testing.T) {
	s := New()

	if _, ok := s.opener.(pdfOpener); !ok {
		t.Errorf("default opener = %T, want pdfOpener", s.opener)
	}
	if _, ok := s.images.(pdfcpuDumper); !ok {
		t.Errorf("default image dumper = %T, want pdfcpuDumper", s.images)
	}
	if s.cfg.stdout != os.Stdout {
		t.Error("default stdout should be os.Stdout")
	}
}

func TestValidateInput(t *testing.T) {
	service := New()

	tests := []struct {
		name    string
		input   Input
		wantErr error
	}{
		{
			name:    "valid minimal input",
			input:   Input{Paths: []string{"a.pdf"}},
			wantErr: nil,
		},
		{
			name:    "no input paths",
			input:   Input{},
			wantErr: ErrNoInput,
		},
		{
			name:    "unknown format",
			input:   Input{Paths: []string{"a.pdf"}, Format: "docx"},
			wantErr: ErrInvalidFormat,
		},
		{
			name:    "format is case-insensitive",
			input:   Input{Paths: []string{"a.pdf"}, Format: "HTML"},
			wantErr: nil,
		},
		{
			name:    "unknown layout mode",
			input:   Input{Paths: []string{"a.pdf"}, LayoutMode: "tight"},
			wantErr: ErrInvalidLayoutMode,
		},
		{
			name:    "scale below minimum",
			input:   Input{Paths: []string{"a.pdf"}, Scale: 0.01},
			wantErr: ErrInvalidScale,
		},
		{
			name:    "scale above maximum",
			input:   Input{Paths: []string{"a.pdf"}, Scale: 21},
			wantErr: ErrInvalidScale,
		},
		{
			name:    "zero scale means default",
			input:   Input{Paths: []string{"a.pdf"}, Scale: 0},
			wantErr: nil,
		},
		{
			name:    "negative page index",
			input:   Input{Paths: []string{"a.pdf"}, Pages: []int{2, -1}},
			wantErr: ErrInvalidPage,
		},
		{
			name:    "negative max pages",
			input:   Input{Paths: []string{"a.pdf"}, MaxPages: -2},
			wantErr: ErrInvalidPage,
		},
		{
			name:    "unknown encoding",
			input:   Input{Paths: []string{"a.pdf"}, Encoding: "martian"},
			wantErr: ErrUnknownEncoding,
		},
		{
			name:    "known encoding",
			input:   Input{Paths: []string{"a.pdf"}, Encoding: "ISO-8859-1"},
			wantErr: nil,
		},
		{
			name:    "negative layout margin",
			input:   Input{Paths: []string{"a.pdf"}, Layout: &LayoutParams{CharMargin: -1}},
			wantErr: ErrInvalidMargins,
		},
		{
			name:    "boxes flow out of range",
			input:   Input{Paths: []string{"a.pdf"}, Layout: &LayoutParams{BoxesFlow: 2}},
			wantErr: ErrInvalidMargins,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.validateInput(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validateInput() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConvert_TextPipeline(t *testing.T) {
	doc := &mockDocument{pages: []PageContent{
		pageOfLines(1, "Hello world"),
		pageOfLines(2, "Second page"),
	}}
	opener := &mockOpener{docs: map[string]*mockDocument{"book.pdf": doc}}
	var buf bytes.Buffer
	service := New(WithStdout(&buf), withOpener(opener))

	input := Input{Paths: []string{"book.pdf"}, Password: "secret", NoCache: true}
	if err := service.Convert(context.Background(), input); err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}

	want := "Hello world\n\f\nSecond page\n\f\n"
	if buf.String() != want {
		t.Errorf("Convert() output = %q, want %q", buf.String(), want)
	}

	if opener.password != "secret" {
		t.Errorf("opener password = %q, want %q", opener.password, "secret")
	}
	if opener.cache {
		t.Error("NoCache should disable the font cache")
	}
	if !doc.closed {
		t.Error("document was not closed")
	}
}

func TestConvert_StreamOrderConcatenation(t *testing.T) {
	// Without layout analysis, glyph runs on one baseline are joined exactly
	// as the content stream emits them.
	doc := &mockDocument{pages: []PageContent{{
		Number: 1, Width: 612, Height: 792,
		Texts: []TextFragment{
			{X: 72, Y: 700, W: 10, FontSize: 12, Text: "W"},
			{X: 90, Y: 700, W: 10, FontSize: 12, Text: "o"},
			{X: 108, Y: 700, W: 10, FontSize: 12, Text: "rld"},
		},
	}}}
	opener := &mockOpener{docs: map[string]*mockDocument{"a.pdf": doc}}
	var buf bytes.Buffer
	service := New(WithStdout(&buf), withOpener(opener))

	if err := service.Convert(context.Background(), Input{Paths: []string{"a.pdf"}}); err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}

	if want := "World\n\f\n"; buf.String() != want {
		t.Errorf("Convert() output = %q, want %q", buf.String(), want)
	}
}

func TestConvert_LayoutAnalysis(t *testing.T) {
	// With layout params the fragment gap becomes a word break.
	doc := &mockDocument{pages: []PageContent{{
		Number: 1, Width: 612, Height: 792,
		Texts: []TextFragment{
			{X: 72, Y: 700, W: 30, FontSize: 12, Text: "Hello"},
			{X: 106, Y: 700, W: 30, FontSize: 12, Text: "world"},
		},
	}}}
	opener := &mockOpener{docs: map[string]*mockDocument{"a.pdf": doc}}
	var buf bytes.Buffer
	service := New(WithStdout(&buf), withOpener(opener))

	input := Input{Paths: []string{"a.pdf"}, Layout: DefaultLayoutParams()}
	if err := service.Convert(context.Background(), input); err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}

	if want := "Hello world\n\f\n"; buf.String() != want {
		t.Errorf("Convert() output = %q, want %q", buf.String(), want)
	}
}

func TestConvert_MultipleDocumentsShareSink(t *testing.T) {
	first := &mockDocument{pages: []PageContent{pageOfLines(1, "one")}}
	second := &mockDocument{pages: []PageContent{pageOfLines(1, "two")}}
	opener := &mockOpener{docs: map[string]*mockDocument{
		"first.pdf":  first,
		"second.pdf": second,
	}}
	var buf bytes.Buffer
	service := New(WithStdout(&buf), withOpener(opener))

	input := Input{Paths: []string{"first.pdf", "second.pdf"}}
	if err := service.Convert(context.Background(), input); err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}

	if want := "one\n\f\ntwo\n\f\n"; buf.String() != want {
		t.Errorf("Convert() output = %q, want %q", buf.String(), want)
	}
	if len(opener.opened) != 2 || opener.opened[0] != "first.pdf" || opener.opened[1] != "second.pdf" {
		t.Errorf("documents opened = %v, want input order", opener.opened)
	}
	if !first.closed || !second.closed {
		t.Error("all documents should be closed")
	}
}

func TestConvert_FormatFromOutputPath(t *testing.T) {
	doc := &mockDocument{pages: []PageContent{pageOfLines(1, "Hello")}}
	opener := &mockOpener{docs: map[string]*mockDocument{"a.pdf": doc}}
	service := New(withOpener(opener))

	out := filepath.Join(t.TempDir(), "out.html")
	input := Input{Paths: []string{"a.pdf"}, Output: out}
	if err := service.Convert(context.Background(), input); err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}

	data, err := os.ReadFile(out) // #nosec G304 -- test reads its own temp file
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.HasPrefix(string(data), "<html><head>") {
		t.Errorf("output should be html, got %q", data)
	}
	if !strings.HasSuffix(string(data), "</body></html>\n") {
		t.Errorf("output should be finalized html, got %q", data)
	}
}

func TestConvert_ExplicitFormatWins(t *testing.T) {
	doc := &mockDocument{pages: []PageContent{pageOfLines(1, "Hello")}}
	opener := &mockOpener{docs: map[string]*mockDocument{"a.pdf": doc}}
	service := New(withOpener(opener))

	out := filepath.Join(t.TempDir(), "out.html")
	input := Input{Paths: []string{"a.pdf"}, Output: out, Format: FormatText}
	if err := service.Convert(context.Background(), input); err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}

	data, err := os.ReadFile(out) // #nosec G304 -- test reads its own temp file
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if want := "Hello\n\f\n"; string(data) != want {
		t.Errorf("output = %q, want %q", data, want)
	}
}

func TestConvert_EncodedFileSink(t *testing.T) {
	doc := &mockDocument{pages: []PageContent{pageOfLines(1, "café")}}
	opener := &mockOpener{docs: map[string]*mockDocument{"a.pdf": doc}}
	service := New(withOpener(opener))

	out := filepath.Join(t.TempDir(), "out.txt")
	input := Input{Paths: []string{"a.pdf"}, Output: out, Encoding: "ISO-8859-1"}
	if err := service.Convert(context.Background(), input); err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}

	data, err := os.ReadFile(out) // #nosec G304 -- test reads its own temp file
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if want := "caf\xe9\n\f\n"; string(data) != want {
		t.Errorf("output = %q, want latin-1 bytes %q", data, want)
	}
}

func TestConvert_UnknownEncodingCreatesNoFile(t *testing.T) {
	doc := &mockDocument{pages: []PageContent{pageOfLines(1, "Hello")}}
	opener := &mockOpener{docs: map[string]*mockDocument{"a.pdf": doc}}
	service := New(withOpener(opener))

	out := filepath.Join(t.TempDir(), "out.txt")
	input := Input{Paths: []string{"a.pdf"}, Output: out, Encoding: "martian"}
	err := service.Convert(context.Background(), input)
	if !errors.Is(err, ErrUnknownEncoding) {
		t.Fatalf("Convert() error = %v, want ErrUnknownEncoding", err)
	}

	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Errorf("no output file should be created, stat error = %v", statErr)
	}
}

func TestConvert_ValidationError(t *testing.T) {
	var buf bytes.Buffer
	service := New(WithStdout(&buf), withOpener(&mockOpener{}))

	err := service.Convert(context.Background(), Input{})
	if !errors.Is(err, ErrNoInput) {
		t.Errorf("Convert() error = %v, want ErrNoInput", err)
	}
	if buf.Len() != 0 {
		t.Errorf("no output expected, got %q", buf.String())
	}
}

func TestConvert_OpenErrorPropagates(t *testing.T) {
	opener := &mockOpener{err: fmt.Errorf("%w: a.pdf: broken xref", ErrDocumentOpen)}
	var buf bytes.Buffer
	service := New(WithStdout(&buf), withOpener(opener))

	err := service.Convert(context.Background(), Input{Paths: []string{"a.pdf"}})
	if !errors.Is(err, ErrDocumentOpen) {
		t.Errorf("Convert() error = %v, want ErrDocumentOpen", err)
	}
	if buf.Len() != 0 {
		t.Errorf("no output expected, got %q", buf.String())
	}
}

func TestConvert_PageErrorPropagates(t *testing.T) {
	doc := &mockDocument{
		pages:   []PageContent{pageOfLines(1, "never rendered")},
		pageErr: fmt.Errorf("%w: page 1: bad stream", ErrNotExtractable),
	}
	opener := &mockOpener{docs: map[string]*mockDocument{"a.pdf": doc}}
	var buf bytes.Buffer
	service := New(WithStdout(&buf), withOpener(opener))

	err := service.Convert(context.Background(), Input{Paths: []string{"a.pdf"}})
	if !errors.Is(err, ErrNotExtractable) {
		t.Errorf("Convert() error = %v, want ErrNotExtractable", err)
	}
	if !doc.closed {
		t.Error("document should be closed after a page failure")
	}
}

func TestConvert_ImageDump(t *testing.T) {
	doc := &mockDocument{pages: []PageContent{
		pageOfLines(1, "p1"),
		pageOfLines(2, "p2"),
		pageOfLines(3, "p3"),
	}}
	opener := &mockOpener{docs: map[string]*mockDocument{"book.pdf": doc}}
	dumper := &mockDumper{}
	var buf bytes.Buffer
	service := New(WithStdout(&buf), withOpener(opener), withImageDumper(dumper))

	input := Input{Paths: []string{"book.pdf"}, ImageDir: "imgdir", Pages: []int{0, 2}}
	if err := service.Convert(context.Background(), input); err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}

	if !dumper.called {
		t.Fatal("image dumper was not called")
	}
	if dumper.path != "book.pdf" || dumper.dir != "imgdir" {
		t.Errorf("dump target = (%q, %q), want (book.pdf, imgdir)", dumper.path, dumper.dir)
	}
	// The page filter reaches the extractor as 1-based selection strings.
	if len(dumper.pages) != 2 || dumper.pages[0] != "1" || dumper.pages[1] != "3" {
		t.Errorf("dump page selection = %v, want [1 3]", dumper.pages)
	}
	if want := "p1\n\f\np3\n\f\n"; buf.String() != want {
		t.Errorf("Convert() output = %q, want %q", buf.String(), want)
	}
}

func TestConvert_ImageDumpErrorStopsDocument(t *testing.T) {
	doc := &mockDocument{pages: []PageContent{pageOfLines(1, "p1")}}
	opener := &mockOpener{docs: map[string]*mockDocument{"book.pdf": doc}}
	dumper := &mockDumper{err: fmt.Errorf("%w: book.pdf: no images", ErrImageExtract)}
	var buf bytes.Buffer
	service := New(WithStdout(&buf), withOpener(opener), withImageDumper(dumper))

	input := Input{Paths: []string{"book.pdf"}, ImageDir: "imgdir"}
	err := service.Convert(context.Background(), input)
	if !errors.Is(err, ErrImageExtract) {
		t.Errorf("Convert() error = %v, want ErrImageExtract", err)
	}
	if buf.Len() != 0 {
		t.Errorf("no pages should be rendered, got %q", buf.String())
	}
}

func TestConvert_NoImageDirSkipsDump(t *testing.T) {
	doc := &mockDocument{pages: []PageContent{pageOfLines(1, "p1")}}
	opener := &mockOpener{docs: map[string]*mockDocument{"book.pdf": doc}}
	dumper := &mockDumper{}
	var buf bytes.Buffer
	service := New(WithStdout(&buf), withOpener(opener), withImageDumper(dumper))

	if err := service.Convert(context.Background(), Input{Paths: []string{"book.pdf"}}); err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}
	if dumper.called {
		t.Error("image dumper should not run without an image directory")
	}
}

func TestConvertDocument_PageFilter(t *testing.T) {
	doc := &mockDocument{pages: []PageContent{
		pageOfLines(1, "p1"), pageOfLines(2, "p2"), pageOfLines(3, "p3"),
	}}
	opener := &mockOpener{docs: map[string]*mockDocument{"a.pdf": doc}}
	service := New(withOpener(opener))
	rend := &recordingRenderer{}

	input := Input{Paths: []string{"a.pdf"}, Pages: []int{0, 2}}
	if err := service.convertDocument(context.Background(), "a.pdf", input, rend); err != nil {
		t.Fatalf("convertDocument() unexpected error: %v", err)
	}

	if len(rend.pages) != 2 || rend.pages[0].Number != 1 || rend.pages[1].Number != 3 {
		t.Errorf("rendered pages = %v, want pages 1 and 3", pageNumbers(rend.pages))
	}
}

func TestConvertDocument_MaxPages(t *testing.T) {
	doc := &mockDocument{pages: []PageContent{
		pageOfLines(1, "p1"), pageOfLines(2, "p2"), pageOfLines(3, "p3"),
		pageOfLines(4, "p4"), pageOfLines(5, "p5"),
	}}
	opener := &mockOpener{docs: map[string]*mockDocument{"a.pdf": doc}}
	service := New(withOpener(opener))
	rend := &recordingRenderer{}

	input := Input{Paths: []string{"a.pdf"}, MaxPages: 2}
	if err := service.convertDocument(context.Background(), "a.pdf", input, rend); err != nil {
		t.Fatalf("convertDocument() unexpected error: %v", err)
	}

	if len(rend.pages) != 2 || rend.pages[0].Number != 1 || rend.pages[1].Number != 2 {
		t.Errorf("rendered pages = %v, want pages 1 and 2", pageNumbers(rend.pages))
	}
}

func TestConvertDocument_MaxPagesCountsKeptPages(t *testing.T) {
	doc := &mockDocument{pages: []PageContent{
		pageOfLines(1, "p1"), pageOfLines(2, "p2"), pageOfLines(3, "p3"),
		pageOfLines(4, "p4"), pageOfLines(5, "p5"),
	}}
	opener := &mockOpener{docs: map[string]*mockDocument{"a.pdf": doc}}
	service := New(withOpener(opener))
	rend := &recordingRenderer{}

	// Pages 2, 3 and 4 survive the filter; the limit keeps the first two.
	input := Input{Paths: []string{"a.pdf"}, Pages: []int{1, 2, 3}, MaxPages: 2}
	if err := service.convertDocument(context.Background(), "a.pdf", input, rend); err != nil {
		t.Fatalf("convertDocument() unexpected error: %v", err)
	}

	if len(rend.pages) != 2 || rend.pages[0].Number != 2 || rend.pages[1].Number != 3 {
		t.Errorf("rendered pages = %v, want pages 2 and 3", pageNumbers(rend.pages))
	}
}

func TestConvertDocument_RotationComposes(t *testing.T) {
	tests := []struct {
		name     string
		pageRot  int
		inputRot int
		want     int
	}{
		{name: "adds to page rotation", pageRot: 270, inputRot: 180, want: 90},
		{name: "negative wraps", pageRot: 0, inputRot: -90, want: 270},
		{name: "zero keeps page rotation", pageRot: 90, inputRot: 0, want: 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := pageOfLines(1, "p1")
			page.Rotation = tt.pageRot
			doc := &mockDocument{pages: []PageContent{page}}
			opener := &mockOpener{docs: map[string]*mockDocument{"a.pdf": doc}}
			service := New(withOpener(opener))
			rend := &recordingRenderer{}

			input := Input{Paths: []string{"a.pdf"}, Rotation: tt.inputRot}
			if err := service.convertDocument(context.Background(), "a.pdf", input, rend); err != nil {
				t.Fatalf("convertDocument() unexpected error: %v", err)
			}

			if len(rend.pages) != 1 {
				t.Fatalf("rendered pages = %v, want one", pageNumbers(rend.pages))
			}
			if rend.pages[0].Rotation != tt.want {
				t.Errorf("rendered rotation = %d, want %d", rend.pages[0].Rotation, tt.want)
			}
		})
	}
}

func TestConvertDocument_ContextCancelled(t *testing.T) {
	doc := &mockDocument{pages: []PageContent{pageOfLines(1, "p1")}}
	opener := &mockOpener{docs: map[string]*mockDocument{"a.pdf": doc}}
	service := New(withOpener(opener))
	rend := &recordingRenderer{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := service.convertDocument(ctx, "a.pdf", Input{Paths: []string{"a.pdf"}}, rend)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("convertDocument() error = %v, want context.Canceled", err)
	}
	if len(rend.pages) != 0 {
		t.Errorf("no pages should be rendered, got %v", pageNumbers(rend.pages))
	}
}

// pageNumbers lists the page numbers of rendered pages for failure messages.
func pageNumbers(pages []PageContent) []int {
	nums := make([]int, len(pages))
	for i, p := range pages {
		nums[i] = p.Number
	}
	return nums
}

func TestChapterize(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "book.pdf")
	doc := &mockDocument{pages: []PageContent{
		pageOfLines(1, "intro", "Chapter 1", "alpha"),
	}}
	opener := &mockOpener{docs: map[string]*mockDocument{docPath: doc}}
	service := New(withOpener(opener))

	dirs, err := service.Chapterize(context.Background(), Input{Paths: []string{docPath}}, "chapter")
	if err != nil {
		t.Fatalf("Chapterize() unexpected error: %v", err)
	}

	wantDir := filepath.Join(dir, "book_chapters")
	if len(dirs) != 1 || dirs[0] != wantDir {
		t.Fatalf("Chapterize() dirs = %v, want [%s]", dirs, wantDir)
	}

	requireFileContent(t, wantDir, "preface.txt", "intro\n")
	requireFileContent(t, wantDir, "Chapter1.txt", "Chapter 1\nalpha\n\f\n")

	// The flat intermediate is gone once its chapters are written.
	if _, statErr := os.Stat(flatTextPath(docPath)); !os.IsNotExist(statErr) {
		t.Errorf("intermediate should be removed, stat error = %v", statErr)
	}
}

func TestChapterize_MultipleInputs(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.pdf")
	second := filepath.Join(dir, "second.pdf")
	opener := &mockOpener{docs: map[string]*mockDocument{
		first:  {pages: []PageContent{pageOfLines(1, "Chapter 1", "a")}},
		second: {pages: []PageContent{pageOfLines(1, "Chapter 2", "b")}},
	}}
	service := New(withOpener(opener))

	dirs, err := service.Chapterize(context.Background(), Input{Paths: []string{first, second}}, "chapter")
	if err != nil {
		t.Fatalf("Chapterize() unexpected error: %v", err)
	}

	want := []string{filepath.Join(dir, "first_chapters"), filepath.Join(dir, "second_chapters")}
	if len(dirs) != 2 || dirs[0] != want[0] || dirs[1] != want[1] {
		t.Errorf("Chapterize() dirs = %v, want %v", dirs, want)
	}
}

func TestChapterize_FormatGuard(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "book.pdf")
	opener := &mockOpener{docs: map[string]*mockDocument{
		docPath: {pages: []PageContent{pageOfLines(1, "Chapter 1", "a")}},
	}}
	service := New(withOpener(opener))

	_, err := service.Chapterize(context.Background(), Input{Paths: []string{docPath}, Format: FormatHTML}, "chapter")
	if !errors.Is(err, ErrChapterFormat) {
		t.Errorf("Chapterize(html) error = %v, want ErrChapterFormat", err)
	}

	// An explicit text format in any casing is accepted.
	if _, err := service.Chapterize(context.Background(), Input{Paths: []string{docPath}, Format: "TEXT"}, "chapter"); err != nil {
		t.Errorf("Chapterize(TEXT) unexpected error: %v", err)
	}
}

func TestChapterize_EmptyKeyword(t *testing.T) {
	service := New(withOpener(&mockOpener{}))

	_, err := service.Chapterize(context.Background(), Input{Paths: []string{"a.pdf"}}, "  ")
	if !errors.Is(err, ErrEmptyKeyword) {
		t.Errorf("Chapterize() error = %v, want ErrEmptyKeyword", err)
	}
}

func TestChapterize_OpenFailureKeepsIntermediate(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "book.pdf")
	opener := &mockOpener{err: fmt.Errorf("%w: %s: damaged", ErrDocumentOpen, docPath)}
	service := New(withOpener(opener))

	dirs, err := service.Chapterize(context.Background(), Input{Paths: []string{docPath}}, "chapter")
	if !errors.Is(err, ErrDocumentOpen) {
		t.Fatalf("Chapterize() error = %v, want ErrDocumentOpen", err)
	}
	if len(dirs) != 0 {
		t.Errorf("Chapterize() dirs = %v, want none", dirs)
	}

	// The flat file was already created by the conversion phase and stays
	// behind for inspection.
	if _, statErr := os.Stat(flatTextPath(docPath)); statErr != nil {
		t.Errorf("intermediate should remain after failure: %v", statErr)
	}
}
