// Package pdf2text extracts the text layer of PDF documents and renders it
// as plain text, positional HTML, compact XML, or tagged pages.
//
// # Quick Start
//
// Create a service and convert one or more documents into a single output:
//
//	svc := pdf2text.New()
//	err := svc.Convert(ctx, pdf2text.Input{
//	    Paths:  []string{"report.pdf"},
//	    Output: "report.txt",
//	})
//
// When Output is empty the rendered text goes to standard output. The output
// format is taken from Input.Format when set, otherwise inferred from the
// Output extension (.html/.htm, .xml, .tag), defaulting to plain text.
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Output sink resolution (format inference, file creation, encoding)
//  2. Document opening via the PDF engine (password-aware)
//  3. Page iteration (page selection, page limit, rotation)
//  4. Layout analysis (fragment grouping into lines and words)
//  5. Rendering into the selected format
//
// All documents stream into one sink; rendering never buffers whole
// documents in memory.
//
// # Chapter Segmentation
//
// Chapterize converts each document to flat text beside the input and splits
// it into one file per chapter, detecting boundaries by a keyword heuristic:
//
//	dirs, err := svc.Chapterize(ctx, pdf2text.Input{
//	    Paths: []string{"book.pdf"},
//	}, "chapter")
//
// A line holding exactly the keyword and one more token (such as "Chapter 3")
// starts a new chapter file Chapter3.txt. Everything before the first
// boundary goes to preface.txt. Chapter files land in a <stem>_chapters
// directory beside the input document, and the flat text intermediate is
// removed on success. Any two-token line starting with the keyword is
// indistinguishable from a heading, so body text like "Chapter One" alone on
// a line also starts a file.
//
// # Configuration
//
// Per-conversion options are passed via Input:
//
//	err := svc.Convert(ctx, pdf2text.Input{
//	    Paths:    []string{"paper.pdf"},
//	    Output:   "paper.html",
//	    Pages:    []int{0, 1, 2},
//	    Password: "secret",
//	    Layout:   pdf2text.DefaultLayoutParams(),
//	})
//
// Layout analysis groups positioned text fragments into lines and inserts
// word spacing from glyph gaps. Pass a nil Layout to emit fragments in
// content-stream order instead.
package pdf2text
