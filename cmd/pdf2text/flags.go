package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// Sentinels detect whether a tuning flag was explicitly set. Margins are
// non-negative, so a negative value is safely out of range; boxes-flow
// spans -1 to 1, so its sentinel sits further out.
const (
	marginSentinel    = -1.0
	boxesFlowSentinel = -999.0
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// outputFlags holds output destination and format flags.
type outputFlags struct {
	path         string
	format       string
	encoding     string
	stripControl bool
}

// pageFlags holds page selection flags.
type pageFlags struct {
	pages    string
	maxPages int
	rotation int
	password string
}

// layoutFlags holds layout analysis flags.
type layoutFlags struct {
	noLayout       bool
	detectVertical bool
	charMargin     float64
	lineMargin     float64
	wordMargin     float64
	boxesFlow      float64
}

// htmlFlags holds HTML output flags.
type htmlFlags struct {
	scale float64
	mode  string
}

// miscFlags holds cache and image extraction flags.
type miscFlags struct {
	imageDir string
	noCache  bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common     commonFlags
	output     outputFlags
	page       pageFlags
	layout     layoutFlags
	html       htmlFlags
	misc       miscFlags
	chapterize string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVar(&f.config, "config", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show per-document progress")
}

// addOutputFlags adds output destination flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.path, "output", "o", "", "output file path (default: stdout)")
	fs.StringVarP(&f.format, "format", "t", "", "output format: text, html, xml, tag")
	fs.StringVarP(&f.encoding, "encoding", "c", "", "output encoding for files (default: utf-8)")
	fs.BoolVarP(&f.stripControl, "strip-control", "S", false, "strip control characters in XML output")
}

// addPageFlags adds page selection flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.pages, "pages", "p", "", "comma-separated page numbers (1-based)")
	fs.IntVarP(&f.maxPages, "max-pages", "m", 0, "max pages to render per document (0 = all)")
	fs.IntVarP(&f.rotation, "rotation", "R", 0, "extra rotation in degrees")
	fs.StringVarP(&f.password, "password", "P", "", "document password")
}

// addLayoutFlags adds layout analysis flags to a FlagSet.
func addLayoutFlags(fs *flag.FlagSet, f *layoutFlags) {
	fs.BoolVarP(&f.noLayout, "no-layout", "n", false, "keep content stream order, skip layout analysis")
	fs.BoolVarP(&f.detectVertical, "detect-vertical", "V", false, "consider vertical writing")
	fs.Float64VarP(&f.charMargin, "char-margin", "M", marginSentinel, "max gap bridged inside a line (default: 2.0)")
	fs.Float64VarP(&f.lineMargin, "line-margin", "L", marginSentinel, "max baseline drift within a line (default: 0.5)")
	fs.Float64VarP(&f.wordMargin, "word-margin", "W", marginSentinel, "min gap separating words (default: 0.1)")
	fs.Float64VarP(&f.boxesFlow, "boxes-flow", "F", boxesFlowSentinel, "reading order weight, -1 to 1 (default: 0.5)")
}

// addHTMLFlags adds HTML output flags to a FlagSet.
func addHTMLFlags(fs *flag.FlagSet, f *htmlFlags) {
	fs.Float64VarP(&f.scale, "scale", "s", 0, "HTML coordinate scale (default: 1.0)")
	fs.StringVarP(&f.mode, "layout-mode", "Y", "", "HTML layout mode: normal, loose, exact")
}

// addMiscFlags adds cache and image flags to a FlagSet.
func addMiscFlags(fs *flag.FlagSet, f *miscFlags) {
	fs.StringVarP(&f.imageDir, "image-dir", "O", "", "extract embedded images into directory")
	fs.BoolVarP(&f.noCache, "no-cache", "C", false, "disable the per-document font cache")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	f := &convertFlags{}

	fs.StringVar(&f.chapterize, "chapterize", "", "split text into chapter files on this keyword")

	addCommonFlags(fs, &f.common)
	addOutputFlags(fs, &f.output)
	addPageFlags(fs, &f.page)
	addLayoutFlags(fs, &f.layout)
	addHTMLFlags(fs, &f.html)
	addMiscFlags(fs, &f.misc)

	fs.Usage = func() { printConvertUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
