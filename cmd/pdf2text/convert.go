package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	pdf2text "github.com/alnah/go-pdf2text"
	"github.com/alnah/go-pdf2text/internal/config"
	"github.com/alnah/go-pdf2text/internal/fileutil"
)

// Convert command errors.
var (
	ErrInputNotFound = errors.New("input document not found")
	ErrPageSyntax    = errors.New("invalid page list")
)

// Extractor converts documents to text output.
type Extractor interface {
	Convert(ctx context.Context, input pdf2text.Input) error
	Chapterize(ctx context.Context, input pdf2text.Input, keyword string) ([]string, error)
}

var _ Extractor = (*pdf2text.Service)(nil)

// runConvert handles the convert command.
func runConvert(ctx context.Context, args []string, env *Environment) error {
	flags, paths, err := parseConvertFlags(args)
	if err != nil {
		return err
	}

	warnUnknownEnvVars(env.Stderr)
	applyEnvConfig(loadEnvConfig(), flags)

	svc := pdf2text.New(pdf2text.WithStdout(env.Stdout))

	return convertWithService(ctx, flags, paths, svc, env)
}

// convertWithService runs the conversion using the given service.
func convertWithService(ctx context.Context, flags *convertFlags, paths []string, svc Extractor, env *Environment) error {
	if len(paths) == 0 {
		return pdf2text.ErrNoInput
	}

	for _, p := range paths {
		if !fileutil.FileExists(p) {
			return fmt.Errorf("%w: %s", ErrInputNotFound, p)
		}
	}

	cfg := env.Config
	if flags.common.config != "" {
		loaded, err := config.LoadConfig(flags.common.config)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	input, err := buildInput(flags, paths, cfg)
	if err != nil {
		return err
	}

	start := time.Now()

	if flags.chapterize != "" {
		dirs, err := svc.Chapterize(ctx, input, flags.chapterize)
		if err != nil {
			return err
		}
		if !flags.common.quiet && !cfg.Quiet {
			for _, dir := range dirs {
				fmt.Fprintf(env.Stdout, "Files were created successfully in %s\n", dir)
			}
		}
	} else if err := svc.Convert(ctx, input); err != nil {
		return err
	}

	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Processed %d document(s) in %v\n",
			len(paths), time.Since(start).Round(time.Millisecond))
	}

	return nil
}

// buildInput merges flags and config into a conversion input.
func buildInput(flags *convertFlags, paths []string, cfg *config.Config) (pdf2text.Input, error) {
	pages, err := parsePageList(flags.page.pages)
	if err != nil {
		return pdf2text.Input{}, err
	}

	input := pdf2text.Input{
		Paths:        paths,
		Output:       flags.output.path,
		Format:       firstNonEmpty(flags.output.format, cfg.Output.Format),
		Pages:        pages,
		MaxPages:     flags.page.maxPages,
		Rotation:     flags.page.rotation,
		Password:     flags.page.password,
		Encoding:     firstNonEmpty(flags.output.encoding, cfg.Output.Encoding),
		ImageDir:     firstNonEmpty(flags.misc.imageDir, cfg.Images.Dir),
		NoCache:      flags.misc.noCache,
		Scale:        flags.html.scale,
		LayoutMode:   firstNonEmpty(flags.html.mode, cfg.HTML.Mode),
		StripControl: flags.output.stripControl || cfg.Output.StripControl,
	}

	if input.Scale == 0 {
		input.Scale = cfg.HTML.Scale
	}

	if !flags.layout.noLayout && !cfg.Layout.Disabled {
		input.Layout = buildLayoutParams(&flags.layout, &cfg.Layout)
	}

	return input, nil
}

// buildLayoutParams merges layout flags over config values.
func buildLayoutParams(f *layoutFlags, c *config.LayoutConfig) *pdf2text.LayoutParams {
	params := &pdf2text.LayoutParams{
		CharMargin:     c.CharMargin,
		LineMargin:     c.LineMargin,
		WordMargin:     c.WordMargin,
		BoxesFlow:      c.BoxesFlow,
		DetectVertical: f.detectVertical || c.DetectVertical,
	}

	if f.charMargin != marginSentinel {
		params.CharMargin = f.charMargin
	}
	if f.lineMargin != marginSentinel {
		params.LineMargin = f.lineMargin
	}
	if f.wordMargin != marginSentinel {
		params.WordMargin = f.wordMargin
	}
	if f.boxesFlow != boxesFlowSentinel {
		params.BoxesFlow = f.boxesFlow
	}

	return params
}

// parsePageList converts a 1-based comma-separated page list to zero-based numbers.
func parsePageList(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	pages := make([]int, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: %q", ErrPageSyntax, part)
		}
		pages = append(pages, n-1)
	}

	return pages, nil
}

// firstNonEmpty returns the first non-empty string.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
