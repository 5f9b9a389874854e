package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/alnah/go-pdf2text/internal/fileutil"
)

// inspectResult holds the outcome of checking one document.
type inspectResult struct {
	Path      string   `json:"path"`
	Status    string   `json:"status"`
	SizeBytes int64    `json:"size_bytes,omitempty"`
	Pages     int      `json:"pages,omitempty"`
	Valid     bool     `json:"valid"`
	Warnings  []string `json:"warnings,omitempty"`
	Errors    []string `json:"errors,omitempty"`
}

// runInspectCmd handles the inspect command.
func runInspectCmd(args []string, env *Environment) int {
	jsonOutput := false
	paths := make([]string, 0, len(args))

	for _, arg := range args {
		if arg == "--json" {
			jsonOutput = true
			continue
		}
		paths = append(paths, arg)
	}

	if len(paths) == 0 {
		printInspectUsage(env.Stderr)
		return ExitUsage
	}

	results := make([]inspectResult, 0, len(paths))
	for _, path := range paths {
		results = append(results, inspectDocument(path))
	}

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			fmt.Fprintf(env.Stderr, "Error: %v\n", err)
			return ExitGeneral
		}
	} else {
		for _, r := range results {
			printInspectResult(env, r)
		}
	}

	for _, r := range results {
		if r.Status == "errors" {
			return ExitGeneral
		}
	}

	return ExitSuccess
}

// inspectDocument checks one document and reports its health.
func inspectDocument(path string) inspectResult {
	r := inspectResult{Path: path, Status: "ok"}

	if !fileutil.FileExists(path) {
		r.Errors = append(r.Errors, "file not found")
		r.Status = "errors"
		return r
	}

	if info, err := os.Stat(path); err == nil {
		r.SizeBytes = info.Size()
	}

	if err := api.ValidateFile(path, nil); err != nil {
		r.Errors = append(r.Errors, fmt.Sprintf("validation failed: %v", err))
	} else {
		r.Valid = true
	}

	f, err := os.Open(path) // #nosec G304 -- user-provided document path
	if err == nil {
		pages, countErr := api.PageCount(f, nil)
		_ = f.Close()
		if countErr != nil {
			r.Warnings = append(r.Warnings, "page count unavailable")
		} else {
			r.Pages = pages
			if pages == 0 {
				r.Warnings = append(r.Warnings, "document has no pages")
			}
		}
	} else {
		r.Warnings = append(r.Warnings, "page count unavailable")
	}

	switch {
	case len(r.Errors) > 0:
		r.Status = "errors"
	case len(r.Warnings) > 0:
		r.Status = "warnings"
	}

	return r
}

// printInspectResult writes a human-readable report for one document.
func printInspectResult(env *Environment, r inspectResult) {
	fmt.Fprintf(env.Stdout, "%s\n", r.Path)

	if r.SizeBytes > 0 {
		fmt.Fprintf(env.Stdout, "  [OK] Size: %d bytes\n", r.SizeBytes)
	}
	if r.Valid {
		fmt.Fprintf(env.Stdout, "  [OK] Structure: valid\n")
	}
	if r.Pages > 0 {
		fmt.Fprintf(env.Stdout, "  [OK] Pages: %d\n", r.Pages)
	}
	for _, w := range r.Warnings {
		fmt.Fprintf(env.Stdout, "  [WARN] %s\n", w)
	}
	for _, e := range r.Errors {
		fmt.Fprintf(env.Stdout, "  [ERROR] %s\n", e)
	}

	fmt.Fprintln(env.Stdout)
}
