package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // PDF2TEXT_CONFIG: config file name or path
	Format     string // PDF2TEXT_FORMAT: output format
	Encoding   string // PDF2TEXT_ENCODING: output encoding for files
	ImageDir   string // PDF2TEXT_IMAGE_DIR: image extraction directory
	Password   string // PDF2TEXT_PASSWORD: document password, kept out of shell history
	LayoutMode string // PDF2TEXT_LAYOUT_MODE: HTML layout mode
	Quiet      bool   // PDF2TEXT_QUIET: only show errors
}

// knownEnvVars lists valid PDF2TEXT_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"PDF2TEXT_CONFIG":      true,
	"PDF2TEXT_FORMAT":      true,
	"PDF2TEXT_ENCODING":    true,
	"PDF2TEXT_IMAGE_DIR":   true,
	"PDF2TEXT_PASSWORD":    true,
	"PDF2TEXT_LAYOUT_MODE": true,
	"PDF2TEXT_QUIET":       true,
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized PDF2TEXT_* values.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("PDF2TEXT_CONFIG"),
		Format:     os.Getenv("PDF2TEXT_FORMAT"),
		Encoding:   os.Getenv("PDF2TEXT_ENCODING"),
		ImageDir:   os.Getenv("PDF2TEXT_IMAGE_DIR"),
		Password:   os.Getenv("PDF2TEXT_PASSWORD"),
		LayoutMode: os.Getenv("PDF2TEXT_LAYOUT_MODE"),
	}

	if quiet := os.Getenv("PDF2TEXT_QUIET"); quiet != "" {
		if q, err := strconv.ParseBool(quiet); err == nil {
			cfg.Quiet = q
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized PDF2TEXT_* variables.
// Helps catch typos like PDF2TEXT_ENCODNG instead of PDF2TEXT_ENCODING.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "PDF2TEXT_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig fills unset convert flags from environment values.
// Flags set on the command line always win, so the effective order is:
// CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, f *convertFlags) {
	if env.ConfigPath != "" && f.common.config == "" {
		f.common.config = env.ConfigPath
	}
	if env.Format != "" && f.output.format == "" {
		f.output.format = env.Format
	}
	if env.Encoding != "" && f.output.encoding == "" {
		f.output.encoding = env.Encoding
	}
	if env.ImageDir != "" && f.misc.imageDir == "" {
		f.misc.imageDir = env.ImageDir
	}
	if env.Password != "" && f.page.password == "" {
		f.page.password = env.Password
	}
	if env.LayoutMode != "" && f.html.mode == "" {
		f.html.mode = env.LayoutMode
	}
	if env.Quiet {
		f.common.quiet = true
	}
}
