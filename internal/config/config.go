package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-pdf2text/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
)

// Field length limits for multi-tenant safety.
const (
	MaxFormatLength   = 10   // "text", "html", "xml", "tag"
	MaxEncodingLength = 50   // IANA charset names
	MaxModeLength     = 10   // "normal", "loose", "exact"
	MaxPathLength     = 2048 // output and image directories
)

// Config holds all configuration for text extraction.
type Config struct {
	Output OutputConfig `yaml:"output"`
	Layout LayoutConfig `yaml:"layout"`
	HTML   HTMLConfig   `yaml:"html"`
	Images ImagesConfig `yaml:"images"`
	Quiet  bool         `yaml:"quiet"`
}

// OutputConfig defines output rendering options.
type OutputConfig struct {
	Format       string `yaml:"format"`       // "text", "html", "xml", "tag" (empty = infer from path)
	Encoding     string `yaml:"encoding"`     // IANA name for file output (default: "utf-8")
	StripControl bool   `yaml:"stripControl"` // drop control characters in XML output
}

// LayoutConfig defines layout analysis tuning.
type LayoutConfig struct {
	Disabled       bool    `yaml:"disabled"`       // skip analysis, keep stream order
	CharMargin     float64 `yaml:"charMargin"`     // default: 2.0
	LineMargin     float64 `yaml:"lineMargin"`     // default: 0.5
	WordMargin     float64 `yaml:"wordMargin"`     // default: 0.1
	BoxesFlow      float64 `yaml:"boxesFlow"`      // -1 to 1 (default: 0.5)
	DetectVertical bool    `yaml:"detectVertical"` // consider vertical writing
}

// HTMLConfig defines HTML output options.
type HTMLConfig struct {
	Scale float64 `yaml:"scale"` // coordinate scale (default: 1.0)
	Mode  string  `yaml:"mode"`  // "normal", "loose", "exact" (default: "normal")
}

// ImagesConfig defines embedded image extraction options.
type ImagesConfig struct {
	Dir string `yaml:"dir"` // extraction directory (empty = off)
}

// Validate checks field lengths and value ranges.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually (e.g., API adapters, library users).
func (c *Config) Validate() error {
	// Validate output fields
	if err := validateFieldLength("output.format", c.Output.Format, MaxFormatLength); err != nil {
		return err
	}
	if c.Output.Format != "" {
		switch strings.ToLower(c.Output.Format) {
		case "text", "html", "xml", "tag":
			// valid
		default:
			return fmt.Errorf("output.format: invalid value %q (must be text, html, xml, or tag)", c.Output.Format)
		}
	}
	if err := validateFieldLength("output.encoding", c.Output.Encoding, MaxEncodingLength); err != nil {
		return err
	}

	// Validate layout fields
	if c.Layout.CharMargin < 0 {
		return fmt.Errorf("layout.charMargin: must not be negative, got %g", c.Layout.CharMargin)
	}
	if c.Layout.LineMargin < 0 {
		return fmt.Errorf("layout.lineMargin: must not be negative, got %g", c.Layout.LineMargin)
	}
	if c.Layout.WordMargin < 0 {
		return fmt.Errorf("layout.wordMargin: must not be negative, got %g", c.Layout.WordMargin)
	}
	if c.Layout.BoxesFlow < -1 || c.Layout.BoxesFlow > 1 {
		return fmt.Errorf("layout.boxesFlow: must be between -1 and 1, got %g", c.Layout.BoxesFlow)
	}

	// Validate HTML fields
	if err := validateFieldLength("html.mode", c.HTML.Mode, MaxModeLength); err != nil {
		return err
	}
	if c.HTML.Mode != "" {
		switch strings.ToLower(c.HTML.Mode) {
		case "normal", "loose", "exact":
			// valid
		default:
			return fmt.Errorf("html.mode: invalid value %q (must be normal, loose, or exact)", c.HTML.Mode)
		}
	}
	if c.HTML.Scale != 0 && (c.HTML.Scale < 0.05 || c.HTML.Scale > 20) {
		return fmt.Errorf("html.scale: must be between 0.05 and 20, got %g", c.HTML.Scale)
	}

	// Validate image fields
	if err := validateFieldLength("images.dir", c.Images.Dir, MaxPathLength); err != nil {
		return err
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the extraction defaults.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{Encoding: "utf-8"},
		Layout: LayoutConfig{
			CharMargin: 2.0,
			LineMargin: 0.5,
			WordMargin: 0.1,
			BoxesFlow:  0.5,
		},
		HTML: HTMLConfig{Scale: 1.0, Mode: "normal"},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Seed with defaults so omitted keys keep them; explicit keys override.
	cfg := *DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-pdf2text/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	// Try current directory first (both extensions)
	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	// Try user config directory (both extensions)
	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-pdf2text", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
