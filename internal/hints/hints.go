// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"
)

// ForEncryptedDocument returns hints for password failures on encrypted
// documents.
func ForEncryptedDocument() string {
	return format("pass the document password with --password")
}

// ForDamagedDocument returns hints for parse failures.
func ForDamagedDocument() string {
	return format("run pdf2text inspect <file> to check the document")
}

// ForUnknownEncoding returns hints for unrecognized output encodings.
func ForUnknownEncoding() string {
	return format("use an IANA charset name such as utf-8, iso-8859-1 or windows-1252")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-pdf2text/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Find a user config path (contains .config/go-pdf2text) to suggest
	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-pdf2text") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output destination creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
