// Package fileutil provides file and path utility functions.
package fileutil

import (
	"os"
	"strings"
)

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// SafeFileName returns true if name is free of path separators and null
// bytes, so creating it directly inside a directory cannot escape that
// directory.
func SafeFileName(name string) bool {
	return name != "" && !strings.ContainsAny(name, "/\\\x00")
}
