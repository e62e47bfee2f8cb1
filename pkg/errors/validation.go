package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// DiagramExt is the file extension written by the diagram editor.
const DiagramExt = ".erm"

// ValidateDiagramPath validates a diagram file path given on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//   - Must carry the .erm extension (case-insensitive)
//
// Existence is not checked here; a missing file surfaces as FILE_NOT_FOUND
// from the loader.
func ValidateDiagramPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "diagram path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if !strings.EqualFold(filepath.Ext(path), DiagramExt) {
		return New(ErrCodeInvalidPath, "not a diagram file (want %s): %s", DiagramExt, filepath.Base(path))
	}

	return nil
}

// ValidateFormat checks that format is one of the allowed values.
func ValidateFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "unsupported format %q (available: %s)", format, strings.Join(allowed, ", "))
}
