package errors

import (
	"strings"
	"unicode"
)

// ValidateRelPath validates a file path referenced from a benchmark suite.
// Suite files may come from untrusted sources, so instance paths are kept
// relative to the suite's own directory.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidateRelPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}

	// Must not be absolute path
	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidInput, "path must be relative (cannot start with /)")
	}

	// Check for path traversal
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidInput, "path cannot contain path traversal sequences (..)")
	}

	// No backslashes (potential Windows path injection)
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidInput, "path cannot contain backslashes")
	}

	return nil
}

// ValidateMongoURI validates a MongoDB connection string.
// It ensures the URI has a mongodb or mongodb+srv scheme.
func ValidateMongoURI(rawURI string) error {
	if rawURI == "" {
		return New(ErrCodeInvalidInput, "MongoDB URI cannot be empty")
	}

	if !strings.HasPrefix(rawURI, "mongodb://") && !strings.HasPrefix(rawURI, "mongodb+srv://") {
		return New(ErrCodeInvalidInput, "MongoDB URI must use mongodb or mongodb+srv scheme")
	}

	return nil
}
