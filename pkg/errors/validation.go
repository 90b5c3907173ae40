package errors

import (
	"strings"
	"unicode"
)

// ValidateFrameName validates a stack frame name for safety and correctness.
// It rejects names that could break downstream sinks (SVG text nodes, DOT
// identifiers) or smuggle control sequences into terminal output.
//
// The validation rules are intentionally conservative:
//   - No control characters
//   - No null bytes
//   - Maximum length of 4096 characters
//
// Empty names are allowed; the tree model substitutes a placeholder label.
func ValidateFrameName(name string) error {
	const maxNameLength = 4096
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidProfile, "frame name too long (max %d characters)", maxNameLength)
	}

	// Check for control characters and null bytes
	for _, r := range name {
		if r == '\x00' || (unicode.IsControl(r) && r != '\t') {
			return New(ErrCodeInvalidProfile, "frame name contains invalid control characters")
		}
	}

	return nil
}

// ValidatePath validates a local file path for safety.
// It prevents path traversal out of the working tree and ensures a
// reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	// Check for path traversal
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

// IsRemote reports whether source names a remote profile (http or https URL)
// rather than a local file path.
func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
