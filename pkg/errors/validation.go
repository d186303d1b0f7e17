package errors

import (
	"strings"
	"unicode"
)

// ValidateColumnName validates a user-supplied column name before it is used
// to select data for areas, levels, labels or fills.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters or null bytes
//   - Maximum length of 256 characters
//
// Whether the column actually exists in the table is checked separately by
// the caller and reported as COLUMN_NOT_FOUND.
func ValidateColumnName(name string) error {
	if name == "" {
		return New(ErrCodeColumnNotFound, "column name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeColumnNotFound, "column name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeColumnNotFound, "column name contains invalid control characters")
		}
	}

	return nil
}

// ValidateOutputPath validates a file path used for rendered artifacts.
// It prevents path traversal outside the working tree and unreasonable
// path lengths.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeFileNotFound, "output path cannot be empty")
	}

	if len(path) > 500 {
		return New(ErrCodeFileNotFound, "output path too long (max 500 characters)")
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeFileNotFound, "output path contains invalid control characters")
		}
	}

	if strings.Contains(path, "\x00") {
		return New(ErrCodeFileNotFound, "output path contains null byte")
	}

	return nil
}
