package errors

import (
	"strings"
	"unicode"
)

// maxStemLength bounds file name stems derived from family identifiers.
const maxStemLength = 128

// ValidateFileStem validates a string that is embedded into an output file
// name, such as the family identifier in "pedigree_family_<id>.svg".
//
// Rejected:
//   - empty stems
//   - stems longer than 128 characters
//   - control characters and null bytes
//   - path separators and traversal sequences
func ValidateFileStem(stem string) error {
	if stem == "" {
		return New(ErrCodeInvalidPath, "file name cannot be empty")
	}
	if len(stem) > maxStemLength {
		return New(ErrCodeInvalidPath, "file name too long (max %d characters)", maxStemLength)
	}
	for _, r := range stem {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "file name contains invalid control characters")
		}
	}
	for _, pattern := range []string{"..", "/", "\\"} {
		if strings.Contains(stem, pattern) {
			return New(ErrCodeInvalidPath, "file name contains invalid characters: %q", pattern)
		}
	}
	return nil
}

// ValidateColumnName validates a PED header column name supplied through
// flags or the config file.
func ValidateColumnName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidConfig, "column name cannot be empty")
	}
	if strings.ContainsAny(name, "\t\r\n") {
		return New(ErrCodeInvalidConfig, "column name %q contains whitespace separators", name)
	}
	return nil
}
