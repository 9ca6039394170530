package errors

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// ValidateSceneName validates a scene name for safety and correctness.
// It rejects names that could be used for path traversal or injection.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path traversal sequences (.., //, etc.)
//   - No null bytes
//   - Maximum length of 256 characters
func ValidateSceneName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidScene, "scene name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidScene, "scene name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidScene, "scene name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidScene, "scene name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidatePath validates a file path for safety. It prevents path traversal
// attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
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

	// No backslashes (potential Windows path injection)
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// regionIDRegex matches valid region identifiers: a non-empty base name
// followed by any sequence of L/R split suffixes.
var regionIDRegex = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// ValidateRegionID validates a region tree node identifier.
func ValidateRegionID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidRegionID, "region identifier cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidRegionID, "region identifier too long (max 256 characters)")
	}

	if !regionIDRegex.MatchString(id) {
		return New(ErrCodeInvalidRegionID, "invalid region identifier: %q", id)
	}

	return nil
}

// ValidateRunID validates a stored run identifier. Run IDs are UUIDs
// minted by the store, so anything uuid.Parse rejects cannot name a run.
func ValidateRunID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidRunID, "run identifier cannot be empty")
	}

	if _, err := uuid.Parse(id); err != nil {
		return Wrap(ErrCodeInvalidRunID, err, "invalid run identifier: %q", id)
	}

	return nil
}

// mergeKeyRegex matches valid merge-keys (unit identifiers carried on
// mesh faces).
var mergeKeyRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.:-]*$`)

// ValidateMergeKey validates a face merge-key. Empty keys are allowed;
// faces without a unit carry none.
func ValidateMergeKey(key string) error {
	if key == "" {
		return nil
	}

	if len(key) > 256 {
		return New(ErrCodeInvalidInput, "merge-key too long (max 256 characters)")
	}

	if !mergeKeyRegex.MatchString(key) {
		return New(ErrCodeInvalidInput, "invalid merge-key: %q", key)
	}

	return nil
}
