package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// hexColorRegex matches 3- or 6-digit hex color strings with a leading #.
// Named CSS colors are intentionally rejected; upstream tooling is expected
// to normalize everything to hex before it reaches the renderer.
var hexColorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateHexColor validates a color string as #RGB or #RRGGBB hex.
func ValidateHexColor(c string) error {
	if c == "" {
		return New(ErrCodeInvalidColor, "color cannot be empty")
	}
	if !hexColorRegex.MatchString(c) {
		return New(ErrCodeInvalidColor, "color must be #RGB or #RRGGBB hex: %q", c)
	}
	return nil
}

// categoryRegex matches valid flag category slugs.
var categoryRegex = regexp.MustCompile(`^[a-z0-9-]+$`)

// ValidateCategory validates a flag category slug (lowercase letters,
// digits and hyphens).
func ValidateCategory(category string) error {
	if category == "" {
		return New(ErrCodeInvalidMetadata, "category cannot be empty")
	}
	if !categoryRegex.MatchString(category) {
		return New(ErrCodeInvalidMetadata, "invalid category slug: %q", category)
	}
	return nil
}

// ValidateFlagID validates a flag identifier for safety and correctness.
// It rejects identifiers that could be used for path traversal when the ID
// is later used to name cached assets on disk.
func ValidateFlagID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidMetadata, "flag id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidMetadata, "flag id too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidMetadata, "flag id contains control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}
	for _, pattern := range dangerousPatterns {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidMetadata, "flag id contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateDisplayName validates a flag display name.
func ValidateDisplayName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidMetadata, "display name cannot be empty")
	}
	if len(name) > 256 {
		return New(ErrCodeInvalidMetadata, "display name too long (max 256 characters)")
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
