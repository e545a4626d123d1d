package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonSlugChars  = regexp.MustCompile(`[^a-z0-9-]+`)
	hyphenRun     = regexp.MustCompile(`-+`)
)

// GenerateSlug converts a label into the slug form used by category URLs.
// e.g. "3D Wall Panel" -> "3d-wall-panel", "PVC & WPC" -> "pvc-wpc"
// Leading/trailing hyphens are kept; only surrounding whitespace is trimmed.
func GenerateSlug(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))

	// Whitespace runs become hyphens
	s = whitespaceRun.ReplaceAllString(s, "-")

	// Remove invalid chars (keep a-z, 0-9, hyphen)
	s = nonSlugChars.ReplaceAllString(s, "")

	// Collapse multiple hyphens
	return hyphenRun.ReplaceAllString(s, "-")
}

// Unslug turns a URL slug back into display text: "modular-kitchen" -> "modular kitchen".
func Unslug(slug string) string {
	return strings.ReplaceAll(slug, "-", " ")
}

// CategoryPath is the breadcrumb link for a category label (lower-cased, spaces to hyphens).
func CategoryPath(category string) string {
	return "/category/" + strings.ReplaceAll(strings.ToLower(category), " ", "-")
}

// ParseInt parses a string to int with a fallback default value
func ParseInt(s string, defaultVal int) int {
	if s == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return val
}

// ParseFloat coerces UI numeric input; anything malformed reads as 0.
func ParseFloat(s string) float64 {
	val, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return val
}
