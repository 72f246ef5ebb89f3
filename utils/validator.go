// utils/validator.go - Input validation
package utils

import (
	"regexp"
	"strings"
)

// ValidateEmail checks if email is valid
func ValidateEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}

// SanitizeInput removes potentially harmful characters
func SanitizeInput(input string) string {
	// Remove leading/trailing spaces
	input = strings.TrimSpace(input)

	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	return input
}

var unsafeFileChars = regexp.MustCompile(`[^a-z0-9.\-_]+`)
var repeatedDashes = regexp.MustCompile(`-+`)

// SafeFileName reduces an arbitrary title or file name to a lowercase slug
// safe for storage on disk and in URLs.
func SafeFileName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = unsafeFileChars.ReplaceAllString(name, "-")
	name = repeatedDashes.ReplaceAllString(name, "-")
	return strings.Trim(name, "-")
}
