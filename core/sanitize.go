package core

import (
	"regexp"
	"strings"
)

var spaces = regexp.MustCompile(`\s+`)

// SanitizeTitle collapses runs of whitespace and trims the ends.
func SanitizeTitle(title string) string {
	return strings.TrimSpace(spaces.ReplaceAllString(title, " "))
}
