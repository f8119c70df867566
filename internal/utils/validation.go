package utils

import (
	"errors"
	"regexp"
	"unicode"
	"unicode/utf8"
)

var (
	// Detect potentially dangerous characters - more focused on injection patterns
	dangerousPattern = regexp.MustCompile(`[<>]|--|\/\*|\*\/|;.*--`)
)

const maxStationNameLength = 100

// ValidateStationName checks a station display name taken from a request path.
// Names may contain any printable characters, including non-Latin scripts.
func ValidateStationName(name string) error {
	if name == "" {
		return errors.New("station name cannot be empty")
	}

	if !utf8.ValidString(name) {
		return errors.New("station name is not valid UTF-8")
	}

	if utf8.RuneCountInString(name) > maxStationNameLength {
		return errors.New("station name too long (max 100 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return errors.New("station name contains control characters")
		}
	}

	if dangerousPattern.MatchString(name) {
		return errors.New("station name contains invalid characters")
	}

	return nil
}

// ValidateZone checks a zone bound given as a query parameter.
func ValidateZone(zone int) error {
	if zone < 0 {
		return errors.New("zone must be non-negative")
	}
	return nil
}
