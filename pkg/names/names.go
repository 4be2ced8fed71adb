// Package names holds the display-name validation and normalization rules
// shared by the HTTP service and the API client, so both sides enforce the
// exact same contract.
package names

import (
	"errors"
	"strings"
	"unicode"
)

// MaxLength is the longest accepted raw name, in runes.
const MaxLength = 300

var (
	ErrNameRequired     = errors.New("name is required")
	ErrNameTooLong      = errors.New("name exceeds 300 characters")
	ErrContainsDigits   = errors.New("name must not contain digits")
	ErrExcessiveRepeats = errors.New("name contains excessive repeated characters")
)

// Normalize validates a raw display name and returns its canonical form:
// every part title-cased except the last, which becomes fully uppercase
// ("juan carlos chamizo" -> "Juan Carlos CHAMIZO"). A single-part name is
// only title-cased. Validation runs against the raw input, first failure
// wins; the function is idempotent on any value it has produced.
func Normalize(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrNameRequired
	}
	if len([]rune(trimmed)) > MaxLength {
		return "", ErrNameTooLong
	}
	if containsDigit(raw) {
		return "", ErrContainsDigits
	}
	if hasExcessiveRepeats(raw) {
		return "", ErrExcessiveRepeats
	}

	parts := strings.Fields(trimmed)
	if len(parts) == 1 {
		return titleCase(parts[0]), nil
	}
	for i := 0; i < len(parts)-1; i++ {
		parts[i] = titleCase(parts[i])
	}
	parts[len(parts)-1] = strings.ToUpper(parts[len(parts)-1])
	return strings.Join(parts, " "), nil
}

// IsValidationError reports whether err is one of the name validation
// sentinels above.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrNameRequired) ||
		errors.Is(err, ErrNameTooLong) ||
		errors.Is(err, ErrContainsDigits) ||
		errors.Is(err, ErrExcessiveRepeats)
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// hasExcessiveRepeats reports whether the string carries a run of four or
// more consecutive characters that are equal ignoring case, anywhere in the
// string.
func hasExcessiveRepeats(s string) bool {
	var prev rune
	run := 0
	for _, r := range s {
		lower := unicode.ToLower(r)
		if run > 0 && lower == prev {
			run++
			if run > 3 {
				return true
			}
		} else {
			run = 1
		}
		prev = lower
	}
	return false
}

func titleCase(part string) string {
	runes := []rune(part)
	if len(runes) == 0 {
		return part
	}
	var b strings.Builder
	b.WriteRune(unicode.ToUpper(runes[0]))
	for _, r := range runes[1:] {
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
