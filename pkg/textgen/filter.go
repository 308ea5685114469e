package textgen

import (
	"strings"
	"unicode/utf8"
)

// Filter is the acceptance protocol applied to every generated candidate.
// Lengths are counted in runes. A MaxLength of zero or less means unbounded.
type Filter struct {
	MinLength  int
	MaxLength  int
	StartsWith string
	EndsWith   string
}

// Override returns a copy of f with every non-zero argument replacing the
// corresponding field.
func (f Filter) Override(minLength, maxLength int, startsWith, endsWith string) Filter {
	if minLength != 0 {
		f.MinLength = minLength
	}
	if maxLength != 0 {
		f.MaxLength = maxLength
	}
	if startsWith != "" {
		f.StartsWith = startsWith
	}
	if endsWith != "" {
		f.EndsWith = endsWith
	}
	return f
}

// Lower returns a copy of f with both affixes lower-cased.
func (f Filter) Lower() Filter {
	f.StartsWith = strings.ToLower(f.StartsWith)
	f.EndsWith = strings.ToLower(f.EndsWith)
	return f
}

// Accept reports whether s satisfies every constraint in f.
func (f Filter) Accept(s string) bool {
	n := utf8.RuneCountInString(s)
	if n < f.MinLength {
		return false
	}
	if f.MaxLength > 0 && n > f.MaxLength {
		return false
	}
	return strings.HasPrefix(s, f.StartsWith) && strings.HasSuffix(s, f.EndsWith)
}
