package templating

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func (tm *TemplateManager) tag() language.Tag {
	tag, err := language.Parse(tm.config.Language)
	if err != nil {
		return language.Und
	}
	return tag
}

// title capitalises the first letter of every word of s, following the
// configured language's rules.
func (tm *TemplateManager) title(s string) string {
	return cases.Title(tm.tag()).String(s)
}

// upper maps s to upper case.
func (tm *TemplateManager) upper(s string) string {
	return cases.Upper(tm.tag()).String(s)
}

// lower maps s to lower case.
func (tm *TemplateManager) lower(s string) string {
	return cases.Lower(tm.tag()).String(s)
}

// join formats every item and joins them with sep.
func join(sep string, items []any) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = fmt.Sprint(item)
	}
	return strings.Join(parts, sep)
}

// initial returns the first letter of s followed by a period, e.g. "J.".
func initial(s string) string {
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return ""
	}
	return string(r) + "."
}
