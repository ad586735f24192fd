package util

import (
	"regexp"
	"strings"
)

var (
	reTags   = regexp.MustCompile(`<[^>]+>`)
	reSpaces = regexp.MustCompile(`\s+`)
)

// entity decoding is limited to the four entities the notification bodies
// actually contain; anything else passes through verbatim.
var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
)

// StripHTML removes markup, decodes entities, collapses whitespace runs to a
// single space and trims the result.
func StripHTML(input string) string {
	text := reTags.ReplaceAllString(input, " ")
	text = entityReplacer.Replace(text)
	return CollapseSpaces(text)
}

func CollapseSpaces(input string) string {
	input = strings.ReplaceAll(input, "\u00A0", " ")
	return strings.TrimSpace(reSpaces.ReplaceAllString(input, " "))
}

func StringPtr(v string) *string { return &v }

// TrimmedPtr returns nil for values that are empty after trimming.
func TrimmedPtr(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

func Deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
