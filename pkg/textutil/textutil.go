package textutil

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeName lowercases a name and strips all whitespace from it, for comparisons.
func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, "")
	return name
}

func isWordDelimiter(r rune) bool {
	switch r {
	case ' ', '\t', '\r', '\n', '\f', '\v':
		return true
	}
	return false
}

// UpperWords upper-cases the first letter of every whitespace-delimited word,
// the rest of each word is left as is.
func UpperWords(s string) string {
	var out strings.Builder
	out.Grow(len(s))

	atWordStart := true
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && size == 1 {
			out.WriteByte(s[0])
			atWordStart = false
			s = s[1:]
			continue
		}
		if atWordStart {
			r = unicode.ToUpper(r)
		}
		out.WriteRune(r)
		atWordStart = isWordDelimiter(r)
		s = s[size:]
	}

	return out.String()
}
