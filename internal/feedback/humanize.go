package feedback

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	internalCapital = regexp.MustCompile(`(\S)([A-Z])`)
	leadingDigits   = regexp.MustCompile(`^\d+`)
	allDigits       = regexp.MustCompile(`\d+`)
	whitespace      = regexp.MustCompile(`\s+`)
)

// Humanize turns a raw field name such as "hasStrongCommunication" or
// "problem_solving" into a display label ("Has Strong Communication",
// "Problem solving").
func Humanize(name string) string {
	s := name
	// Applied twice so that consecutive capitals ("APIDesign") are all split.
	s = internalCapital.ReplaceAllString(s, "$1 $2")
	s = internalCapital.ReplaceAllString(s, "$1 $2")
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.TrimSpace(s)
	s = leadingDigits.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)

	return upperFirst(s)
}

// humanizeSection is Humanize with every digit removed, used for section keys
// missing from the title table.
func humanizeSection(key string) string {
	return Humanize(allDigits.ReplaceAllString(key, ""))
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
