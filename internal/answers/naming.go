package answers

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var nonSlugChars = regexp.MustCompile(`[^A-Za-z0-9-]+`)

// Slugify lowercases s and collapses every run of characters outside
// [A-Za-z0-9-] into a single dash.
func Slugify(s string) string {
	replaced := nonSlugChars.ReplaceAllString(s, "-")
	return strings.ToLower(strings.Trim(replaced, "-"))
}

// TitleCase turns "my-package_name" into "MyPackageName".
func TitleCase(s string) string {
	spaced := strings.NewReplacer("-", " ", "_", " ").Replace(s)
	return strings.ReplaceAll(upperWords(spaced), " ", "")
}

// Namespace derives a PHP namespace segment from a vendor name.
func Namespace(vendorName string) string {
	return strings.Map(func(r rune) rune {
		if r == '-' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, upperWords(vendorName))
}

// LowerFirst lowercases the first character of s.
func LowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// upperWords uppercases the first letter of each word and leaves the rest untouched.
func upperWords(s string) string {
	return cases.Title(language.Und, cases.NoLower).String(s)
}
