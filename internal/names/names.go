package names

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

type Mode int

const (
	AlphaOnly Mode = iota
	Alphanumeric
	TrimmedToken
)

func (m Mode) String() string {
	switch m {
	case AlphaOnly:
		return "alpha"
	case Alphanumeric:
		return "alphanumeric"
	case TrimmedToken:
		return "trimmed-token"
	}
	return "unknown"
}

// MinComparableLength is the shortest canonical key that takes part in matching.
const MinComparableLength = 2

// Keys holds the canonical comparison keys of a single display name.
type Keys struct {
	Alpha        string
	Alphanumeric string
}

// KeysOf derives both matching keys of a display name.
func KeysOf(name string) Keys {
	return Keys{Alpha: Key(name, AlphaOnly), Alphanumeric: Key(name, Alphanumeric)}
}

// Key reduces a display name to its canonical form under the given mode.
// Names are NFC-composed first so that decomposed filenames (as stored by some filesystems) yield the same key as composed ones.
func Key(name string, mode Mode) string {
	composed := norm.NFC.String(name)
	switch mode {
	case AlphaOnly:
		return upper(retain(composed, unicode.IsLetter))
	case Alphanumeric:
		return upper(retain(composed, isAlphanumeric))
	case TrimmedToken:
		return TrimYearSuffix(composed)
	}
	panic("bad normalization mode")
}

// Comparable reports whether a key is long enough to be matched at all.
// Empty and single-character keys would otherwise pull unrelated near-empty names together.
func Comparable(key string) bool {
	return utf8.RuneCountInString(key) >= MinComparableLength
}

var yearSuffix = regexp.MustCompile(`\s*\(\d{4}\)\s*$`)

// TrimYearSuffix removes a trailing parenthesized year, e.g. "Album (1999)" -> "Album".
func TrimYearSuffix(name string) string {
	trimmed := yearSuffix.ReplaceAllString(name, "")
	if strings.TrimSpace(trimmed) == "" {
		return name //a name consisting only of the year stays as it is
	}
	return trimmed
}

// Suggest proposes a replacement for a name that contains non-alphanumeric characters:
// the year suffix is trimmed, remaining punctuation is dropped, and whitespace is collapsed.
func Suggest(name string) string {
	token := Key(name, TrimmedToken)
	kept := retain(token, func(r rune) bool { return isAlphanumeric(r) || unicode.IsSpace(r) })
	return strings.Join(strings.Fields(kept), " ")
}

// IsAlphanumeric reports whether the name, ignoring whitespace, consists solely of letters and digits.
func IsAlphanumeric(name string) bool {
	for _, r := range name {
		if !unicode.IsSpace(r) && !isAlphanumeric(r) {
			return false
		}
	}
	return true
}

// WithoutSpace strips all whitespace from a name.
func WithoutSpace(name string) string {
	return retain(name, func(r rune) bool { return !unicode.IsSpace(r) })
}

func isAlphanumeric(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}

func retain(s string, keep func(rune) bool) string {
	var kept strings.Builder
	for _, r := range s {
		if keep(r) {
			kept.WriteRune(r)
		}
	}
	return kept.String()
}

//cases.Caser keeps state and must not be shared
func upper(s string) string {
	return cases.Upper(language.Und).String(s)
}
