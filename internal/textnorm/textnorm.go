// Package textnorm holds the text normalisations shared by the duplicate
// detectors. All functions first fold the input to Unicode NFC so that
// visually identical strings typed on different keyboards compare equal.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Key trims, lowercases and NFC-normalises s.
func Key(s string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(s)))
}

// Collapse is Key plus collapsing every whitespace run to a single space.
func Collapse(s string) string {
	return strings.Join(strings.Fields(Key(s)), " ")
}

// Loose is Collapse with the punctuation marks . , ; : ! ? removed.
func Loose(s string) string {
	stripped := strings.Map(func(r rune) rune {
		switch r {
		case '.', ',', ';', ':', '!', '?':
			return -1
		}
		return r
	}, Key(s))
	return strings.Join(strings.Fields(stripped), " ")
}

// Prefix returns the first n runes of s.
func Prefix(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// Len counts runes, which is what every length threshold is expressed in.
func Len(s string) int {
	return len([]rune(s))
}

// TrimmedLen is Len(strings.TrimSpace(s)).
func TrimmedLen(s string) int {
	return Len(strings.TrimSpace(s))
}

// IsLower reports whether s has no uppercase letters.
func IsLower(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return false
		}
	}
	return true
}
