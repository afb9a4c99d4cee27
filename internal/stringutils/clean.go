package stringutils

import (
	"strings"
	"unicode"
)

// isControl reports C0/C1 control characters and DEL, keeping tab, newline
// and carriage return.
func isControl(r rune) bool {
	switch r {
	case '\t', '\n', '\r':
		return false
	}
	return r < 0x20 || r == 0x7f || (r >= 0x80 && r <= 0x9f)
}

// Clean drops control and non-printable runes, replaces invalid UTF-8 with
// nothing, and trims surrounding whitespace. Inner line breaks are kept.
func Clean(s string) string {
	s = strings.ToValidUTF8(s, "")
	s = strings.Map(func(r rune) rune {
		if isControl(r) || !(unicode.IsPrint(r) || unicode.IsSpace(r)) {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

// CleanLine is Clean for single-line values such as names: every whitespace
// run, line breaks included, becomes one space.
func CleanLine(s string) string {
	return strings.Join(strings.Fields(Clean(s)), " ")
}
