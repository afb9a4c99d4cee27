package stringutils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/habiliai/signalrank/internal/stringutils"
)

func TestClean(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"null byte", "doc\u0000bot", "docbot"},
		{"c0 and del", "a\u0001\u001f\u007fb", "ab"},
		{"c1", "a\u0080\u009fb", "ab"},
		{"invalid utf8", "a\xffb", "ab"},
		{"keeps line breaks", " line one\nline two\t ", "line one\nline two"},
		{"empty", "", ""},
		{"unicode letters", "  Résumé ✨ 도우미 ", "Résumé ✨ 도우미"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, stringutils.Clean(tc.input))
		})
	}
}

func TestCleanLine(t *testing.T) {
	assert.Equal(t, "Doc Bot Pro", stringutils.CleanLine(" Doc\n Bot\t\tPro\u0000 "))
}
