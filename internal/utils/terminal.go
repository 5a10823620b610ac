package utils

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

// StripControl removes escape sequences and control characters from text
// that did not come from the host, keeping newlines and tabs.
func StripControl(s string) string {
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}
