package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripControl(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "user:1", "user:1"},
		{"csi color", "\x1b[31mred\x1b[0m", "red"},
		{"osc title", "\x1b]0;pwned\x07key", "key"},
		{"clear screen", "a\x1b[2Jb", "ab"},
		{"bare controls", "a\x07b\x00c\rd", "abcd"},
		{"keeps layout", "line1\n\tline2", "line1\n\tline2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripControl(tt.in))
		})
	}
}
