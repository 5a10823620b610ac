package bootstrap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseURL(t *testing.T) {
	tests := []struct {
		name     string
		location string
		want     string
	}{
		{"entry document", "http://localhost:8080/index.html", "http://localhost:8080/"},
		{"bare host", "http://localhost:8080", "http://localhost:8080/"},
		{"sub path without slash", "http://host/radish", "http://host/radish/"},
		{"query and fragment", "http://host/radish/index.html?x=1#/keys", "http://host/radish/"},
		{"empty fragment marker", "http://host/radish#", "http://host/radish/"},
		{"empty query marker", "http://host/radish/?", "http://host/radish/"},
		{"similar file name kept", "http://host/app/myindex.html", "http://host/app/myindex.html/"},
		{"surrounding spaces", "  https://example.com/  ", "https://example.com/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BaseURL(tt.location)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBaseURLRejectsRelative(t *testing.T) {
	for _, location := range []string{"", "not a url", "/index.html", "://broken"} {
		_, err := BaseURL(location)
		assert.Error(t, err, location)
	}
}

func TestAPIBaseURL(t *testing.T) {
	got, err := APIBaseURL("http://localhost:8080/index.html#/")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api/v1/", got)
}
