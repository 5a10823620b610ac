package bootstrap

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// EntryDocument is the page file name stripped from the location
const EntryDocument = "index.html"

// APIPath is appended to the base URL to reach the API
const APIPath = "api/v1/"

// BaseURL derives the host page base from its location. Query and
// fragment are dropped, a trailing entry document is removed and the
// result always ends with a slash.
func BaseURL(location string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(location))
	if err != nil {
		return "", fmt.Errorf("invalid location %q: %w", location, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid location %q: expected an absolute URL", location)
	}

	u.RawQuery = ""
	u.ForceQuery = false
	u.Fragment = ""
	u.RawFragment = ""

	if path.Base(u.Path) == EntryDocument {
		u.Path = strings.TrimSuffix(u.Path, EntryDocument)
	}
	u.RawPath = ""
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	return u.String(), nil
}

// APIBaseURL is BaseURL plus the versioned API path
func APIBaseURL(location string) (string, error) {
	base, err := BaseURL(location)
	if err != nil {
		return "", err
	}
	return base + APIPath, nil
}
