package storage

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const (
	objectMarker = "/o/"
	queryMarker  = "?"
)

// ErrFetch wraps every failure to resolve or download a blob.
var ErrFetch = errors.New("fetch failed")

// ParseLocator extracts the object path from a locator of the form
// ".../o/<url-encoded-path>?<query>". The query is optional.
func ParseLocator(locator string) (string, error) {
	_, rest, ok := strings.Cut(locator, objectMarker)
	if !ok {
		return "", fmt.Errorf("%w: locator %q has no %q segment", ErrFetch, locator, objectMarker)
	}
	encoded, _, _ := strings.Cut(rest, queryMarker)

	path, err := url.PathUnescape(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: decode locator path %q: %w", ErrFetch, encoded, err)
	}
	if path == "" {
		return "", fmt.Errorf("%w: locator %q has an empty object path", ErrFetch, locator)
	}
	return path, nil
}

// BuildLocator is the inverse of ParseLocator.
func BuildLocator(base, path string) string {
	return strings.TrimRight(base, "/") + objectMarker + url.PathEscape(path) + queryMarker + "alt=media"
}
