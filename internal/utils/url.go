package utils

import (
	"fmt"
	"net/url"
)

func ParseSecureURL(raw string) (*url.URL, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if parsed.Scheme != "https" {
		return nil, fmt.Errorf("insecure URL rejected")
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("URL has no host")
	}
	return parsed, nil
}

// JoinURL appends path segments to base, escaping each segment.
func JoinURL(base string, segments ...string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("failed to parse URL: %w", err)
	}
	return u.JoinPath(segments...).String(), nil
}
