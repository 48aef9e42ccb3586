// Package validation provides security validation functions for paths,
// URLs and request origins.
package validation

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// Shell metacharacters rejected in paths and URLs.
var (
	dangerousChars    = []string{";", "&", "|", "$", "`", "<", ">", "\"", "'"}
	dangerousURLChars = []string{";", "&", "|", "$", "`", "<", ">", "\"", "'", "(", ")", "\\", "\n", "\r", " "}
)

// ValidatePath validates a file path to prevent path traversal attacks and
// returns it cleaned.
func ValidatePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("path cannot be empty")
	}

	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == ".." {
			return "", fmt.Errorf("path traversal detected: %s", path)
		}
	}

	for _, char := range dangerousChars {
		if strings.Contains(path, char) {
			return "", fmt.Errorf("path contains dangerous character: %s", char)
		}
	}

	return filepath.Clean(path), nil
}

// ValidateURL validates URLs for browser auto-open functionality.
func ValidateURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	// Only allow http/https schemes to prevent protocol handlers
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid URL scheme: %s (only http/https allowed)", parsed.Scheme)
	}

	for _, char := range dangerousURLChars {
		if strings.Contains(rawURL, char) {
			return fmt.Errorf("URL contains dangerous character: %q", char)
		}
	}

	if parsed.Host == "" {
		return fmt.Errorf("URL must have a valid hostname")
	}

	return nil
}

// ValidateOrigin validates a request origin for CSRF protection. allowed
// holds full origins ("https://docs.example.com") or bare hosts
// ("localhost:8080").
func ValidateOrigin(origin string, allowed []string) error {
	if origin == "" {
		return fmt.Errorf("origin header is required")
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return fmt.Errorf("invalid origin format: %w", err)
	}

	if originURL.Scheme != "http" && originURL.Scheme != "https" {
		return fmt.Errorf("invalid origin scheme '%s': only http and https are allowed", originURL.Scheme)
	}

	for _, a := range allowed {
		if origin == a || originURL.Host == a {
			return nil
		}
	}

	return fmt.Errorf("origin '%s' is not in allowed origins list", origin)
}
