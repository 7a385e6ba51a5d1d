package helpers

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var venueCountRe = regexp.MustCompile(`(?i)(\d+)\s+venues?\b`)

// ParseVenueCount extracts N from a "Show N venues" style label and requires
// it to be a positive integer.
func ParseVenueCount(label string) (int, error) {
	m := venueCountRe.FindStringSubmatch(label)
	if m == nil {
		return 0, fmt.Errorf("no venue count in %q", label)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("parsing venue count from %q: %w", label, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("venue count must be positive, got %d in %q", n, label)
	}
	return n, nil
}

// RootRelative reports whether href is a non-empty site-local destination
// (leading "/", not a protocol-relative "//host" URL).
func RootRelative(href string) bool {
	return strings.HasPrefix(href, "/") && !strings.HasPrefix(href, "//")
}

var unsafeNameRe = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

func sanitizeName(name string) string {
	return unsafeNameRe.ReplaceAllString(strings.TrimSpace(name), "_")
}
