// Package version normalizes release version strings.
package version

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fleuristes/fleur/internal/messages"
)

// Dev is the version reported by unreleased builds.
const Dev = "dev"

// IsDev reports whether raw names an unreleased build.
func IsDev(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	return trimmed == "" || trimmed == Dev || strings.HasPrefix(trimmed, Dev+"-")
}

// Normalize strips a leading "v" and checks for X.Y.Z numeric segments.
func Normalize(raw string) (string, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(raw), "v")
	parts := strings.Split(trimmed, ".")
	if len(parts) != 3 {
		return "", fmt.Errorf(messages.VersionInvalidFmt, raw)
	}
	for _, part := range parts {
		if part == "" {
			return "", fmt.Errorf(messages.VersionInvalidFmt, raw)
		}
		if _, err := strconv.ParseUint(part, 10, 31); err != nil {
			return "", fmt.Errorf(messages.VersionInvalidSegmentFmt, part, err)
		}
	}
	return trimmed, nil
}

// Compare returns -1, 0, or 1 as a is older, equal to, or newer than b.
func Compare(a, b string) (int, error) {
	aParts, err := segments(a)
	if err != nil {
		return 0, err
	}
	bParts, err := segments(b)
	if err != nil {
		return 0, err
	}
	for i := range aParts {
		switch {
		case aParts[i] < bParts[i]:
			return -1, nil
		case aParts[i] > bParts[i]:
			return 1, nil
		}
	}
	return 0, nil
}

func segments(raw string) ([3]int, error) {
	normalized, err := Normalize(raw)
	if err != nil {
		return [3]int{}, err
	}
	var out [3]int
	for i, part := range strings.Split(normalized, ".") {
		// Normalize already bounded each segment.
		value, _ := strconv.Atoi(part)
		out[i] = value
	}
	return out, nil
}
