package common

import "strings"

// SplitList splits a comma-separated value into trimmed, non-empty items.
// An empty or blank input yields an empty, non-nil slice.
func SplitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// NormalizeHeader lower-cases and trims a CSV header cell, dropping a UTF-8
// byte order mark.
func NormalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
}
