package utils

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeName returns the canonical form of a group name used for comparisons.
// The string is first normalized by decomposing all Unicode sequences, then
// trimmed and lowercased.
func NormalizeName(name string) string {
	name = norm.NFKD.String(name)
	return strings.ToLower(strings.TrimSpace(name))
}

// EqualNames compares two group names ignoring case and Unicode composition
func EqualNames(a, b string) bool {
	return NormalizeName(a) == NormalizeName(b)
}
