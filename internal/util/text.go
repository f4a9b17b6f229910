package util

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeTitle trims surrounding whitespace, replaces invalid UTF-8 with
// U+FFFD and applies NFC normalization so visually identical titles compare
// equal. The result survives a JSON round trip unchanged.
func NormalizeTitle(s string) string {
	return norm.NFC.String(strings.ToValidUTF8(strings.TrimSpace(s), "\uFFFD"))
}

// IsBlank reports whether s is empty or whitespace only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
