package engine

import (
	"regexp"
	"strings"
)

// UnknownMerchant is the sentinel used when a template captures no usable
// merchant and carries no default label. Merchant strings are never empty.
const UnknownMerchant = "Unknown"

// merchantMaxLen caps normalized merchant names, in runes.
const merchantMaxLen = 50

var (
	parentheticalRe = regexp.MustCompile(`\s*\([^)]*\)\s*`)
	dateSuffixRe    = regexp.MustCompile(`(?i)\s+on\s+\d{2}.*`)
)

// NormalizeMerchant canonicalizes a raw merchant fragment: parenthetical
// noise and trailing transaction-date fragments are removed, surrounding
// punctuation is trimmed, the result is uppercased and truncated to 50
// runes. The function is idempotent and may return an empty string when
// the fragment holds nothing usable; callers resolve empties through
// MerchantOrDefault.
func NormalizeMerchant(raw string) string {
	name := parentheticalRe.ReplaceAllString(raw, " ")
	name = dateSuffixRe.ReplaceAllString(name, "")
	name = strings.Trim(name, ".,-;: \t\n")
	name = strings.ToUpper(name)

	if runes := []rune(name); len(runes) > merchantMaxLen {
		name = string(runes[:merchantMaxLen])
		name = strings.Trim(name, ".,-;: \t\n")
	}
	return name
}

// MerchantOrDefault resolves an empty normalized merchant to the rule's
// default label, then to the Unknown sentinel. Default labels are used
// verbatim.
func MerchantOrDefault(normalized, fallback string) string {
	if normalized != "" {
		return normalized
	}
	if fallback != "" {
		return fallback
	}
	return UnknownMerchant
}
