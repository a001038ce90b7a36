package engine

import (
	"regexp"
	"strings"
)

// Ownership holds the user's own account identifiers and wallet names,
// case-folded once at construction. It drives the internal-transfer and
// wallet-top-up suppressions. The zero value owns nothing, which makes
// every transfer look external.
type Ownership struct {
	identifiers map[string]struct{}
	wallets     map[string]struct{}
}

// NewOwnership builds an Ownership from configured account identifiers
// (last-4 digits, masked forms like "X3057", or full holder names) and
// wallet service names. Wallet names are also identifiers: a transfer leg
// pointing at a configured wallet is an owned leg.
func NewOwnership(identifiers, wallets []string) Ownership {
	o := Ownership{
		identifiers: make(map[string]struct{}, len(identifiers)+len(wallets)),
		wallets:     make(map[string]struct{}, len(wallets)),
	}
	for _, id := range identifiers {
		if n := normalizeIdentifier(id); n != "" {
			o.identifiers[n] = struct{}{}
		}
	}
	for _, w := range wallets {
		n := normalizeIdentifier(w)
		if n == "" {
			continue
		}
		o.identifiers[n] = struct{}{}
		o.wallets[n] = struct{}{}
	}
	return o
}

func normalizeIdentifier(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Owns reports whether a captured transfer leg resolves to one of the
// user's identifiers. A leg matches on whole-field equality or when one of
// its whitespace-separated tokens equals an identifier; identifiers are
// never matched as free substrings, so account "3057" does not fire on an
// amount like "13057.00".
func (o Ownership) Owns(leg string) bool {
	field := normalizeIdentifier(leg)
	if field == "" {
		return false
	}
	if _, ok := o.identifiers[field]; ok {
		return true
	}
	for _, tok := range strings.Fields(field) {
		tok = strings.Trim(tok, ".,;:")
		if _, ok := o.identifiers[tok]; ok {
			return true
		}
	}
	return false
}

// OwnsAll reports whether every leg in the slice resolves to the user.
// It is false for an empty slice.
func (o Ownership) OwnsAll(legs []string) bool {
	if len(legs) == 0 {
		return false
	}
	for _, leg := range legs {
		if !o.Owns(leg) {
			return false
		}
	}
	return true
}

// IsWallet reports whether name is one of the user's wallet services.
func (o Ownership) IsWallet(name string) bool {
	_, ok := o.wallets[normalizeIdentifier(name)]
	return ok
}

// AnyWallet reports whether any leg resolves to a configured wallet.
func (o Ownership) AnyWallet(legs []string) bool {
	for _, leg := range legs {
		if o.IsWallet(normalizeIdentifier(leg)) {
			return true
		}
	}
	return false
}

// Transfer leg fields appear one per line, labeled in Arabic or English.
// Some banks omit the colon and run the label straight into the value
// ("منX3001"), so the separator is optional.
var (
	fromLegRe = regexp.MustCompile(`(?im)^\s*(?:من|from\b)\s*:?\s*(.+?)\s*$`)
	toLegRe   = regexp.MustCompile(`(?im)^\s*(?:الى|إلى|to\b)\s*:?\s*(.+?)\s*$`)
)

// ExtractTransferLegs pulls every labeled origin and destination field out
// of a transfer message. Only these structured fields take part in
// ownership matching; free text elsewhere in the message never does.
func ExtractTransferLegs(text string) (from, to []string) {
	for _, m := range fromLegRe.FindAllStringSubmatch(text, -1) {
		if leg := strings.TrimSpace(m[1]); leg != "" {
			from = append(from, leg)
		}
	}
	for _, m := range toLegRe.FindAllStringSubmatch(text, -1) {
		if leg := strings.TrimSpace(m[1]); leg != "" {
			to = append(to, leg)
		}
	}
	return from, to
}
