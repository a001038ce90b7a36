package engine

import "regexp"

// PatternRule is one entry of the ordered pattern library. Each rule binds a
// compiled template to the capture-group layout and the transaction kind it
// implies. Rules are evaluated in declaration order and the first structural
// match with a valid amount wins.
type PatternRule struct {
	// ID is a stable, human-readable identifier used in logs and results.
	ID string
	// Kind is the transaction kind this template implies.
	Kind Kind
	// AmountGroup is the 1-based capture group holding the raw amount token.
	AmountGroup int
	// MerchantGroup is the 1-based capture group holding the raw merchant
	// fragment, or 0 when the template captures no merchant.
	MerchantGroup int
	// DefaultMerchant is used when MerchantGroup is 0 or captures nothing
	// usable. Empty means fall back to the Unknown sentinel.
	DefaultMerchant string

	re *regexp.Regexp
}

// RuleMatch is the raw outcome of a structural match, before amount and
// merchant normalization.
type RuleMatch struct {
	Rule        *PatternRule
	AmountRaw   string
	MerchantRaw string
}

// NewPatternRule compiles expr and returns the rule. Expressions are written
// with (?is) so templates match case-insensitively across embedded newlines.
// It panics on an invalid expression; the shipped library is compiled at
// package init and custom rules are expected to be validated by tests.
func NewPatternRule(id string, kind Kind, expr string, amountGroup, merchantGroup int, defaultMerchant string) PatternRule {
	return PatternRule{
		ID:              id,
		Kind:            kind,
		AmountGroup:     amountGroup,
		MerchantGroup:   merchantGroup,
		DefaultMerchant: defaultMerchant,
		re:              regexp.MustCompile(expr),
	}
}

// Match runs the rule's template against text and returns the raw captures.
// A structural match is reported even when the amount token later fails
// normalization; that decision belongs to the engine.
func (r *PatternRule) Match(text string) (RuleMatch, bool) {
	groups := r.re.FindStringSubmatch(text)
	if groups == nil {
		return RuleMatch{}, false
	}
	m := RuleMatch{Rule: r}
	if r.AmountGroup > 0 && r.AmountGroup < len(groups) {
		m.AmountRaw = groups[r.AmountGroup]
	}
	if r.MerchantGroup > 0 && r.MerchantGroup < len(groups) {
		m.MerchantRaw = groups[r.MerchantGroup]
	}
	return m, true
}
