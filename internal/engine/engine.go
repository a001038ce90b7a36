// Package engine implements the message-to-transaction extraction engine.
//
// The engine is a pure function over (RawMessage, Ownership): it holds no
// mutable state, performs no I/O and is safe for unbounded concurrent use.
// Callers load the pattern library and ownership configuration once per
// session and share them by reference.
package engine

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iYassr/projectbudget/internal/models"
)

// Kind is the transaction kind decided by the classifier.
type Kind string

// Transaction kinds.
const (
	KindExpense  Kind = models.KindExpense
	KindTransfer Kind = models.KindTransfer
)

// Status discriminates the three possible outcomes of an extraction.
type Status int

const (
	// StatusNoMatch means the text did not fit any known template. This is
	// the expected majority outcome for non-financial text, not an error.
	StatusNoMatch Status = iota
	// StatusSuppressed means the message looked like a transaction but was
	// policy-excluded (OTP, deposit, internal transfer, ...).
	StatusSuppressed
	// StatusTransaction means a real out-of-pocket transaction was extracted.
	StatusTransaction
)

// Reason explains why a message was suppressed.
type Reason string

// Suppression reasons, exposed for caller-side observability.
const (
	ReasonOTP              Reason = "otp"
	ReasonDepositCredit    Reason = "deposit_credit"
	ReasonInternalTransfer Reason = "internal_transfer"
	ReasonWalletTopup      Reason = "wallet_topup"
	ReasonInvalidAmount    Reason = "invalid_amount"
)

// Transaction is the structured payload of a successful extraction.
// Amount is always positive and Currency is a 3-letter code.
type Transaction struct {
	Amount   decimal.Decimal
	Currency string
	Merchant string
	Kind     Kind
}

// Result is the outcome of extracting a single message. Exactly one Result
// is produced per input message.
type Result struct {
	Status      Status
	Reason      Reason // set when Status == StatusSuppressed
	RuleID      string // ID of the matching pattern rule, when one matched
	Transaction Transaction
}

// IsTransaction reports whether the result carries an extracted transaction.
func (r Result) IsTransaction() bool {
	return r.Status == StatusTransaction
}

func noMatch() Result {
	return Result{Status: StatusNoMatch}
}

func suppressed(reason Reason, ruleID string) Result {
	return Result{Status: StatusSuppressed, Reason: reason, RuleID: ruleID}
}

// Engine evaluates the ordered pattern library against message text.
// The zero value is not usable; construct with New.
type Engine struct {
	rules        []PatternRule
	homeCurrency string
}

// New creates an Engine with the shipped pattern library and the given home
// currency, used when a message carries no explicit currency marker.
func New(homeCurrency string) *Engine {
	return NewWithRules(homeCurrency, DefaultRules())
}

// NewWithRules creates an Engine with a custom ordered rule set. Earlier
// rules take priority: the first structural match wins, deterministically.
func NewWithRules(homeCurrency string, rules []PatternRule) *Engine {
	if homeCurrency == "" {
		homeCurrency = "SAR"
	}
	return &Engine{
		rules:        rules,
		homeCurrency: homeCurrency,
	}
}

// Rules returns the engine's ordered rule set.
func (e *Engine) Rules() []PatternRule {
	return e.rules
}

// Extract classifies one message and returns exactly one Result. It never
// returns an error and never panics, whatever the input text contains.
func (e *Engine) Extract(msg models.RawMessage, own Ownership) Result {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return noMatch()
	}

	// Policy exclusions come first: an OTP or a pure incoming-funds
	// notification is never a transaction, whatever shape it has.
	if IsVerificationCode(text) {
		return suppressed(ReasonOTP, "")
	}
	if IsIncomingFunds(text) {
		return suppressed(ReasonDepositCredit, "")
	}

	// Structural match against the ordered pattern library.
	structuralRule := ""
	for i := range e.rules {
		rule := &e.rules[i]
		m, ok := rule.Match(text)
		if !ok {
			continue
		}

		amount, currency, ok := NormalizeAmount(m.AmountRaw, text, e.homeCurrency)
		if !ok {
			// A garbled or non-positive amount must not end the scan:
			// a later, more specific rule may still capture cleanly.
			if structuralRule == "" {
				structuralRule = rule.ID
			}
			continue
		}

		switch rule.Kind {
		case KindTransfer:
			return e.resolveTransfer(text, m, own, amount, currency)
		default:
			return e.resolveExpense(m, own, amount, currency)
		}
	}

	if structuralRule != "" {
		return suppressed(ReasonInvalidAmount, structuralRule)
	}
	return noMatch()
}

// resolveExpense finalizes a purchase-style match. A purchase whose
// counterparty is one of the user's own wallets is a wallet top-up, not a
// final expense.
func (e *Engine) resolveExpense(m RuleMatch, own Ownership, amount decimal.Decimal, currency string) Result {
	merchant := MerchantOrDefault(NormalizeMerchant(m.MerchantRaw), m.Rule.DefaultMerchant)
	if own.IsWallet(merchant) {
		return suppressed(ReasonWalletTopup, m.Rule.ID)
	}
	return Result{
		Status: StatusTransaction,
		RuleID: m.Rule.ID,
		Transaction: Transaction{
			Amount:   amount,
			Currency: currency,
			Merchant: merchant,
			Kind:     KindExpense,
		},
	}
}

// resolveTransfer finalizes a transfer-style match by applying the
// ownership filter to the structurally captured from/to legs.
func (e *Engine) resolveTransfer(text string, m RuleMatch, own Ownership, amount decimal.Decimal, currency string) Result {
	fromLegs, toLegs := ExtractTransferLegs(text)
	if len(toLegs) == 0 && m.MerchantRaw != "" {
		// Inline recipient ("sent ... to John via PayTM") with no labeled
		// destination field.
		toLegs = []string{m.MerchantRaw}
	}

	if len(toLegs) > 0 && own.OwnsAll(toLegs) {
		if own.AnyWallet(toLegs) {
			return suppressed(ReasonWalletTopup, m.Rule.ID)
		}
		if len(fromLegs) > 0 && own.OwnsAll(fromLegs) {
			return suppressed(ReasonInternalTransfer, m.Rule.ID)
		}
		// Destination is ours but the origin is absent or unrecognized:
		// not provably internal, so keep it.
	}

	merchant := transferMerchant(toLegs, own, m)
	return Result{
		Status: StatusTransaction,
		RuleID: m.Rule.ID,
		Transaction: Transaction{
			Amount:   amount,
			Currency: currency,
			Merchant: merchant,
			Kind:     KindTransfer,
		},
	}
}

// transferMerchant picks the counterparty shown for an outgoing transfer:
// the first destination leg that is not one of the user's own identifiers,
// falling back to the rule's capture or default label.
func transferMerchant(toLegs []string, own Ownership, m RuleMatch) string {
	for _, leg := range toLegs {
		if !own.Owns(leg) {
			return MerchantOrDefault(NormalizeMerchant(leg), m.Rule.DefaultMerchant)
		}
	}
	return MerchantOrDefault(NormalizeMerchant(m.MerchantRaw), m.Rule.DefaultMerchant)
}
