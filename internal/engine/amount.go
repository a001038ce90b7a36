package engine

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// currencySymbols maps single-character currency markers to ISO codes.
var currencySymbols = map[rune]string{
	'$': "USD",
	'€': "EUR",
	'£': "GBP",
	'₹': "INR",
}

// currencyCodeRe matches whole-word alphabetic currency markers. "Rs" is
// deliberately absent: it is ambiguous across rupee variants, so messages
// carrying only "Rs" fall back to the home currency.
var currencyCodeRe = regexp.MustCompile(`(?i)\b(SAR|SR|USD|EUR|GBP|INR)\b`)

// amountCruftRe strips everything that is not part of a plain decimal
// number: thousands separators, stray currency text, whitespace.
var amountCruftRe = regexp.MustCompile(`(?i)[,\s]|SAR|SR|USD|EUR|GBP|INR|ريال|[\$₹€£¥]`)

// DetectCurrency scans s for a recognized currency marker and returns its
// ISO code. Alphabetic markers only count as whole words, so card numbers
// and reference codes never alias to currencies.
func DetectCurrency(s string) (string, bool) {
	for _, r := range s {
		if code, ok := currencySymbols[r]; ok {
			return code, true
		}
	}
	if m := currencyCodeRe.FindString(s); m != "" {
		switch strings.ToUpper(m) {
		case "SR":
			return "SAR", true
		default:
			return strings.ToUpper(m), true
		}
	}
	if strings.Contains(s, "ريال") {
		return "SAR", true
	}
	return "", false
}

// NormalizeAmount parses a captured amount token into a positive decimal and
// resolves its currency. Currency resolution prefers a marker adjacent to
// the token, then anywhere in the message, then the home currency.
// ok is false when the token does not parse or is not strictly positive.
func NormalizeAmount(token, message, homeCurrency string) (decimal.Decimal, string, bool) {
	cleaned := amountCruftRe.ReplaceAllString(token, "")
	cleaned = strings.Trim(cleaned, ".")
	if cleaned == "" {
		return decimal.Zero, "", false
	}
	amount, err := decimal.NewFromString(cleaned)
	if err != nil || !amount.IsPositive() {
		return decimal.Zero, "", false
	}

	currency, ok := DetectCurrency(token)
	if !ok {
		currency, ok = DetectCurrency(message)
	}
	if !ok {
		currency = homeCurrency
	}
	return amount, currency, true
}
