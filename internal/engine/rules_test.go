package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every shipped rule against the message shape it was written for. The
// matched rule ID is asserted so a reordering or a loosened template that
// steals a match from a more specific one fails loudly.
func TestDefaultRulesCorpus(t *testing.T) {
	rules := DefaultRules()

	testCases := []struct {
		name        string
		text        string
		ruleID      string
		amountRaw   string
		merchantRaw string
	}{
		{
			name:        "arabic multiline purchase",
			text:        "شراء\nبطاقة:9206;مدى-ابل باي\nمبلغ:SAR 114.38\nلدى:SASCO Qen\nفي:25-10-26 23:13",
			ruleID:      "ar-purchase",
			amountRaw:   "114.38",
			merchantRaw: "SASCO Qen",
		},
		{
			name:      "arabic transfer",
			text:      "حوالة محلية\nعبر:SAIB\nمبلغ:SAR 5000\nمن:3057\nالى:3001",
			ruleID:    "ar-transfer",
			amountRaw: "5000",
		},
		{
			name:      "arabic transfer run-on labels",
			text:      "حوالة محلية\nالمصرفRJHI\nالمبلغSAR 10,000.00\nمنX3001\nالىX3057",
			ruleID:    "ar-transfer",
			amountRaw: "10,000.00",
		},
		{
			name:        "labeled amount and At",
			text:        "Amount:139.40 SAR\nAt:Keeta\nA/C:1234",
			ruleID:      "labeled-amount-at",
			amountRaw:   "139.40",
			merchantRaw: "Keeta",
		},
		{
			name:        "spent at",
			text:        "You spent $50.00 at Starbucks.",
			ruleID:      "spent-at",
			amountRaw:   "50.00",
			merchantRaw: "Starbucks",
		},
		{
			name:        "amount then debited for",
			text:        "Rs 150.00 debited from account for AMAZON.",
			ruleID:      "amount-debited-for",
			amountRaw:   "150.00",
			merchantRaw: "AMAZON",
		},
		{
			name:        "card used at",
			text:        "Your card ending 1234 has been used for Rs 500 at McDonald's on 12-03",
			ruleID:      "card-used-at",
			amountRaw:   "500",
			merchantRaw: "McDonald's",
		},
		{
			name:        "transaction of",
			text:        "Transaction of $25.50 at Uber.",
			ruleID:      "transaction-of",
			amountRaw:   "25.50",
			merchantRaw: "Uber",
		},
		{
			name:        "purchase of",
			text:        "Purchase of Rs.1,200.00 at SWIGGY.",
			ruleID:      "purchase-of",
			amountRaw:   "1,200.00",
			merchantRaw: "SWIGGY",
		},
		{
			name:      "atm withdrawal",
			text:      "ATM withdrawal Rs 2000",
			ruleID:    "atm-withdrawal",
			amountRaw: "2000",
		},
		{
			name:        "sent via wallet",
			text:        "Sent Rs 500 to John via PayTM",
			ruleID:      "sent-to-via",
			amountRaw:   "500",
			merchantRaw: "John",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got RuleMatch
			var matched bool
			for i := range rules {
				if m, ok := rules[i].Match(tc.text); ok {
					got, matched = m, true
					break
				}
			}
			require.True(t, matched, "no rule matched")
			assert.Equal(t, tc.ruleID, got.Rule.ID)
			assert.Equal(t, tc.amountRaw, got.AmountRaw)
			assert.Equal(t, tc.merchantRaw, got.MerchantRaw)
		})
	}
}

func TestDefaultRulesUniqueIDs(t *testing.T) {
	seen := map[string]bool{}
	for _, r := range DefaultRules() {
		assert.False(t, seen[r.ID], "duplicate rule id %s", r.ID)
		seen[r.ID] = true
	}
}

func TestRuleMatchNoMatch(t *testing.T) {
	rules := DefaultRules()
	for i := range rules {
		_, ok := rules[i].Match("Hey, are we still on for dinner tonight?")
		assert.False(t, ok, "rule %s matched conversational text", rules[i].ID)
	}
}
