package engine

// DefaultRules returns the shipped pattern library, covering the Arabic and
// English bank notification formats seen in Saudi banking SMS plus the
// generic card-alert phrasings. Order matters: specific, field-labeled
// templates come before loose verb-based ones so that a message matching
// both is captured by the cleaner template.
//
// All templates use (?is): bank messages interleave case freely and fold
// fields across newlines.
func DefaultRules() []PatternRule {
	return []PatternRule{
		// "شراء ... مبلغ:SAR 114.38 لدى:SASCO Qen في:25-10-26"
		NewPatternRule("ar-purchase", KindExpense,
			`(?is)شراء.*?(?:مبلغ|المبلغ):?\s*(?:SAR|SR|ريال)?\s*([\d,]+\.?\d*)\s*(?:لدى|لدي):?\s*(.+?)(?:\s+في|\n|$)`,
			1, 2, ""),

		// "حوالة محلية ... مبلغ:SAR 5000 من:3057 الى:أحمد"; the from/to
		// legs are resolved by the ownership filter, not captured here.
		NewPatternRule("ar-transfer", KindTransfer,
			`(?is)حوالة.*?(?:مبلغ|المبلغ):?\s*(?:SAR|SR|ريال)?\s*([\d,]+\.?\d*)`,
			1, 0, "Transfer"),

		// "Amount:139.40 SAR ... At:Keeta"
		NewPatternRule("labeled-amount-at", KindExpense,
			`(?is)(?:Amount|مبلغ):?\s*(?:SAR|SR|ريال)?\s*([\d,]+\.?\d*)\s*(?:SAR|SR|ريال)?.*?(?:At|لدى|لدي):?\s*(.+?)(?:\s+A/C|\n|$)`,
			1, 2, ""),

		// "spent $50.00 at Starbucks"
		NewPatternRule("spent-at", KindExpense,
			`(?is)(?:spent|paid|debited|charged)\s*(?:rs\.?|inr|usd|sar|sr)?\s*[\$₹€£¥]?\s*([\d,]+\.?\d*)\s*(?:at|on|to|for)?\s*(.+?)(?:\s+on|\.|$)`,
			1, 2, ""),

		// "Rs 150.00 debited from account for AMAZON"
		NewPatternRule("amount-debited-for", KindExpense,
			`(?is)(?:rs\.?|inr|usd|sar|sr)?\s*[\$₹€£¥]?\s*([\d,]+\.?\d*)\s*(?:debited|withdrawn|paid|spent).*?(?:for|at|to)\s*(.+?)(?:\s+on|\.|$)`,
			1, 2, ""),

		// "Your card ending 1234 has been used for Rs 500 at McDonald's"
		NewPatternRule("card-used-at", KindExpense,
			`(?is)card.*?(?:used|charged|debited).*?(?:for|of)\s*(?:rs\.?|inr|usd|sar|sr)?\s*[\$₹€£¥]?\s*([\d,]+\.?\d*)\s*(?:at|on|to|for)\s*(.+?)(?:\s+on|\.|$)`,
			1, 2, ""),

		// "Transaction of $25.50 at Uber"
		NewPatternRule("transaction-of", KindExpense,
			`(?is)transaction.*?(?:of|for)\s*(?:rs\.?|inr|usd|sar|sr)?\s*[\$₹€£¥]?\s*([\d,]+\.?\d*)\s*(?:at|on|to|for)?\s*(.+?)(?:\s+on|\.|$)`,
			1, 2, ""),

		// "Purchase of Rs.1,200.00 at SWIGGY"
		NewPatternRule("purchase-of", KindExpense,
			`(?is)purchase.*?(?:of|for)\s*(?:rs\.?|inr|usd|sar|sr)?\s*[\$₹€£¥]?\s*([\d,]+\.?\d*)\s*(?:at|on|to|for)?\s*(.+?)(?:\s+on|\.|$)`,
			1, 2, ""),

		// "ATM withdrawal Rs 2000"; no merchant on cash withdrawals.
		NewPatternRule("atm-withdrawal", KindExpense,
			`(?is)(?:atm|cash).*?(?:withdrawal|withdrawn)\s*(?:of)?\s*(?:rs\.?|inr|usd|sar|sr)?\s*[\$₹€£¥]?\s*([\d,]+\.?\d*)`,
			1, 0, "ATM Withdrawal"),

		// "Sent Rs 500 to John via PayTM"
		NewPatternRule("sent-to-via", KindTransfer,
			`(?is)(?:sent|transferred)\s*(?:rs\.?|inr|usd|sar|sr)?\s*[\$₹€£¥]?\s*([\d,]+\.?\d*)\s*to\s*(.+?)\s*via`,
			1, 2, "Transfer"),
	}
}
