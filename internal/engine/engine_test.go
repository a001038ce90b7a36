package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iYassr/projectbudget/internal/models"
)

func testOwnership() Ownership {
	return NewOwnership(
		[]string{"3057", "3001", "X3057", "X3001", "YASSER ABDULRAHMAN ALDOSARI", "ياسر عبدالرحمن الدوس"},
		[]string{"Barq", "STC Pay", "Urpay", "tiqmo"},
	)
}

func TestExtractArabicPurchase(t *testing.T) {
	e := New("SAR")
	msg := models.RawMessage{
		Text: "شراء\nبطاقة:9206;مدى-ابل باي\nمبلغ:SAR 114.38\nلدى:SASCO Qen\nفي:25-10-26 23:13",
	}

	res := e.Extract(msg, testOwnership())

	require.Equal(t, StatusTransaction, res.Status)
	assert.Equal(t, "ar-purchase", res.RuleID)
	assert.True(t, decimal.RequireFromString("114.38").Equal(res.Transaction.Amount))
	assert.Equal(t, "SAR", res.Transaction.Currency)
	assert.Equal(t, "SASCO QEN", res.Transaction.Merchant)
	assert.Equal(t, KindExpense, res.Transaction.Kind)
}

func TestExtractTransferOwnership(t *testing.T) {
	e := New("SAR")
	internal := "حوالة محلية\nعبر:SAIB\nمبلغ:SAR 5000\nمن:3057\nالى:3001"
	external := "حوالة محلية\nعبر:SAIB\nمبلغ:SAR 5000\nمن:3057\nالى:أحمد الغامدي"

	res := e.Extract(models.RawMessage{Text: internal}, testOwnership())
	require.Equal(t, StatusSuppressed, res.Status)
	assert.Equal(t, ReasonInternalTransfer, res.Reason)

	res = e.Extract(models.RawMessage{Text: external}, testOwnership())
	require.Equal(t, StatusTransaction, res.Status)
	assert.Equal(t, KindTransfer, res.Transaction.Kind)
	assert.True(t, decimal.NewFromInt(5000).Equal(res.Transaction.Amount))
	assert.Equal(t, "SAR", res.Transaction.Currency)
	assert.Equal(t, "أحمد الغامدي", res.Transaction.Merchant)
}

// Changing either identifier of an internal transfer to an unconfigured one
// must flip the result back to a kept transaction.
func TestExtractInternalTransferFlips(t *testing.T) {
	e := New("SAR")
	own := testOwnership()

	unknownFrom := "حوالة محلية\nمبلغ:SAR 5000\nمن:9999\nالى:3001"
	res := e.Extract(models.RawMessage{Text: unknownFrom}, own)
	require.Equal(t, StatusTransaction, res.Status)
	assert.Equal(t, KindTransfer, res.Transaction.Kind)

	unknownTo := "حوالة محلية\nمبلغ:SAR 5000\nمن:3057\nالى:9999"
	res = e.Extract(models.RawMessage{Text: unknownTo}, own)
	require.Equal(t, StatusTransaction, res.Status)
	assert.Equal(t, "9999", res.Transaction.Merchant)
}

// The multi-leg format some banks use lists the destination twice, as a
// holder name and a masked account. Both resolve to the user.
func TestExtractMultiLegInternalTransfer(t *testing.T) {
	e := New("SAR")
	msg := "حوالة محلية\nالمصرفRJHI\nالمبلغSAR 10,000.00\nمنX3001\nالى:ياسر عبدالرحمن الدوس\nالىX3057\nالرسوم SAR 0.00\nفي10-25 23:13"

	res := e.Extract(models.RawMessage{Text: msg}, testOwnership())

	require.Equal(t, StatusSuppressed, res.Status)
	assert.Equal(t, ReasonInternalTransfer, res.Reason)
}

func TestExtractWalletTopup(t *testing.T) {
	e := New("SAR")
	own := testOwnership()

	topup := "شراء انترنت\nبطاقة:9206;مدى-ابل باي\nمن:3057\nمبلغ:SAR 100\nلدى:Barq\nفي:25-10-26 02:29"
	res := e.Extract(models.RawMessage{Text: topup}, own)
	require.Equal(t, StatusSuppressed, res.Status)
	assert.Equal(t, ReasonWalletTopup, res.Reason)

	// Same shape at a real merchant stays a purchase.
	purchase := "شراء انترنت\nبطاقة:9206;مدى-ابل باي\nمن:3057\nمبلغ:SAR 50\nلدى:Amazon\nفي:25-10-26 02:29"
	res = e.Extract(models.RawMessage{Text: purchase}, own)
	require.Equal(t, StatusTransaction, res.Status)
	assert.Equal(t, "AMAZON", res.Transaction.Merchant)
}

func TestExtractSuppressions(t *testing.T) {
	e := New("SAR")
	own := testOwnership()

	testCases := []struct {
		name   string
		text   string
		reason Reason
	}{
		{
			name:   "english otp",
			text:   "Your OTP code is 123456. Do not share this code with anyone.",
			reason: ReasonOTP,
		},
		{
			name:   "arabic otp",
			text:   "رمز التحقق الخاص بك: 123456. لا تشارك هذا الرمز مع أي شخص.",
			reason: ReasonOTP,
		},
		{
			name: "otp quoting an amount still suppressed",
			text: "Use verification code 445566 to approve a payment of SAR 500 at Amazon.",
			reason: ReasonOTP,
		},
		{
			name:   "arabic deposit",
			text:   "إيداع مبلغ SAR 5000 في حسابك",
			reason: ReasonDepositCredit,
		},
		{
			name:   "incoming transfer",
			text:   "حوالة محلية واردة\nعبر:SAIB\nمبلغ:SAR 10000\nالى:3057\nمن:YASSER ABDULRAHMAN ALDOSARI\nمن:3001\nفي:25-10-25 23:14",
			reason: ReasonDepositCredit,
		},
		{
			name:   "salary credited",
			text:   "Salary of SAR 15,000.00 credited to your account 3057.",
			reason: ReasonDepositCredit,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := e.Extract(models.RawMessage{Text: tc.text}, own)
			require.Equal(t, StatusSuppressed, res.Status)
			assert.Equal(t, tc.reason, res.Reason)
		})
	}
}

func TestExtractNoMatch(t *testing.T) {
	e := New("SAR")
	own := testOwnership()

	for _, text := range []string{
		"",
		"   \n  ",
		"Hey, are we still on for dinner tonight?",
		"Your package has been delivered.",
	} {
		res := e.Extract(models.RawMessage{Text: text}, own)
		assert.Equal(t, StatusNoMatch, res.Status, "text: %q", text)
	}
}

func TestExtractEnglishFormats(t *testing.T) {
	e := New("SAR")
	own := testOwnership()

	testCases := []struct {
		name     string
		text     string
		amount   string
		currency string
		merchant string
		kind     Kind
	}{
		{
			name:     "spent with symbol",
			text:     "You spent $50.00 at Starbucks.",
			amount:   "50.00",
			currency: "USD",
			merchant: "STARBUCKS",
			kind:     KindExpense,
		},
		{
			name:     "ambiguous Rs falls back to home currency",
			text:     "You have spent Rs.2,500.00 at AMAZON on 16-Jan-2025",
			amount:   "2500.00",
			currency: "SAR",
			merchant: "AMAZON",
			kind:     KindExpense,
		},
		{
			name:     "atm withdrawal uses default merchant",
			text:     "ATM withdrawal Rs 5000",
			amount:   "5000",
			currency: "SAR",
			merchant: "ATM Withdrawal",
			kind:     KindExpense,
		},
		{
			name:     "sent via wallet to external recipient",
			text:     "Sent Rs 500 to John via PayTM",
			amount:   "500",
			currency: "SAR",
			merchant: "JOHN",
			kind:     KindTransfer,
		},
		{
			name:     "outgoing transfer with delivery confirmation",
			text:     "Sent Rs 500 to John via PayTM, recipient received it",
			amount:   "500",
			currency: "SAR",
			merchant: "JOHN",
			kind:     KindTransfer,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := e.Extract(models.RawMessage{Text: tc.text}, own)
			require.Equal(t, StatusTransaction, res.Status)
			assert.True(t, decimal.RequireFromString(tc.amount).Equal(res.Transaction.Amount),
				"expected %s, got %s", tc.amount, res.Transaction.Amount)
			assert.Equal(t, tc.currency, res.Transaction.Currency)
			assert.Equal(t, tc.merchant, res.Transaction.Merchant)
			assert.Equal(t, tc.kind, res.Transaction.Kind)
		})
	}
}

func TestExtractInvalidAmounts(t *testing.T) {
	e := New("SAR")
	own := testOwnership()

	res := e.Extract(models.RawMessage{Text: "شراء\nمبلغ:SAR 0\nلدى:SASCO"}, own)
	require.Equal(t, StatusSuppressed, res.Status)
	assert.Equal(t, ReasonInvalidAmount, res.Reason)

	// A negative amount never produces a transaction.
	res = e.Extract(models.RawMessage{Text: "You spent $-5.00 at Starbucks."}, own)
	assert.NotEqual(t, StatusTransaction, res.Status)
}

// Extract is pure: repeated calls on the same inputs give identical results
// and never mutate the shared ownership configuration.
func TestExtractIdempotent(t *testing.T) {
	e := New("SAR")
	own := testOwnership()
	msg := models.RawMessage{Text: "حوالة محلية\nمبلغ:SAR 5000\nمن:3057\nالى:أحمد الغامدي"}

	first := e.Extract(msg, own)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, e.Extract(msg, own))
	}
}

func TestExtractZeroOwnershipKeepsTransfers(t *testing.T) {
	e := New("SAR")
	msg := models.RawMessage{Text: "حوالة محلية\nمبلغ:SAR 5000\nمن:3057\nالى:3001"}

	res := e.Extract(msg, Ownership{})

	require.Equal(t, StatusTransaction, res.Status)
	assert.Equal(t, KindTransfer, res.Transaction.Kind)
}
