package engine

import "regexp"

// Verification-code cues cover the English and Arabic phrasings banks use
// for one-time codes. An OTP message often quotes an amount ("to approve a
// payment of SAR 500"), so this check runs before any amount template.
var otpCueRe = regexp.MustCompile(`(?i)` +
	`\botp\b` +
	`|one[-\s]?time\s+pass(?:word|code)` +
	`|verification\s+code` +
	`|do\s+not\s+share` +
	`|رمز\s+التحقق` +
	`|رمز\s+التفعيل` +
	`|لا\s+تشارك`)

// Incoming-funds cues: deposits, salary credits and inbound transfers.
// واردة marks an inbound حوالة; the bare deposit words only suppress when
// no outgoing spend verb is present, so purchase alerts that mention a
// credited balance are untouched. The spend set includes the outgoing
// transfer verbs (sent, transferred, صادرة) but not the bare word
// "transfer", which inbound alerts ("Transfer received") also carry.
var (
	incomingCueRe = regexp.MustCompile(`(?i)واردة|إيداع|ايداع|\bdeposit(?:ed)?\b|\bcredited\b|\breceived\b`)
	spendVerbRe   = regexp.MustCompile(`(?i)شراء|سحب|خصم|صادرة|\bspent\b|\bpaid\b|\bdebited\b|\bcharged\b|\bpurchase\b|\bwithdraw(?:al|n)?\b|\bsent\b|\btransferred\b`)
)

// IsVerificationCode reports whether text is a one-time-code message.
func IsVerificationCode(text string) bool {
	return otpCueRe.MatchString(text)
}

// IsIncomingFunds reports whether text announces money coming in rather
// than going out.
func IsIncomingFunds(text string) bool {
	return incomingCueRe.MatchString(text) && !spendVerbRe.MatchString(text)
}
