// Package msgstore reads raw bank messages out of local message exports.
//
// Two export formats are supported: the per-conversation TXT folders that
// imessage-exporter writes, and the sms.xml files produced by SMS Backup &
// Restore on Android. Readers return every message they can decode;
// filtering down to financial traffic is a separate, composable step.
package msgstore

import (
	"strings"
	"time"

	"github.com/iYassr/projectbudget/internal/dateutils"
	"github.com/iYassr/projectbudget/internal/models"
)

// Reader yields raw messages from one export source.
type Reader interface {
	Read() ([]models.RawMessage, error)
}

// DefaultFinancialKeywords is the prefilter vocabulary: a message must
// contain at least one of these (case-insensitive) to be worth handing to
// the extraction engine. Covers Arabic and English bank phrasing plus
// common Saudi bank sender literals.
func DefaultFinancialKeywords() []string {
	return []string{
		"SAR", "ريال", "شراء", "مبلغ", "بطاقة", "حوالة", "رصيد",
		"purchase", "amount", "card", "visa", "transfer", "balance",
		"SAIB", "RJHI", "مدى", "فيزا", "Online Purchases", "POS Purchases",
	}
}

// Filter narrows a message set before extraction. Zero-value fields are
// inactive: an empty keyword list keeps everything, a zero time bound is
// open-ended.
type Filter struct {
	Keywords []string
	Senders  []string
	From     time.Time
	To       time.Time
}

// Keep reports whether msg passes every active criterion.
func (f Filter) Keep(msg models.RawMessage) bool {
	if len(f.Keywords) > 0 && !containsAnyFold(msg.Text, f.Keywords) {
		return false
	}
	if len(f.Senders) > 0 && !senderAllowed(msg.Sender, f.Senders) {
		return false
	}
	if !f.From.IsZero() || !f.To.IsZero() {
		ts, err := dateutils.ParseTimestamp(msg.Timestamp)
		if err != nil {
			// Messages with unreadable timestamps are dropped only when a
			// date window was requested.
			return false
		}
		if !f.From.IsZero() && ts.Before(f.From) {
			return false
		}
		if !f.To.IsZero() && !ts.Before(f.To) {
			return false
		}
	}
	return true
}

// Apply returns the messages that pass the filter, preserving order.
func Apply(msgs []models.RawMessage, f Filter) []models.RawMessage {
	kept := make([]models.RawMessage, 0, len(msgs))
	for _, m := range msgs {
		if f.Keep(m) {
			kept = append(kept, m)
		}
	}
	return kept
}

func containsAnyFold(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

func senderAllowed(sender string, allowed []string) bool {
	for _, a := range allowed {
		if strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(sender)) {
			return true
		}
	}
	return false
}
