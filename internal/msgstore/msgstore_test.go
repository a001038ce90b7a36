package msgstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/iYassr/projectbudget/internal/models"
)

func msg(text, stamp, sender string) models.RawMessage {
	return models.RawMessage{Text: text, Timestamp: stamp, Sender: sender}
}

func TestFilterKeywords(t *testing.T) {
	f := Filter{Keywords: DefaultFinancialKeywords()}

	assert.True(t, f.Keep(msg("شراء مبلغ:SAR 114.38 لدى:SASCO", "2025-10-26 23:13:45", "SAIB")))
	assert.True(t, f.Keep(msg("Your card was used", "2025-10-26 23:13:45", "X")))
	// Keyword matching is case-insensitive.
	assert.True(t, f.Keep(msg("pos purchases alert", "2025-10-26 23:13:45", "X")))
	assert.False(t, f.Keep(msg("Hey, are we still on for dinner tonight?", "2025-10-26 23:13:45", "Ali")))
}

func TestFilterSenders(t *testing.T) {
	f := Filter{Senders: []string{"SAIB", "AlRajhiBank"}}

	assert.True(t, f.Keep(msg("x", "", "SAIB")))
	assert.True(t, f.Keep(msg("x", "", "alrajhibank")))
	assert.False(t, f.Keep(msg("x", "", "Ali")))
}

func TestFilterDateRange(t *testing.T) {
	from := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
	f := Filter{From: from, To: to}

	assert.True(t, f.Keep(msg("x", "2025-10-15 12:00:00", "")))
	assert.False(t, f.Keep(msg("x", "2025-09-30 23:59:59", "")))
	// The upper bound is exclusive.
	assert.False(t, f.Keep(msg("x", "2025-11-01 00:00:00", "")))
	// Unparseable timestamps are dropped when a window is active.
	assert.False(t, f.Keep(msg("x", "yesterday", "")))

	// Without a window the timestamp is not consulted at all.
	assert.True(t, Filter{}.Keep(msg("x", "yesterday", "")))
}

func TestApplyPreservesOrder(t *testing.T) {
	msgs := []models.RawMessage{
		msg("شراء 1", "", "A"),
		msg("noise", "", "B"),
		msg("transfer 2", "", "C"),
	}

	kept := Apply(msgs, Filter{Keywords: []string{"شراء", "transfer"}})

	assert.Equal(t, []models.RawMessage{msgs[0], msgs[2]}, kept)
}
