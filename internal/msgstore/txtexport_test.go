package msgstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iYassr/projectbudget/internal/logging"
)

const sampleConversation = `[2025-10-25 20:14:08] Me
Hey, are we still on for dinner tonight?

[2025-10-26 23:13:45]
شراء
بطاقة:9206;مدى-ابل باي
مبلغ:SAR 114.38
لدى:SASCO Qen
في:25-10-26 23:13

[2025-10-27 09:00:00] You spent $50.00 at Starbucks.
`

func TestTxtExportReaderRead(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "SAIB"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "SAIB", "SAIB.txt"), []byte(sampleConversation), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("ignored"), 0o644))

	reader := NewTxtExportReader(dir, logging.NewMockLogger())
	msgs, err := reader.Read()
	require.NoError(t, err)
	require.Len(t, msgs, 3)

	assert.Equal(t, "2025-10-25 20:14:08", msgs[0].Timestamp)
	assert.Equal(t, "SAIB", msgs[0].Sender)
	assert.Equal(t, "Me\nHey, are we still on for dinner tonight?", msgs[0].Text)

	// Multiline message bodies survive with their embedded newlines.
	assert.Contains(t, msgs[1].Text, "مبلغ:SAR 114.38")
	assert.Contains(t, msgs[1].Text, "لدى:SASCO Qen")
	assert.Equal(t, "2025-10-26 23:13:45", msgs[1].Timestamp)

	// Body text on the stamp line itself is kept.
	assert.Equal(t, "You spent $50.00 at Starbucks.", msgs[2].Text)
}

func TestTxtExportReaderMissingFolder(t *testing.T) {
	reader := NewTxtExportReader(filepath.Join(t.TempDir(), "nope"), logging.NewMockLogger())
	_, err := reader.Read()
	assert.Error(t, err)
}

func TestTxtExportReaderEmptyFolder(t *testing.T) {
	reader := NewTxtExportReader(t.TempDir(), logging.NewMockLogger())
	msgs, err := reader.Read()
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestParseConversationIgnoresPreambleLines(t *testing.T) {
	// Lines before the first timestamp belong to no message.
	msgs := parseConversation("orphan line\n[2025-01-02 10:00:00] hello\n", "X")
	require.Len(t, msgs, 1)
	assert.Equal(t, "hello", msgs[0].Text)
}
