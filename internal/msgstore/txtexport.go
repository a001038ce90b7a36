package msgstore

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/iYassr/projectbudget/internal/logging"
	"github.com/iYassr/projectbudget/internal/models"
)

// stampRe matches the timestamp line imessage-exporter writes at the start
// of each message block, e.g. "[2025-10-25 20:14:08]".
var stampRe = regexp.MustCompile(`\[(\d{4}-\d{2}-\d{2}\s+\d{2}:\d{2}:\d{2})\]`)

// TxtExportReader walks an imessage-exporter TXT folder. Each .txt file is
// one conversation; the file name (minus extension) identifies the sender.
type TxtExportReader struct {
	dir string
	log logging.Logger
}

// NewTxtExportReader creates a reader over an export folder.
func NewTxtExportReader(dir string, log logging.Logger) *TxtExportReader {
	return &TxtExportReader{dir: dir, log: log}
}

// Read parses every conversation file under the export folder. A file that
// cannot be read is logged and skipped; an unreadable folder is an error.
func (r *TxtExportReader) Read() ([]models.RawMessage, error) {
	if _, err := os.Stat(r.dir); err != nil {
		return nil, fmt.Errorf("export folder not accessible: %w", err)
	}

	var msgs []models.RawMessage
	files := 0
	err := filepath.WalkDir(r.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".txt") {
			return nil
		}
		files++

		data, err := os.ReadFile(path)
		if err != nil {
			r.log.WithError(err).Warn("Skipping unreadable conversation file",
				logging.Field{Key: logging.FieldFile, Value: path})
			return nil
		}

		sender := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		msgs = append(msgs, parseConversation(string(data), sender)...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking export folder: %w", err)
	}

	r.log.Info("Read messages from TXT export",
		logging.Field{Key: logging.FieldSource, Value: r.dir},
		logging.Field{Key: logging.FieldFile, Value: files},
		logging.Field{Key: logging.FieldCount, Value: len(msgs)})
	return msgs, nil
}

// parseConversation splits one conversation file into messages. A timestamp
// line opens a new message; following non-empty lines up to the next stamp
// belong to its body.
func parseConversation(content, sender string) []models.RawMessage {
	var msgs []models.RawMessage
	var body []string
	var stamp string

	flush := func() {
		if stamp == "" || len(body) == 0 {
			return
		}
		text := strings.TrimSpace(strings.Join(body, "\n"))
		if text != "" {
			msgs = append(msgs, models.RawMessage{
				Text:      text,
				Timestamp: stamp,
				Sender:    sender,
			})
		}
	}

	for _, line := range strings.Split(content, "\n") {
		if m := stampRe.FindStringSubmatch(line); m != nil {
			flush()
			stamp = m[1]
			body = body[:0]
			// Anything after the stamp on the same line starts the body.
			if idx := strings.Index(line, "]"); idx >= 0 {
				if rest := strings.TrimSpace(line[idx+1:]); rest != "" {
					body = append(body, rest)
				}
			}
			continue
		}
		if trimmed := strings.TrimSpace(line); trimmed != "" && stamp != "" {
			body = append(body, trimmed)
		}
	}
	flush()
	return msgs
}
