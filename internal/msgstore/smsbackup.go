package msgstore

import (
	"fmt"
	"strconv"

	"gopkg.in/xmlpath.v2"

	"github.com/iYassr/projectbudget/internal/dateutils"
	"github.com/iYassr/projectbudget/internal/logging"
	"github.com/iYassr/projectbudget/internal/models"
	"github.com/iYassr/projectbudget/internal/xmlutils"
)

var (
	smsPath     = xmlpath.MustCompile(xmlutils.SMSBackup.Message)
	addressPath = xmlpath.MustCompile(xmlutils.SMSBackup.Address)
	bodyPath    = xmlpath.MustCompile(xmlutils.SMSBackup.Body)
	datePath    = xmlpath.MustCompile(xmlutils.SMSBackup.Date)
)

// SMSBackupReader parses the sms.xml files written by the Android
// "SMS Backup & Restore" app.
type SMSBackupReader struct {
	path string
	log  logging.Logger
}

// NewSMSBackupReader creates a reader over one sms.xml backup file.
func NewSMSBackupReader(path string, log logging.Logger) *SMSBackupReader {
	return &SMSBackupReader{path: path, log: log}
}

// Read parses the backup file. Messages missing a body are skipped; a
// missing or garbled date leaves the timestamp empty rather than dropping
// the message.
func (r *SMSBackupReader) Read() ([]models.RawMessage, error) {
	root, err := xmlutils.LoadXMLFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("reading sms backup: %w", err)
	}

	var msgs []models.RawMessage
	iter := smsPath.Iter(root)
	for iter.Next() {
		node := iter.Node()

		body, ok := bodyPath.String(node)
		if !ok || body == "" {
			continue
		}
		sender, _ := addressPath.String(node)

		var stamp string
		if raw, ok := datePath.String(node); ok {
			if millis, err := strconv.ParseInt(raw, 10, 64); err == nil {
				stamp = dateutils.FromEpochMillis(millis)
			}
		}

		msgs = append(msgs, models.RawMessage{
			Text:      body,
			Timestamp: stamp,
			Sender:    sender,
		})
	}

	r.log.Info("Read messages from SMS backup",
		logging.Field{Key: logging.FieldSource, Value: r.path},
		logging.Field{Key: logging.FieldCount, Value: len(msgs)})
	return msgs, nil
}
