// Package export writes expenses and reports to files.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/iYassr/projectbudget/internal/config"
	"github.com/iYassr/projectbudget/internal/models"
)

var log = config.Logger

// Delimiter is the column separator for CSV output.
var Delimiter rune = ','

// IncludeHeaders controls whether CSV output starts with a header row.
var IncludeHeaders = true

// SetDelimiter sets the delimiter for CSV output.
func SetDelimiter(delim rune) {
	Delimiter = delim
	gocsv.TagSeparator = fmt.Sprintf("%c", delim)
}

// SetIncludeHeaders toggles the CSV header row.
func SetIncludeHeaders(include bool) {
	IncludeHeaders = include
}

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger == nil {
		return
	}
	log = logger
}

// WriteExpensesToCSV writes expenses to a CSV file, creating parent
// directories as needed.
func WriteExpensesToCSV(expenses []models.Expense, csvFile string) error {
	if expenses == nil {
		return fmt.Errorf("cannot write nil expenses to CSV")
	}

	log.WithFields(logrus.Fields{
		"file":  csvFile,
		"count": len(expenses),
	}).Info("Writing expenses to CSV file")

	file, err := createOutputFile(csvFile)
	if err != nil {
		return err
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	// Force two decimal places on amounts so the CSV output is stable.
	for i := range expenses {
		if amt, err := decimal.NewFromString(expenses[i].Amount.StringFixed(2)); err == nil {
			expenses[i].Amount = amt
		}
	}

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = Delimiter
	safeWriter := gocsv.NewSafeCSVWriter(csvWriter)

	if IncludeHeaders {
		err = gocsv.MarshalCSV(expenses, safeWriter)
	} else {
		err = gocsv.MarshalCSVWithoutHeaders(expenses, safeWriter)
	}
	if err != nil {
		log.WithError(err).Error("Failed to marshal expenses to CSV")
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	log.WithField("file", csvFile).Info("Successfully wrote CSV file")
	return nil
}

// WriteExpensesToJSON writes expenses to an indented JSON file.
func WriteExpensesToJSON(expenses []models.Expense, jsonFile string) error {
	if expenses == nil {
		return fmt.Errorf("cannot write nil expenses to JSON")
	}

	log.WithFields(logrus.Fields{
		"file":  jsonFile,
		"count": len(expenses),
	}).Info("Writing expenses to JSON file")

	file, err := createOutputFile(jsonFile)
	if err != nil {
		return err
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(expenses); err != nil {
		log.WithError(err).Error("Failed to encode expenses to JSON")
		return fmt.Errorf("error writing JSON data: %w", err)
	}

	log.WithField("file", jsonFile).Info("Successfully wrote JSON file")
	return nil
}

// WriteReport writes a rendered text report to a file.
func WriteReport(report, reportFile string) error {
	file, err := createOutputFile(reportFile)
	if err != nil {
		return err
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	if _, err := file.WriteString(report); err != nil {
		return fmt.Errorf("error writing report: %w", err)
	}

	log.WithField("file", reportFile).Info("Successfully wrote report file")
	return nil
}

// createOutputFile creates the file and any missing parent directories.
func createOutputFile(path string) (*os.File, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		log.WithError(err).Error("Failed to create directory")
		return nil, fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		log.WithError(err).Error("Failed to create output file")
		return nil, fmt.Errorf("error creating output file: %w", err)
	}
	return file, nil
}
