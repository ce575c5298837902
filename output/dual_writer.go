package output

import (
	"fmt"
	"sync"

	"github.com/aluiziolira/go-catalog-insights/models"
)

// DualWriter outputs to both CSV and JSON formats simultaneously.
type DualWriter struct {
	csvWriter  *CSVWriter
	jsonWriter *JSONWriter
	mu         sync.Mutex
}

// NewDualWriter creates a dual writer for both CSV and JSON output.
func NewDualWriter(csvFilename, jsonFilename string) (*DualWriter, error) {
	csvWriter, err := NewCSVWriter(csvFilename)
	if err != nil {
		return nil, fmt.Errorf("create csv writer: %w", err)
	}

	jsonWriter, err := NewJSONWriter(jsonFilename)
	if err != nil {
		csvWriter.Close()
		return nil, fmt.Errorf("create json writer: %w", err)
	}

	return &DualWriter{
		csvWriter:  csvWriter,
		jsonWriter: jsonWriter,
	}, nil
}

// Write writes records to both sinks.
func (dw *DualWriter) Write(records []*models.Record) error {
	dw.mu.Lock()
	defer dw.mu.Unlock()

	if err := dw.csvWriter.Write(records); err != nil {
		return fmt.Errorf("csv write failed: %w", err)
	}
	if err := dw.jsonWriter.Write(records); err != nil {
		return fmt.Errorf("json write failed: %w", err)
	}
	return nil
}

// Close closes both underlying writers, reporting the first failure.
func (dw *DualWriter) Close() error {
	dw.mu.Lock()
	defer dw.mu.Unlock()

	csvErr := dw.csvWriter.Close()
	jsonErr := dw.jsonWriter.Close()
	if csvErr != nil {
		return fmt.Errorf("close csv writer: %w", csvErr)
	}
	if jsonErr != nil {
		return fmt.Errorf("close json writer: %w", jsonErr)
	}
	return nil
}

// Validate checks both sinks produced data.
func (dw *DualWriter) Validate() error {
	if err := dw.csvWriter.Validate(); err != nil {
		return err
	}
	return dw.jsonWriter.Validate()
}
