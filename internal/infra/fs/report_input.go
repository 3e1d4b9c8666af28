// Package fs loads report input documents from disk.
package fs

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"expense-reports/internal/infra/log"
	"expense-reports/internal/series"

	"go.uber.org/zap"
)

var (
	// ErrInputMissing is returned when the input file does not exist.
	ErrInputMissing = errors.New("input file not found")
	// ErrMalformedJSON is returned when the input file is not a JSON array
	// of report records.
	ErrMalformedJSON = errors.New("input is not valid JSON")
)

// MaxInputSize caps how much of an input file we are willing to decode.
const MaxInputSize = 10 * 1024 * 1024

// LoadRecords reads and decodes the aggregated totals document at path.
func LoadRecords(path string) ([]series.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrInputMissing, path)
		}
		return nil, fmt.Errorf("failed to open input file %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxInputSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read input file %s: %w", path, err)
	}
	if len(data) > MaxInputSize {
		return nil, fmt.Errorf("input file %s exceeds %d bytes", path, MaxInputSize)
	}

	var records []series.RawRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}

	log.LogDebug("Input document decoded",
		zap.String("path", path),
		zap.Int("records", len(records)))
	return records, nil
}
