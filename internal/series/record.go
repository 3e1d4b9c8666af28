package series

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// RawRecord is one aggregated row of the input document:
//
//	{"_id": "<category or YYYY-MM-DD>", "total": <number or numeric string>}
//
// Pointers keep "field absent" distinguishable from a zero value so the
// normalizer can reject incomplete rows instead of silently charting them.
type RawRecord struct {
	ID    *string     `json:"_id"`
	Total interface{} `json:"total"`
}

// NewRawRecord builds a record in code. JSON input decodes directly.
func NewRawRecord(id string, total interface{}) RawRecord {
	return RawRecord{ID: &id, Total: total}
}

// fields validates the record at position i and returns its label and
// coerced total. Any defect is wrapped in ErrMalformedRecord.
func (r RawRecord) fields(i int) (string, float64, error) {
	if r.ID == nil {
		return "", 0, fmt.Errorf("%w: record %d missing _id", ErrMalformedRecord, i)
	}
	if r.Total == nil {
		return "", 0, fmt.Errorf("%w: record %d missing total", ErrMalformedRecord, i)
	}
	value, err := coerceTotal(r.Total)
	if err != nil {
		return "", 0, fmt.Errorf("%w: record %d (%q): %v", ErrMalformedRecord, i, *r.ID, err)
	}
	return *r.ID, value, nil
}

// coerceTotal accepts the shapes encoding/json can hand us for "total".
// Numeric strings are common in the wild (totals serialized upstream as
// decimal strings), so they coerce too; anything else is a hard error.
func coerceTotal(v interface{}) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case json.Number:
		return t.Float64()
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, fmt.Errorf("total %q is not numeric", t)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("total has unsupported type %T", v)
	}
}
