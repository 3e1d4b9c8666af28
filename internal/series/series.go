// Package series turns raw aggregated report records into plot-ready series.
// It is the only place that knows the validation, coercion and gap-filling
// rules; rendering and upload live elsewhere.
package series

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrEmptyInput is returned when a category report receives no records.
	ErrEmptyInput = errors.New("no records in input")
	// ErrMalformedRecord is returned when a record is missing a required
	// field or its total cannot be read as a number. Fatal: the run never
	// renders a partial series.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrWindowSize is returned when the requested trailing window is
	// outside 1..7 days.
	ErrWindowSize = errors.New("window must be between 1 and 7 days")
)

// Point is one slice (pie) or bar (bar chart) of a normalized series.
type Point struct {
	Label string
	Value float64 // always >= 0
	Color string
	Order int
}

// Warning records a negative total that was clamped to zero. Negative
// values are credits/refunds and never chart below the axis.
type Warning struct {
	Label    string
	Original float64
}

func (w Warning) String() string {
	return fmt.Sprintf("negative total %.2f for %q clamped to 0", w.Original, w.Label)
}

// Series is an ordered, colored, labeled sequence ready for a renderer.
// Point order drives slice/bar order and legend order.
type Series struct {
	Points   []Point
	Total    float64
	Warnings []Warning
}

const isoDate = "2006-01-02"

// DailyBarColor fills every bar of a daily report.
const DailyBarColor = "#FF8C8C"

// weekdayAbbrev maps Go weekdays to the pt-BR labels used under each bar.
var weekdayAbbrev = map[time.Weekday]string{
	time.Monday:    "seg",
	time.Tuesday:   "ter",
	time.Wednesday: "qua",
	time.Thursday:  "qui",
	time.Friday:    "sex",
	time.Saturday:  "sáb",
	time.Sunday:    "dom",
}

// NormalizeCategories builds a pie-ready series from category records.
// Output order is input order; colors cycle the palette by category count.
func NormalizeCategories(records []RawRecord, palette Palette) (*Series, error) {
	if len(records) == 0 {
		return nil, ErrEmptyInput
	}

	s := &Series{Points: make([]Point, 0, len(records))}
	n := len(records)
	for i, rec := range records {
		label, value, err := rec.fields(i)
		if err != nil {
			return nil, err
		}
		if value < 0 {
			s.Warnings = append(s.Warnings, Warning{Label: label, Original: value})
			value = 0
		}
		s.Points = append(s.Points, Point{
			Label: label,
			Value: value,
			Color: palette.colorFor(i, n),
			Order: i,
		})
		s.Total += value
	}
	return s, nil
}

// NormalizeDays builds a bar-ready series covering exactly window trailing
// calendar days ending at today, oldest first. Days with no record chart as
// zero, so the axis keeps a fixed width however sparse the input is. Records
// dated outside the window are ignored; records that cannot be read at all
// are fatal. An empty input is legal here and yields an all-zero week.
func NormalizeDays(records []RawRecord, window int, today time.Time) (*Series, error) {
	if window < 1 || window > 7 {
		return nil, fmt.Errorf("%w: got %d", ErrWindowSize, window)
	}

	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	start := today.AddDate(0, 0, -(window - 1))

	byDay := make(map[string]float64, window)
	for i := 0; i < window; i++ {
		byDay[start.AddDate(0, 0, i).Format(isoDate)] = 0
	}

	s := &Series{Points: make([]Point, 0, window)}
	for i, rec := range records {
		label, value, err := rec.fields(i)
		if err != nil {
			return nil, err
		}
		if _, err := time.ParseInLocation(isoDate, label, today.Location()); err != nil {
			return nil, fmt.Errorf("%w: record %d has invalid date %q", ErrMalformedRecord, i, label)
		}
		if _, inWindow := byDay[label]; !inWindow {
			continue
		}
		if value < 0 {
			s.Warnings = append(s.Warnings, Warning{Label: label, Original: value})
			value = 0
		}
		byDay[label] = value
	}

	for i := 0; i < window; i++ {
		day := start.AddDate(0, 0, i)
		value := byDay[day.Format(isoDate)]
		s.Points = append(s.Points, Point{
			Label: fmt.Sprintf("%s (%s)", weekdayAbbrev[day.Weekday()], day.Format("02/01")),
			Value: value,
			Color: DailyBarColor,
			Order: i,
		})
		s.Total += value
	}
	return s, nil
}
