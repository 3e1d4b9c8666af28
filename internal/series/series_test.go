package series_test

import (
	"encoding/json"
	"testing"
	"time"

	"expense-reports/internal/series"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCategories(t *testing.T) {
	tests := []struct {
		name         string
		records      []series.RawRecord
		wantErr      error
		wantLabels   []string
		wantValues   []float64
		wantTotal    float64
		wantWarnings int
	}{
		{
			name:    "empty input is fatal",
			records: nil,
			wantErr: series.ErrEmptyInput,
		},
		{
			name: "string totals coerce and negatives clamp",
			records: []series.RawRecord{
				series.NewRawRecord("food", "100.50"),
				series.NewRawRecord("rent", float64(-5)),
			},
			wantLabels:   []string{"food", "rent"},
			wantValues:   []float64{100.50, 0.0},
			wantTotal:    100.50,
			wantWarnings: 1,
		},
		{
			name: "non-numeric total aborts",
			records: []series.RawRecord{
				series.NewRawRecord("food", 10.0),
				series.NewRawRecord("rent", "abc"),
			},
			wantErr: series.ErrMalformedRecord,
		},
		{
			name: "missing id aborts",
			records: []series.RawRecord{
				{Total: 10.0},
			},
			wantErr: series.ErrMalformedRecord,
		},
		{
			name: "missing total aborts",
			records: []series.RawRecord{
				series.NewRawRecord("food", nil),
			},
			wantErr: series.ErrMalformedRecord,
		},
		{
			name: "output order is input order",
			records: []series.RawRecord{
				series.NewRawRecord("c", 1.0),
				series.NewRawRecord("a", 2.0),
				series.NewRawRecord("b", 3.0),
			},
			wantLabels: []string{"c", "a", "b"},
			wantValues: []float64{1, 2, 3},
			wantTotal:  6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := series.NormalizeCategories(tt.records, series.ExpensePalette)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Len(t, s.Points, len(tt.records))
			for i, p := range s.Points {
				assert.Equal(t, tt.wantLabels[i], p.Label)
				assert.InDelta(t, tt.wantValues[i], p.Value, 1e-9)
				assert.GreaterOrEqual(t, p.Value, 0.0)
				assert.Equal(t, i, p.Order)
			}
			assert.InDelta(t, tt.wantTotal, s.Total, 1e-9)
			assert.Len(t, s.Warnings, tt.wantWarnings)
		})
	}
}

func TestNormalizeCategories_ColorCycling(t *testing.T) {
	pal := series.ExpensePalette

	mk := func(n int) []series.RawRecord {
		recs := make([]series.RawRecord, n)
		for i := range recs {
			recs[i] = series.NewRawRecord(string(rune('a'+i)), 1.0)
		}
		return recs
	}

	tests := []struct {
		name  string
		count int
		want  []string
	}{
		{"single category gets the mid tone", 1, []string{pal.Solo}},
		{"odd count cycles three tones", 3, []string{pal.Trio[0], pal.Trio[1], pal.Trio[2]}},
		{"even count cycles two tones", 4, []string{pal.Duo[0], pal.Duo[1], pal.Duo[0], pal.Duo[1]}},
		{"five categories wrap the trio", 5, []string{pal.Trio[0], pal.Trio[1], pal.Trio[2], pal.Trio[0], pal.Trio[1]}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := series.NormalizeCategories(mk(tt.count), pal)
			require.NoError(t, err)
			got := make([]string, 0, len(s.Points))
			for _, p := range s.Points {
				got = append(got, p.Color)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeDays(t *testing.T) {
	// A fixed Sunday so weekday labels are predictable.
	today := time.Date(2025, time.March, 16, 15, 4, 5, 0, time.UTC)

	t.Run("empty input gap-fills the whole window", func(t *testing.T) {
		s, err := series.NormalizeDays(nil, 7, today)
		require.NoError(t, err)
		require.Len(t, s.Points, 7)

		wantLabels := []string{
			"seg (10/03)", "ter (11/03)", "qua (12/03)", "qui (13/03)",
			"sex (14/03)", "sáb (15/03)", "dom (16/03)",
		}
		for i, p := range s.Points {
			assert.Equal(t, wantLabels[i], p.Label)
			assert.Zero(t, p.Value)
			assert.Equal(t, series.DailyBarColor, p.Color)
			assert.Equal(t, i, p.Order)
		}
		assert.Zero(t, s.Total)
	})

	t.Run("records overlay their day, out-of-window dates are ignored", func(t *testing.T) {
		recs := []series.RawRecord{
			series.NewRawRecord("2025-03-16", 12.5),
			series.NewRawRecord("2025-03-14", "7.5"),
			series.NewRawRecord("2025-03-01", 99.0), // before the window
		}
		s, err := series.NormalizeDays(recs, 7, today)
		require.NoError(t, err)
		require.Len(t, s.Points, 7)
		assert.InDelta(t, 7.5, s.Points[4].Value, 1e-9)
		assert.InDelta(t, 12.5, s.Points[6].Value, 1e-9)
		assert.InDelta(t, 20.0, s.Total, 1e-9)
	})

	t.Run("single-day window", func(t *testing.T) {
		recs := []series.RawRecord{series.NewRawRecord("2025-03-16", 3.0)}
		s, err := series.NormalizeDays(recs, 1, today)
		require.NoError(t, err)
		require.Len(t, s.Points, 1)
		assert.Equal(t, "dom (16/03)", s.Points[0].Label)
		assert.InDelta(t, 3.0, s.Total, 1e-9)
	})

	t.Run("negative in-window total clamps with a warning", func(t *testing.T) {
		recs := []series.RawRecord{series.NewRawRecord("2025-03-15", -4.0)}
		s, err := series.NormalizeDays(recs, 7, today)
		require.NoError(t, err)
		assert.Zero(t, s.Points[5].Value)
		require.Len(t, s.Warnings, 1)
		assert.Equal(t, "2025-03-15", s.Warnings[0].Label)
		assert.InDelta(t, -4.0, s.Warnings[0].Original, 1e-9)
	})

	t.Run("invalid date aborts", func(t *testing.T) {
		recs := []series.RawRecord{series.NewRawRecord("16/03/2025", 3.0)}
		_, err := series.NormalizeDays(recs, 7, today)
		require.ErrorIs(t, err, series.ErrMalformedRecord)
	})

	t.Run("non-numeric total aborts even out of window", func(t *testing.T) {
		recs := []series.RawRecord{series.NewRawRecord("2020-01-01", "n/a")}
		_, err := series.NormalizeDays(recs, 7, today)
		require.ErrorIs(t, err, series.ErrMalformedRecord)
	})

	t.Run("window bounds", func(t *testing.T) {
		for _, n := range []int{0, -1, 8, 30} {
			_, err := series.NormalizeDays(nil, n, today)
			require.ErrorIs(t, err, series.ErrWindowSize, "window %d", n)
		}
	})
}

func TestNormalize_Idempotent(t *testing.T) {
	today := time.Date(2025, time.March, 16, 0, 0, 0, 0, time.UTC)
	recs := []series.RawRecord{
		series.NewRawRecord("2025-03-16", 12.5),
		series.NewRawRecord("2025-03-10", 1.0),
	}

	first, err := series.NormalizeDays(recs, 7, today)
	require.NoError(t, err)
	second, err := series.NormalizeDays(recs, 7, today)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	catRecs := []series.RawRecord{series.NewRawRecord("food", "1.25")}
	c1, err := series.NormalizeCategories(catRecs, series.IncomePalette)
	require.NoError(t, err)
	c2, err := series.NormalizeCategories(catRecs, series.IncomePalette)
	require.NoError(t, err)
	assert.Equal(t, c1, c2)
}

func TestRawRecord_DecodesFromJSON(t *testing.T) {
	var recs []series.RawRecord
	input := `[{"_id":"food","total":"100.50"},{"_id":"rent","total":-5}]`
	require.NoError(t, json.Unmarshal([]byte(input), &recs))

	s, err := series.NormalizeCategories(recs, series.ExpensePalette)
	require.NoError(t, err)
	require.Len(t, s.Points, 2)
	assert.Equal(t, "food", s.Points[0].Label)
	assert.InDelta(t, 100.50, s.Points[0].Value, 1e-9)
	assert.Equal(t, "rent", s.Points[1].Label)
	assert.Zero(t, s.Points[1].Value)
	assert.InDelta(t, 100.50, s.Total, 1e-9)
	require.Len(t, s.Warnings, 1)
	assert.Equal(t, "rent", s.Warnings[0].Label)
}
