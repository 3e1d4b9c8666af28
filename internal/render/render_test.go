package render_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"expense-reports/internal/render"
	"expense-reports/internal/series"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertNonEmptyPNG(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestBar_RendersWeek(t *testing.T) {
	today := time.Date(2025, time.March, 16, 0, 0, 0, 0, time.UTC)
	recs := []series.RawRecord{
		series.NewRawRecord("2025-03-14", 42.0),
		series.NewRawRecord("2025-03-16", "13.37"),
	}
	s, err := series.NormalizeDays(recs, 7, today)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "daily.png")
	err = render.Bar(s, path, render.BarOptions{
		Title:    "Gastos nos últimos 7 dias",
		Subtitle: "Total: R$ 55.37",
	})
	require.NoError(t, err)
	assertNonEmptyPNG(t, path)
}

func TestBar_AllZeroWeekStillRenders(t *testing.T) {
	today := time.Date(2025, time.March, 16, 0, 0, 0, 0, time.UTC)
	s, err := series.NormalizeDays(nil, 7, today)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "empty-week.png")
	require.NoError(t, render.Bar(s, path, render.BarOptions{Title: "Gastos nos últimos 7 dias"}))
	assertNonEmptyPNG(t, path)
}

func TestBar_RejectsEmptySeries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "none.png")
	err := render.Bar(&series.Series{}, path, render.BarOptions{Title: "x"})
	require.Error(t, err)
}

func TestPie_RendersCategories(t *testing.T) {
	recs := []series.RawRecord{
		series.NewRawRecord("food", 100.5),
		series.NewRawRecord("transport", 20.0),
		series.NewRawRecord("leisure", 30.0),
	}
	s, err := series.NormalizeCategories(recs, series.ExpensePalette)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "categories.png")
	require.NoError(t, render.Pie(s, path, render.PieOptions{Title: "Distribuição de Gastos por Categoria"}))
	assertNonEmptyPNG(t, path)
}

func TestPie_LetteredSlices(t *testing.T) {
	recs := []series.RawRecord{
		series.NewRawRecord("salary", 3000.0),
		series.NewRawRecord("freelance", 1000.0),
	}
	s, err := series.NormalizeCategories(recs, series.IncomePalette)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "income.png")
	require.NoError(t, render.Pie(s, path, render.PieOptions{
		Title:    "Distribuição de Receitas por Categoria",
		Lettered: true,
	}))
	assertNonEmptyPNG(t, path)
}

func TestLegendLines(t *testing.T) {
	recs := []series.RawRecord{
		series.NewRawRecord("salary", 3000.0),
		series.NewRawRecord("freelance", 1000.0),
	}
	s, err := series.NormalizeCategories(recs, series.IncomePalette)
	require.NoError(t, err)

	lines := render.LegendLines(s)
	require.Len(t, lines, 2)
	assert.Equal(t, "A: salary - R$ 3000.00 (75%)", lines[0])
	assert.Equal(t, "B: freelance - R$ 1000.00 (25%)", lines[1])
}
