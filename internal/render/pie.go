package render

import (
	"fmt"
	"os"
	"strings"

	"expense-reports/internal/series"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	pieChartWidth  = 1000
	pieChartHeight = 1000
)

// PieOptions controls what each slice shows. With Lettered set, slices carry
// a letter A..Z and the full labels are delivered out of band via
// LegendLines (the income report puts them in the photo caption).
type PieOptions struct {
	Title    string
	Lettered bool
}

// Pie renders one slice per point with the point's color. go-chart rejects
// an all-zero series; that surfaces as a render failure, matching the
// all-or-nothing contract.
func Pie(s *series.Series, path string, opts PieOptions) error {
	values := make([]chart.Value, 0, len(s.Points))
	for i, p := range s.Points {
		label := fmt.Sprintf("%s - R$ %.2f (%s)", p.Label, p.Value, percentOf(p.Value, s.Total))
		if opts.Lettered {
			label = sliceLetter(i)
		}
		values = append(values, chart.Value{
			Value: p.Value,
			Label: label,
			Style: chart.Style{
				FillColor: drawing.ColorFromHex(strings.TrimPrefix(p.Color, "#")),
			},
		})
	}

	pie := chart.PieChart{
		Title:  opts.Title,
		Width:  pieChartWidth,
		Height: pieChartHeight,
		Values: values,
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	if err := pie.Render(chart.PNG, f); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("failed to render pie chart: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close chart file: %w", err)
	}
	return verifySaved(path, len(s.Points))
}

// LegendLines formats one "A: label - R$ value (pct)" line per point, in
// series order.
func LegendLines(s *series.Series) []string {
	lines := make([]string, 0, len(s.Points))
	for i, p := range s.Points {
		lines = append(lines, fmt.Sprintf("%s: %s - R$ %.2f (%s)",
			sliceLetter(i), p.Label, p.Value, percentOf(p.Value, s.Total)))
	}
	return lines
}

func sliceLetter(i int) string {
	return string(rune('A' + i%26))
}

func percentOf(value, total float64) string {
	if total <= 0 {
		return "0%"
	}
	return fmt.Sprintf("%.0f%%", value/total*100)
}
