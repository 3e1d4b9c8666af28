// Package render draws normalized series to PNG files. The bar renderer is
// hand-drawn with gg so each bar carries its value label; the pie renderer
// sits on go-chart.
package render

import (
	"fmt"
	"os"

	"expense-reports/internal/infra/log"
	"expense-reports/internal/series"

	"github.com/fogleman/gg"
	"go.uber.org/zap"
)

const (
	barChartWidth  = 1200
	barChartHeight = 900

	chartAreaLeft   = 100.0
	chartAreaRight  = 1100.0
	chartAreaTop    = 180.0
	chartAreaBottom = 780.0

	titleY    = 60.0
	subtitleY = 110.0

	titleFontSize    = 34.0
	subtitleFontSize = 28.0
	barValueFontSize = 22.0
	dayLabelFontSize = 22.0

	barSlotFill     = 0.6 // bar width as a fraction of its slot
	barValueOffsetY = 14.0
	dayLabelOffsetY = 30.0

	// Headroom above the tallest bar so its value label never clips.
	yHeadroom = 1.15
)

// fontPaths are probed in order; when none load, gg falls back to its
// built-in face and the chart still renders.
var fontPaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
	"/System/Library/Fonts/Supplemental/Arial.ttf",
	"/Library/Fonts/Arial.ttf",
}

// BarOptions carries the texts above the plot area.
type BarOptions struct {
	Title    string
	Subtitle string
}

// Bar renders one bar per point, in series order, with the value printed
// above each bar and the day label below it.
func Bar(s *series.Series, path string, opts BarOptions) error {
	if len(s.Points) == 0 {
		return fmt.Errorf("bar chart needs at least one point")
	}

	dc := gg.NewContext(barChartWidth, barChartHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	fontPath := probeFont()
	fontWarned := false
	loadFont := func(size float64) {
		if fontPath == "" {
			return
		}
		if err := dc.LoadFontFace(fontPath, size); err != nil && !fontWarned {
			log.LogWarn("Font file exists but failed to load",
				zap.String("path", fontPath),
				zap.Error(err))
			fontWarned = true
		}
	}

	maxValue := 0.0
	for _, p := range s.Points {
		if p.Value > maxValue {
			maxValue = p.Value
		}
	}
	yMax := maxValue * yHeadroom
	if yMax <= 0 {
		yMax = 1.0
	}

	dc.SetRGB(0, 0, 0)
	loadFont(titleFontSize)
	dc.DrawStringAnchored(opts.Title, barChartWidth/2, titleY, 0.5, 0.5)
	if opts.Subtitle != "" {
		loadFont(subtitleFontSize)
		dc.DrawStringAnchored(opts.Subtitle, barChartWidth/2, subtitleY, 0.5, 0.5)
	}

	// Baseline.
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(1)
	dc.DrawLine(chartAreaLeft, chartAreaBottom, chartAreaRight, chartAreaBottom)
	dc.Stroke()

	areaHeight := chartAreaBottom - chartAreaTop
	slot := (chartAreaRight - chartAreaLeft) / float64(len(s.Points))
	barWidth := slot * barSlotFill

	for i, p := range s.Points {
		centerX := chartAreaLeft + slot*float64(i) + slot/2
		barHeight := (p.Value / yMax) * areaHeight
		barX := centerX - barWidth/2
		barY := chartAreaBottom - barHeight

		if p.Value > 0 {
			dc.DrawRectangle(barX, barY, barWidth, barHeight)
			dc.SetHexColor(p.Color)
			dc.FillPreserve()
			dc.SetRGB(0, 0, 0)
			dc.SetLineWidth(1)
			dc.Stroke()
		}

		dc.SetRGB(0, 0, 0)
		loadFont(barValueFontSize)
		dc.DrawStringAnchored(fmt.Sprintf("R$ %.2f", p.Value), centerX, barY-barValueOffsetY, 0.5, 0.5)

		loadFont(dayLabelFontSize)
		dc.DrawStringAnchored(p.Label, centerX, chartAreaBottom+dayLabelOffsetY, 0.5, 0.5)
	}

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to save chart: %w", err)
	}
	return verifySaved(path, len(s.Points))
}

func probeFont() string {
	for _, fontPath := range fontPaths {
		if _, err := os.Stat(fontPath); err == nil {
			return fontPath
		}
	}
	log.LogWarn("No system font found, using built-in face", zap.Int("paths_checked", len(fontPaths)))
	return ""
}

// verifySaved guards against a renderer that "succeeded" into a zero-byte
// file; an empty PNG uploads fine and renders nowhere.
func verifySaved(path string, points int) error {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat chart file: %w", err)
	}
	if fileInfo.Size() == 0 {
		os.Remove(path)
		log.LogError("Chart file is empty after rendering", zap.String("filename", path))
		return fmt.Errorf("chart file is empty after rendering")
	}
	log.LogInfo("Chart rendered",
		zap.String("filename", path),
		zap.Int64("fileSize", fileInfo.Size()),
		zap.Int("points", points))
	return nil
}
