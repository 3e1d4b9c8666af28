package render

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"expense-reports/internal/series"

	"github.com/stretchr/testify/require"
)

// A font file that exists but cannot be parsed must not abort the render;
// the chart falls back to gg's built-in face.
func TestBar_CorruptFontFallsBackToBuiltinFace(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "corrupt.ttf")
	require.NoError(t, os.WriteFile(bad, []byte("not a truetype file"), 0644))

	orig := fontPaths
	fontPaths = []string{bad}
	t.Cleanup(func() { fontPaths = orig })

	today := time.Date(2025, time.March, 16, 0, 0, 0, 0, time.UTC)
	recs := []series.RawRecord{series.NewRawRecord("2025-03-16", 5.0)}
	s, err := series.NormalizeDays(recs, 3, today)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "daily.png")
	require.NoError(t, Bar(s, path, BarOptions{Title: "Gastos nos últimos 3 dias"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Positive(t, info.Size())
}
