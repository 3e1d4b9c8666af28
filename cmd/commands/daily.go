package commands

// Command to render the spending-by-day bar chart
// Covers a trailing window of 1..7 calendar days ending today
// Days without records chart as zero so the axis width never changes

import (
	"fmt"
	"time"

	"expense-reports/internal/infra/config"
	"expense-reports/internal/infra/fs"
	"expense-reports/internal/infra/log"
	"expense-reports/internal/render"
	"expense-reports/internal/series"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dailyFlags publishFlags
	dailyDays  int
)

var dailyCmd = &cobra.Command{
	Use:   "daily <input.json> <output.png>",
	Short: "Render the spending-per-day bar chart",
	Long: `Render a bar chart of spending over the trailing N days ending today.
Each bar carries its value; days with no spending chart as zero.`,
	Args: cobra.ExactArgs(2),
	RunE: runDaily,
}

func init() {
	addPublishFlags(dailyCmd.Flags(), &dailyFlags)
	dailyCmd.Flags().IntVar(&dailyDays, "days", 7, "Trailing window size in days (1-7)")
}

func runDaily(cmd *cobra.Command, args []string) error {
	inputPath, outputPath := args[0], args[1]

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	records, err := fs.LoadRecords(inputPath)
	if err != nil {
		return err
	}

	s, err := series.NormalizeDays(records, dailyDays, time.Now())
	if err != nil {
		return err
	}
	logWarnings(s)

	title := "Gastos de hoje"
	if dailyDays > 1 {
		title = fmt.Sprintf("Gastos nos últimos %d dias", dailyDays)
	}
	subtitle := fmt.Sprintf("Total: R$ %.2f", s.Total)

	if err := render.Bar(s, outputPath, render.BarOptions{Title: title, Subtitle: subtitle}); err != nil {
		return err
	}
	log.LogSuccess("Daily chart rendered",
		zap.String("output", outputPath),
		zap.Int("days", dailyDays),
		zap.Float64("total", s.Total))

	result, err := publish(cfg, outputPath, title+" - "+subtitle, dailyFlags)
	if err != nil {
		return err
	}
	fmt.Println(result)
	return nil
}
