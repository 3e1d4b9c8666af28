package commands

// Command to render the spending-by-category pie chart
// Reads an aggregated totals JSON array, normalizes it and saves a PNG
// Optionally uploads the image and prints its public URL

import (
	"fmt"

	"expense-reports/internal/infra/config"
	"expense-reports/internal/infra/fs"
	"expense-reports/internal/infra/log"
	"expense-reports/internal/render"
	"expense-reports/internal/series"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var categoryFlags publishFlags

var categoryCmd = &cobra.Command{
	Use:   "category <input.json> <output.png>",
	Short: "Render the spending-by-category pie chart",
	Long:  `Render a pie chart of spending grouped by category from an aggregated totals JSON array.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runCategory,
}

func init() {
	addPublishFlags(categoryCmd.Flags(), &categoryFlags)
}

func runCategory(cmd *cobra.Command, args []string) error {
	inputPath, outputPath := args[0], args[1]

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	records, err := fs.LoadRecords(inputPath)
	if err != nil {
		return err
	}

	s, err := series.NormalizeCategories(records, series.ExpensePalette)
	if err != nil {
		return err
	}
	logWarnings(s)

	title := fmt.Sprintf("Distribuição de Gastos por Categoria - Total: R$ %.2f", s.Total)
	if err := render.Pie(s, outputPath, render.PieOptions{Title: title}); err != nil {
		return err
	}
	log.LogSuccess("Category chart rendered",
		zap.String("output", outputPath),
		zap.Int("categories", len(s.Points)))

	result, err := publish(cfg, outputPath, title, categoryFlags)
	if err != nil {
		return err
	}
	fmt.Println(result)
	return nil
}
