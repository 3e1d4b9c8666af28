package commands

// Command to render the income-by-source pie chart
// Slices carry letters; the full source names travel in the legend caption
// Labels are title-cased the way the upstream reports display them

import (
	"fmt"
	"strings"

	"expense-reports/internal/infra/config"
	"expense-reports/internal/infra/fs"
	"expense-reports/internal/infra/log"
	"expense-reports/internal/render"
	"expense-reports/internal/series"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var incomeFlags publishFlags

var incomeCmd = &cobra.Command{
	Use:   "income <input.json> <output.png>",
	Short: "Render the income-by-source pie chart",
	Long: `Render a pie chart of income grouped by source. Slices are lettered A..Z;
the legend with full source names, values and percentages goes into the
delivery caption and the log.`,
	Args: cobra.ExactArgs(2),
	RunE: runIncome,
}

func init() {
	addPublishFlags(incomeCmd.Flags(), &incomeFlags)
}

func runIncome(cmd *cobra.Command, args []string) error {
	inputPath, outputPath := args[0], args[1]

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	records, err := fs.LoadRecords(inputPath)
	if err != nil {
		return err
	}

	caser := cases.Title(language.BrazilianPortuguese)
	for i, rec := range records {
		if rec.ID != nil {
			records[i] = series.NewRawRecord(caser.String(*rec.ID), rec.Total)
		}
	}

	s, err := series.NormalizeCategories(records, series.IncomePalette)
	if err != nil {
		return err
	}
	logWarnings(s)

	title := fmt.Sprintf("Distribuição de Receitas por Categoria - Total: R$ %.2f", s.Total)
	if err := render.Pie(s, outputPath, render.PieOptions{Title: title, Lettered: true}); err != nil {
		return err
	}

	legend := render.LegendLines(s)
	log.LogSuccess("Income chart rendered",
		zap.String("output", outputPath),
		zap.Strings("legend", legend))

	caption := title + "\n" + strings.Join(legend, "\n")
	result, err := publish(cfg, outputPath, caption, incomeFlags)
	if err != nil {
		return err
	}
	fmt.Println(result)
	return nil
}
