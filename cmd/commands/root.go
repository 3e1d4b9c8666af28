package commands

// Root command for Cobra CLI
// Defines the main command structure of the application
// Registers all subcommands (category, income, daily)

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "expense-reports",
	Short: "Expense Reports - render financial report charts and publish them",
	Long: `Expense Reports renders aggregated spending and income totals into pie and
bar charts, saves them as PNG files and optionally publishes them via
Cloudinary or Telegram.`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(categoryCmd)
	rootCmd.AddCommand(incomeCmd)
	rootCmd.AddCommand(dailyCmd)
}
