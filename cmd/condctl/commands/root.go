package commands

import (
	"github.com/spf13/cobra"

	"github.com/TimurManjosov/goremoteconfig/internal/config"
)

var (
	// Global flags
	templatePath string
	format       string
	quiet        bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "condctl",
	Short: "CLI tool for working with remote-config conditions",
	Long: `Condctl evaluates, validates, and simulates the named conditions of a
remote-config template against a runtime context.

Examples:
  condctl evaluate --template template.json --set randomizationId=user-1
  condctl evaluate --template template.json --context ctx.yaml --format json
  condctl validate --template template.json
  condctl simulate --template template.json --condition rollout_25 --trials 100000`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cfg := config.Load()

	// Global flags available to all commands
	rootCmd.PersistentFlags().StringVar(&templatePath, "template", cfg.TemplatePath, "Path to the template JSON file")
	rootCmd.PersistentFlags().StringVar(&format, "format", cfg.Format, "Output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "Suppress output")
}
