package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TimurManjosov/goremoteconfig/internal/template"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate template conditions",
	Long: `Validate the named conditions of a template.

Parsing already rejects structural problems (empty and/or composites,
conditions with zero or multiple variants, missing names). Validation
additionally flags conditions that would silently never match:
out-of-range micropercent thresholds, empty ranges, unknown operators,
missing target values, and regex targets that do not compile.

Examples:
  condctl validate --template template.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		conditions, err := loadTemplateConditions()
		if err != nil {
			return err
		}

		if err := template.ValidateConditions(conditions); err != nil {
			return fmt.Errorf("template is invalid: %w", err)
		}

		if !quiet {
			fmt.Printf("OK: %d condition(s) valid\n", len(conditions))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
