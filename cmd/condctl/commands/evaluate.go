package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TimurManjosov/goremoteconfig/internal/cli"
	"github.com/TimurManjosov/goremoteconfig/internal/condition"
	"github.com/TimurManjosov/goremoteconfig/internal/engine"
	"github.com/TimurManjosov/goremoteconfig/internal/template"
)

var (
	contextFile  string
	contextPairs []string
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate template conditions against a context",
	Long: `Evaluate every named condition of a template against a runtime context
and print one boolean per condition, in template declaration order.

The context is built from an optional context file (JSON or YAML object)
plus repeated --set key=value overrides.

Examples:
  condctl evaluate --template template.json --set randomizationId=user-1
  condctl evaluate --template template.json --context ctx.yaml --set plan=premium
  condctl evaluate --template template.json --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		conditions, err := loadTemplateConditions()
		if err != nil {
			return err
		}

		ctx := map[string]string{}
		if contextFile != "" {
			ctx, err = cli.LoadContext(contextFile)
			if err != nil {
				return err
			}
		}
		if err := cli.ParseContextPairs(contextPairs, ctx); err != nil {
			return err
		}

		evaluated := engine.EvaluateConditions(conditions, engine.Context(ctx))

		// Render in declaration order; the result map alone loses it.
		results := make([]cli.Result, 0, len(conditions))
		for _, nc := range conditions {
			results = append(results, cli.Result{Name: nc.Name, Satisfied: evaluated[nc.Name]})
		}

		if !quiet {
			return cli.PrintResults(results, cli.OutputFormat(format))
		}
		return nil
	},
}

func loadTemplateConditions() ([]condition.Named, error) {
	if templatePath == "" {
		return nil, fmt.Errorf("--template is required (or set CONDCTL_TEMPLATE)")
	}
	data, err := os.ReadFile(templatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}
	conditions, err := template.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	return conditions, nil
}

func init() {
	evaluateCmd.Flags().StringVar(&contextFile, "context", "", "Path to a JSON/YAML context file")
	evaluateCmd.Flags().StringArrayVar(&contextPairs, "set", nil, "Context entry key=value (repeatable)")
	rootCmd.AddCommand(evaluateCmd)
}
