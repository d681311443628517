package commands

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/TimurManjosov/goremoteconfig/internal/condition"
	"github.com/TimurManjosov/goremoteconfig/internal/config"
	"github.com/TimurManjosov/goremoteconfig/internal/engine"
)

var (
	simulateCondition string
	simulateTrials    int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Estimate a condition's match rate over random subjects",
	Long: `Evaluate one named condition across many randomly generated
randomization IDs and report the fraction of subjects that satisfy it.

This is a sanity check for percentage rollouts: a condition targeting
10% of subjects should report close to 10%. Custom-signal leaves see an
otherwise empty context, so signal-only conditions report 0%.

Examples:
  condctl simulate --template template.json --condition rollout_25
  condctl simulate --template template.json --condition rollout_25 --trials 500000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if simulateCondition == "" {
			return fmt.Errorf("--condition is required")
		}
		if simulateTrials <= 0 {
			return fmt.Errorf("--trials must be positive, got %d", simulateTrials)
		}

		conditions, err := loadTemplateConditions()
		if err != nil {
			return err
		}

		var node *condition.Node
		found := false
		for _, nc := range conditions {
			if nc.Name == simulateCondition {
				node = nc.Node
				found = true
				// Keep scanning: duplicate names are last-write-wins.
			}
		}
		if !found {
			return fmt.Errorf("condition %q not found in template", simulateCondition)
		}

		matched := 0
		for i := 0; i < simulateTrials; i++ {
			ctx := engine.Context{engine.RandomizationIDKey: uuid.NewString()}
			if engine.Evaluate(node, ctx) {
				matched++
			}
		}

		if !quiet {
			percentage := float64(matched) / float64(simulateTrials) * 100
			fmt.Printf("%s: %d/%d subjects matched (%.4f%%)\n",
				simulateCondition, matched, simulateTrials, percentage)
		}
		return nil
	},
}

func init() {
	cfg := config.Load()
	simulateCmd.Flags().StringVar(&simulateCondition, "condition", "", "Name of the condition to simulate")
	simulateCmd.Flags().IntVar(&simulateTrials, "trials", cfg.Trials, "Number of random subjects to evaluate")
	rootCmd.AddCommand(simulateCmd)
}
