package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

// OutputFormat specifies the output format for CLI commands
type OutputFormat string

const (
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
)

// Result is one evaluated named condition, in template declaration order.
type Result struct {
	Name      string `json:"name" yaml:"name"`
	Satisfied bool   `json:"satisfied" yaml:"satisfied"`
}

// PrintResults outputs evaluation results in the specified format
func PrintResults(results []Result, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return printJSON(results)
	case FormatYAML:
		return printYAML(results)
	case FormatTable:
		return printTable(results)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func printJSON(results []Result) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	// Wrap in a "conditions" key for consistency with documentation
	return encoder.Encode(map[string][]Result{"conditions": results})
}

func printYAML(results []Result) error {
	encoder := yaml.NewEncoder(os.Stdout)
	defer encoder.Close()
	encoder.SetIndent(2)
	return encoder.Encode(results)
}

func printTable(results []Result) error {
	table := tablewriter.NewWriter(os.Stdout)

	table.Header("Condition", "Satisfied")

	for _, result := range results {
		table.Append(result.Name, strconv.FormatBool(result.Satisfied))
	}

	return table.Render()
}
