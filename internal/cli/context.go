package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadContext reads an evaluation context from a JSON or YAML file
// (chosen by extension; YAML parses both). The file must be a flat
// object; scalar values are rendered to their string form, since the
// engine's context is strictly string-keyed and string-valued with all
// typed coercion pushed into the operators.
func LoadContext(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read context file: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse context file %s: %w", filepath.Base(path), err)
	}

	ctx := make(map[string]string, len(raw))
	for key, value := range raw {
		s, err := stringifyScalar(value)
		if err != nil {
			return nil, fmt.Errorf("context key %q: %w", key, err)
		}
		ctx[key] = s
	}
	return ctx, nil
}

// ParseContextPairs parses repeated --set key=value flags into context
// entries. Later pairs overwrite earlier ones.
func ParseContextPairs(pairs []string, ctx map[string]string) error {
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return fmt.Errorf("invalid context pair %q, want key=value", pair)
		}
		ctx[key] = value
	}
	return nil
}

func stringifyScalar(v any) (string, error) {
	switch value := v.(type) {
	case string:
		return value, nil
	case bool:
		return strconv.FormatBool(value), nil
	case int:
		return strconv.Itoa(value), nil
	case int64:
		return strconv.FormatInt(value, 10), nil
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("value must be a scalar, got %T", v)
	}
}
