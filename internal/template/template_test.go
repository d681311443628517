package template

import (
	"errors"
	"testing"

	"github.com/TimurManjosov/goremoteconfig/internal/condition"
	"github.com/TimurManjosov/goremoteconfig/internal/engine"
)

const sampleTemplate = `{
  "conditions": [
    {
      "name": "is_enabled",
      "condition": {
        "orCondition": {
          "conditions": [
            {"andCondition": {"conditions": [{"true": {}}]}}
          ]
        }
      }
    },
    {
      "name": "rollout_10",
      "condition": {
        "percent": {
          "percentOperator": "LESS_OR_EQUAL",
          "seed": "rollout-seed",
          "microPercent": 10000000
        }
      }
    },
    {
      "name": "holdback_band",
      "condition": {
        "percent": {
          "percentOperator": "BETWEEN",
          "seed": "band-seed",
          "microPercentRange": {"lowerBound": 20000000, "upperBound": 40000000}
        }
      }
    },
    {
      "name": "premium_us",
      "condition": {
        "andCondition": {
          "conditions": [
            {
              "customSignal": {
                "customSignalOperator": "STRING_EXACTLY_MATCHES",
                "customSignalKey": "plan",
                "targetCustomSignalValues": ["premium"]
              }
            },
            {
              "customSignal": {
                "customSignalOperator": "SEMANTIC_VERSION_GREATER_EQUAL",
                "customSignalKey": "appVersion",
                "targetCustomSignalValues": ["2.0.0"]
              }
            }
          ]
        }
      }
    }
  ]
}`

func TestParse_SampleTemplate(t *testing.T) {
	conditions, err := Parse([]byte(sampleTemplate))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(conditions) != 4 {
		t.Fatalf("Expected 4 conditions, got %d", len(conditions))
	}

	// Declaration order must survive parsing.
	wantNames := []string{"is_enabled", "rollout_10", "holdback_band", "premium_us"}
	for i, want := range wantNames {
		if conditions[i].Name != want {
			t.Errorf("conditions[%d].Name = %q, want %q", i, conditions[i].Name, want)
		}
	}

	if conditions[0].Node.Kind() != condition.KindOr {
		t.Errorf("is_enabled should parse as Or, got %v", conditions[0].Node.Kind())
	}

	percent := conditions[1].Node.Percent()
	if percent.Operator != condition.PercentLessOrEqual || percent.MicroPercent != 10_000_000 || percent.Seed != "rollout-seed" {
		t.Errorf("rollout_10 parsed wrong: %+v", percent)
	}

	band := conditions[2].Node.Percent()
	if band.Range.LowerBound != 20_000_000 || band.Range.UpperBound != 40_000_000 {
		t.Errorf("holdback_band range parsed wrong: %+v", band.Range)
	}

	signal := conditions[3].Node.Children()[0].CustomSignal()
	if signal.Key != "plan" || signal.Operator != condition.StringExactlyMatches {
		t.Errorf("premium_us signal parsed wrong: %+v", signal)
	}
}

func TestParse_BareArray(t *testing.T) {
	data := `[{"name": "always", "condition": {"true": {}}}]`
	conditions, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(conditions) != 1 || conditions[0].Name != "always" {
		t.Fatalf("Unexpected conditions: %+v", conditions)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{
			name:    "not json",
			data:    `{`,
			wantErr: ErrInvalidTemplate,
		},
		{
			name:    "missing condition object",
			data:    `[{"name": "x"}]`,
			wantErr: ErrInvalidVariant,
		},
		{
			name:    "empty condition object",
			data:    `[{"name": "x", "condition": {}}]`,
			wantErr: ErrInvalidVariant,
		},
		{
			name:    "two variants set",
			data:    `[{"name": "x", "condition": {"true": {}, "false": {}}}]`,
			wantErr: ErrInvalidVariant,
		},
		{
			name:    "empty and children",
			data:    `[{"name": "x", "condition": {"andCondition": {"conditions": []}}}]`,
			wantErr: condition.ErrNoChildren,
		},
		{
			name:    "empty or children",
			data:    `[{"name": "x", "condition": {"orCondition": {}}}]`,
			wantErr: condition.ErrNoChildren,
		},
		{
			name:    "empty name",
			data:    `[{"name": "", "condition": {"true": {}}}]`,
			wantErr: condition.ErrEmptyName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParse_UnknownOperatorEvaluatesFalse(t *testing.T) {
	data := `[{
	  "name": "future",
	  "condition": {
	    "customSignal": {
	      "customSignalOperator": "STRING_FUZZY_MATCHES",
	      "customSignalKey": "plan",
	      "targetCustomSignalValues": ["premium"]
	    }
	  }
	}]`

	conditions, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Unknown operator should parse, got error: %v", err)
	}
	if engine.Evaluate(conditions[0].Node, engine.Context{"plan": "premium"}) {
		t.Error("Unknown operator must evaluate false")
	}
}

func TestParse_EndToEnd(t *testing.T) {
	conditions, err := Parse([]byte(sampleTemplate))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	ctx := engine.Context{
		engine.RandomizationIDKey: "user-123",
		"plan":                    "premium",
		"appVersion":              "2.4.1",
	}
	results := engine.EvaluateConditions(conditions, ctx)

	if !results["is_enabled"] {
		t.Error("is_enabled should be true for any context")
	}
	if !results["premium_us"] {
		t.Error("premium_us should match premium plan on 2.4.1")
	}

	// Without the signals, only the constant condition can hold.
	empty := engine.EvaluateConditions(conditions, engine.Context{})
	if !empty["is_enabled"] {
		t.Error("is_enabled should be true for the empty context")
	}
	if empty["rollout_10"] || empty["holdback_band"] || empty["premium_us"] {
		t.Error("All other conditions should fail closed on the empty context")
	}
}
