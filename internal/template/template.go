// Package template deserializes remote-config template JSON into the
// condition model. It covers only the conditions section of a template;
// fetching, storage, and versioning of templates belong to other
// systems.
package template

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/TimurManjosov/goremoteconfig/internal/condition"
)

// Sentinel errors returned by Parse.
var (
	ErrInvalidTemplate = errors.New("invalid template")
	ErrInvalidVariant  = errors.New("condition must set exactly one variant")
)

// templateDTO is the subset of a remote-config template this package
// reads. Extra fields (parameters, version metadata) are ignored.
type templateDTO struct {
	Conditions []namedConditionDTO `json:"conditions"`
}

type namedConditionDTO struct {
	Name      string        `json:"name"`
	Condition *conditionDTO `json:"condition"`
}

// conditionDTO mirrors the wire one-of: at most one field is set.
type conditionDTO struct {
	OrCondition  *compositeDTO    `json:"orCondition,omitempty"`
	AndCondition *compositeDTO    `json:"andCondition,omitempty"`
	True         *struct{}        `json:"true,omitempty"`
	False        *struct{}        `json:"false,omitempty"`
	Percent      *percentDTO      `json:"percent,omitempty"`
	CustomSignal *customSignalDTO `json:"customSignal,omitempty"`
}

type compositeDTO struct {
	Conditions []conditionDTO `json:"conditions"`
}

type percentDTO struct {
	PercentOperator   string    `json:"percentOperator"`
	Seed              string    `json:"seed"`
	MicroPercent      *uint32   `json:"microPercent,omitempty"`
	MicroPercentRange *rangeDTO `json:"microPercentRange,omitempty"`
}

type rangeDTO struct {
	LowerBound *uint32 `json:"lowerBound,omitempty"`
	UpperBound *uint32 `json:"upperBound,omitempty"`
}

type customSignalDTO struct {
	CustomSignalOperator     string   `json:"customSignalOperator"`
	CustomSignalKey          string   `json:"customSignalKey"`
	TargetCustomSignalValues []string `json:"targetCustomSignalValues"`
}

// Parse decodes the named conditions of a template. The input may be a
// full template object carrying a "conditions" array, or a bare array
// of named conditions.
//
// Structural problems (unparsable JSON, a missing name, an empty
// and/or composite, a condition object with zero or multiple variants)
// fail the parse. Unrecognized operator strings do not: they are
// carried through as-is and evaluate to false, so a template written
// against a newer operator set still loads.
func Parse(data []byte) ([]condition.Named, error) {
	var dtos []namedConditionDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		var tmpl templateDTO
		if err := json.Unmarshal(data, &tmpl); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
		}
		dtos = tmpl.Conditions
	}

	named := make([]condition.Named, 0, len(dtos))
	for i, dto := range dtos {
		node, err := buildNode(dto.Condition)
		if err != nil {
			return nil, fmt.Errorf("condition %d (%q): %w", i, dto.Name, err)
		}
		nc, err := condition.NewNamed(dto.Name, node)
		if err != nil {
			return nil, fmt.Errorf("condition %d: %w", i, err)
		}
		named = append(named, nc)
	}
	return named, nil
}

func buildNode(dto *conditionDTO) (*condition.Node, error) {
	if dto == nil {
		return nil, ErrInvalidVariant
	}

	variants := 0
	var node *condition.Node
	var err error

	if dto.True != nil {
		variants++
		node = condition.True()
	}
	if dto.False != nil {
		variants++
		node = condition.False()
	}
	if dto.AndCondition != nil {
		variants++
		node, err = buildComposite(dto.AndCondition, condition.And)
	}
	if dto.OrCondition != nil {
		variants++
		node, err = buildComposite(dto.OrCondition, condition.Or)
	}
	if dto.Percent != nil {
		variants++
		node = buildPercent(dto.Percent)
	}
	if dto.CustomSignal != nil {
		variants++
		node = condition.NewCustomSignal(condition.CustomSignal{
			Key:          dto.CustomSignal.CustomSignalKey,
			Operator:     condition.SignalOperator(dto.CustomSignal.CustomSignalOperator),
			TargetValues: dto.CustomSignal.TargetCustomSignalValues,
		})
	}

	if err != nil {
		return nil, err
	}
	if variants != 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidVariant, variants)
	}
	return node, nil
}

func buildComposite(dto *compositeDTO, combine func(...*condition.Node) (*condition.Node, error)) (*condition.Node, error) {
	children := make([]*condition.Node, 0, len(dto.Conditions))
	for i := range dto.Conditions {
		child, err := buildNode(&dto.Conditions[i])
		if err != nil {
			return nil, fmt.Errorf("child %d: %w", i, err)
		}
		children = append(children, child)
	}
	return combine(children...)
}

func buildPercent(dto *percentDTO) *condition.Node {
	p := condition.Percent{
		Operator: condition.PercentOperator(dto.PercentOperator),
		Seed:     dto.Seed,
	}
	// Absent thresholds stay 0: "unset" is ~0%, never "no restriction".
	if dto.MicroPercent != nil {
		p.MicroPercent = *dto.MicroPercent
	}
	if dto.MicroPercentRange != nil {
		if dto.MicroPercentRange.LowerBound != nil {
			p.Range.LowerBound = *dto.MicroPercentRange.LowerBound
		}
		if dto.MicroPercentRange.UpperBound != nil {
			p.Range.UpperBound = *dto.MicroPercentRange.UpperBound
		}
	}
	return condition.NewPercent(p)
}
