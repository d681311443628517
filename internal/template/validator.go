package template

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/TimurManjosov/goremoteconfig/internal/condition"
)

// Sentinel errors returned by ValidateConditions.
var (
	ErrInvalidOperator     = errors.New("invalid operator")
	ErrInvalidMicroPercent = errors.New("micropercent out of range")
	ErrInvalidRange        = errors.New("invalid micropercent range")
	ErrInvalidSignal       = errors.New("invalid custom signal")
	ErrInvalidRegexTarget  = errors.New("invalid regex target")
)

// validPercentOperators is the set of percent operators the evaluator
// can satisfy. Unspecified is parseable but never matches, so strict
// validation rejects it.
var validPercentOperators = map[condition.PercentOperator]struct{}{
	condition.PercentLessOrEqual: {},
	condition.PercentGreaterThan: {},
	condition.PercentBetween:     {},
}

var validSignalOperators = map[condition.SignalOperator]struct{}{
	condition.NumericLessThan:     {},
	condition.NumericLessEqual:    {},
	condition.NumericEqual:        {},
	condition.NumericNotEqual:     {},
	condition.NumericGreaterEqual: {},
	condition.NumericGreaterThan:  {},

	condition.StringContains:       {},
	condition.StringDoesNotContain: {},
	condition.StringExactlyMatches: {},
	condition.StringContainsRegex:  {},

	condition.SemanticVersionLessThan:     {},
	condition.SemanticVersionLessEqual:    {},
	condition.SemanticVersionEqual:        {},
	condition.SemanticVersionNotEqual:     {},
	condition.SemanticVersionGreaterEqual: {},
	condition.SemanticVersionGreaterThan:  {},
}

// ValidateConditions is a strict lint pass over parsed conditions. The
// evaluator itself fails closed on everything reported here; this pass
// exists so a template author finds out about a dead condition before
// publishing it. It is a pure function: it never mutates its input.
func ValidateConditions(conditions []condition.Named) error {
	for _, nc := range conditions {
		if err := validateNode(nc.Node); err != nil {
			return fmt.Errorf("condition %q: %w", nc.Name, err)
		}
	}
	return nil
}

func validateNode(node *condition.Node) error {
	if node == nil {
		return fmt.Errorf("%w: nil condition node", ErrInvalidSignal)
	}

	switch node.Kind() {
	case condition.KindAnd, condition.KindOr:
		for i, child := range node.Children() {
			if err := validateNode(child); err != nil {
				return fmt.Errorf("child %d: %w", i, err)
			}
		}
		return nil
	case condition.KindPercent:
		return validatePercent(node.Percent())
	case condition.KindCustomSignal:
		return validateCustomSignal(node.CustomSignal())
	default:
		return nil
	}
}

func validatePercent(p condition.Percent) error {
	if _, ok := validPercentOperators[p.Operator]; !ok {
		return fmt.Errorf("%w: percent operator %q never matches", ErrInvalidOperator, p.Operator)
	}

	switch p.Operator {
	case condition.PercentBetween:
		if p.Range.LowerBound > condition.TotalMicroPercent || p.Range.UpperBound > condition.TotalMicroPercent {
			return fmt.Errorf("%w: bounds [%d, %d) exceed %d", ErrInvalidMicroPercent,
				p.Range.LowerBound, p.Range.UpperBound, condition.TotalMicroPercent)
		}
		if p.Range.LowerBound >= p.Range.UpperBound {
			return fmt.Errorf("%w: [%d, %d) is empty and never matches", ErrInvalidRange,
				p.Range.LowerBound, p.Range.UpperBound)
		}
	default:
		if p.MicroPercent > condition.TotalMicroPercent {
			return fmt.Errorf("%w: %d exceeds %d", ErrInvalidMicroPercent,
				p.MicroPercent, condition.TotalMicroPercent)
		}
	}
	return nil
}

func validateCustomSignal(s condition.CustomSignal) error {
	if s.Key == "" {
		return fmt.Errorf("%w: signal key must not be empty", ErrInvalidSignal)
	}
	if _, ok := validSignalOperators[s.Operator]; !ok {
		return fmt.Errorf("%w: custom signal operator %q is not supported", ErrInvalidOperator, s.Operator)
	}
	if len(s.TargetValues) == 0 {
		return fmt.Errorf("%w: operator %q requires at least one target value", ErrInvalidSignal, s.Operator)
	}

	if s.Operator == condition.StringContainsRegex {
		// The evaluator skips uncompilable patterns; flag them here so
		// the author learns the target is dead.
		for i, pattern := range s.TargetValues {
			if _, err := regexp.Compile(pattern); err != nil {
				return fmt.Errorf("%w: target %d %q: %v", ErrInvalidRegexTarget, i, pattern, err)
			}
		}
	}
	return nil
}
