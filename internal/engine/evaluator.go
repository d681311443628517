// Package engine evaluates condition trees against a runtime context.
//
// Evaluation is purely functional: no I/O, no locks, no shared state
// between calls, so the same immutable tree can be evaluated
// concurrently with different contexts. Every malformed or missing
// input (an unparsable number or version, a missing context key, an
// invalid regex target, an unspecified operator) evaluates to false
// for that leaf and never aborts sibling conditions. This fail-closed
// policy means a misconfigured or partially-populated context can never
// switch a flag on by accident.
package engine

import (
	"github.com/TimurManjosov/goremoteconfig/internal/bucketing"
	"github.com/TimurManjosov/goremoteconfig/internal/condition"
)

// Context carries the runtime values conditions are evaluated against:
// string keys to string values, read-only for the duration of a call.
// Typed coercion happens inside the operator handlers, never here.
type Context map[string]string

// RandomizationIDKey is the well-known context key consumed by percent
// conditions. It identifies the subject being bucketed (a user or
// device), so the same subject lands in the same bucket across calls.
const RandomizationIDKey = "randomizationId"

// EvaluateConditions evaluates each named condition in input order and
// returns one boolean per name. A later entry with a duplicate name
// overwrites the earlier result; this last-write-wins behavior is
// intentional and mirrors map semantics for callers. Callers that need
// declaration order keep it in their input slice.
func EvaluateConditions(conditions []condition.Named, ctx Context) map[string]bool {
	results := make(map[string]bool, len(conditions))
	for _, nc := range conditions {
		results[nc.Name] = Evaluate(nc.Node, ctx)
	}
	return results
}

// Evaluate walks one condition tree bottom-up. A nil node is false.
func Evaluate(node *condition.Node, ctx Context) bool {
	if node == nil {
		return false
	}

	switch node.Kind() {
	case condition.KindTrue:
		return true
	case condition.KindFalse:
		return false
	case condition.KindAnd:
		for _, child := range node.Children() {
			if !Evaluate(child, ctx) {
				return false
			}
		}
		return true
	case condition.KindOr:
		for _, child := range node.Children() {
			if Evaluate(child, ctx) {
				return true
			}
		}
		return false
	case condition.KindPercent:
		return evaluatePercent(node.Percent(), ctx)
	case condition.KindCustomSignal:
		return evaluateCustomSignal(node.CustomSignal(), ctx)
	}
	return false
}

// evaluatePercent buckets the subject and compares the bucket per the
// percent operator. A missing or empty randomization ID means bucketing
// cannot occur: the condition is not satisfied, which is not an error.
// Absent thresholds stay 0, so an unset LESS_OR_EQUAL matches only
// bucket 0 and an unset BETWEEN is an empty range matching nothing.
func evaluatePercent(p condition.Percent, ctx Context) bool {
	id := ctx[RandomizationIDKey]
	if id == "" {
		return false
	}

	bucket := bucketing.Bucket(p.Seed, id)
	switch p.Operator {
	case condition.PercentLessOrEqual:
		return bucket <= p.MicroPercent
	case condition.PercentGreaterThan:
		return bucket > p.MicroPercent
	case condition.PercentBetween:
		// Half-open interval; equal bounds match nothing, even at
		// bucket == LowerBound.
		return p.Range.LowerBound <= bucket && bucket < p.Range.UpperBound
	default:
		return false
	}
}

func evaluateCustomSignal(s condition.CustomSignal, ctx Context) bool {
	signalValue, ok := ctx[s.Key]
	if !ok {
		return false
	}
	handler, ok := getSignalHandler(s.Operator)
	if !ok {
		return false
	}
	return handler.check(signalValue, s.TargetValues)
}
