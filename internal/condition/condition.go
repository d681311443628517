// Package condition defines the boolean condition model used for
// remote-config targeting. A condition is a closed tree of variants:
// constant True/False leaves, And/Or composites, deterministic Percent
// leaves, and CustomSignal leaves that compare a runtime value against
// template-declared targets.
//
// Exactly one variant is populated per Node. The constructors are the
// only way to build nodes, so a well-formed tree is guaranteed
// structurally: And/Or nodes always carry at least one child, and the
// variant tag always matches the populated payload.
package condition

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the constructors.
var (
	ErrNoChildren = errors.New("and/or condition requires at least one child")
	ErrEmptyName  = errors.New("condition name must not be empty")
)

// TotalMicroPercent is the size of the micropercent space: one unit is
// 1/1,000,000 of a percent, so [0, TotalMicroPercent) covers [0%, 100%).
const TotalMicroPercent = 100_000_000

// PercentOperator selects how a percent condition compares the bucket
// against its threshold(s). String values match the template wire format.
type PercentOperator string

const (
	PercentUnspecified PercentOperator = "PERCENT_CONDITION_OPERATOR_UNSPECIFIED"
	PercentLessOrEqual PercentOperator = "LESS_OR_EQUAL"
	PercentGreaterThan PercentOperator = "GREATER_THAN"
	PercentBetween     PercentOperator = "BETWEEN"
)

// SignalOperator is a typed comparison applied by a custom-signal
// condition. String values match the template wire format. Each family
// has its own distinct cases; numeric and semantic-version operators
// are not interchangeable even where the comparison symbol is the same.
type SignalOperator string

const (
	SignalUnspecified SignalOperator = "CUSTOM_SIGNAL_OPERATOR_UNSPECIFIED"

	NumericLessThan     SignalOperator = "NUMERIC_LESS_THAN"
	NumericLessEqual    SignalOperator = "NUMERIC_LESS_EQUAL"
	NumericEqual        SignalOperator = "NUMERIC_EQUAL"
	NumericNotEqual     SignalOperator = "NUMERIC_NOT_EQUAL"
	NumericGreaterEqual SignalOperator = "NUMERIC_GREATER_EQUAL"
	NumericGreaterThan  SignalOperator = "NUMERIC_GREATER_THAN"

	StringContains       SignalOperator = "STRING_CONTAINS"
	StringDoesNotContain SignalOperator = "STRING_DOES_NOT_CONTAIN"
	StringExactlyMatches SignalOperator = "STRING_EXACTLY_MATCHES"
	StringContainsRegex  SignalOperator = "STRING_CONTAINS_REGEX"

	SemanticVersionLessThan     SignalOperator = "SEMANTIC_VERSION_LESS_THAN"
	SemanticVersionLessEqual    SignalOperator = "SEMANTIC_VERSION_LESS_EQUAL"
	SemanticVersionEqual        SignalOperator = "SEMANTIC_VERSION_EQUAL"
	SemanticVersionNotEqual     SignalOperator = "SEMANTIC_VERSION_NOT_EQUAL"
	SemanticVersionGreaterEqual SignalOperator = "SEMANTIC_VERSION_GREATER_EQUAL"
	SemanticVersionGreaterThan  SignalOperator = "SEMANTIC_VERSION_GREATER_THAN"
)

// Kind identifies which variant of a Node is populated.
type Kind uint8

const (
	KindTrue Kind = iota
	KindFalse
	KindAnd
	KindOr
	KindPercent
	KindCustomSignal
)

// Percent describes a deterministic percentage-rollout leaf. The bucket
// computed from (Seed, randomization ID) is compared per Operator:
// LessOrEqual and GreaterThan use MicroPercent, Between uses Range.
// Absent thresholds stay at their zero value, which deliberately means
// "almost nothing matches", never "no restriction".
type Percent struct {
	Operator     PercentOperator
	Seed         string
	MicroPercent uint32
	Range        MicroPercentRange
}

// MicroPercentRange is a half-open micropercent interval
// [LowerBound, UpperBound). An empty interval (LowerBound == UpperBound)
// matches nothing.
type MicroPercentRange struct {
	LowerBound uint32
	UpperBound uint32
}

// CustomSignal describes a typed comparison of one context value
// (looked up by Key) against the declared TargetValues.
type CustomSignal struct {
	Key          string
	Operator     SignalOperator
	TargetValues []string
}

// Node is one node of a condition tree. Nodes are immutable once built;
// the same tree may be evaluated concurrently from multiple goroutines.
type Node struct {
	kind     Kind
	children []*Node
	percent  Percent
	signal   CustomSignal
}

// True returns a constant-true leaf.
func True() *Node { return &Node{kind: KindTrue} }

// False returns a constant-false leaf.
func False() *Node { return &Node{kind: KindFalse} }

// And returns a conjunction over children. Passing no children is a
// construction error, not a runtime default.
func And(children ...*Node) (*Node, error) {
	if len(children) == 0 {
		return nil, fmt.Errorf("and: %w", ErrNoChildren)
	}
	copied := make([]*Node, len(children))
	copy(copied, children)
	return &Node{kind: KindAnd, children: copied}, nil
}

// Or returns a disjunction over children. Passing no children is a
// construction error, not a runtime default.
func Or(children ...*Node) (*Node, error) {
	if len(children) == 0 {
		return nil, fmt.Errorf("or: %w", ErrNoChildren)
	}
	copied := make([]*Node, len(children))
	copy(copied, children)
	return &Node{kind: KindOr, children: copied}, nil
}

// NewPercent returns a percent leaf.
func NewPercent(p Percent) *Node {
	return &Node{kind: KindPercent, percent: p}
}

// NewCustomSignal returns a custom-signal leaf. TargetValues is copied
// so later mutation of the caller's slice cannot reach the tree.
func NewCustomSignal(s CustomSignal) *Node {
	targets := make([]string, len(s.TargetValues))
	copy(targets, s.TargetValues)
	s.TargetValues = targets
	return &Node{kind: KindCustomSignal, signal: s}
}

// Kind reports which variant this node is.
func (n *Node) Kind() Kind { return n.kind }

// Children returns the child nodes of an And/Or composite, in
// declaration order. It is nil for leaves. Callers must not modify the
// returned slice.
func (n *Node) Children() []*Node { return n.children }

// Percent returns the percent payload; zero value unless KindPercent.
func (n *Node) Percent() Percent { return n.percent }

// CustomSignal returns the custom-signal payload; zero value unless
// KindCustomSignal.
func (n *Node) CustomSignal() CustomSignal { return n.signal }

// Named pairs a condition tree with the name it is published under.
type Named struct {
	Name string
	Node *Node
}

// NewNamed returns a named condition. An empty name is a construction
// error: the evaluator keys its results by name.
func NewNamed(name string, node *Node) (Named, error) {
	if name == "" {
		return Named{}, ErrEmptyName
	}
	return Named{Name: name, Node: node}, nil
}
