package engine

import (
	"regexp"
	"strings"
	"sync"

	"github.com/TimurManjosov/goremoteconfig/internal/condition"
)

// signalHandler evaluates one custom-signal operator. Handlers are pure
// and fail closed: any parse failure on either side yields false, never
// an error, so a malformed signal can never satisfy a condition.
type signalHandler interface {
	check(signalValue string, targetValues []string) bool
}

var (
	signalHandlers = map[condition.SignalOperator]signalHandler{
		condition.NumericLessThan:     numericHandler{cmp: func(s, t float64) bool { return s < t }},
		condition.NumericLessEqual:    numericHandler{cmp: func(s, t float64) bool { return s <= t }},
		condition.NumericEqual:        numericHandler{cmp: func(s, t float64) bool { return s == t }},
		condition.NumericNotEqual:     numericHandler{cmp: func(s, t float64) bool { return s != t }},
		condition.NumericGreaterEqual: numericHandler{cmp: func(s, t float64) bool { return s >= t }},
		condition.NumericGreaterThan:  numericHandler{cmp: func(s, t float64) bool { return s > t }},

		condition.StringContains:       containsHandler{},
		condition.StringDoesNotContain: doesNotContainHandler{},
		condition.StringExactlyMatches: exactlyMatchesHandler{},
		condition.StringContainsRegex:  containsRegexHandler{},

		condition.SemanticVersionLessThan:     versionHandler{cmp: func(ord int) bool { return ord < 0 }},
		condition.SemanticVersionLessEqual:    versionHandler{cmp: func(ord int) bool { return ord <= 0 }},
		condition.SemanticVersionEqual:        versionHandler{cmp: func(ord int) bool { return ord == 0 }},
		condition.SemanticVersionNotEqual:     versionHandler{cmp: func(ord int) bool { return ord != 0 }},
		condition.SemanticVersionGreaterEqual: versionHandler{cmp: func(ord int) bool { return ord >= 0 }},
		condition.SemanticVersionGreaterThan:  versionHandler{cmp: func(ord int) bool { return ord > 0 }},
	}
	// regexCache keeps compiled regex by pattern for the hot evaluation path.
	// Expected value type is *regexp.Regexp.
	regexCache sync.Map
)

func getSignalHandler(op condition.SignalOperator) (signalHandler, bool) {
	h, ok := signalHandlers[op]
	return h, ok
}

// numericHandler compares the signal against the first target value as
// float64. Parse failure on either side is false for every numeric
// operator, including NUMERIC_NOT_EQUAL: "unparsable" is never
// vacuously unequal.
type numericHandler struct {
	cmp func(signal, target float64) bool
}

func (h numericHandler) check(signalValue string, targetValues []string) bool {
	if len(targetValues) == 0 {
		return false
	}
	signal, ok := parseNumber(signalValue)
	if !ok {
		return false
	}
	target, ok := parseNumber(targetValues[0])
	if !ok {
		return false
	}
	return h.cmp(signal, target)
}

// containsHandler matches if the signal contains any target as a
// case-sensitive substring.
type containsHandler struct{}

func (containsHandler) check(signalValue string, targetValues []string) bool {
	for _, target := range targetValues {
		if strings.Contains(signalValue, target) {
			return true
		}
	}
	return false
}

// doesNotContainHandler matches only if the signal contains none of the
// targets.
type doesNotContainHandler struct{}

func (doesNotContainHandler) check(signalValue string, targetValues []string) bool {
	return !containsHandler{}.check(signalValue, targetValues)
}

// exactlyMatchesHandler matches if the signal equals any target exactly.
type exactlyMatchesHandler struct{}

func (exactlyMatchesHandler) check(signalValue string, targetValues []string) bool {
	for _, target := range targetValues {
		if signalValue == target {
			return true
		}
	}
	return false
}

// containsRegexHandler matches if any target, compiled as a regular
// expression, matches somewhere within the signal. A target that does
// not compile is skipped; it only rules out that one entry.
type containsRegexHandler struct{}

func (containsRegexHandler) check(signalValue string, targetValues []string) bool {
	for _, pattern := range targetValues {
		rx, ok := getCompiledRegex(pattern)
		if !ok {
			continue
		}
		if rx.MatchString(signalValue) {
			return true
		}
	}
	return false
}

// versionHandler compares the signal against the first target value as
// dotted version components, then applies cmp to the three-way order.
type versionHandler struct {
	cmp func(ord int) bool
}

func (h versionHandler) check(signalValue string, targetValues []string) bool {
	if len(targetValues) == 0 {
		return false
	}
	signal, ok := parseVersion(signalValue)
	if !ok {
		return false
	}
	target, ok := parseVersion(targetValues[0])
	if !ok {
		return false
	}
	return h.cmp(compareVersions(signal, target))
}

func getCompiledRegex(pattern string) (*regexp.Regexp, bool) {
	if cached, ok := regexCache.Load(pattern); ok {
		rx, ok := cached.(*regexp.Regexp)
		return rx, ok
	}

	rx, err := regexp.Compile(pattern)
	if err != nil {
		return nil, false
	}
	regexCache.Store(pattern, rx)
	return rx, true
}
