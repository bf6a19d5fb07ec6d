// Package attribute defines the query and result types shared by all
// resolution strategies.
package attribute

// NotFoundValue is the sentinel reported for attributes no strategy could
// resolve. It is a value, not an error: a missing attribute is an expected
// outcome of resolution.
const NotFoundValue = "Not found"

// Strategy identifies which resolution strategy produced a result.
type Strategy string

const (
	StrategyDomainCode Strategy = "domain-code"
	StrategyTable      Strategy = "table"
	StrategyLine       Strategy = "line"
	StrategyLLM        Strategy = "llm"
	StrategyNone       Strategy = "none"
)

// Query is one user-supplied attribute name together with its normalized
// form, computed once at construction. Queries are processed independently;
// there is no cross-attribute state.
type Query struct {
	// Raw is the attribute name exactly as the user supplied it.
	Raw string

	// Normalized is the canonical comparison form of Raw.
	Normalized string
}

// MatchResult is the outcome of resolving a single attribute: the resolved
// value or NotFoundValue, and the strategy that produced it. Confidence
// scores are internal tie-breakers only and deliberately not part of the
// result record.
type MatchResult struct {
	Attribute string   `json:"attribute"`
	Value     string   `json:"value"`
	Strategy  Strategy `json:"strategy"`
}

// Found reports whether the result carries an extracted value rather than
// the not-found sentinel.
func (r MatchResult) Found() bool {
	return r.Value != NotFoundValue && r.Value != ""
}
