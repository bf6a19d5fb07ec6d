// Package line matches attribute queries against the flattened list of
// document text lines using fuzzy partial-match scoring.
package line

import (
	"regexp"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/voracio/sheetsense/internal/domain/attribute"
	"github.com/voracio/sheetsense/internal/engine/normalize"
)

// DefaultThreshold is the fuzzy partial-match score (0–100) the best line
// must reach before a value is extracted.
const DefaultThreshold = 70

// BestMatch scans every line once and returns the index and score of the
// single highest-scoring line for the normalized query. Ties resolve to the
// first occurrence in document order. When lines is empty the index is -1.
//
// BestMatch applies no score gate; the context window builder reuses it to
// locate a neighborhood even when the best score is poor.
func BestMatch(normalizedQuery string, lines []string) (int, int) {
	bestIdx, bestScore := -1, -1
	for i, l := range lines {
		score := fuzzy.PartialRatio(normalizedQuery, normalize.Normalize(l))
		if score > bestScore {
			bestIdx, bestScore = i, score
		}
	}
	return bestIdx, bestScore
}

// Matcher extracts attribute values from free-text lines. It holds no
// per-document state and is safe for concurrent use.
type Matcher struct {
	threshold int
}

// NewMatcher constructs a Matcher with the given score threshold; values
// outside (0, 100] fall back to DefaultThreshold.
func NewMatcher(threshold int) *Matcher {
	if threshold <= 0 || threshold > 100 {
		threshold = DefaultThreshold
	}
	return &Matcher{threshold: threshold}
}

// Match finds the best-scoring line for the query and, if the score reaches
// the threshold, extracts a value from the raw line. Extraction preference:
//
//  1. the remainder of the line following the attribute text and an
//     optional colon/dash separator
//  2. the substring after the first colon
//  3. the whole trimmed line
//
// ("", false) means no line reached the threshold.
func (m *Matcher) Match(q attribute.Query, lines []string) (string, bool) {
	idx, score := BestMatch(q.Normalized, lines)
	if idx < 0 || score < m.threshold {
		return "", false
	}
	return extractValue(q, lines[idx]), true
}

// extractValue pulls the value out of the raw best line. The trailing
// pattern is applied case-insensitively to the raw line so casing of the
// extracted value is preserved.
func extractValue(q attribute.Query, raw string) string {
	if q.Normalized != "" {
		re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(q.Normalized) + `\s*[:\-]?\s*(.+)$`)
		if err == nil {
			if sub := re.FindStringSubmatch(raw); sub != nil {
				if v := strings.TrimSpace(sub[1]); v != "" {
					return v
				}
			}
		}
	}
	if i := strings.Index(raw, ":"); i >= 0 {
		if v := strings.TrimSpace(raw[i+1:]); v != "" {
			return v
		}
	}
	return strings.TrimSpace(raw)
}
