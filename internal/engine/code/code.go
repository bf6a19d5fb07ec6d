// Package code extracts positional ratings from fixed-width performance
// codes such as the EN 388 glove protection rating (e.g. "4X43D"). These
// attributes carry no separable label in the document, so the orchestrator
// treats this extractor as terminal for its attribute family.
package code

import (
	"regexp"
	"strings"

	"github.com/voracio/sheetsense/internal/domain/document"
)

// family describes one fixed-width code family: how to recognise a code
// token in text and which sub-attribute keyword maps to which character
// position. Patterns are compiled once at package init, not per call.
type family struct {
	// labels are the attribute-name fragments that select this family.
	labels []string

	// token matches a qualifying code. EN 388 ratings are four characters
	// from 0-5 or X ("untested"), with an optional trailing EN ISO 13997
	// cut-class letter A-F.
	token *regexp.Regexp

	// positions maps a sub-attribute keyword to its character position.
	positions map[string]int

	// width is the guaranteed length of a qualifying token; positions at or
	// beyond it refer to the optional suffix.
	width int
}

var en388 = family{
	labels: []string{"en 388", "en388"},
	token:  regexp.MustCompile(`\b[0-5xX]{4}[a-fA-F]?\b`),
	positions: map[string]int{
		"abrasion": 0,
		"cut":      1,
		"tear":     2,
		"puncture": 3,
		"iso":      4,
		"class":    4,
	},
	width: 4,
}

var families = []family{en388}

// PositionFor reports whether the normalized attribute name belongs to a
// known code family and, if so, which character position it maps to.
// Keyword precedence within a family follows the more specific sub-attribute
// first: "en 388 iso cut class" resolves to the suffix position, not to
// "cut".
func PositionFor(normalized string) (int, bool) {
	for _, f := range families {
		if !f.matchesLabel(normalized) {
			continue
		}
		// Suffix keywords win over the base positions so that e.g. "cut" in
		// "iso cut class" does not shadow the class position.
		if pos, ok := f.suffixPosition(normalized); ok {
			return pos, true
		}
		for kw, pos := range f.positions {
			if pos >= f.width {
				continue
			}
			if strings.Contains(normalized, kw) {
				return pos, true
			}
		}
	}
	return 0, false
}

func (f family) matchesLabel(normalized string) bool {
	for _, l := range f.labels {
		if strings.Contains(normalized, l) {
			return true
		}
	}
	return false
}

func (f family) suffixPosition(normalized string) (int, bool) {
	for kw, pos := range f.positions {
		if pos < f.width {
			continue
		}
		if strings.Contains(normalized, kw) {
			return pos, true
		}
	}
	return 0, false
}

// Extract locates the first qualifying code token, scanning document lines
// first and then table cells in document order, and returns the character at
// pos. The second return is false when no qualifying token exists anywhere
// or the first token is too short for the requested position (the optional
// suffix letter is absent).
func Extract(doc *document.Document, pos int) (string, bool) {
	token, ok := findToken(doc)
	if !ok {
		return "", false
	}
	if pos >= len(token) {
		return "", false
	}
	return strings.ToUpper(string(token[pos])), true
}

func findToken(doc *document.Document) (string, bool) {
	re := en388.token
	for _, line := range doc.Lines() {
		if tok := re.FindString(line); tok != "" {
			return tok, true
		}
	}
	for _, table := range doc.Tables() {
		for _, row := range table.Rows() {
			for _, cell := range row {
				text, present := cell.Text()
				if !present {
					continue
				}
				if tok := re.FindString(text); tok != "" {
					return tok, true
				}
			}
		}
	}
	return "", false
}
