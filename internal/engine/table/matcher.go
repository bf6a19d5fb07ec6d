// Package table matches attribute queries against structured tables,
// treating rows as label→value pairs and headers as column labels.
package table

import (
	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/voracio/sheetsense/internal/domain/attribute"
	"github.com/voracio/sheetsense/internal/domain/document"
	"github.com/voracio/sheetsense/internal/engine/normalize"
)

// DefaultThreshold is the fuzzy partial-match score (0–100) a cell must
// reach to count as a hit.
const DefaultThreshold = 85

// Matcher scans tables for a cell matching the query and resolves an
// adjacent or co-indexed value. It holds no per-document state and is safe
// for concurrent use.
type Matcher struct {
	threshold int
}

// NewMatcher constructs a Matcher with the given score threshold;
// values outside (0, 100] fall back to DefaultThreshold.
func NewMatcher(threshold int) *Matcher {
	if threshold <= 0 || threshold > 100 {
		threshold = DefaultThreshold
	}
	return &Matcher{threshold: threshold}
}

// Match scans tables in document order. Tables with fewer than 2 rows are
// skipped entirely. Within a table, data-row cells (row index ≥ 1) are
// compared in row-then-column order against the normalized query; the first
// cell at or above the threshold wins. Value priority on a hit at column i:
//
//  1. the next cell in the same row (i+1), if present and non-empty
//  2. the other cell, if the row has exactly two cells
//
// If neither applies, headers are consulted: a header cell equal to the
// query post-normalization resolves to the cell directly below it. Tables
// that produce no value fall through to the next table; ("", false) means
// the caller should proceed to the next strategy.
func (m *Matcher) Match(q attribute.Query, tables []document.Table) (string, bool) {
	for _, t := range tables {
		if !t.HeaderAware() {
			continue
		}
		if v, ok := m.matchDataRows(q, t); ok {
			return v, true
		}
		if v, ok := m.matchHeader(q, t); ok {
			return v, true
		}
	}
	return "", false
}

func (m *Matcher) matchDataRows(q attribute.Query, t document.Table) (string, bool) {
	rows := t.Rows()
	for _, row := range rows[1:] {
		for i, cell := range row {
			text, present := cell.Text()
			if !present {
				continue
			}
			if fuzzy.PartialRatio(q.Normalized, normalize.Normalize(text)) < m.threshold {
				continue
			}
			if i+1 < len(row) {
				if v, ok := row[i+1].Text(); ok {
					return v, true
				}
			}
			if len(row) == 2 {
				if v, ok := row[1-i].Text(); ok {
					return v, true
				}
			}
		}
	}
	return "", false
}

// matchHeader resolves queries that name a column rather than a row label:
// an exact post-normalization header match yields the cell directly below.
func (m *Matcher) matchHeader(q attribute.Query, t document.Table) (string, bool) {
	rows := t.Rows()
	header := rows[0]
	for i, cell := range header {
		text, present := cell.Text()
		if !present {
			continue
		}
		if normalize.Normalize(text) != q.Normalized {
			continue
		}
		if i < len(rows[1]) {
			if v, ok := rows[1][i].Text(); ok {
				return v, true
			}
		}
	}
	return "", false
}
