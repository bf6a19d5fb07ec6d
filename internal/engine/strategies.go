package engine

import (
	"github.com/voracio/sheetsense/internal/domain/attribute"
	"github.com/voracio/sheetsense/internal/domain/document"
	"github.com/voracio/sheetsense/internal/engine/code"
	"github.com/voracio/sheetsense/internal/engine/line"
	"github.com/voracio/sheetsense/internal/engine/table"
)

// Strategy is one local resolution step. TryResolve returns the resolved
// value and true when this strategy settles the attribute; false means the
// orchestrator proceeds down the chain.
type Strategy interface {
	Name() attribute.Strategy
	TryResolve(q attribute.Query, doc *document.Document) (string, bool)
}

// codeStrategy resolves attributes of a fixed-width code family. It is
// terminal for that family: when the attribute belongs to it, the outcome
// is final whether or not the document carries a code token.
type codeStrategy struct{}

func (codeStrategy) Name() attribute.Strategy { return attribute.StrategyDomainCode }

func (codeStrategy) TryResolve(q attribute.Query, doc *document.Document) (string, bool) {
	pos, ok := code.PositionFor(q.Normalized)
	if !ok {
		return "", false
	}
	if v, found := code.Extract(doc, pos); found {
		return v, true
	}
	return attribute.NotFoundValue, true
}

// tableStrategy wraps the table matcher.
type tableStrategy struct {
	m *table.Matcher
}

func (tableStrategy) Name() attribute.Strategy { return attribute.StrategyTable }

func (s tableStrategy) TryResolve(q attribute.Query, doc *document.Document) (string, bool) {
	return s.m.Match(q, doc.Tables())
}

// lineStrategy wraps the free-text line matcher.
type lineStrategy struct {
	m *line.Matcher
}

func (lineStrategy) Name() attribute.Strategy { return attribute.StrategyLine }

func (s lineStrategy) TryResolve(q attribute.Query, doc *document.Document) (string, bool) {
	return s.m.Match(q, doc.Lines())
}
