// Package engine implements the attribute resolution orchestrator: the
// fixed-priority chain of matching strategies that decides, for one
// attribute name, what value (if any) the document contains.
package engine

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/voracio/sheetsense/internal/domain/attribute"
	"github.com/voracio/sheetsense/internal/domain/document"
	"github.com/voracio/sheetsense/internal/engine/fallback"
	"github.com/voracio/sheetsense/internal/engine/line"
	"github.com/voracio/sheetsense/internal/engine/normalize"
	"github.com/voracio/sheetsense/internal/engine/table"
	"github.com/voracio/sheetsense/internal/engine/window"
	"github.com/voracio/sheetsense/internal/infrastructure/monitoring/logging"
	"github.com/voracio/sheetsense/pkg/errors"
)

// Config carries the orchestrator's tunables. Thresholds and the fallback
// switch are explicit construction-time values, not ambient state, so runs
// are deterministic and parallel-safe to test.
type Config struct {
	// TableThreshold is the fuzzy score a table cell must reach (default 85).
	TableThreshold int

	// LineThreshold is the fuzzy score the best line must reach (default 70).
	LineThreshold int

	// ContextRadius is the line radius of the fallback context window
	// (default 20).
	ContextRadius int

	// EnableFallback turns the LLM fallback stage on. When off, unresolved
	// attributes settle at the not-found sentinel and no network call occurs.
	EnableFallback bool

	// BatchFallback sends all unresolved attributes of a run in one request
	// against the full document text instead of one windowed request each.
	// One round-trip, but a failed call degrades every attribute in it.
	BatchFallback bool
}

// Resolver runs the strategy chain over an immutable document. It holds no
// per-run state; attributes are independent and their resolution order
// cannot affect outcomes.
type Resolver struct {
	cfg        Config
	strategies []Strategy
	fb         *fallback.Resolver
	logger     logging.Logger
	metrics    Metrics
}

// New constructs a Resolver. fb may be nil when cfg.EnableFallback is
// false; metrics and logger may be nil.
func New(cfg Config, fb *fallback.Resolver, logger logging.Logger, metrics Metrics) *Resolver {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if cfg.ContextRadius <= 0 {
		cfg.ContextRadius = window.DefaultRadius
	}
	return &Resolver{
		cfg: cfg,
		strategies: []Strategy{
			codeStrategy{},
			tableStrategy{m: table.NewMatcher(cfg.TableThreshold)},
			lineStrategy{m: line.NewMatcher(cfg.LineThreshold)},
		},
		fb:      fb,
		logger:  logger.Named("engine"),
		metrics: metrics,
	}
}

// newQuery builds the attribute query, computing the normalized form once.
func newQuery(raw string) attribute.Query {
	return attribute.Query{Raw: raw, Normalized: normalize.Normalize(raw)}
}

// Resolve runs the chain for a single attribute. The document is read-only
// throughout; only the fallback stage can block on I/O.
func (r *Resolver) Resolve(ctx context.Context, doc *document.Document, attr string) attribute.MatchResult {
	start := time.Now()
	q := newQuery(attr)
	res := r.resolveLocal(q, doc)
	if res.Strategy == attribute.StrategyNone && r.cfg.EnableFallback && r.fb != nil {
		ctxLines := window.Build(q.Normalized, doc.Lines(), r.cfg.ContextRadius)
		res = attribute.MatchResult{
			Attribute: attr,
			Value:     r.fb.Ask(ctx, attr, ctxLines),
			Strategy:  attribute.StrategyLLM,
		}
	}
	r.observe(res, time.Since(start))
	return res
}

// resolveLocal runs the strategy chain only; no network.
func (r *Resolver) resolveLocal(q attribute.Query, doc *document.Document) attribute.MatchResult {
	for _, s := range r.strategies {
		if v, ok := s.TryResolve(q, doc); ok {
			return attribute.MatchResult{Attribute: q.Raw, Value: v, Strategy: s.Name()}
		}
	}
	return attribute.MatchResult{
		Attribute: q.Raw,
		Value:     attribute.NotFoundValue,
		Strategy:  attribute.StrategyNone,
	}
}

// ResolveAll resolves each requested attribute in the supplied order and
// returns exactly one record per attribute. The document and attribute list
// are validated up front; a malformed request fails before any resolution
// begins. With batched fallback enabled, all locally unresolved attributes
// go to the collaborator in a single call.
func (r *Resolver) ResolveAll(ctx context.Context, doc *document.Document, attrs []string) ([]attribute.MatchResult, error) {
	if doc == nil {
		return nil, errors.New(errors.CodeDocumentUnavailable, "no document")
	}
	if len(attrs) == 0 {
		return nil, errors.New(errors.CodeNoAttributes, "no attributes requested")
	}
	for _, a := range attrs {
		if strings.TrimSpace(a) == "" {
			return nil, errors.New(errors.CodeInvalidParam, "attribute names must be non-empty")
		}
	}

	runLog := r.logger.With(logging.String("run_id", uuid.NewString()))
	runLog.Debug("resolution run started",
		logging.Int("attributes", len(attrs)),
		logging.Int("lines", len(doc.Lines())),
		logging.Int("tables", len(doc.Tables())))

	if r.cfg.EnableFallback && r.cfg.BatchFallback && r.fb != nil {
		return r.resolveBatched(ctx, doc, attrs, runLog), nil
	}

	results := make([]attribute.MatchResult, 0, len(attrs))
	for _, a := range attrs {
		res := r.Resolve(ctx, doc, a)
		runLog.Debug("attribute resolved",
			logging.String("attribute", a),
			logging.String("strategy", string(res.Strategy)))
		results = append(results, res)
	}
	return results, nil
}

// resolveBatched runs the local chain for every attribute first, then sends
// the still-unresolved remainder to the collaborator in one request.
func (r *Resolver) resolveBatched(ctx context.Context, doc *document.Document, attrs []string, runLog logging.Logger) []attribute.MatchResult {
	results := make([]attribute.MatchResult, len(attrs))
	var unresolved []string
	for i, a := range attrs {
		start := time.Now()
		res := r.resolveLocal(newQuery(a), doc)
		if res.Strategy == attribute.StrategyNone {
			unresolved = append(unresolved, a)
		} else {
			r.observe(res, time.Since(start))
		}
		results[i] = res
	}

	if len(unresolved) > 0 {
		runLog.Debug("batched fallback", logging.Int("unresolved", len(unresolved)))
		start := time.Now()
		answers := r.fb.AskBatch(ctx, unresolved, doc.Lines())
		took := time.Since(start)
		for i := range results {
			if results[i].Strategy != attribute.StrategyNone {
				continue
			}
			results[i].Value = answers[results[i].Attribute]
			results[i].Strategy = attribute.StrategyLLM
			r.observe(results[i], took)
		}
	}
	return results
}

func (r *Resolver) observe(res attribute.MatchResult, took time.Duration) {
	r.metrics.ObserveResolution(res.Strategy, res.Found(), took)
	if res.Strategy == attribute.StrategyLLM && strings.HasPrefix(res.Value, fallback.ErrorPrefix) {
		r.metrics.ObserveFallbackFailure()
	}
}
