// Package fallback delegates attributes local strategies could not resolve
// to a language-model collaborator. Every failure at this boundary becomes
// an inline error value on the affected attribute's result; fallback never
// raises a hard failure, so one attribute's outage cannot block resolution
// of the others.
package fallback

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/voracio/sheetsense/internal/domain/attribute"
	"github.com/voracio/sheetsense/internal/engine/synonym"
	"github.com/voracio/sheetsense/internal/infrastructure/monitoring/logging"
	"github.com/voracio/sheetsense/pkg/errors"
)

// ErrorPrefix marks an inline error value produced by a failed fallback
// call, mirroring the visible "error as value" convention of the result
// records.
const ErrorPrefix = "LLM error: "

// systemPrompt is the fixed instruction sent with every request.
const systemPrompt = "You're a helpful assistant that extracts attribute values from product datasheets."

// Completer is the LLM collaborator boundary. The openai package provides
// the production implementation; tests substitute fakes.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Config holds the resolver's retry and timeout behavior.
type Config struct {
	// Timeout bounds each individual request so the pipeline never hangs
	// indefinitely on a single attribute.
	Timeout time.Duration

	// MaxRetries is the number of additional attempts after a transient
	// transport failure. Authorization failures are never retried.
	MaxRetries int

	// RetryBackoff is the pause before a retry attempt.
	RetryBackoff time.Duration
}

const (
	defaultTimeout      = 30 * time.Second
	defaultMaxRetries   = 1
	defaultRetryBackoff = 500 * time.Millisecond
)

// Resolver issues single or batched extraction requests to the Completer.
type Resolver struct {
	client   Completer
	synonyms *synonym.Table
	cfg      Config
	logger   logging.Logger
}

// NewResolver constructs a Resolver. A nil synonyms table disables hints; a
// nil logger discards output.
func NewResolver(client Completer, synonyms *synonym.Table, cfg Config, logger logging.Logger) *Resolver {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = defaultRetryBackoff
	}
	if synonyms == nil {
		synonyms = synonym.NewTable(nil)
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Resolver{client: client, synonyms: synonyms, cfg: cfg, logger: logger.Named("fallback")}
}

// Ask requests the value of one attribute given a bounded context window
// and returns the trimmed response verbatim. Any failure is returned as an
// inline error value, never as an error.
func (r *Resolver) Ask(ctx context.Context, attr string, contextLines []string) string {
	user := fmt.Sprintf("Given this datasheet content, what is the value of '%s'?", attr)
	if alts := r.synonyms.Lookup(attr); len(alts) > 0 {
		user += fmt.Sprintf(" The attribute may also be labelled: %s.", strings.Join(alts, ", "))
	}
	user += "\n\n" + strings.Join(contextLines, "\n")

	resp, err := r.complete(ctx, user)
	if err != nil {
		r.logger.Warn("single fallback failed",
			logging.String("attribute", attr), logging.Err(err))
		return errorValue(err)
	}
	return resp
}

// AskBatch requests all unresolved attributes in one call against the full
// document text, expecting one "Attribute: Value" line per attribute. The
// returned map has an entry for every requested attribute: the parsed
// value, the not-found sentinel when the response omitted the attribute, or
// a shared inline error value when the whole call failed. A failed batch
// degrading every remaining attribute at once is an accepted trade-off of
// the single round-trip.
func (r *Resolver) AskBatch(ctx context.Context, attrs []string, docLines []string) map[string]string {
	out := make(map[string]string, len(attrs))
	if len(attrs) == 0 {
		return out
	}

	var b strings.Builder
	b.WriteString("Given this datasheet content, provide the value of each of the following attributes. ")
	b.WriteString("Respond with one line per attribute, formatted exactly as 'Attribute: Value'.\n")
	b.WriteString("Attributes:\n")
	for _, a := range attrs {
		b.WriteString("- ")
		b.WriteString(a)
		if alts := r.synonyms.Lookup(a); len(alts) > 0 {
			b.WriteString(" (also labelled: ")
			b.WriteString(strings.Join(alts, ", "))
			b.WriteString(")")
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(strings.Join(docLines, "\n"))

	resp, err := r.complete(ctx, b.String())
	if err != nil {
		r.logger.Warn("batched fallback failed",
			logging.Int("attributes", len(attrs)), logging.Err(err))
		ev := errorValue(err)
		for _, a := range attrs {
			out[a] = ev
		}
		return out
	}

	parsed := parseBatch(resp)
	for _, a := range attrs {
		if v, ok := parsed[strings.ToLower(strings.TrimSpace(a))]; ok && v != "" {
			out[a] = v
		} else {
			out[a] = attribute.NotFoundValue
		}
	}
	return out
}

// complete runs one bounded attempt, retrying transient failures up to
// MaxRetries times. Authorization failures are terminal immediately.
func (r *Resolver) complete(ctx context.Context, user string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= r.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", errors.Wrap(ctx.Err(), errors.CodeLLMTimeout, "fallback cancelled")
			case <-time.After(r.cfg.RetryBackoff):
			}
		}
		attemptCtx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
		resp, err := r.client.Complete(attemptCtx, systemPrompt, user)
		cancel()
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if errors.IsCode(err, errors.CodeLLMUnauthorized) {
			break
		}
	}
	return "", lastErr
}

// parseBatch splits a line-oriented "Attribute: Value" response on the
// first colon of each line, keyed by lowercased attribute name.
func parseBatch(resp string) map[string]string {
	out := make(map[string]string)
	for _, ln := range strings.Split(resp, "\n") {
		parts := strings.SplitN(ln, ":", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(parts[0], "-")))
		val := strings.TrimSpace(parts[1])
		if key == "" || val == "" {
			continue
		}
		if _, exists := out[key]; !exists {
			out[key] = val
		}
	}
	return out
}

func errorValue(err error) string {
	if err == nil {
		return ErrorPrefix + "unknown failure"
	}
	return ErrorPrefix + err.Error()
}
