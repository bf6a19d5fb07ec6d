// Package export renders resolution results for downstream consumption.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/voracio/sheetsense/internal/domain/attribute"
	"github.com/voracio/sheetsense/pkg/errors"
)

// Format selects an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatJSON, FormatCSV:
		return Format(s), nil
	default:
		return "", errors.Newf(errors.CodeInvalidParam, "unknown output format %q", s)
	}
}

// Write renders the results in the given format, preserving their order.
func Write(w io.Writer, format Format, results []attribute.MatchResult) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, results)
	case FormatCSV:
		return WriteCSV(w, results)
	default:
		return WriteText(w, results)
	}
}

// WriteText prints one "Attribute: Value" line per result.
func WriteText(w io.Writer, results []attribute.MatchResult) error {
	for _, r := range results {
		if _, err := fmt.Fprintf(w, "%s: %s\n", r.Attribute, r.Value); err != nil {
			return errors.Wrap(err, errors.CodeInternal, "write text output")
		}
	}
	return nil
}

// WriteJSON emits the results as an indented JSON array.
func WriteJSON(w io.Writer, results []attribute.MatchResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if results == nil {
		results = []attribute.MatchResult{}
	}
	if err := enc.Encode(results); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "encode json output")
	}
	return nil
}

// WriteCSV emits a header row followed by one row per result. Values
// containing separators or newlines are quoted by the encoder.
func WriteCSV(w io.Writer, results []attribute.MatchResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"attribute", "value", "strategy"}); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "write csv header")
	}
	for _, r := range results {
		if err := cw.Write([]string{r.Attribute, r.Value, string(r.Strategy)}); err != nil {
			return errors.Wrap(err, errors.CodeInternal, "write csv row")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "flush csv output")
	}
	return nil
}
