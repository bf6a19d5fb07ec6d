// Package synonym maps canonical attribute names to the alternate labels
// datasheets use for them. The fallback resolver appends these hints to its
// prompts to improve recall; the local matching strategies never consult
// them.
package synonym

import (
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/voracio/sheetsense/pkg/errors"
)

// Table maps a canonical lowercase attribute name to its alternate labels.
// Lookups during a resolution run see a consistent snapshot; ReplaceAll may
// swap the whole mapping between runs (e.g. on a config file change).
type Table struct {
	mu      sync.RWMutex
	entries map[string][]string
}

// NewTable constructs a Table from entries. Keys are lowercased and values
// copied, so the caller's map stays untouched.
func NewTable(entries map[string][]string) *Table {
	t := &Table{}
	t.ReplaceAll(entries)
	return t
}

// Default returns the built-in synonym table for common datasheet
// attributes.
func Default() *Table {
	return NewTable(map[string][]string{
		"material":     {"composition", "made of", "fabric"},
		"size":         {"dimensions", "glove size", "size range"},
		"color":        {"colour", "shade"},
		"thickness":    {"gauge", "mil"},
		"coating":      {"palm coating", "dip"},
		"length":       {"overall length", "cuff length"},
		"packaging":    {"pack size", "units per box"},
		"shelf life":   {"storage life", "expiry"},
		"temperature":  {"temperature range", "operating temperature"},
		"food contact": {"food safe", "food approved"},
	})
}

// Lookup returns the alternate labels for the canonical name, matching
// case-insensitively. The returned slice is a copy.
func (t *Table) Lookup(canonical string) []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	alts, ok := t.entries[strings.ToLower(strings.TrimSpace(canonical))]
	if !ok {
		return nil
	}
	out := make([]string, len(alts))
	copy(out, alts)
	return out
}

// ReplaceAll swaps the entire mapping. Passing nil clears the table.
func (t *Table) ReplaceAll(entries map[string][]string) {
	next := make(map[string][]string, len(entries))
	for k, v := range entries {
		key := strings.ToLower(strings.TrimSpace(k))
		if key == "" {
			continue
		}
		alts := make([]string, 0, len(v))
		for _, a := range v {
			if a = strings.TrimSpace(a); a != "" {
				alts = append(alts, a)
			}
		}
		next[key] = alts
	}
	t.mu.Lock()
	t.entries = next
	t.mu.Unlock()
}

// Len returns the number of canonical names in the table.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// LoadFile reads a YAML mapping of canonical name to alternate labels:
//
//	material: [composition, "made of"]
//	size:
//	  - dimensions
//	  - glove size
func LoadFile(path string) (map[string][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidParam, "reading synonyms file")
	}
	var entries map[string][]string
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidParam, "parsing synonyms file")
	}
	return entries, nil
}
