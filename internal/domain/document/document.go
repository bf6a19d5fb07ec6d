// Package document defines the read-only document model the resolution
// engine operates on: an ordered sequence of text lines plus an ordered
// sequence of tables, both produced by an external parsing collaborator.
// The model is never mutated after construction.
package document

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/voracio/sheetsense/pkg/errors"
)

// Cell is a single table cell: either textual content or absent. The zero
// value is an absent cell. Modelling absence explicitly (rather than a
// nullable string) forces callers to handle empty cells at every read site.
type Cell struct {
	text    string
	present bool
}

// NewCell constructs a Cell from raw text. Text that is empty after trimming
// yields an absent cell.
func NewCell(text string) Cell {
	t := strings.TrimSpace(text)
	if t == "" {
		return Cell{}
	}
	return Cell{text: t, present: true}
}

// EmptyCell returns an absent cell.
func EmptyCell() Cell { return Cell{} }

// Text returns the cell content and whether the cell holds any.
func (c Cell) Text() (string, bool) {
	return c.text, c.present
}

// IsEmpty reports whether the cell is absent or blank.
func (c Cell) IsEmpty() bool { return !c.present }

// MarshalJSON encodes an absent cell as null and a present cell as a string.
func (c Cell) MarshalJSON() ([]byte, error) {
	if !c.present {
		return []byte("null"), nil
	}
	return json.Marshal(c.text)
}

// UnmarshalJSON accepts a string or null. Whitespace-only strings decode to
// an absent cell, matching what table extractors commonly emit.
func (c *Cell) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = Cell{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*c = NewCell(s)
	return nil
}

// Row is an ordered sequence of cells.
type Row []Cell

// Table is an ordered sequence of rows. A minimum of 2 rows is required for
// header-aware matching; smaller tables are only usable for direct
// cell-level scanning.
type Table struct {
	rows []Row
}

// NewTable constructs a Table from rows of raw cell text. Nil entries are
// preserved as absent cells so column indices stay aligned.
func NewTable(rows [][]Cell) Table {
	t := Table{rows: make([]Row, 0, len(rows))}
	for _, r := range rows {
		row := make(Row, len(r))
		copy(row, r)
		t.rows = append(t.rows, row)
	}
	return t
}

// Rows returns the table's rows. The returned slice is shared and must be
// treated as read-only.
func (t Table) Rows() []Row { return t.rows }

// RowCount returns the number of rows.
func (t Table) RowCount() int { return len(t.rows) }

// HeaderAware reports whether the table is large enough for header-aware
// matching (at least one header row and one data row).
func (t Table) HeaderAware() bool { return len(t.rows) >= 2 }

// Document is the parsed document model: trimmed non-empty lines in reading
// order plus independently extracted tables. It is owned by the caller and
// passed by reference into the engine for the lifetime of one resolution run.
type Document struct {
	lines  []string
	tables []Table
}

// New constructs a Document from raw lines and tables. Lines are trimmed and
// blank lines dropped; table cell content is already normalised by NewCell.
// A document with no lines and no tables cannot support resolution and is
// rejected with CodeDocumentUnavailable.
func New(lines []string, tables []Table) (*Document, error) {
	d := &Document{tables: tables}
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l != "" {
			d.lines = append(d.lines, l)
		}
	}
	if len(d.lines) == 0 && len(d.tables) == 0 {
		return nil, errors.New(errors.CodeDocumentUnavailable, "document has no lines and no tables")
	}
	return d, nil
}

// Lines returns the document lines in reading order. The returned slice is
// shared and must be treated as read-only.
func (d *Document) Lines() []string { return d.lines }

// Tables returns the extracted tables in document order. The returned slice
// is shared and must be treated as read-only.
func (d *Document) Tables() []Table { return d.tables }

// documentJSON is the wire shape accepted by FromJSON: the minimum contract
// of the external parsing collaborator.
type documentJSON struct {
	Lines  []string   `json:"lines"`
	Tables [][][]*string `json:"tables"`
}

// FromJSON decodes a pre-parsed document from its JSON representation:
//
//	{"lines": ["Material: Nitrile", ...],
//	 "tables": [[["Size","Color"],["Large","Blue"]], ...]}
//
// Table cells may be null for absent cells. Construction failures are
// reported as CodeDocumentUnavailable; the engine never partially resolves
// against a malformed document.
func FromJSON(r io.Reader) (*Document, error) {
	var raw documentJSON
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.Wrap(err, errors.CodeDocumentUnavailable, "decoding document json")
	}
	tables := make([]Table, 0, len(raw.Tables))
	for _, rawTable := range raw.Tables {
		rows := make([][]Cell, 0, len(rawTable))
		for _, rawRow := range rawTable {
			row := make([]Cell, len(rawRow))
			for i, cell := range rawRow {
				if cell != nil {
					row[i] = NewCell(*cell)
				}
			}
			rows = append(rows, row)
		}
		tables = append(tables, NewTable(rows))
	}
	return New(raw.Lines, tables)
}
