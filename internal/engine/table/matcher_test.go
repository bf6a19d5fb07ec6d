package table_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voracio/sheetsense/internal/domain/attribute"
	"github.com/voracio/sheetsense/internal/domain/document"
	"github.com/voracio/sheetsense/internal/engine/normalize"
	"github.com/voracio/sheetsense/internal/engine/table"
)

func query(raw string) attribute.Query {
	return attribute.Query{Raw: raw, Normalized: normalize.Normalize(raw)}
}

func cells(texts ...string) []document.Cell {
	row := make([]document.Cell, len(texts))
	for i, t := range texts {
		row[i] = document.NewCell(t)
	}
	return row
}

func TestMatch_LabelValuePair(t *testing.T) {
	t.Parallel()

	tbl := document.NewTable([][]document.Cell{
		cells("Property", "Value"),
		cells("Material", "Nitrile"),
		cells("Thickness", "0.15 mm"),
	})
	m := table.NewMatcher(table.DefaultThreshold)

	v, ok := m.Match(query("material"), []document.Table{tbl})
	require.True(t, ok)
	assert.Equal(t, "Nitrile", v)

	v, ok = m.Match(query("thickness"), []document.Table{tbl})
	require.True(t, ok)
	assert.Equal(t, "0.15 mm", v)
}

func TestMatch_HeaderColumn(t *testing.T) {
	t.Parallel()

	tbl := document.NewTable([][]document.Cell{
		cells("Size", "Color"),
		cells("Large", "Blue"),
	})
	m := table.NewMatcher(table.DefaultThreshold)

	v, ok := m.Match(query("color"), []document.Table{tbl})
	require.True(t, ok)
	assert.Equal(t, "Blue", v)
}

func TestMatch_TwoCellRowOtherCell(t *testing.T) {
	t.Parallel()

	// The label sits in the second cell; the value is the other one.
	tbl := document.NewTable([][]document.Cell{
		cells("Value", "Property"),
		cells("Latex", "Coating material"),
	})
	m := table.NewMatcher(table.DefaultThreshold)

	v, ok := m.Match(query("coating material"), []document.Table{tbl})
	require.True(t, ok)
	assert.Equal(t, "Latex", v)
}

func TestMatch_SkipsEmptyAdjacentCell(t *testing.T) {
	t.Parallel()

	tbl := document.NewTable([][]document.Cell{
		cells("Property", "Value"),
		{document.NewCell("Material"), document.EmptyCell()},
	})
	m := table.NewMatcher(table.DefaultThreshold)

	// Adjacent cell is absent and the two-cell rule finds nothing either,
	// so the table falls through.
	_, ok := m.Match(query("material"), []document.Table{tbl})
	assert.False(t, ok)
}

func TestMatch_SingleRowTableNeverMatches(t *testing.T) {
	t.Parallel()

	tbl := document.NewTable([][]document.Cell{
		cells("Material", "Nitrile"),
	})
	m := table.NewMatcher(table.DefaultThreshold)

	_, ok := m.Match(query("material"), []document.Table{tbl})
	assert.False(t, ok)
}

func TestMatch_ScansTablesInOrder(t *testing.T) {
	t.Parallel()

	first := document.NewTable([][]document.Cell{
		cells("Header A", "Header B"),
		cells("Weight", "120 g"),
	})
	second := document.NewTable([][]document.Cell{
		cells("Header A", "Header B"),
		cells("Weight", "999 g"),
	})
	m := table.NewMatcher(table.DefaultThreshold)

	v, ok := m.Match(query("weight"), []document.Table{first, second})
	require.True(t, ok)
	assert.Equal(t, "120 g", v)
}

func TestMatch_NoHit(t *testing.T) {
	t.Parallel()

	tbl := document.NewTable([][]document.Cell{
		cells("Property", "Value"),
		cells("Material", "Nitrile"),
	})
	m := table.NewMatcher(table.DefaultThreshold)

	_, ok := m.Match(query("shelf life"), []document.Table{tbl})
	assert.False(t, ok)
}

func TestNewMatcher_ThresholdFallback(t *testing.T) {
	t.Parallel()

	// Out-of-range thresholds behave like the default.
	tbl := document.NewTable([][]document.Cell{
		cells("Property", "Value"),
		cells("Material", "Nitrile"),
	})
	for _, th := range []int{-1, 0, 101} {
		m := table.NewMatcher(th)
		v, ok := m.Match(query("material"), []document.Table{tbl})
		require.True(t, ok, "threshold %d", th)
		assert.Equal(t, "Nitrile", v)
	}
}
