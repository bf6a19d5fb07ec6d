package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voracio/sheetsense/internal/domain/attribute"
)

var sample = []attribute.MatchResult{
	{Attribute: "Material", Value: "Nitrile", Strategy: attribute.StrategyLine},
	{Attribute: "Warranty", Value: attribute.NotFoundValue, Strategy: attribute.StrategyNone},
	{Attribute: "Notes", Value: "wash, dry", Strategy: attribute.StrategyTable},
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for _, ok := range []string{"text", "json", "csv"} {
		f, err := ParseFormat(ok)
		require.NoError(t, err)
		assert.Equal(t, Format(ok), f)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestWriteText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, sample))
	assert.Equal(t, "Material: Nitrile\nWarranty: Not found\nNotes: wash, dry\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sample))

	var back []attribute.MatchResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, sample, back)
}

func TestWriteJSONEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sample))
	assert.Equal(t,
		"attribute,value,strategy\n"+
			"Material,Nitrile,line\n"+
			"Warranty,Not found,none\n"+
			"Notes,\"wash, dry\",table\n",
		buf.String())
}

func TestWriteDispatch(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, sample))
	assert.Contains(t, buf.String(), "attribute,value,strategy")
}
