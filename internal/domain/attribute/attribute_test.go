package attribute

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchResultFound(t *testing.T) {
	t.Parallel()

	assert.True(t, MatchResult{Value: "Nitrile"}.Found())
	assert.False(t, MatchResult{Value: NotFoundValue}.Found())
	assert.False(t, MatchResult{Value: ""}.Found())
}

func TestMatchResultJSON(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(MatchResult{
		Attribute: "Material",
		Value:     "Nitrile",
		Strategy:  StrategyLine,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"attribute":"Material","value":"Nitrile","strategy":"line"}`, string(b))
}
