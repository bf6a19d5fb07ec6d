package window_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voracio/sheetsense/internal/engine/window"
)

func numberedLines(n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %03d", i)
	}
	return lines
}

func TestBuild_CentersOnBestMatch(t *testing.T) {
	t.Parallel()

	lines := numberedLines(100)
	lines[50] = "Material: Nitrile"

	got := window.Build("material", lines, 5)
	require.Len(t, got, 10)
	assert.Equal(t, "line 045", got[0])
	assert.Contains(t, got, "Material: Nitrile")
}

func TestBuild_ClampsAtDocumentStart(t *testing.T) {
	t.Parallel()

	lines := numberedLines(30)
	lines[1] = "Material: Nitrile"

	got := window.Build("material", lines, 10)
	assert.Equal(t, "line 000", got[0])
	assert.Len(t, got, 11)
}

func TestBuild_ClampsAtDocumentEnd(t *testing.T) {
	t.Parallel()

	lines := numberedLines(30)
	lines[28] = "Material: Nitrile"

	got := window.Build("material", lines, 10)
	assert.Equal(t, "line 029", got[len(got)-1])
	assert.Len(t, got, 12)
}

func TestBuild_NoGate(t *testing.T) {
	t.Parallel()

	// Even with nothing resembling the query, a window is still produced
	// around whatever scored highest.
	lines := numberedLines(5)
	got := window.Build("completely unrelated attribute", lines, 2)
	assert.NotEmpty(t, got)
}

func TestBuild_EmptyLines(t *testing.T) {
	t.Parallel()
	assert.Nil(t, window.Build("material", nil, 5))
}

func TestBuild_DefaultRadius(t *testing.T) {
	t.Parallel()

	lines := numberedLines(100)
	lines[50] = "Material: Nitrile"

	got := window.Build("material", lines, 0)
	assert.Len(t, got, 2*window.DefaultRadius)
}
