package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/voracio/sheetsense/internal/engine/normalize"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", " \t \r\n ", ""},
		{"lowercases", "Material", "material"},
		{"collapses whitespace", "EN\t388   abrasion\r\nlevel", "en 388 abrasion level"},
		{"keeps units and ratios", "Thickness: 0.15 mm (5.9%)", "thickness: 0.15 mm 5.9%"},
		{"keeps code separators", "EN_388-2016/A1", "en_388-2016/a1"},
		{"strips symbols", "Größe → XL ©", "gre xl"},
		{"trims", "  size: large  ", "size: large"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, normalize.Normalize(tc.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"Material: Nitrile",
		"EN 388: 4X43D",
		"   MIXED   Case\twith\nnoise!!",
		"100% cotton / 0.5 mm",
	}
	for _, in := range inputs {
		once := normalize.Normalize(in)
		assert.Equal(t, once, normalize.Normalize(once), "input %q", in)
	}
}

func TestNormalize_TotalOverPrintableASCII(t *testing.T) {
	t.Parallel()

	// Every printable ASCII char, alone and embedded, must not panic and must
	// stay idempotent.
	for r := rune(32); r < 127; r++ {
		in := "a" + string(r) + "b"
		once := normalize.Normalize(in)
		assert.Equal(t, once, normalize.Normalize(once), "rune %q", r)
	}
}
