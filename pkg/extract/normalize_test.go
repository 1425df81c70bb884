package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "spaces only", in: " \t\n ", want: ""},
		{name: "diacritics and case", in: "Perché È così", want: "perche e cosi"},
		{name: "whitespace collapse", in: "  Città   DI\tMilano \n ", want: "citta di milano"},
		{name: "punctuation kept", in: "SABATO 28 GIUGNO, ORE 17", want: "sabato 28 giugno, ore 17"},
		{name: "ring and umlaut", in: "Ångström Müller", want: "angstrom muller"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"", "CORTEO SABATO 28 GIUGNO, ORE 17 STAZIONE VENEZIA S.LUCIA", "Perché è così", "İstanbul",
		"🔥 Sciopero   generale 🔥", "ﬁne settimana", " non​breaking ", "Ｆｕｌｌｗｉｄｔｈ", "áè",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestFoldKey(t *testing.T) {
	assert.Equal(t, "corteo per la pace", FoldKey("🔥 Corteo per la PACE!!! 🔥"))
	assert.Equal(t, "sciopero 8 marzo", FoldKey("Sciopero - 8 marzo"))
	assert.Equal(t, FoldKey("Città di Milano"), FoldKey("citta  di   milano."))
	assert.Empty(t, FoldKey("!!! ..."))
	assert.Empty(t, FoldKey(""))
}

func TestNewTextContext(t *testing.T) {
	tc := NewTextContext("Presidio in Piazza Maggiore")
	assert.Equal(t, "Presidio in Piazza Maggiore", tc.Raw)
	assert.Equal(t, "presidio in piazza maggiore", tc.Normalized)
}
