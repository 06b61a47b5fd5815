package name

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalise(t *testing.T) {
	n := New()

	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{name: "accented with punctuation", input: "Éric_99!", want: "eric_99", ok: true},
		{name: "only punctuation", input: "***", want: "", ok: false},
		{name: "empty", input: "", want: "", ok: false},
		{name: "already canonical", input: "alice", want: "alice", ok: true},
		{name: "uppercase", input: "ALICE", want: "alice", ok: true},
		{name: "interior spaces collapse", input: "jean   claude", want: "jean claude", ok: true},
		{name: "surrounding whitespace", input: "  bob  ", want: "bob", ok: true},
		{name: "allowed symbols survive", input: "a_b.c-d e", want: "a_b.c-d e", ok: true},
		{name: "diacritics stripped", input: "Ångström", want: "angstrom", ok: true},
		{name: "cedilla", input: "François", want: "francois", ok: true},
		{name: "non-decomposable dropped", input: "øre", want: "re", ok: true},
		{name: "cjk dropped entirely", input: "田中", want: "", ok: false},
		{name: "digits kept", input: "user42", want: "user42", ok: true},
		{name: "tab is not a space", input: "a\tb", want: "ab", ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := n.Normalise(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestNormalise_Deterministic(t *testing.T) {
	n := New()
	for i := 0; i < 3; i++ {
		got, ok := n.Normalise("Zoë-Müller 7")
		assert.True(t, ok)
		assert.Equal(t, "zoe-muller 7", got)
	}
}

func TestNormalise_IdempotentOnCanonicalValues(t *testing.T) {
	n := New()
	first, ok := n.Normalise("Crème Brûlée")
	assert.True(t, ok)

	second, ok := n.Normalise(first)
	assert.True(t, ok)
	assert.Equal(t, first, second)
}
