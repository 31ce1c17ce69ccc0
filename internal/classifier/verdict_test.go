package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseVerdict(t *testing.T) {
	tests := map[string]Verdict{
		"YES":         Affirmative,
		"No":          Negative,
		"NO":          Negative,
		"yes":         Negative,
		"YES.":        Negative,
		"YES, it is":  Negative,
		"Cannot tell": Negative,
		"":            Unknown,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseVerdict(in), "input %q", in)
	}
}

func TestVerdict_String(t *testing.T) {
	assert.Equal(t, "affirmative", Affirmative.String())
	assert.Equal(t, "negative", Negative.String())
	assert.Equal(t, "unknown", Unknown.String())
}
