package lemon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindStringMatchesCanonicalSpelling(t *testing.T) {
	cases := map[Kind]string{
		KindInvalid:       "INVALID",
		KindEOF:           "EOF",
		KindLiteralString: "LITERAL_STRING",
		KindLShift:        "LSHIFT",
		KindFallthrough:   "FALLTHROUGH",
		KindFalse:         "FALSE",
	}

	for kind, want := range cases {
		assert.Equal(t, want, kind.String())
	}
}

func TestKindStringOutOfRange(t *testing.T) {
	assert.Equal(t, "Kind(255)", Kind(255).String())
}

func TestFlagsHas(t *testing.T) {
	assert.True(t, BadString.Has(BadString))
	assert.False(t, Okay.Has(BadString))
	assert.False(t, BadNumber.Has(BadString))
}

func TestTokenIsError(t *testing.T) {
	assert.True(t, Token{Kind: KindInvalid}.IsError())
	assert.True(t, Token{Kind: KindLiteralString, Flags: BadString}.IsError())
	assert.False(t, Token{Kind: KindIdentifier, Flags: Okay}.IsError())
}
