// Package testsupport provides fixtures shared by the lemon package's tests.
// It is adapted from the teacher's internal/test/lexer.go,
// which generates random token streams from Maqui's own vocabulary; this
// version draws from Lemon's instead.
package testsupport

import (
	"math/rand"
	"strings"
)

// validFragments lists source fragments, one token (or token-producing
// sequence) each, that the scanner is guaranteed to classify cleanly.
const validFragments = "let;mut;func;struct;if;else;for;while;return;" +
	"main;x;y;foo_bar;(;);{;};[;];,;:;.;~;" +
	"==;!=;<=;>=;<<;>>;&&;||;=;<;>;+;-;*;/;%;&;|;^;'; ;" +
	"\"a short string\";" +
	"\"a longer string containing a bunch of text: Lorem ipsum dolor sit amet, consectetur adipiscing elit\";" +
	"\"\";123;456;3.14;0.5;#a line comment\n;\n"

// GetRandomTokens returns size space-separated fragments drawn from
// validFragments.
func GetRandomTokens(size int) string {
	return GetRandomTokensWithSep(size, " ")
}

// GetRandomTokensWithSep is GetRandomTokens with a caller-chosen separator
// between fragments.
func GetRandomTokensWithSep(size int, sep string) string {
	valid := strings.Split(validFragments, ";")

	var frags []string
	for len(frags) < size {
		frags = append(frags, valid[rand.Intn(len(valid))])
	}

	return strings.Join(frags, sep)
}
