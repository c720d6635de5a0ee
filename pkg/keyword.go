package lemon

import "sync"

// keywords maps every reserved word (spec.md §6) to its [Kind]. It is built
// once, on first lookup, and never mutated afterward, so it is safe to share
// across the scanner worker and any number of readers without locking —
// the same "read-only after construction" contract the teacher's
// keywordTable relies on in pkg/lexer.go.
var keywords map[string]Kind
var keywordsOnce sync.Once

func initKeywords() {
	keywords = map[string]Kind{
		"for":         KindFor,
		"while":       KindWhile,
		"break":       KindBreak,
		"continue":    KindContinue,
		"if":          KindIf,
		"else":        KindElse,
		"switch":      KindSwitch,
		"case":        KindCase,
		"default":     KindDefault,
		"fallthrough": KindFallthrough,
		"goto":        KindGoto,
		"label":       KindLabel,
		"let":         KindLet,
		"mut":         KindMut,
		"struct":      KindStruct,
		"import":      KindImport,
		"self":        KindSelf,
		"func":        KindFunc,
		"priv":        KindPriv,
		"pub":         KindPub,
		"return":      KindReturn,
		"void":        KindVoid,
		"null":        KindNull,
		"true":        KindTrue,
		"false":       KindFalse,
	}
}

// lookupKeyword returns the [Kind] reserved for word, and true, if word is
// one of the reserved words in spec.md §6. Otherwise it returns
// (KindIdentifier, false) so callers can fall through to emitting an
// identifier token without a second lookup.
func lookupKeyword(word []byte) (Kind, bool) {
	keywordsOnce.Do(initKeywords)

	k, ok := keywords[string(word)]
	if !ok {
		return KindIdentifier, false
	}

	return k, true
}

// keywordTableSize reports the number of reserved words currently loaded,
// used by the collision self-check in keyword_test.go.
func keywordTableSize() int {
	keywordsOnce.Do(initKeywords)
	return len(keywords)
}
