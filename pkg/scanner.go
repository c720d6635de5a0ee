package lemon

import "go.uber.org/zap"

// ScannerOptions configures a scanner at construction time. It mirrors the
// teacher's small options-struct-plus-constructor style (pkg/compiler.go's
// Target/Compiler) rather than functional options, which nothing in the
// retrieved pack uses.
type ScannerOptions struct {
	// ChannelCapacity sizes the token channel the scanner publishes to when
	// ScannerInit is asked to create one on the caller's behalf. Ignored by
	// [ScanInto], which takes an already-open [Channel]. Zero defaults to 32
	// (spec.md §6: "reasonable default: small, e.g., 8-64").
	ChannelCapacity int

	// DiagnosticsEnabled toggles whether recoverable lexical conditions
	// (unterminated strings, invalid bytes) are logged through Logger.
	// Disabled by default so library use without a driver stays silent.
	DiagnosticsEnabled bool

	// Logger receives structured diagnostic entries when DiagnosticsEnabled
	// is true. A nil Logger is replaced with zap.NewNop().
	Logger *zap.Logger
}

func (o ScannerOptions) resolved() ScannerOptions {
	if o.ChannelCapacity <= 0 {
		o.ChannelCapacity = 32
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// ScannerInit allocates a [Channel] of the configured capacity, spawns a
// detached scanner worker bound to src and the new channel, and returns
// immediately (spec.md §4.3). The worker owns its state and frees it on
// exit along every path; callers observe completion solely through the
// channel closing (spec.md §9: "detached worker with no join" — no Wait or
// Join is offered here, by design).
//
// Unlike the pthread-based scanner this core's spec is modelled on, a Go
// goroutine cannot fail to spawn short of the runtime being out of memory,
// which is unrecoverable; THREAD_ERROR is therefore reserved in the
// [Status] taxonomy but never actually returned by this implementation.
func ScannerInit(opts ScannerOptions, src []byte) (*Channel, Status) {
	opts = opts.resolved()
	ch := NewChannel(opts.ChannelCapacity)
	ScanInto(opts, src, ch)
	return ch, OK()
}

// ScanInto spawns a detached scanner worker over src, publishing to the
// already-open channel ch and closing it once the source is exhausted. Use
// this instead of ScannerInit when the caller must control channel
// construction (for instance to share sizing logic across several scans).
func ScanInto(opts ScannerOptions, src []byte, ch *Channel) {
	opts = opts.resolved()

	// The scanner indexes one byte past every lexeme it classifies to decide
	// where the lexeme ends; a trailing NUL sentinel (spec.md §3: "Null-
	// terminated... sentinel simplifies the scanner's boundary checks")
	// means that lookahead never needs a separate bounds check.
	buf := src
	if len(buf) == 0 || buf[len(buf)-1] != 0 {
		buf = append(append([]byte(nil), src...), 0)
	}

	s := &scanner{
		src:  buf,
		line: 1,
		ch:   ch,
		diag: newDiagnostics(opts.Logger, opts.DiagnosticsEnabled),
	}

	go s.run()
}

// scanner owns the mutable cursor state of a single scan. It is created and
// destroyed entirely within the worker goroutine spawned by ScanInto/
// ScannerInit — nothing else ever touches it, matching spec.md §5's
// "scanner worker owns its scanner state and frees it on exit".
type scanner struct {
	src  []byte
	pos  int
	line uint32

	ch   *Channel
	diag *Diagnostics
}

func (s *scanner) run() {
	defer s.ch.Close()

	for s.src[s.pos] != 0 {
		if !s.step() {
			return
		}
	}

	s.emit(Token{Kind: KindEOF, Line: s.line})
}

// step classifies and emits exactly one lexical unit (or nothing, for
// whitespace and comments), advancing s.pos past it. It returns false if the
// channel was closed out from under the scanner (spec.md §5 early
// abandonment), signalling run to stop without emitting EOF.
func (s *scanner) step() bool {
	b := s.src[s.pos]

	switch {
	case b == '\n':
		s.line++
		s.pos++
		return true
	case isSpace(b):
		s.pos++
		return true
	case b == '#':
		s.skipComment()
		return true
	case b >= '0' && b <= '9':
		return s.scanNumber()
	case b == '"':
		return s.scanString()
	case isLetter(b):
		return s.scanIdentifier()
	default:
		if kind, length, ok := s.scanOperator(); ok {
			return s.emitSpan(kind, length)
		}
		return s.scanInvalid()
	}
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\r', '\t', '\v', '\f':
		return true
	}
	return false
}

func isLetter(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isLetterOrDigit(b byte) bool {
	return isLetter(b) || isDigit(b)
}

func (s *scanner) skipComment() {
	for s.src[s.pos] != '\n' && s.src[s.pos] != 0 {
		s.pos++
	}
}

// scanOperator recognizes single-character punctuation and the
// one-or-two-character operators of spec.md §4.3, advancing s.pos past
// whatever it matches. It reports ok=false for any byte that matches
// neither, leaving s.pos untouched so the caller can fall through to
// invalid-byte resynchronization.
func (s *scanner) scanOperator() (kind Kind, length int, ok bool) {
	kind, length, ok = s.peekOperator()
	if ok {
		s.pos += length
	}
	return kind, length, ok
}

func (s *scanner) peekOperator() (kind Kind, length int, ok bool) {
	b := s.src[s.pos]
	next := s.src[s.pos+1]

	switch b {
	case ';':
		return KindSemicolon, 1, true
	case '[':
		return KindLeftBracket, 1, true
	case ']':
		return KindRightBracket, 1, true
	case '(':
		return KindLeftParen, 1, true
	case ')':
		return KindRightParen, 1, true
	case '{':
		return KindLeftBrace, 1, true
	case '}':
		return KindRightBrace, 1, true
	case '.':
		return KindDot, 1, true
	case '~':
		return KindTilde, 1, true
	case ',':
		return KindComma, 1, true
	case ':':
		return KindColon, 1, true
	case '*':
		return KindStar, 1, true
	case '\'':
		return KindBitNot, 1, true
	case '^':
		return KindBitXor, 1, true
	case '+':
		return KindAdd, 1, true
	case '-':
		return KindMinus, 1, true
	case '/':
		return KindDiv, 1, true
	case '%':
		return KindMod, 1, true
	case '=':
		if next == '=' {
			return KindEqualEqual, 2, true
		}
		return KindEqual, 1, true
	case '!':
		if next == '=' {
			return KindNotEqual, 2, true
		}
		return KindNot, 1, true
	case '&':
		if next == '&' {
			return KindAnd, 2, true
		}
		return KindAmpersand, 1, true
	case '|':
		if next == '|' {
			return KindOr, 2, true
		}
		return KindBitOr, 1, true
	case '<':
		if next == '<' {
			return KindLShift, 2, true
		}
		if next == '=' {
			return KindLeq, 2, true
		}
		return KindLess, 1, true
	case '>':
		if next == '>' {
			return KindRShift, 2, true
		}
		if next == '=' {
			return KindGeq, 2, true
		}
		return KindGreater, 1, true
	}

	return 0, 0, false
}

// scanNumber consumes the weak-consumer numeric literal spec.md §4.3/§9
// defines: a maximal run of digits with at most one '.'. A second '.'
// terminates the literal instead of being consumed, so "1..2" lexes as
// LITERAL_FLOAT "1.", DOT, LITERAL_INT "2" (spec.md §8).
func (s *scanner) scanNumber() bool {
	start := s.pos
	seenDot := false
	kind := KindLiteralInt

	for {
		b := s.src[s.pos]
		if isDigit(b) {
			s.pos++
			continue
		}
		if b == '.' && !seenDot {
			seenDot = true
			kind = KindLiteralFloat
			s.pos++
			continue
		}
		break
	}

	return s.emitSpan(kind, s.pos-start)
}

// scanString consumes a double-quoted literal. On a clean close the emitted
// lexeme excludes both quotes. On running into the NUL sentinel first, it
// emits a [KindInvalid] token with an empty lexeme and [BadString] set, and
// leaves s.pos at the sentinel so the caller's loop terminates naturally
// (spec.md §4.3).
func (s *scanner) scanString() bool {
	openLine := s.line
	s.pos++ // skip opening quote
	start := s.pos

	for {
		b := s.src[s.pos]
		if b == '"' {
			lexeme := s.src[start:s.pos]
			s.pos++ // skip closing quote
			return s.emit(Token{
				Kind:   KindLiteralString,
				Line:   openLine,
				Lexeme: lexeme,
				Length: uint32(len(lexeme)),
				Flags:  Okay,
			})
		}
		if b == 0 {
			s.diag.Logf(DiagUnterminatedString, openLine, "unterminated string literal")
			return s.emit(Token{
				Kind:  KindInvalid,
				Line:  openLine,
				Flags: BadString,
			})
		}
		if b == '\n' {
			s.line++
		}
		s.pos++
	}
}

// scanIdentifier consumes the maximal run of letter-or-digit bytes starting
// at a letter, then resolves it against the keyword map (spec.md §4.1/§4.3).
func (s *scanner) scanIdentifier() bool {
	start := s.pos
	for isLetterOrDigit(s.src[s.pos]) {
		s.pos++
	}

	word := s.src[start:s.pos]
	if kind, ok := lookupKeyword(word); ok {
		return s.emitSpan(kind, len(word))
	}

	return s.emitLexeme(KindIdentifier, word, Okay)
}

// scanInvalid resynchronizes after a byte that matches no lexical rule: it
// advances to the next whitespace byte or the NUL sentinel and emits a
// single [KindInvalid] token covering that span (spec.md §4.3).
func (s *scanner) scanInvalid() bool {
	start := s.pos
	line := s.line

	for {
		b := s.src[s.pos]
		if b == 0 || isSpace(b) || b == '\n' {
			break
		}
		s.pos++
	}

	if s.pos == start {
		// A single byte that is itself whitespace-adjacent but unclassified
		// (shouldn't happen given the switch in step, but guarantees
		// forward progress regardless).
		s.pos++
	}

	word := s.src[start:s.pos]
	s.diag.Logf(DiagInvalidByte, line, "invalid symbol %q", word)

	return s.emit(Token{
		Kind:   KindInvalid,
		Line:   line,
		Lexeme: word,
		Length: uint32(len(word)),
		Flags:  Okay,
	})
}

// emitSpan emits a token of kind whose lexeme is the length bytes ending at
// the current cursor, computing the span's start line from the current
// line counter (none of these spans cross a newline).
func (s *scanner) emitSpan(kind Kind, length int) bool {
	lexeme := s.src[s.pos-length : s.pos]
	return s.emitLexeme(kind, lexeme, Okay)
}

func (s *scanner) emitLexeme(kind Kind, lexeme []byte, flags Flags) bool {
	return s.emit(Token{
		Kind:   kind,
		Line:   s.line,
		Lexeme: lexeme,
		Length: uint32(len(lexeme)),
		Flags:  flags,
	})
}

func (s *scanner) emit(tok Token) bool {
	return s.ch.Send(tok) == SendOK
}
