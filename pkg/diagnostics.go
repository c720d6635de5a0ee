package lemon

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// DiagKind classifies a [DiagEntry]. Deliberately small and closed, the way
// the teacher keeps its CompileError variants closed in pkg/semantics.go.
type DiagKind uint8

const (
	DiagUnterminatedString DiagKind = iota
	DiagInvalidByte
	DiagDuplicateSymbol
)

func (k DiagKind) String() string {
	switch k {
	case DiagUnterminatedString:
		return "unterminated_string"
	case DiagInvalidByte:
		return "invalid_byte"
	case DiagDuplicateSymbol:
		return "duplicate_symbol"
	default:
		return "unknown"
	}
}

// DiagEntry is one recoverable condition observed by the scanner or symbol
// table (spec.md §4.5).
type DiagEntry struct {
	Kind    DiagKind
	Message string
	Line    uint32
}

// Diagnostics is the append-only, thread-safe log spec.md §4.5 calls for.
// Writes are totally ordered by a mutex; Flush explicitly drains the
// accumulated entries. When the hook is enabled, every write is additionally
// streamed through a *zap.Logger with structured fields, grounded on
// other_examples/e729f33a_5kbpers-ticdc__cdc-processor.go.go's
// log.Error("...", zap.Error(err)) idiom — the teacher itself has no
// equivalent hook and reports top-level errors with fmt.Println in
// cmd/main.go, which this core deliberately does not reach for (see
// SPEC_FULL.md §A.1).
type Diagnostics struct {
	mu      sync.Mutex
	entries []DiagEntry

	logger  *zap.Logger
	enabled bool
}

func newDiagnostics(logger *zap.Logger, enabled bool) *Diagnostics {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Diagnostics{logger: logger, enabled: enabled}
}

// NewDiagnostics constructs a standalone, enabled hook, for callers that are
// not already inside a scanner's options (for instance code that records a
// rejected [Scope.Insert] as [DiagDuplicateSymbol]; the symbol table itself
// logs nothing).
func NewDiagnostics(logger *zap.Logger) *Diagnostics {
	return newDiagnostics(logger, true)
}

// Logf appends a formatted entry and, if enabled, emits it to the logger.
func (d *Diagnostics) Logf(kind DiagKind, line uint32, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)

	d.mu.Lock()
	d.entries = append(d.entries, DiagEntry{Kind: kind, Message: msg, Line: line})
	d.mu.Unlock()

	if !d.enabled {
		return
	}

	d.logger.Warn(msg,
		zap.String("kind", kind.String()),
		zap.Uint32("line", line),
	)
}

// Flush drains and returns every entry recorded so far.
func (d *Diagnostics) Flush() []DiagEntry {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := d.entries
	d.entries = nil
	return out
}

// Count reports how many entries are currently buffered without draining
// them.
func (d *Diagnostics) Count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.entries)
}
