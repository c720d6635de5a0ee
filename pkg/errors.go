package lemon

import "fmt"

// StatusKind is the closed error taxonomy spec.md §7 fixes for this core.
// It names outcomes, not implementation types, the way the teacher's own
// CompileError variants (pkg/semantics.go: BadExprError, UndefinedError, ...)
// name outcomes rather than reusing a single generic error string.
type StatusKind uint8

const (
	// statusUndefined is the sentinel for uninitialized status slots. It is
	// deliberately iota 0, so a zero-value Status always reads as undefined
	// rather than silently looking like success — use [OK] to construct a
	// success value explicitly. It must never be returned to a caller.
	statusUndefined StatusKind = iota
	// StatusSuccess is the normal outcome.
	StatusSuccess
	// StatusNoMem signals an allocation failure (map grow, buffer
	// allocation). Go's allocator does not return allocation failures to
	// callers, so nothing in this core ever constructs a StatusNoMem value;
	// it is retained to keep the taxonomy complete for callers translating
	// to/from the reference design.
	StatusNoMem
	// StatusFileError is driver-level I/O, external to this core.
	StatusFileError
	// StatusOptionError is driver-level CLI parsing, external to this core.
	StatusOptionError
	// StatusParseError surfaces once any INVALID token or non-Okay flag has
	// been observed downstream (spec.md §7).
	StatusParseError
	// StatusThreadError means a worker could not be spawned. See
	// ScannerInit's doc comment for why this is unreachable under Go's
	// goroutine model.
	StatusThreadError
)

func (k StatusKind) String() string {
	switch k {
	case StatusSuccess:
		return "SUCCESS"
	case StatusNoMem:
		return "NOMEM"
	case StatusFileError:
		return "FILE_ERROR"
	case StatusOptionError:
		return "OPTION_ERROR"
	case StatusParseError:
		return "PARSE_ERROR"
	case StatusThreadError:
		return "THREAD_ERROR"
	default:
		return "UNDEFINED"
	}
}

// Status is a typed outcome implementing the standard error interface, so it
// composes with errors.Is/errors.As, while still letting callers switch on
// a closed Kind the way spec.md §7 specifies. A zero Status is
// statusUndefined, not StatusSuccess — use [OK] to construct a success
// value explicitly.
type Status struct {
	Kind StatusKind
	Err  error // wrapped cause, if any (e.g. the error from a failed goroutine spawn)
}

// OK returns the normal-outcome Status.
func OK() Status {
	return Status{Kind: StatusSuccess}
}

// NewStatus wraps err under kind.
func NewStatus(kind StatusKind, err error) Status {
	return Status{Kind: kind, Err: err}
}

func (s Status) Error() string {
	if s.Err != nil {
		return fmt.Sprintf("%s: %v", s.Kind, s.Err)
	}
	return s.Kind.String()
}

func (s Status) Unwrap() error {
	return s.Err
}

// IsOK reports whether s represents the normal outcome.
func (s Status) IsOK() bool {
	return s.Kind == StatusSuccess
}
