package lemon

import "sync"

// ScopeKind names the lexical region a [Scope] represents (spec.md §3).
type ScopeKind uint8

const (
	ScopeGlobal ScopeKind = iota
	ScopeFile
	ScopeFunction
	ScopeMethod
	ScopeUdt
)

// Scope is a node in the "spaghetti stack" of scoped hash maps spec.md §3
// describes: a hash map of identifier to [Symbol], plus a back-reference to
// the enclosing scope. Parent is a lookup relation, not ownership — scope
// memory is owned by whatever AST node introduced it (spec.md §9) — so
// Scope carries no children slice and no finalizer.
//
// This generalizes the teacher's flat, copy-per-statement SymbolTable in
// pkg/semantics.go (which re-copies its whole Entries map for every
// statement via Copy/Merge) into the parent-linked graph spec.md §4.4
// requires; the teacher's approach doesn't scale past a single flat scope.
//
// Only the global scope (kind == ScopeGlobal) is ever touched by more than
// one goroutine, during GlobalInit/GlobalFree; every other scope is
// single-owner and unlocked, matching spec.md §5's concurrency model.
type Scope struct {
	kind    ScopeKind
	parent  *Scope
	entries map[string]Symbol

	// mu and configured apply only to the global scope.
	mu         sync.Mutex
	configured bool
}

// globalScope is the process-wide root of every spaghetti stack (spec.md §3:
// "Exactly one global scope per process"). It is reachable only through
// GlobalInit's return value and Global(); nothing in this package assumes a
// package-level pointer stays valid past a GlobalFree.
var (
	globalMu    sync.Mutex
	globalScope *Scope
)

// nativeTypes lists the built-in primitive types spec.md §4.4 requires the
// global scope to be pre-populated with, name to byte size.
var nativeTypes = []struct {
	name string
	size uint32
}{
	{"bool", 1}, {"byte", 1}, {"addr", 8},
	{"int8", 1}, {"int16", 2}, {"int32", 4}, {"int64", 8},
	{"uint8", 1}, {"uint16", 2}, {"uint32", 4}, {"uint64", 8},
	{"float32", 4}, {"float64", 8},
	{"complex64", 8}, {"complex128", 16},
	{"string", 8},
}

// builtinFuncs lists the built-in functions spec.md §4.4 requires, each
// with its own empty scope.
var builtinFuncs = []string{"assert", "print", "sizeof", "typeof"}

// GlobalInit populates the process-global scope with the native types and
// built-in functions spec.md §4.4 fixes. It is guarded by a mutex so
// concurrent callers race safely, but it is not reentrant: calling it again
// before a matching GlobalFree is a programmer error and panics, per
// spec.md §7 ("internal assertions ... indicate implementation bugs ...
// they may abort").
func GlobalInit() *Scope {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalScope != nil && globalScope.configured {
		panic("lemon: GlobalInit called while already configured")
	}

	g := &Scope{kind: ScopeGlobal, entries: make(map[string]Symbol)}

	for _, nt := range nativeTypes {
		g.entries[nt.name] = Native{ByteSize: nt.size}
	}

	for _, name := range builtinFuncs {
		g.entries[name] = &Function{Table: &Scope{kind: ScopeFunction, parent: g, entries: make(map[string]Symbol)}}
	}

	g.configured = true
	globalScope = g

	return g
}

// GlobalFree tears down the process-global scope. It asserts the scope was
// previously configured, matching GlobalInit's reentrancy assertion.
func GlobalFree() {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalScope == nil || !globalScope.configured {
		panic("lemon: GlobalFree called without a configured global scope")
	}

	globalScope = nil
}

// Global returns the current process-global scope, or nil if GlobalInit has
// not (yet, or any longer) been called.
func Global() *Scope {
	globalMu.Lock()
	defer globalMu.Unlock()
	return globalScope
}

// Kind reports the scope's kind.
func (s *Scope) Kind() ScopeKind {
	return s.kind
}

// Parent returns the enclosing scope, or nil for the global scope.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Spawn creates a child scope whose parent link is s. kind must be one of
// ScopeFile, ScopeFunction, ScopeMethod or ScopeUdt — spawning another
// global scope is a contract violation the caller is responsible for
// avoiding (spec.md §4.4 invariant: "the global scope is never used as a
// non-root").
func (s *Scope) Spawn(kind ScopeKind) *Scope {
	if kind == ScopeGlobal {
		panic("lemon: Spawn cannot create a second global scope")
	}

	return &Scope{
		kind:    kind,
		parent:  s,
		entries: make(map[string]Symbol),
	}
}

// Insert adds name/symbol to s if name is not already present in s's own
// entries. It returns false, leaving the existing entry untouched, on a
// duplicate (spec.md §4.4/§8 property 5: insertion is idempotent under
// duplication).
func (s *Scope) Insert(name string, symbol Symbol) bool {
	if s.kind == ScopeGlobal {
		s.mu.Lock()
		defer s.mu.Unlock()
	}

	if _, exists := s.entries[name]; exists {
		return false
	}

	s.entries[name] = symbol
	return true
}

// Lookup resolves name within s's own entries only (spec.md §4.4).
func (s *Scope) Lookup(name string) (Symbol, bool) {
	if s.kind == ScopeGlobal {
		s.mu.Lock()
		defer s.mu.Unlock()
	}

	sym, ok := s.entries[name]
	return sym, ok
}

// LookupRecursive walks s and its ancestor chain, returning the symbol from
// the nearest scope that defines name and that scope itself. The global
// scope is always the last stop, since every parent chain is rooted there
// (spec.md §4.4/§8 property 6).
func (s *Scope) LookupRecursive(name string) (Symbol, *Scope, bool) {
	for scope := s; scope != nil; scope = scope.parent {
		if sym, ok := scope.Lookup(name); ok {
			return sym, scope, true
		}
	}

	return nil, nil, false
}

// MarkReferenced finds the nearest entry matching name along s's ancestor
// chain and sets its referenced flag, for the parser to call when a name is
// used in an expression (spec.md §4.4).
func (s *Scope) MarkReferenced(name string) {
	if sym, _, ok := s.LookupRecursive(name); ok {
		setReferenced(sym)
	}
}
