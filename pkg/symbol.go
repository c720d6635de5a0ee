package lemon

// AstRef is an opaque handle supplied by the parser. The symbol table never
// dereferences it (spec.md §3); it exists purely so the parser can attach
// its own AST node to a Function/Method/Udt/Variable symbol and retrieve it
// later. This mirrors the opacity of the teacher's own Expr interface{} in
// pkg/ast.go, which the symbol table likewise never inspects.
type AstRef = any

// Symbol is a closed tagged variant describing a declared entity: a native
// type, an imported file, a function, a method, a user-defined type, or a
// variable (spec.md §3). It follows the teacher's TypeInfo-interface sum
// type in pkg/semantics.go (BasicType/FuncType/ErrorType/...), generalized
// from "resolved expression type" to "declared symbol".
//
// The variant is selected by type-switching on the interface, never by
// inspecting a raw discriminator integer (spec.md §9).
type Symbol interface {
	// isSymbol is unexported so Symbol stays a closed set defined only in
	// this package.
	isSymbol()
}

// Native describes a primitive type such as int32 or string.
type Native struct {
	ByteSize uint32
}

func (Native) isSymbol() {}

// File describes a file-level scope imported by another file.
type File struct {
	Table      *Scope
	Referenced bool
}

func (*File) isSymbol() {}

// Function describes a function's own scope.
type Function struct {
	Table      *Scope
	Node       AstRef
	Referenced bool
}

func (*Function) isSymbol() {}

// Method describes a method's own scope.
type Method struct {
	Table      *Scope
	Node       AstRef
	Referenced bool
}

func (*Method) isSymbol() {}

// Udt describes a user-defined type.
type Udt struct {
	Table      *Scope
	Node       AstRef
	ByteSize   uint32
	Referenced bool
}

func (*Udt) isSymbol() {}

// Variable describes a binding in the enclosing scope — a local, a global,
// or a parameter.
type Variable struct {
	Node       AstRef
	Referenced bool
	Parameter  bool
}

func (*Variable) isSymbol() {}

// setReferenced sets the referenced flag carried by whichever Symbol
// variant supports it (every variant except Native, which has none). It is
// a no-op for variants with no such flag. [Scope.MarkReferenced] is the
// spec.md §4.4 entry point that calls this after a recursive lookup.
func setReferenced(sym Symbol) {
	switch s := sym.(type) {
	case *File:
		s.Referenced = true
	case *Function:
		s.Referenced = true
	case *Method:
		s.Referenced = true
	case *Udt:
		s.Referenced = true
	case *Variable:
		s.Referenced = true
	}
}
