// Package ir is the semantic intermediate representation: the type algebra,
// symbol/frame system, expression and statement ASTs, and the Document that
// owns templates, processes and queries (spec §3, §4.1-§4.4). Type and
// Expression are mutually recursive (array sizes and record-field types are
// themselves expressions), so — like funxy keeps Type, Expression, Pattern
// and Statement together in a single `ast` package rather than splitting
// along dependency lines — they live in one package here.
package ir

import (
	"fmt"
	"strings"

	"github.com/tair-lang/tair/internal/config"
)

// Kind is the tag of a Type node (spec §3 "Type").
type Kind int

const (
	KindVoid Kind = iota
	KindClock
	KindBool
	KindInt
	KindDouble
	KindChannel
	KindScalar
	KindString
	KindArray
	KindRecord
	KindRef
	KindFunction
	KindProcess
	KindTypeName
)

func (k Kind) String() string {
	switch k {
	case KindVoid:
		return "void"
	case KindClock:
		return "clock"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindDouble:
		return "double"
	case KindChannel:
		return "channel"
	case KindScalar:
		return "scalar"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindRecord:
		return "record"
	case KindRef:
		return "ref"
	case KindFunction:
		return "function"
	case KindProcess:
		return "process"
	case KindTypeName:
		return "typename"
	default:
		return "?"
	}
}

// Qualifier is a bitmask of the prefix qualifiers a Type node may carry
// (spec §3: "const, urgent, broadcast, committed, meta, hybrid").
type Qualifier uint8

const (
	QConst Qualifier = 1 << iota
	QUrgent
	QBroadcast
	QCommitted
	QMeta
	QHybrid
)

var qualifierNames = []struct {
	bit  Qualifier
	name string
}{
	{QConst, config.QualConst},
	{QUrgent, config.QualUrgent},
	{QBroadcast, config.QualBroadcast},
	{QCommitted, config.QualCommitted},
	{QMeta, config.QualMeta},
	{QHybrid, config.QualHybrid},
}

// dataKinds are the data-carrying kinds that accept `const` and `meta`.
// ValidQualifier also allows `urgent`/`broadcast` on channels,
// `committed` on processes and channels, and `hybrid` on clocks and
// doubles.
var dataKinds = map[Kind]bool{
	KindBool: true, KindInt: true, KindDouble: true, KindScalar: true,
	KindString: true, KindArray: true, KindRecord: true, KindRef: true,
	KindTypeName: true,
}

// ValidQualifier reports whether q is legal on a type of the given kind
// (spec §3 invariant: "qualifiers are valid only on kinds that accept
// them (urgent on channels/locations; const on data types)").
func ValidQualifier(q Qualifier, k Kind) bool {
	switch q {
	case QConst, QMeta:
		return dataKinds[k]
	case QUrgent, QBroadcast:
		return k == KindChannel
	case QCommitted:
		return k == KindProcess || k == KindChannel
	case QHybrid:
		return k == KindClock || k == KindDouble
	default:
		return false
	}
}

// Field is one ordered, named member of a record type (spec §3 "Type":
// "record(ordered fields)").
type Field struct {
	Label string
	Type  *Type
}

// Type is a node in the structural type tree (spec §3, §4.1). Array sizes
// and record-field types are themselves expressions, so Type and
// Expression are mutually recursive.
type Type struct {
	kind  Kind
	quals Qualifier

	elem     *Type      // array element / ref target
	sizeExpr Expression // array size, nil for other kinds

	fields []Field // record, ordered

	params []*Type // function parameters
	result *Type   // function result

	name string // typename reference
}

// Kind returns the node's tag.
func (t *Type) Kind() Kind { return t.kind }

// Is reports whether the type's kind is k (spec §4.1 "is(kind)").
func (t *Type) Is(k Kind) bool { return t.kind == k }

// HasQualifier reports whether q is present on this node.
func (t *Type) HasQualifier(q Qualifier) bool { return t.quals&q != 0 }

// Prefix returns a copy of t with q added, if q is valid for t's kind
// (spec §4.1 "prefix(qualifier)").
func (t *Type) Prefix(q Qualifier) (*Type, error) {
	if !ValidQualifier(q, t.kind) {
		return nil, fmt.Errorf("qualifier not valid on kind %s", t.kind)
	}
	cp := *t
	cp.quals |= q
	return &cp, nil
}

// StripPrefix returns a copy of t with all qualifiers removed
// (spec §4.1 "strip_prefix").
func (t *Type) StripPrefix() *Type {
	cp := *t
	cp.quals = 0
	return &cp
}

// Size returns the number of sub-types: record field count, function
// parameter count, or 1 for array/ref, whose single structural child is
// the element/target. Returns -1 for atomic kinds (spec §4.1 "size()").
func (t *Type) Size() int {
	switch t.kind {
	case KindRecord:
		return len(t.fields)
	case KindFunction:
		return len(t.params)
	case KindArray, KindRef:
		return 1
	default:
		return -1
	}
}

// Get returns the i'th sub-type (spec §4.1 "get(i)").
func (t *Type) Get(i int) *Type {
	switch t.kind {
	case KindRecord:
		if i >= 0 && i < len(t.fields) {
			return t.fields[i].Type
		}
	case KindFunction:
		if i >= 0 && i < len(t.params) {
			return t.params[i]
		}
	case KindArray, KindRef:
		if i == 0 {
			return t.elem
		}
	}
	return nil
}

// GetLabel returns the i'th record field's name (spec §4.1 "get_label(i)").
func (t *Type) GetLabel(i int) string {
	if t.kind == KindRecord && i >= 0 && i < len(t.fields) {
		return t.fields[i].Label
	}
	return ""
}

// Elem returns the array element type or ref target; nil otherwise.
func (t *Type) Elem() *Type { return t.elem }

// SizeExpr returns the array's size expression; nil otherwise.
func (t *Type) SizeExpr() Expression { return t.sizeExpr }

// Params returns the function's parameter types.
func (t *Type) Params() []*Type { return t.params }

// Result returns the function's result type.
func (t *Type) Result() *Type { return t.result }

// Name returns the typename reference's name.
func (t *Type) Name() string { return t.name }

// Resolver unfolds a typename to its underlying type, used for lazy
// unfolding during equality/compatibility queries (spec §4.1).
type Resolver func(name string) (*Type, bool)

// Equal reports structural equality modulo typename unfolding; qualifiers
// matter (spec §4.1 "equals(other)").
func Equal(a, b *Type, resolve Resolver) bool {
	return equal(a, b, resolve, 0)
}

func equal(a, b *Type, resolve Resolver, depth int) bool {
	if a == nil || b == nil {
		return a == b
	}
	if depth > 64 {
		// Cyclic type alias chain; treat as unequal rather than recurse forever.
		return false
	}
	if a.kind == KindTypeName {
		if resolved, ok := resolve(a.name); ok {
			return equal(resolved.withQuals(a.quals|resolved.quals), b, resolve, depth+1)
		}
	}
	if b.kind == KindTypeName {
		if resolved, ok := resolve(b.name); ok {
			return equal(a, resolved.withQuals(b.quals|resolved.quals), resolve, depth+1)
		}
	}
	if a.kind != b.kind || a.quals != b.quals {
		return false
	}
	switch a.kind {
	case KindArray:
		return equal(a.elem, b.elem, resolve, depth+1) && equalConstExpr(a.sizeExpr, b.sizeExpr)
	case KindRef:
		return equal(a.elem, b.elem, resolve, depth+1)
	case KindRecord:
		if len(a.fields) != len(b.fields) {
			return false
		}
		for i := range a.fields {
			if a.fields[i].Label != b.fields[i].Label {
				return false
			}
			if !equal(a.fields[i].Type, b.fields[i].Type, resolve, depth+1) {
				return false
			}
		}
		return true
	case KindFunction:
		if len(a.params) != len(b.params) {
			return false
		}
		for i := range a.params {
			if !equal(a.params[i], b.params[i], resolve, depth+1) {
				return false
			}
		}
		return equal(a.result, b.result, resolve, depth+1)
	case KindTypeName:
		return a.name == b.name
	default:
		return true
	}
}

// equalConstExpr compares two array-size expressions by folded constant
// value when both are statically computable, otherwise falls back to
// reference identity (the same size-expression node occurring twice).
func equalConstExpr(a, b Expression) bool {
	if a == b {
		return true
	}
	av, aok := ConstantValueOf(a)
	bv, bok := ConstantValueOf(b)
	if aok && bok {
		return av == bv
	}
	return false
}

func (t *Type) withQuals(q Qualifier) *Type {
	cp := *t
	cp.quals = q
	return &cp
}

// String renders the type in the module's surface syntax, for diagnostics.
func (t *Type) String() string {
	prefix := ""
	for _, qn := range qualifierNames {
		if t.quals&qn.bit != 0 {
			prefix += qn.name + " "
		}
	}
	switch t.kind {
	case KindArray:
		return fmt.Sprintf("%s%s[%s]", prefix, t.elem.String(), exprSummary(t.sizeExpr))
	case KindRef:
		return fmt.Sprintf("%s&%s", prefix, t.elem.String())
	case KindRecord:
		parts := make([]string, len(t.fields))
		for i, f := range t.fields {
			parts[i] = f.Label + ": " + f.Type.String()
		}
		return fmt.Sprintf("%sstruct { %s }", prefix, strings.Join(parts, "; "))
	case KindFunction:
		parts := make([]string, len(t.params))
		for i, p := range t.params {
			parts[i] = p.String()
		}
		return fmt.Sprintf("%s(%s) -> %s", prefix, strings.Join(parts, ", "), t.result.String())
	case KindTypeName:
		return prefix + t.name
	default:
		return prefix + t.kind.String()
	}
}

func exprSummary(e Expression) string {
	if e == nil {
		return ""
	}
	if v, ok := ConstantValueOf(e); ok {
		return fmt.Sprintf("%d", v)
	}
	return "expr"
}

// --- Constructors (spec §4.1) ---

func atom(k Kind) *Type { return &Type{kind: k} }

func Void() *Type    { return atom(KindVoid) }
func Clock() *Type   { return atom(KindClock) }
func Bool() *Type    { return atom(KindBool) }
func Int() *Type     { return atom(KindInt) }
func Double() *Type  { return atom(KindDouble) }
func Channel() *Type { return atom(KindChannel) }
func Scalar() *Type  { return atom(KindScalar) }
func String() *Type  { return atom(KindString) }
func Process() *Type { return atom(KindProcess) }

// NewArray builds array(elem, size-expr) (spec §4.1 "create_array").
func NewArray(elem *Type, sizeExpr Expression) *Type {
	return &Type{kind: KindArray, elem: elem, sizeExpr: sizeExpr}
}

// NewRecord builds record(ordered fields) (spec §4.1 "create_record").
func NewRecord(fields []Field) *Type {
	return &Type{kind: KindRecord, fields: fields}
}

// NewFunction builds function(params, result) (spec §4.1 "create_function").
func NewFunction(params []*Type, result *Type) *Type {
	return &Type{kind: KindFunction, params: params, result: result}
}

// NewRef builds ref(target).
func NewRef(target *Type) *Type {
	return &Type{kind: KindRef, elem: target}
}

// NewTypeName builds a lazily-unfolding reference to a named type.
func NewTypeName(name string) *Type {
	return &Type{kind: KindTypeName, name: name}
}

// Substitute replaces occurrences of the given symbols inside any
// array-size or record-field expression reachable from t, returning a new
// Type tree (spec §4.1 "substitute(symbol -> expression)"; used by the
// instantiation engine, spec §4.5, to bind template parameters).
func (t *Type) Substitute(subst map[*Symbol]Expression) *Type {
	if t == nil {
		return nil
	}
	switch t.kind {
	case KindArray:
		return &Type{
			kind:     KindArray,
			quals:    t.quals,
			elem:     t.elem.Substitute(subst),
			sizeExpr: SubstituteExpr(t.sizeExpr, subst),
		}
	case KindRef:
		return &Type{kind: KindRef, quals: t.quals, elem: t.elem.Substitute(subst)}
	case KindRecord:
		newFields := make([]Field, len(t.fields))
		for i, f := range t.fields {
			newFields[i] = Field{Label: f.Label, Type: f.Type.Substitute(subst)}
		}
		return &Type{kind: KindRecord, quals: t.quals, fields: newFields}
	case KindFunction:
		newParams := make([]*Type, len(t.params))
		for i, p := range t.params {
			newParams[i] = p.Substitute(subst)
		}
		return &Type{kind: KindFunction, quals: t.quals, params: newParams, result: t.result.Substitute(subst)}
	default:
		cp := *t
		return &cp
	}
}
