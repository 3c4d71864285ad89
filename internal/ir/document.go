package ir

import (
	"github.com/google/uuid"
	"github.com/tair-lang/tair/internal/diagnostics"
	"github.com/tair-lang/tair/internal/position"
)

// StringTable is an insertion-order-preserving, deduplicated list of
// strings (spec §6 "String table"), used by downstream serializers to
// compress repeated identifiers.
type StringTable struct {
	strings []string
	index   map[string]int
}

// NewStringTable returns an empty table.
func NewStringTable() *StringTable {
	return &StringTable{index: make(map[string]int)}
}

// AddIfNew interns s, returning its stable index (spec §6
// "add_string_if_new(s) returns its index").
func (t *StringTable) AddIfNew(s string) int {
	if i, ok := t.index[s]; ok {
		return i
	}
	i := len(t.strings)
	t.strings = append(t.strings, s)
	t.index[s] = i
	return i
}

// Strings returns the interned strings in insertion order.
func (t *StringTable) Strings() []string {
	out := make([]string, len(t.strings))
	copy(out, t.strings)
	return out
}

// Query is one model-checking query: a formula string parsed by the
// expression grammar's query sub-dialect, plus an options list
// (spec §4.6 "Queries", spec §6 "Recognized query options").
type Query struct {
	Formula     string
	FormulaExpr Expression // set by the checker's query sub-dialect parser; nil until checked, or if parsing failed
	Options     []string
	Pos         position.Position
}

// SupportedMethods advertises which analysis semantics the model admits
// (spec §6 "Supported methods flags"). All true by default; no check in
// this module sets any of them to false.
type SupportedMethods struct {
	Symbolic   bool
	Stochastic bool
	Concrete   bool
}

// DefaultSupportedMethods returns all-true, the default before any check
// has run.
func DefaultSupportedMethods() SupportedMethods {
	return SupportedMethods{Symbolic: true, Stochastic: true, Concrete: true}
}

// Document is the root IR container (spec §3 "Document", "Ownership").
// It exclusively owns every template, process, global declaration, query
// and the string table; templates exclusively own their own locations,
// edges, branchpoints, instance-lines, functions and local variables.
type Document struct {
	Globals     *Frame
	GlobalVars  []*Variable
	GlobalFuncs []*Function

	Templates        []*Template // static (TA or LSC) templates
	DynamicTemplates []*Template

	Instances []*Instance
	Processes []*Process

	Queries        []*Query
	ChanPriorities []*ChanPriority

	// ProcessPriority gives each registered process its priority integer
	// (spec §3 "per-process priority integers").
	ProcessPriority map[*Process]int

	HasStrictInvariants                    bool
	StopsClock                             bool
	HasUrgentTransition                    bool
	HasStrictLowerBoundOnControllableEdges bool
	HasGuardOnRecvBroadcast                bool

	ModelOptions []string

	BeforeUpdate Expression
	AfterUpdate  Expression

	Strings   *StringTable
	Positions *position.Positions
	Sink      *diagnostics.Sink

	SupportedMethods SupportedMethods

	// objects is the side table backing a Symbol's back-pointer to its
	// domain object (spec §9 design note: "a reimplementation should use
	// a stable symbol id plus a side table keyed by id, avoiding raw
	// back-pointers"), keyed by Symbol.ID rather than holding a pointer
	// field directly on Symbol.
	objects map[uuid.UUID]any

	frozen bool
}

// New returns an empty Document ready to receive Builder calls.
func New() *Document {
	return &Document{
		Globals:          NewFrame("globals"),
		ProcessPriority:  make(map[*Process]int),
		Strings:          NewStringTable(),
		Positions:        position.New(),
		Sink:             diagnostics.NewSink(),
		SupportedMethods: DefaultSupportedMethods(),
		objects:          make(map[uuid.UUID]any),
	}
}

// Bind records obj as sym's domain object (spec §3 "Symbol ... an opaque
// back-pointer to the domain object").
func (d *Document) Bind(sym *Symbol, obj any) {
	d.objects[sym.ID] = obj
}

// Lookup returns the domain object bound to sym, if any.
func (d *Document) Lookup(sym *Symbol) (any, bool) {
	obj, ok := d.objects[sym.ID]
	return obj, ok
}

// Freeze sets the document's frozen flag; cmd/tacheck calls it after the
// pipeline has run. RemoveProcess is the only operation that consults
// the flag (it becomes a no-op); the diagnostic sink and string table do
// not check it and have no locking of their own.
func (d *Document) Freeze() { d.frozen = true }

// Frozen reports whether Freeze has been called.
func (d *Document) Frozen() bool { return d.frozen }

// RemoveProcess removes p from the document's process list (spec §4.4
// "no deletions except removeProcess for LSC cleanup"; spec §5: "defined
// to run only before type checking"). It is a no-op once the document is
// frozen.
func (d *Document) RemoveProcess(p *Process) {
	if d.frozen {
		return
	}
	for i, proc := range d.Processes {
		if proc == p {
			d.Processes = append(d.Processes[:i], d.Processes[i+1:]...)
			delete(d.ProcessPriority, p)
			return
		}
	}
}
