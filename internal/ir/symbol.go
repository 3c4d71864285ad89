package ir

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/tair-lang/tair/internal/position"
)

// SymbolKind distinguishes what a Symbol names (spec §3 "Symbols").
type SymbolKind int

const (
	SymVariable SymbolKind = iota
	SymFunction
	SymParameter
	SymTemplate
	SymLocation
	SymBranchpoint
	SymProcess
	SymInstanceLine
	SymTypeName
)

// Symbol is a name bound in some Frame. Identity is the pointer itself:
// two Symbol values are the same binding iff they are the same *Symbol.
// A stable uuid is carried alongside; the Document's side table
// (Document.Bind/Lookup) is keyed by it rather than by a raw Go pointer.
type Symbol struct {
	ID   uuid.UUID
	Name string
	Kind SymbolKind
	Type *Type
	Pos  position.Position

	frame *Frame // the frame this symbol is declared in
}

// NewSymbol allocates a fresh symbol with a stable identity.
func NewSymbol(name string, kind SymbolKind, typ *Type, pos position.Position) *Symbol {
	return &Symbol{ID: uuid.New(), Name: name, Kind: kind, Type: typ, Pos: pos}
}

// Frame returns the frame that declares this symbol, or nil if unbound.
func (s *Symbol) Frame() *Frame { return s.frame }

// Clone returns a fresh symbol with the same name, kind, type and
// position but a new stable identity and no declaring frame. Used by the
// instantiation engine when it copies a template's parameter frame into
// a new instance (spec §4.5 step 2) — each instance gets its own
// parameter symbols rather than aliasing the template's.
func (s *Symbol) Clone() *Symbol {
	return &Symbol{ID: uuid.New(), Name: s.Name, Kind: s.Kind, Type: s.Type, Pos: s.Pos}
}

// DuplicateDefinitionError reports a name collision within one frame
// (spec §4.2 "add(symbol): error on duplicate name in the same frame").
type DuplicateDefinitionError struct {
	Name     string
	Pos      position.Position
	Previous position.Position
}

func (e *DuplicateDefinitionError) Error() string {
	return fmt.Sprintf("%q already defined at %d:%d", e.Name, e.Previous.Line, e.Previous.Column)
}

// Frame is a lexical scope: an ordered, append-only list of symbols plus
// zero or more parent frames searched on a failed local lookup (spec §4.2).
// A Frame starts open (symbols may still be added). Seal records that it
// is closed, but sealing is advisory bookkeeping: Add does not check it,
// and nothing in this module calls Seal.
type Frame struct {
	Name    string
	Parents []*Frame
	symbols []*Symbol
	byName  map[string]*Symbol
	sealed  bool
}

// NewFrame returns an empty, open frame with the given parents searched,
// in order, on an unresolved local lookup.
func NewFrame(name string, parents ...*Frame) *Frame {
	return &Frame{Name: name, Parents: parents, byName: make(map[string]*Symbol)}
}

// Add binds sym in this frame. Returns a *DuplicateDefinitionError if the
// name already exists locally (spec §7 DuplicateDefinition). Shadowing a
// symbol visible through a parent frame is not an error here — callers
// that care (the builder, the checker) should call Shadows first and emit
// a ShadowsAVariable warning through the diagnostic sink.
func (f *Frame) Add(sym *Symbol) error {
	if prev, exists := f.byName[sym.Name]; exists {
		return &DuplicateDefinitionError{Name: sym.Name, Pos: sym.Pos, Previous: prev.Pos}
	}
	sym.frame = f
	f.byName[sym.Name] = sym
	f.symbols = append(f.symbols, sym)
	return nil
}

// Seal marks the frame closed for further additions. Purely advisory.
func (f *Frame) Seal() { f.sealed = true }

// Sealed reports whether Seal has been called.
func (f *Frame) Sealed() bool { return f.sealed }

// LookupLocal searches only this frame, not its parents
// (spec §4.2 "lookup-local(name)").
func (f *Frame) LookupLocal(name string) (*Symbol, bool) {
	sym, ok := f.byName[name]
	return sym, ok
}

// Lookup searches this frame, then each parent in order, depth-first
// (spec §4.2 "lookup-recursive(name)").
func (f *Frame) Lookup(name string) (*Symbol, bool) {
	if sym, ok := f.byName[name]; ok {
		return sym, true
	}
	for _, p := range f.Parents {
		if sym, ok := p.Lookup(name); ok {
			return sym, true
		}
	}
	return nil, false
}

// Shadows reports whether name resolves in some parent frame but not
// locally — the condition the builder/checker should warn
// ShadowsAVariable on before adding a symbol of the same name.
func (f *Frame) Shadows(name string) bool {
	if _, local := f.byName[name]; local {
		return false
	}
	for _, p := range f.Parents {
		if _, ok := p.Lookup(name); ok {
			return true
		}
	}
	return false
}

// Size returns the number of symbols declared directly in this frame
// (spec §4.2 "size()").
func (f *Frame) Size() int { return len(f.symbols) }

// Iterate returns the symbols declared directly in this frame, in
// declaration order (spec §4.2 "iterate()").
func (f *Frame) Iterate() []*Symbol {
	out := make([]*Symbol, len(f.symbols))
	copy(out, f.symbols)
	return out
}
