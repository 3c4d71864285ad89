package ir

import (
	"fmt"

	"github.com/tair-lang/tair/internal/diagnostics"
	"github.com/tair-lang/tair/internal/position"
)

// Builder is the narrow, flat contract front-ends use to populate a
// Document (spec §4.4, §6 "Builder API"). Every call takes a position for
// diagnostics. Only hard-structural violations (duplicate names in a
// frame) are rejected here, at call time; all semantic checks are
// deferred to the instantiation engine and type checker (spec §7).
type Builder interface {
	AddVariable(frame *Frame, name string, typ *Type, init Expression, pos position.Position) (*Variable, error)
	AddFunction(name string, typ *Type, params *Frame, pos position.Position) (*Function, error)
	AddTemplate(name string, isTA bool, pos position.Position) (*Template, error)
	AddLocation(t *Template, name string, invariant Expression, pos position.Position) (*Location, error)
	SetLocationFlags(l *Location, urgent, committed bool)
	AddBranchpoint(t *Template, name string, pos position.Position) (*Branchpoint, error)
	AddEdge(t *Template, src, srcBranch, dst, dstBranch any, controllable bool, pos position.Position) (*Edge, error)
	AddSync(e *Edge, channel Expression, send bool) error
	AddGuard(e *Edge, guard Expression) error
	AddAssign(e *Edge, assign Expression) error
	AddInstance(name string, tmpl *Template, args []Expression, pos position.Position) (*Instance, error)
	AddProcess(inst *Instance, pos position.Position) (*Process, error)
	RemoveProcess(p *Process)
	AddQuery(formula string, options []string, pos position.Position) (*Query, error)
	BeginChanPriority(head Expression, pos position.Position) *ChanPriority
	AddChanPriority(cp *ChanPriority, separator string, expr Expression)
	AddProgressMeasure(t *Template, measure Expression)
	AddIODecl(t *Template, decl *IODecl)
	AddGantt(t *Template, g *GanttExpr)
	SetBeforeUpdate(expr Expression)
	SetAfterUpdate(expr Expression)
}

var _ Builder = (*Document)(nil)

// AddVariable declares a variable in frame, binding its symbol and
// recording the element in the owning container (spec §3 "Variable").
func (d *Document) AddVariable(frame *Frame, name string, typ *Type, init Expression, pos position.Position) (*Variable, error) {
	if frame.Shadows(name) {
		d.Sink.Emit(diagnostics.New(diagnostics.ShadowsAVariable, pos, "$shadowsAVariable", name))
	}
	sym := NewSymbol(name, SymVariable, typ, pos)
	if err := frame.Add(sym); err != nil {
		return nil, err
	}
	v := &Variable{Sym: sym, Init: init}
	d.Bind(sym, v)
	if frame == d.Globals {
		d.GlobalVars = append(d.GlobalVars, v)
	}
	return v, nil
}

// AddFunction declares a function symbol and its parameter frame.
func (d *Document) AddFunction(name string, typ *Type, params *Frame, pos position.Position) (*Function, error) {
	sym := NewSymbol(name, SymFunction, typ, pos)
	if err := d.Globals.Add(sym); err != nil {
		return nil, err
	}
	f := &Function{Sym: sym, Params: params, Locals: NewFrame(name+".locals", params)}
	d.Bind(sym, f)
	d.GlobalFuncs = append(d.GlobalFuncs, f)
	return f, nil
}

// AddTemplate declares a new template (TA or LSC flavor) and registers it
// in the document's template list.
func (d *Document) AddTemplate(name string, isTA bool, pos position.Position) (*Template, error) {
	sym := NewSymbol(name, SymTemplate, Process(), pos)
	if err := d.Globals.Add(sym); err != nil {
		return nil, err
	}
	t := &Template{
		Sym:    sym,
		Params: NewFrame(name+".params", d.Globals),
		IsTA:   isTA,
		Pos:    pos,
	}
	t.Locals = NewFrame(name+".locals", t.Params)
	d.Bind(sym, t)
	d.Templates = append(d.Templates, t)
	return t, nil
}

// AddLocation declares a location owned by t.
func (d *Document) AddLocation(t *Template, name string, invariant Expression, pos position.Position) (*Location, error) {
	sym := NewSymbol(name, SymLocation, Void(), pos)
	if err := t.Locals.Add(sym); err != nil {
		return nil, err
	}
	loc := &Location{Sym: sym, Invariant: invariant, Index: len(t.Locations), Pos: pos}
	d.Bind(sym, loc)
	t.Locations = append(t.Locations, loc)
	return loc, nil
}

// SetLocationFlags marks a location urgent and/or committed (spec §3
// "Location (state)"); the checker reads IsUrgent off a location's
// outgoing edges to set hasUrgentTransition (spec §4.6 "Urgency").
func (d *Document) SetLocationFlags(l *Location, urgent, committed bool) {
	l.IsUrgent = urgent
	l.IsCommitted = committed
}

// AddBranchpoint declares a branchpoint owned by t.
func (d *Document) AddBranchpoint(t *Template, name string, pos position.Position) (*Branchpoint, error) {
	sym := NewSymbol(name, SymBranchpoint, Void(), pos)
	if err := t.Locals.Add(sym); err != nil {
		return nil, err
	}
	bp := &Branchpoint{Sym: sym, Pos: pos}
	d.Bind(sym, bp)
	t.Branchpoints = append(t.Branchpoints, bp)
	return bp, nil
}

// AddEdge declares an edge owned by t. Exactly one of (src, srcBranch)
// and exactly one of (dst, dstBranch) must be non-nil *Location /
// *Branchpoint respectively (spec §8 testable property); this is a
// structural invariant the Builder enforces eagerly, returning an
// *InvalidEdgeError instead of deferring to the checker.
func (d *Document) AddEdge(t *Template, src, srcBranch, dst, dstBranch any, controllable bool, pos position.Position) (*Edge, error) {
	e := &Edge{Number: len(t.Edges), Controllable: controllable, Pos: pos}
	if l, ok := src.(*Location); ok {
		e.Src = l
	}
	if b, ok := srcBranch.(*Branchpoint); ok {
		e.SrcBranch = b
	}
	if l, ok := dst.(*Location); ok {
		e.Dst = l
	}
	if b, ok := dstBranch.(*Branchpoint); ok {
		e.DstBranch = b
	}
	if (e.Src == nil) == (e.SrcBranch == nil) {
		return nil, &InvalidEdgeError{Pos: pos, Reason: "edge must have exactly one source"}
	}
	if (e.Dst == nil) == (e.DstBranch == nil) {
		return nil, &InvalidEdgeError{Pos: pos, Reason: "edge must have exactly one destination"}
	}
	t.Edges = append(t.Edges, e)
	return e, nil
}

// InvalidEdgeError reports a structurally malformed edge (spec §8
// "exactly one of (src, srcb) and exactly one of (dst, dstb) is set").
type InvalidEdgeError struct {
	Pos    position.Position
	Reason string
}

func (e *InvalidEdgeError) Error() string { return e.Reason }

// AddSync attaches a synchronization action to e.
func (d *Document) AddSync(e *Edge, channel Expression, send bool) error {
	e.Sync = &SyncExpr{base: base{Pos: channel.Position()}, Channel: channel, Send: send}
	return nil
}

// AddGuard attaches a guard expression to e.
func (d *Document) AddGuard(e *Edge, guard Expression) error {
	e.Guard = guard
	return nil
}

// AddAssign attaches an assignment expression to e.
func (d *Document) AddAssign(e *Edge, assign Expression) error {
	e.Assignment = assign
	return nil
}

// AddInstance declares a (possibly partial) application of tmpl
// (spec §3 "Instance"): it copies tmpl's parameters (unbound ones first)
// and binds the leading ones to args. The restriction closure and process
// registration are the instantiation engine's job (spec §4.5); the
// Builder only records the raw application.
func (d *Document) AddInstance(name string, tmpl *Template, args []Expression, pos position.Position) (*Instance, error) {
	params := tmpl.Params.Iterate()
	if len(args) > len(params) {
		return nil, fmt.Errorf("too many arguments for template %q: got %d, want at most %d", tmpl.Sym.Name, len(args), len(params))
	}
	sym := NewSymbol(name, SymProcess, Process(), pos)
	if err := d.Globals.Add(sym); err != nil {
		return nil, err
	}
	inst := &Instance{
		Owner:      sym,
		Template:   tmpl,
		Parameters: NewFrame(name + ".args"),
		Mapping:    make(map[*Symbol]Expression),
		Restricted: make(map[*Symbol]bool),
		Pos:        pos,
	}
	for _, p := range params[len(args):] {
		_ = inst.Parameters.Add(p.Clone())
	}
	for i, p := range params[:len(args)] {
		cp := p.Clone()
		_ = inst.Parameters.Add(cp)
		inst.Mapping[cp] = args[i]
	}
	inst.Unbound, inst.Bound = len(params)-len(args), len(args)
	d.Bind(sym, inst)
	d.Instances = append(d.Instances, inst)
	return inst, nil
}

// AddProcess registers a fully bound instance as a running process.
func (d *Document) AddProcess(inst *Instance, pos position.Position) (*Process, error) {
	p := &Process{Instance: inst, Pos: pos}
	d.Processes = append(d.Processes, p)
	d.ProcessPriority[p] = 0
	return p, nil
}

// AddQuery declares a model-checking query.
func (d *Document) AddQuery(formula string, options []string, pos position.Position) (*Query, error) {
	q := &Query{Formula: formula, Options: options, Pos: pos}
	d.Queries = append(d.Queries, q)
	return q, nil
}

// BeginChanPriority starts a new channel-priority list headed by head.
func (d *Document) BeginChanPriority(head Expression, pos position.Position) *ChanPriority {
	cp := &ChanPriority{Head: head, Pos: pos}
	d.ChanPriorities = append(d.ChanPriorities, cp)
	return cp
}

// AddChanPriority appends an entry to an in-progress channel-priority list.
func (d *Document) AddChanPriority(cp *ChanPriority, separator string, expr Expression) {
	cp.Entries = append(cp.Entries, ChanPriorityEntry{Separator: separator, Expr: expr})
}

// AddProgressMeasure declares a progress-measure expression on t.
func (d *Document) AddProgressMeasure(t *Template, measure Expression) {
	t.Progress = append(t.Progress, measure)
}

// AddIODecl declares an I/O binding on t.
func (d *Document) AddIODecl(t *Template, decl *IODecl) {
	t.IODecls = append(t.IODecls, decl)
}

// AddGantt declares a Gantt-chart entry on t.
func (d *Document) AddGantt(t *Template, g *GanttExpr) {
	t.Gantt = append(t.Gantt, g)
}

// SetBeforeUpdate sets the document-wide before-update expression.
func (d *Document) SetBeforeUpdate(expr Expression) { d.BeforeUpdate = expr }

// SetAfterUpdate sets the document-wide after-update expression.
func (d *Document) SetAfterUpdate(expr Expression) { d.AfterUpdate = expr }
