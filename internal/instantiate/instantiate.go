// Package instantiate implements the template → process materialization
// engine (spec §4.5): partial parameter binding, the restricted-parameter
// transitive closure, and restriction-violation validation.
package instantiate

import (
	"fmt"

	"github.com/tair-lang/tair/internal/diagnostics"
	"github.com/tair-lang/tair/internal/ir"
	"github.com/tair-lang/tair/internal/position"
)

// Finalize runs the restriction closure and process registration (spec
// §4.5 steps 4-6) over every instance the Builder has already recorded in
// doc.Instances but that has not yet been registered as a process. Front-
// ends that build instances through the Builder's addInstance call (steps
// 1-3 only — a raw, unvalidated application) use this as the pipeline's
// instantiation stage to complete steps 4-6 before type checking runs.
func Finalize(doc *ir.Document) {
	for _, inst := range doc.Instances {
		if inst.IsFullyBound() && !isRegistered(doc, inst) {
			finalizeOne(doc, inst)
		}
	}
}

func isRegistered(doc *ir.Document, inst *ir.Instance) bool {
	for _, p := range doc.Processes {
		if p.Instance == inst {
			return true
		}
	}
	return false
}

func finalizeOne(doc *ir.Document, inst *ir.Instance) {
	restricted := restrictedParams(inst.Template)
	for _, p := range inst.Template.Params.Iterate() {
		if restricted[p] {
			if clone, ok := paramClone(inst, p.Name); ok {
				inst.Restricted[clone] = true
			}
		}
	}
	for p := range inst.Restricted {
		arg := inst.Mapping[p]
		for _, ref := range CollectIdentifiers(arg) {
			if ref.Kind == ir.SymParameter {
				doc.Sink.Emit(diagnostics.New(diagnostics.RestrictionViolation, inst.Pos,
					"$restrictionViolation", p.Name))
				return
			}
		}
	}
	proc := &ir.Process{Instance: inst, Pos: inst.Pos}
	doc.Processes = append(doc.Processes, proc)
	doc.ProcessPriority[proc] = 0
}

func paramClone(inst *ir.Instance, name string) (*ir.Symbol, bool) {
	return inst.Parameters.LookupLocal(name)
}

// RestrictionError reports a bound argument for a restricted parameter
// that still depends on a free process parameter (spec §4.5 step 5,
// diagnostics.RestrictionViolation).
type RestrictionError struct {
	Parameter string
	Pos       position.Position
}

func (e *RestrictionError) Error() string {
	return fmt.Sprintf("restriction violation on parameter %q", e.Parameter)
}

// Instantiate applies tmpl to args in order (spec §4.5 steps 1-6). When
// every parameter ends up bound, the resulting instance is also
// registered as a process and returned as the second value; otherwise
// the second value is nil and the instance may be re-instantiated later
// with additional arguments (partial application composes associatively,
// spec §4.5 closing paragraph).
func Instantiate(doc *ir.Document, tmpl *ir.Template, name string, args []ir.Expression, pos position.Position) (*ir.Instance, *ir.Process, error) {
	// Step 1: fresh uid of process type.
	uid := ir.NewSymbol(name, ir.SymProcess, ir.Process(), pos)
	if err := doc.Globals.Add(uid); err != nil {
		return nil, nil, err
	}

	// Step 2: copy T's parameter frame; arguments bind the leading params.
	originalParams := tmpl.Params.Iterate()
	if len(args) > len(originalParams) {
		return nil, nil, fmt.Errorf("too many arguments for template %q: got %d, want at most %d", tmpl.Sym.Name, len(args), len(originalParams))
	}
	boundParams := originalParams[:len(args)]
	unboundParams := originalParams[len(args):]

	inst := &ir.Instance{
		Owner:      uid,
		Template:   tmpl,
		Parameters: ir.NewFrame(name + ".params"),
		Mapping:    make(map[*ir.Symbol]ir.Expression),
		Restricted: make(map[*ir.Symbol]bool),
		Pos:        pos,
	}
	// Invariant (spec §3): parameters[0..unbound] are exactly the unbound
	// symbols, so the copy orders unbound params first. Each instance gets
	// its own clone of the template's parameter symbols (Symbol.Clone),
	// correlated back to the original via cloneOf, since Mapping's keys
	// must be this instance's own parameter symbols (spec §8: "mapping.keys
	// == parameters[unbound..]"), not the template's.
	cloneOf := make(map[*ir.Symbol]*ir.Symbol, len(originalParams))
	for _, p := range unboundParams {
		cp := p.Clone()
		cloneOf[p] = cp
		_ = inst.Parameters.Add(cp)
	}
	for _, p := range boundParams {
		cp := p.Clone()
		cloneOf[p] = cp
		_ = inst.Parameters.Add(cp)
	}
	inst.Unbound = len(unboundParams)
	inst.Bound = len(boundParams)

	// Step 3: record each bound parameter's argument expression.
	for i, p := range boundParams {
		inst.Mapping[cloneOf[p]] = args[i]
	}

	// Step 4: restricted-parameter transitive closure, memoized per template.
	restricted := restrictedParams(tmpl)
	for _, p := range boundParams {
		if restricted[p] {
			inst.Restricted[cloneOf[p]] = true
		}
	}

	// Step 5: validate restricted parameters are bound free of free
	// process parameters — any symbol reference of kind SymParameter is,
	// by construction, still-unbound in whatever instance declares it
	// (a bound parameter's value is substituted away before it could be
	// referenced again), so any such reference inside a restricted
	// parameter's argument is the violation spec §4.5 step 5 describes.
	for p := range inst.Restricted {
		arg := inst.Mapping[p]
		for _, ref := range CollectIdentifiers(arg) {
			if ref.Kind == ir.SymParameter {
				doc.Sink.Emit(diagnostics.New(diagnostics.RestrictionViolation, pos,
					"$restrictionViolation", p.Name))
				return inst, nil, &RestrictionError{Parameter: p.Name, Pos: pos}
			}
		}
	}

	doc.Instances = append(doc.Instances, inst)
	doc.Bind(uid, inst)

	// Step 6: a full instantiation is registered as a process.
	if inst.IsFullyBound() {
		proc := &ir.Process{Instance: inst, Pos: pos}
		doc.Processes = append(doc.Processes, proc)
		doc.ProcessPriority[proc] = 0
		return inst, proc, nil
	}
	return inst, nil, nil
}

// restrictedParams computes, and memoizes on tmpl, the set of template
// parameters that transitively determine some array size within a
// declared type of tmpl (spec §4.5 step 4). The closure follows two
// kinds of edge: a parameter referenced directly inside an array
// size-expression, and a local variable referenced inside a size-
// expression whose own initializer depends (directly or transitively) on
// a parameter.
func restrictedParams(tmpl *ir.Template) map[*ir.Symbol]bool {
	if tmpl.RestrictedCache() != nil {
		return tmpl.RestrictedCache()
	}

	isParam := make(map[*ir.Symbol]bool)
	for _, p := range tmpl.Params.Iterate() {
		isParam[p] = true
	}

	// dependsOn[v] = symbols referenced in v's initializer, for locals.
	dependsOn := make(map[*ir.Symbol][]*ir.Symbol)
	for _, v := range tmpl.Variables {
		if v.Init != nil {
			dependsOn[v.Sym] = CollectIdentifiers(v.Init)
		}
	}

	sizeExprs := collectArraySizeExprs(tmpl)

	restricted := make(map[*ir.Symbol]bool)
	var markTransitively func(sym *ir.Symbol, visiting map[*ir.Symbol]bool)
	markTransitively = func(sym *ir.Symbol, visiting map[*ir.Symbol]bool) {
		if visiting[sym] {
			return
		}
		visiting[sym] = true
		if isParam[sym] {
			restricted[sym] = true
		}
		for _, dep := range dependsOn[sym] {
			markTransitively(dep, visiting)
		}
	}

	for _, e := range sizeExprs {
		for _, ref := range CollectIdentifiers(e) {
			markTransitively(ref, make(map[*ir.Symbol]bool))
		}
	}

	tmpl.SetRestrictedCache(restricted)
	return restricted
}

// collectArraySizeExprs walks every declared type reachable from tmpl
// (parameters, local variables, function signatures) and returns the
// size expression of each array type found.
func collectArraySizeExprs(tmpl *ir.Template) []ir.Expression {
	var out []ir.Expression
	visit := func(t *ir.Type) {
		walkArraySizes(t, &out)
	}
	for _, p := range tmpl.Params.Iterate() {
		visit(p.Type)
	}
	for _, v := range tmpl.Variables {
		visit(v.Sym.Type)
	}
	for _, f := range tmpl.Functions {
		visit(f.Sym.Type)
	}
	return out
}

func walkArraySizes(t *ir.Type, out *[]ir.Expression) {
	if t == nil {
		return
	}
	if t.Is(ir.KindArray) {
		if t.SizeExpr() != nil {
			*out = append(*out, t.SizeExpr())
		}
		walkArraySizes(t.Elem(), out)
		return
	}
	if t.Is(ir.KindRef) {
		walkArraySizes(t.Elem(), out)
		return
	}
	if t.Is(ir.KindRecord) {
		for i := 0; i < t.Size(); i++ {
			walkArraySizes(t.Get(i), out)
		}
		return
	}
	if t.Is(ir.KindFunction) {
		for _, p := range t.Params() {
			walkArraySizes(p, out)
		}
		walkArraySizes(t.Result(), out)
	}
}

// CollectIdentifiers returns every symbol referenced by an
// IdentifierExpr or DotExpr reachable from e, in traversal order
// (duplicates included), used by the restriction closure and the
// restriction-violation check.
func CollectIdentifiers(e ir.Expression) []*ir.Symbol {
	var out []*ir.Symbol
	var walk func(ir.Expression)
	walk = func(e ir.Expression) {
		if e == nil {
			return
		}
		switch n := e.(type) {
		case *ir.IdentifierExpr:
			if n.Sym != nil {
				out = append(out, n.Sym)
			}
		case *ir.DotExpr:
			walk(n.Left)
			if n.Sym != nil {
				out = append(out, n.Sym)
			}
		case *ir.UnaryExpr:
			walk(n.Operand)
		case *ir.BinaryExpr:
			walk(n.Left)
			walk(n.Right)
		case *ir.ConditionalExpr:
			walk(n.Cond)
			walk(n.Then)
			walk(n.Else)
		case *ir.CallExpr:
			walk(n.Fn)
			for _, a := range n.Args {
				walk(a)
			}
		case *ir.SubscriptExpr:
			walk(n.Left)
			walk(n.Index)
		case *ir.CommaExpr:
			walk(n.Left)
			walk(n.Right)
		case *ir.SyncExpr:
			walk(n.Channel)
		case *ir.QuantifiedExpr:
			walk(n.Body)
		case *ir.ListLiteralExpr:
			for _, el := range n.Elements {
				walk(el)
			}
		}
	}
	walk(e)
	return out
}
