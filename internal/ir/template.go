package ir

import "github.com/tair-lang/tair/internal/position"

// Location is a TA state: a symbol, a name expression, an invariant, and
// (after checking factors the rate terms out of the invariant, spec
// §4.6) a cost-rate expression plus the extracted clock rates
// (spec §3 "Location (state)").
type Location struct {
	Sym         *Symbol
	NameExpr    Expression
	Invariant   Expression // after checking, with rate terms removed
	CostRate    Expression
	Index       int
	Pos         position.Position
	Rates       []RateEntry // extracted from the original invariant by the checker
	IsUrgent    bool
	IsCommitted bool
}

// RateEntry is one `clock' == expr` term extracted from a location's
// invariant during checking (spec §4.6 "rate sub-expressions ... are
// extracted into the location's rate field").
type RateEntry struct {
	Clock *Symbol
	Expr  Expression
}

// Branchpoint is a pseudo-location joining edges that share a
// source/guard/sync (GLOSSARY "Branchpoint").
type Branchpoint struct {
	Sym *Symbol
	Pos position.Position
}

// Edge connects exactly one of (Src, SrcBranch) to exactly one of (Dst,
// DstBranch) (spec §3 "Edge", testable property in spec §8). The checker
// does not populate SelectValues; it stays as the caller set it (nil by
// default).
type Edge struct {
	Number       int
	Controllable bool

	Src      *Location
	SrcBranch *Branchpoint
	Dst      *Location
	DstBranch *Branchpoint

	Select *Frame

	Guard       Expression
	Assignment  Expression
	Sync        Expression // a *SyncExpr, or nil for an internal (tau) edge
	Probability Expression // nil unless this edge is part of a stochastic branch

	SelectValues []int64 // not enumerated by the checker

	Pos position.Position
}

// ChanPriorityEntry is one operand of a channel-priority list, tagged by
// the separator that preceded it (spec §3 "Channel priority").
type ChanPriorityEntry struct {
	Separator string // "," (tie) or "<" (new level)
	Expr      Expression
}

// ChanPriority is a complete `chan priority` declaration: a head operand
// followed by separator-tagged entries.
type ChanPriority struct {
	Head    Expression
	Entries []ChanPriorityEntry
	Pos     position.Position
}

// Template is a named parametric automaton (spec §3 "Template"). Static
// (TA) fields and LSC fields coexist on one struct because a Template is
// either flavor exclusively, distinguished by IsTA; this mirrors the
// original language's single grammar production for both.
type Template struct {
	Sym    *Symbol
	Params *Frame
	Locals *Frame // variables, functions, progress, IO, gantt declared inside

	Variables  []*Variable
	Functions  []*Function
	Progress   []Expression
	IODecls    []*IODecl
	Gantt      []*GanttExpr

	Locations    []*Location
	Branchpoints []*Branchpoint
	Edges        []*Edge
	Init         *Symbol

	IsTA        bool
	Dynamic     bool
	HasPrechart bool

	// LSC-only fields (populated when !IsTA).
	InstanceLines []*InstanceLine
	Messages      []*Message
	Conditions    []*Condition
	Updates       []*Update

	// restrictedCache memoizes the instantiation engine's transitive
	// closure over array-size-determining parameters (spec §4.5 step 4);
	// computed once per template since it depends only on T, not on any
	// particular instantiation's arguments.
	restrictedCache map[*Symbol]bool

	Pos position.Position
}

// RestrictedCache returns the memoized restricted-parameter set computed
// by the instantiation engine, or nil if not yet computed.
func (t *Template) RestrictedCache() map[*Symbol]bool { return t.restrictedCache }

// SetRestrictedCache stores the memoized restricted-parameter set.
func (t *Template) SetRestrictedCache(m map[*Symbol]bool) { t.restrictedCache = m }
