package ir

import "github.com/tair-lang/tair/internal/position"

// Instance is a (possibly partial) application of a Template to argument
// expressions (spec §3 "Instance", testable property in spec §8:
// "parameters.size == unbound + bound", "mapping.keys == parameters[unbound..]").
type Instance struct {
	Owner    *Symbol // uid symbol of process type, minted fresh per spec §4.5 step 1
	Template *Template

	// Parameters lists T's parameter frame copied for this instance, with
	// every still-unbound symbol ordered before every bound one (spec §3
	// invariant: "parameters[0..unbound] are exactly the unbound symbols").
	Parameters *Frame
	Unbound    int
	Bound      int

	Mapping    map[*Symbol]Expression // bound parameter -> argument expression
	Restricted map[*Symbol]bool       // restricted parameters (spec §4.5 step 4)

	Pos position.Position
}

// IsFullyBound reports whether every parameter of the instance has a
// bound argument (spec §4.5 step 6: "a full instantiation").
func (i *Instance) IsFullyBound() bool { return i.Unbound == 0 }

// Process is a fully bound instance registered in the document
// (spec §3 "Process").
type Process struct {
	*Instance
	Priority int
	Pos      position.Position
}
