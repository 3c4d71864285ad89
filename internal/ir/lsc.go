package ir

import "github.com/tair-lang/tair/internal/position"

// InstanceLine is an LSC's vertical lifeline, derived from an Instance
// (spec §3 "LSC entities").
type InstanceLine struct {
	Sym      *Symbol
	Instance *Instance
	Pos      position.Position
}

// Message is a communication between two instance lines, anchored at a
// Y-location integer (spec §3, GLOSSARY "Prechart / main chart").
type Message struct {
	Src, Dst *InstanceLine
	Label    string
	Y        int
	Prechart bool
	Pos      position.Position
}

// Condition constrains one or more instance lines at a Y-location.
// Hot conditions must hold; cold conditions may fail the chart silently.
type Condition struct {
	Anchors  []*InstanceLine
	Label    string
	Y        int
	Prechart bool
	Hot      bool
	Pos      position.Position
}

// Update is a state change anchored to one instance line.
type Update struct {
	Anchor   *InstanceLine
	Label    string
	Y        int
	Prechart bool
	Pos      position.Position
}

// Simregion groups at most one Message, Condition and Update into a
// single logical step at a given Y-location (GLOSSARY "Simregion").
// Absent slots are nil — the explicit-absence resolution of the open
// question in spec §9 ("a reimplementation should represent absence
// explicitly (optional)"), rather than allocating empty placeholders.
type Simregion struct {
	Y         int
	Message   *Message
	Condition *Condition
	Update    *Update
}

// InPrechart reports whether every non-nil slot of the simregion belongs
// to the prechart.
func (s *Simregion) InPrechart() bool {
	if s.Message != nil && !s.Message.Prechart {
		return false
	}
	if s.Condition != nil && !s.Condition.Prechart {
		return false
	}
	if s.Update != nil && !s.Update.Prechart {
		return false
	}
	return true
}

// Cut is an unordered set of simregions forming a horizontally consistent
// slice (GLOSSARY "Cut"). InPrechart reports whether the cut is non-empty
// and every member simregion is in the prechart.
type Cut struct {
	Simregions []*Simregion
}

// InPrechart reports whether every simregion in the cut is in the prechart;
// an empty cut is not (spec §8 scenario 6: "a cut containing simregions of m1 and m2 is in the
// prechart; a cut containing m2 and m3 is not").
func (c *Cut) InPrechart() bool {
	for _, s := range c.Simregions {
		if !s.InPrechart() {
			return false
		}
	}
	return len(c.Simregions) > 0
}
