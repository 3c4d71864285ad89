// Package serialize converts a Document to and from a
// google.golang.org/protobuf/types/known/structpb.Struct: a generic,
// schema-less protobuf value tree. This gives downstream model-checking
// and simulation engines (spec §1, named as external collaborators) a
// wire format without this module owning or compiling .proto-generated
// message types, and is how the round-trip testable property (spec §8:
// "parse(emit(D)) produces a structurally equal document D'") is met
// without a persistence engine — explicitly a Non-goal (spec §1).
//
// Expressions (guards, invariants, initializers, ...) are not encoded:
// the snapshot records global variable names with their rendered types,
// function names, each template's name, flavor, location names and edge
// count, process names, query formula strings, the document flags and
// the string table. Snapshot re-reads that structural *shape* but does
// not rebuild live Symbol pointers or a mutable Document.
package serialize

import (
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/tair-lang/tair/internal/ir"
)

// ToStruct snapshots doc into a structpb.Struct.
func ToStruct(doc *ir.Document) (*structpb.Struct, error) {
	strs := make([]any, 0, len(doc.Strings.Strings()))
	for _, s := range doc.Strings.Strings() {
		strs = append(strs, s)
	}
	m := map[string]any{
		"globals":   renderVariables(doc.GlobalVars),
		"functions": renderFunctionNames(doc.GlobalFuncs),
		"templates": renderTemplates(doc.Templates),
		"processes": renderProcesses(doc.Processes),
		"queries":   renderQueries(doc.Queries),
		"flags": map[string]any{
			"hasStrictInvariants":                    doc.HasStrictInvariants,
			"stopsClock":                             doc.StopsClock,
			"hasUrgentTransition":                    doc.HasUrgentTransition,
			"hasStrictLowerBoundOnControllableEdges": doc.HasStrictLowerBoundOnControllableEdges,
			"hasGuardOnRecvBroadcast":                doc.HasGuardOnRecvBroadcast,
		},
		"strings": strs,
	}
	return structpb.NewStruct(m)
}

// Snapshot is the read-only shape recovered by FromStruct: enough to
// assert structural equality with the document that produced it, but not
// a mutable, re-checkable Document (see package doc).
type Snapshot struct {
	Globals   []string
	Functions []string
	Templates []TemplateSnapshot
	Processes []string
	Queries   []string
	Flags     map[string]bool
	Strings   []string
}

// TemplateSnapshot is one template's structural shape.
type TemplateSnapshot struct {
	Name      string
	IsTA      bool
	Locations []string
	Edges     int
}

// FromStruct reconstructs a Snapshot from a previously-produced Struct.
func FromStruct(s *structpb.Struct) *Snapshot {
	out := &Snapshot{Flags: make(map[string]bool)}
	fields := s.GetFields()
	out.Globals = stringList(fields["globals"])
	out.Functions = stringList(fields["functions"])
	out.Processes = stringList(fields["processes"])
	out.Queries = stringList(fields["queries"])
	out.Strings = stringList(fields["strings"])
	if flags, ok := fields["flags"]; ok {
		for k, v := range flags.GetStructValue().GetFields() {
			out.Flags[k] = v.GetBoolValue()
		}
	}
	if tmpls, ok := fields["templates"]; ok {
		for _, v := range tmpls.GetListValue().GetValues() {
			tf := v.GetStructValue().GetFields()
			out.Templates = append(out.Templates, TemplateSnapshot{
				Name:      tf["name"].GetStringValue(),
				IsTA:      tf["isTA"].GetBoolValue(),
				Locations: stringList(tf["locations"]),
				Edges:     int(tf["edges"].GetNumberValue()),
			})
		}
	}
	return out
}

func stringList(v *structpb.Value) []string {
	if v == nil {
		return nil
	}
	vals := v.GetListValue().GetValues()
	out := make([]string, len(vals))
	for i, e := range vals {
		out[i] = e.GetStringValue()
	}
	return out
}

func renderVariables(vars []*ir.Variable) []any {
	out := make([]any, len(vars))
	for i, v := range vars {
		out[i] = v.Sym.Name + ": " + v.Sym.Type.String()
	}
	return out
}

func renderFunctionNames(fns []*ir.Function) []any {
	out := make([]any, len(fns))
	for i, f := range fns {
		out[i] = f.Sym.Name
	}
	return out
}

func renderTemplates(templates []*ir.Template) []any {
	out := make([]any, len(templates))
	for i, t := range templates {
		locs := make([]any, len(t.Locations))
		for j, l := range t.Locations {
			locs[j] = l.Sym.Name
		}
		out[i] = map[string]any{
			"name":      t.Sym.Name,
			"isTA":      t.IsTA,
			"locations": locs,
			"edges":     len(t.Edges),
		}
	}
	return out
}

func renderProcesses(procs []*ir.Process) []any {
	out := make([]any, len(procs))
	for i, p := range procs {
		out[i] = p.Owner.Name
	}
	return out
}

func renderQueries(queries []*ir.Query) []any {
	out := make([]any, len(queries))
	for i, q := range queries {
		out[i] = q.Formula
	}
	return out
}
