package ir

// Visitor is the double-dispatch traversal contract (spec §4.7, §9 design
// note: "express this as a capability set {enter-template, leave-template,
// visit-variable, ...} with default no-ops"). Embed BaseVisitor to get
// every method as a no-op and override only the ones a particular pass
// needs, the way funxy's walker leaves most VisitX cases as no-ops inside
// one large switch; here that's made explicit through Go embedding
// instead of a switch default.
type Visitor interface {
	VisitGlobals(d *Document)
	VisitTemplateBefore(t *Template) bool
	VisitLocation(t *Template, l *Location)
	VisitEdge(t *Template, e *Edge)
	VisitFunction(t *Template, f *Function)
	VisitTemplateAfter(t *Template)
	VisitInstance(i *Instance)
	VisitProcess(p *Process)
	VisitQuery(q *Query)
	VisitMessage(t *Template, m *Message)
	VisitCondition(t *Template, c *Condition)
	VisitUpdate(t *Template, u *Update)
}

// BaseVisitor implements Visitor with every method a no-op;
// VisitTemplateBefore returns true (descend) by default. Embed it in a
// concrete visitor and override only the methods that pass cares about.
type BaseVisitor struct{}

func (BaseVisitor) VisitGlobals(d *Document)                {}
func (BaseVisitor) VisitTemplateBefore(t *Template) bool     { return true }
func (BaseVisitor) VisitLocation(t *Template, l *Location)   {}
func (BaseVisitor) VisitEdge(t *Template, e *Edge)           {}
func (BaseVisitor) VisitFunction(t *Template, f *Function)   {}
func (BaseVisitor) VisitTemplateAfter(t *Template)           {}
func (BaseVisitor) VisitInstance(i *Instance)                {}
func (BaseVisitor) VisitProcess(p *Process)                  {}
func (BaseVisitor) VisitQuery(q *Query)                       {}
func (BaseVisitor) VisitMessage(t *Template, m *Message)      {}
func (BaseVisitor) VisitCondition(t *Template, c *Condition)  {}
func (BaseVisitor) VisitUpdate(t *Template, u *Update)        {}

var _ Visitor = BaseVisitor{}

// Walk traverses d in the fixed order spec §4.7 requires: globals, then
// each template (before/locations/edges/functions/LSC entities/after),
// then each instance, then each process, then each query. A false return
// from VisitTemplateBefore skips that template's interior but still
// calls VisitTemplateAfter.
func Walk(d *Document, v Visitor) {
	v.VisitGlobals(d)
	allTemplates := make([]*Template, 0, len(d.Templates)+len(d.DynamicTemplates))
	allTemplates = append(allTemplates, d.Templates...)
	allTemplates = append(allTemplates, d.DynamicTemplates...)
	for _, t := range allTemplates {
		if !v.VisitTemplateBefore(t) {
			v.VisitTemplateAfter(t)
			continue
		}
		for _, l := range t.Locations {
			v.VisitLocation(t, l)
		}
		for _, e := range t.Edges {
			v.VisitEdge(t, e)
		}
		for _, f := range t.Functions {
			v.VisitFunction(t, f)
		}
		for _, m := range t.Messages {
			v.VisitMessage(t, m)
		}
		for _, c := range t.Conditions {
			v.VisitCondition(t, c)
		}
		for _, u := range t.Updates {
			v.VisitUpdate(t, u)
		}
		v.VisitTemplateAfter(t)
	}
	for _, i := range d.Instances {
		v.VisitInstance(i)
	}
	for _, p := range d.Processes {
		v.VisitProcess(p)
	}
	for _, q := range d.Queries {
		v.VisitQuery(q)
	}
}
