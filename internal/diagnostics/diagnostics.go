// Package diagnostics implements the error/warning sink described in
// spec §6 ("Diagnostic format") and §7 ("Error handling design"), modeled
// on funxy's internal/diagnostics.DiagnosticError and the walker's
// addError/getErrors dedupe-and-sort pattern (internal/analyzer/analyzer.go).
package diagnostics

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/tair-lang/tair/internal/position"
)

// Severity distinguishes fatal checker errors from advisory warnings
// (spec §7: ShadowsAVariable is the one warning-severity code).
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Code identifies a diagnostic kind from the taxonomy in spec §7.
type Code string

const (
	UnknownIdentifier      Code = "UnknownIdentifier"
	HasNoMember            Code = "HasNoMember"
	IsNotAStruct           Code = "IsNotAStruct"
	DuplicateDefinition    Code = "DuplicateDefinition"
	InvalidType            Code = "InvalidType"
	NoSuchProcess          Code = "NoSuchProcess"
	NotATemplate           Code = "NotATemplate"
	NotAProcess            Code = "NotAProcess"
	StrategyNotDeclared    Code = "StrategyNotDeclared"
	UnknownDynamicTemplate Code = "UnknownDynamicTemplate"
	ShadowsAVariable       Code = "ShadowsAVariable" // warning
	CouldNotLoadLibrary    Code = "CouldNotLoadLibrary"
	CouldNotLoadFunction   Code = "CouldNotLoadFunction"
	TypeMismatch           Code = "TypeMismatch"
	BadGuard               Code = "BadGuard"
	BadInvariant           Code = "BadInvariant"
	BadAssignment          Code = "BadAssignment"
	BadSync                Code = "BadSync"
	RestrictionViolation   Code = "RestrictionViolation"
	CyclicType             Code = "CyclicType"
	BadPriorityList        Code = "BadPriorityList"
	BadQuery               Code = "BadQuery"
	InconsistentLSC        Code = "InconsistentLSC"
)

// defaultSeverity reports the taxonomy's single warning-level code; every
// other code defaults to error severity unless overridden at the call site.
func defaultSeverity(c Code) Severity {
	if c == ShadowsAVariable {
		return SeverityWarning
	}
	return SeverityError
}

// Diagnostic is one error or warning: severity, resolved position, a
// message template beginning with "$" followed by a key, and ordered
// positional substitution parameters referenced in the template as
// "%1%", "%2%", etc. (spec §6).
type Diagnostic struct {
	Severity Severity
	Code     Code
	Pos      position.Position
	Template string // e.g. "$unknownIdentifier"
	Args     []string
	Context  string // optional extra context string
}

// Error renders the diagnostic by dropping the leading "$" from Template
// and substituting its %N% placeholders with Args; no message catalog is
// consulted.
func (d *Diagnostic) Error() string {
	msg := renderTemplate(d.Template, d.Args)
	if d.Pos.File != "" {
		return fmt.Sprintf("%s:%d:%d: %s: %s", d.Pos.File, d.Pos.Line, d.Pos.Column, d.Severity, msg)
	}
	return fmt.Sprintf("%s: %s", d.Severity, msg)
}

func renderTemplate(template string, args []string) string {
	msg := strings.TrimPrefix(template, "$")
	for i, a := range args {
		msg = strings.ReplaceAll(msg, "%"+strconv.Itoa(i+1)+"%", a)
	}
	return msg
}

// New constructs a Diagnostic at error severity (the common case) unless
// code overrides it via defaultSeverity.
func New(code Code, pos position.Position, template string, args ...string) *Diagnostic {
	return &Diagnostic{
		Severity: defaultSeverity(code),
		Code:     code,
		Pos:      pos,
		Template: template,
		Args:     args,
	}
}

// Sink accumulates diagnostics on a document (spec §9 "Error accumulation":
// "Model errors/warnings as a write-only sink ... each check emits through
// the sink and returns a boolean for whether to continue").
//
// Deduplicated by (file, line, column, code), mirroring funxy's
// walker.addError keying on "line:col:code".
type Sink struct {
	seen  map[string]*Diagnostic
	order []string
}

// NewSink returns an empty Sink.
func NewSink() *Sink {
	return &Sink{seen: make(map[string]*Diagnostic)}
}

// Emit records a diagnostic, returning false if an identical (position,
// code) diagnostic was already recorded (idempotent re-checking, spec §8).
func (s *Sink) Emit(d *Diagnostic) bool {
	key := fmt.Sprintf("%s:%d:%d:%s", d.Pos.File, d.Pos.Line, d.Pos.Column, d.Code)
	if _, dup := s.seen[key]; dup {
		return false
	}
	s.seen[key] = d
	s.order = append(s.order, key)
	return true
}

// Errors returns accumulated error-severity diagnostics, sorted by position.
func (s *Sink) Errors() []*Diagnostic { return s.bySeverity(SeverityError) }

// Warnings returns accumulated warning-severity diagnostics, sorted by position.
func (s *Sink) Warnings() []*Diagnostic { return s.bySeverity(SeverityWarning) }

// All returns every diagnostic, sorted by position.
func (s *Sink) All() []*Diagnostic {
	result := make([]*Diagnostic, 0, len(s.order))
	for _, k := range s.order {
		result = append(result, s.seen[k])
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Pos.Line != result[j].Pos.Line {
			return result[i].Pos.Line < result[j].Pos.Line
		}
		return result[i].Pos.Column < result[j].Pos.Column
	})
	return result
}

func (s *Sink) bySeverity(sev Severity) []*Diagnostic {
	var result []*Diagnostic
	for _, d := range s.All() {
		if d.Severity == sev {
			result = append(result, d)
		}
	}
	return result
}

// HasErrors reports whether any error-severity diagnostic was emitted.
func (s *Sink) HasErrors() bool {
	for _, k := range s.order {
		if s.seen[k].Severity == SeverityError {
			return true
		}
	}
	return false
}
