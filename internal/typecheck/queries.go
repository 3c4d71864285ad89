package typecheck

import (
	"strings"

	"github.com/tair-lang/tair/internal/config"
	"github.com/tair-lang/tair/internal/diagnostics"
	"github.com/tair-lang/tair/internal/ir"
)

// checkQuery parses the query's formula string through the query
// sub-dialect grammar (queryparser.go) into q.FormulaExpr and type-checks
// it, then validates the option list against the recognized enumeration
// (spec §4.6 "the embedded formula string is parsed by the same grammar
// as expressions ... in a query sub-dialect"; "options are a recognized
// enumeration (see §6)"). Unrecognized options that are not a
// backend-specific `--` pass-through are reported as BadQuery; `--`
// pass-throughs are preserved verbatim without complaint (spec §6).
func (c *Checker) checkQuery(q *ir.Query) {
	if strings.TrimSpace(q.Formula) == "" {
		c.emit(diagnostics.BadQuery, q.Pos, "$badQueryEmptyFormula")
		return
	}
	expr, err := parseQueryFormula(q.Formula)
	if err != nil {
		c.emit(diagnostics.BadQuery, q.Pos, "$badQueryFormulaSyntax", err.Error())
	} else {
		q.FormulaExpr = expr
		ft := c.checkExpr(c.Doc.Globals, expr)
		if !ft.StripPrefix().Is(ir.KindBool) {
			c.emit(diagnostics.BadQuery, q.Pos, "$badQueryFormulaType")
		}
	}
	for _, opt := range q.Options {
		if config.RecognizedQueryOptions[opt] {
			continue
		}
		if strings.HasPrefix(opt, "--") {
			continue // backend-specific pass-through, preserved verbatim
		}
		c.emit(diagnostics.BadQuery, q.Pos, "$badQueryOption", opt)
	}
}
