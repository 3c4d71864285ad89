// Command tacheck is a smoke-test entry point: it builds a small
// timed-automaton model directly through the Builder API, runs it
// through the instantiation engine and type checker, and prints the
// resulting diagnostics.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/tair-lang/tair/internal/config"
	"github.com/tair-lang/tair/internal/instantiate"
	"github.com/tair-lang/tair/internal/ir"
	"github.com/tair-lang/tair/internal/pipeline"
	"github.com/tair-lang/tair/internal/position"
)

func main() {
	os.Exit(run())
}

func run() int {
	start := time.Now()
	doc := buildMinimalTA()

	if len(os.Args) > 1 {
		opts, err := config.LoadModelOptions(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "tair: loading model options: %v\n", err)
			return 1
		}
		doc.ModelOptions = opts.Options
	}

	pl := pipeline.New(pipeline.InstantiateStage{}, pipeline.TypeCheckStage{})
	ctx := pl.Run(&pipeline.PipelineContext{Doc: doc})
	doc.Freeze()

	colorize := isatty.IsTerminal(os.Stdout.Fd())
	for _, d := range ctx.Errs {
		fmt.Fprintln(os.Stdout, formatDiagnostic(d, colorize))
	}

	elapsedStr := time.Since(start).String()
	if config.IsTestMode {
		// Keep the smoke-test output deterministic for golden comparisons.
		elapsedStr = "0s"
	}
	fmt.Printf("tair %s: checked %s templates, %s processes in %s, %s, %s\n",
		config.Version,
		humanize.Comma(int64(len(doc.Templates))),
		humanize.Comma(int64(len(doc.Processes))),
		elapsedStr,
		pluralize(len(doc.Sink.Errors()), "error"),
		pluralize(len(doc.Sink.Warnings()), "warning"),
	)

	if doc.Sink.HasErrors() {
		return 1
	}
	return 0
}

func formatDiagnostic(d interface{ Error() string }, colorize bool) string {
	if !colorize {
		return d.Error()
	}
	return "\x1b[31m" + d.Error() + "\x1b[0m"
}

func pluralize(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// buildMinimalTA constructs spec §8 scenario 1 directly through the
// Builder: one template P with locations L0, L1, an edge L0 -> L1 guarded
// by x>1 and synchronizing on c!, a global clock x and global channel c,
// instantiated once as process p.
func buildMinimalTA() *ir.Document {
	doc := ir.New()
	pos := position.Position{File: "<builtin>", Line: 1, Column: 1}

	_, _ = doc.AddVariable(doc.Globals, "x", ir.Clock(), nil, pos)
	_, _ = doc.AddVariable(doc.Globals, "c", ir.Channel(), nil, pos)

	tmpl, _ := doc.AddTemplate("P", true, pos)
	l0, _ := doc.AddLocation(tmpl, "L0", nil, pos)
	l1, _ := doc.AddLocation(tmpl, "L1", nil, pos)
	tmpl.Init = l0.Sym

	guard := &ir.BinaryExpr{
		Op:    ">",
		Left:  &ir.IdentifierExpr{Name: "x"},
		Right: &ir.ConstantExpr{Kind: ir.ConstInt, IntVal: 1},
	}
	edge, _ := doc.AddEdge(tmpl, l0, nil, l1, nil, true, pos)
	_ = doc.AddGuard(edge, guard)
	_ = doc.AddSync(edge, &ir.IdentifierExpr{Name: "c"}, true)

	_, _, _ = instantiate.Instantiate(doc, tmpl, "p", nil, pos)

	return doc
}
