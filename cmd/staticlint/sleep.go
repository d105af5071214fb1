package main

import (
	"go/ast"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// SleepAnalyzer forbids time.Sleep in non-test code. Effect delays and
// debounced searches are scheduled through timer.Clock instead.
var SleepAnalyzer = &analysis.Analyzer{
	Name:     "sleeplint",
	Doc:      "reports time.Sleep calls outside _test.go files",
	Run:      runSleep,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
}

func runSleep(pass *analysis.Pass) (interface{}, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	insp.Preorder([]ast.Node{(*ast.CallExpr)(nil)}, func(n ast.Node) {
		call := n.(*ast.CallExpr)
		if strings.HasSuffix(pass.Fset.File(call.Pos()).Name(), "_test.go") {
			return
		}
		if isPkgFunc(pass, call, "time", "Sleep") {
			pass.Reportf(call.Pos(), "time.Sleep is forbidden outside tests; schedule through timer.Clock")
		}
	})
	return nil, nil
}
