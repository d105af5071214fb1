/*
Staticlint runs the module's static analysis suite through multichecker.

The suite contains:

  - every analyzer from golang.org/x/tools/go/analysis/passes that applies to
    ordinary Go code (printf, copylock, lostcancel, httpresponse, loopclosure,
    unusedresult, waitgroup and the rest of the list in main);
  - every SA analyzer from honnef.co/go/tools/staticcheck;
  - ST1005 (error strings start lower case) and ST1012 (error variables are
    named errFoo) from stylecheck;
  - QF1001 (apply De Morgan's law) from quickfix;
  - osexitlint: reports os.Exit calls in the main function of a main package;
  - sleeplint: reports time.Sleep outside tests. Delays go through the
    timer.Clock abstraction so that tests can drive them.

Usage:

	staticlint ./...
*/
package main

import (
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/multichecker"
	"golang.org/x/tools/go/analysis/passes/appends"
	"golang.org/x/tools/go/analysis/passes/assign"
	"golang.org/x/tools/go/analysis/passes/atomic"
	"golang.org/x/tools/go/analysis/passes/bools"
	"golang.org/x/tools/go/analysis/passes/buildtag"
	"golang.org/x/tools/go/analysis/passes/composite"
	"golang.org/x/tools/go/analysis/passes/copylock"
	"golang.org/x/tools/go/analysis/passes/defers"
	"golang.org/x/tools/go/analysis/passes/directive"
	"golang.org/x/tools/go/analysis/passes/errorsas"
	"golang.org/x/tools/go/analysis/passes/httpresponse"
	"golang.org/x/tools/go/analysis/passes/ifaceassert"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/analysis/passes/loopclosure"
	"golang.org/x/tools/go/analysis/passes/lostcancel"
	"golang.org/x/tools/go/analysis/passes/nilfunc"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/shift"
	"golang.org/x/tools/go/analysis/passes/sigchanyzer"
	"golang.org/x/tools/go/analysis/passes/slog"
	"golang.org/x/tools/go/analysis/passes/stdmethods"
	"golang.org/x/tools/go/analysis/passes/stdversion"
	"golang.org/x/tools/go/analysis/passes/stringintconv"
	"golang.org/x/tools/go/analysis/passes/structtag"
	"golang.org/x/tools/go/analysis/passes/testinggoroutine"
	"golang.org/x/tools/go/analysis/passes/tests"
	"golang.org/x/tools/go/analysis/passes/timeformat"
	"golang.org/x/tools/go/analysis/passes/unmarshal"
	"golang.org/x/tools/go/analysis/passes/unreachable"
	"golang.org/x/tools/go/analysis/passes/unsafeptr"
	"golang.org/x/tools/go/analysis/passes/unusedresult"
	"golang.org/x/tools/go/analysis/passes/waitgroup"

	"honnef.co/go/tools/analysis/lint"
	"honnef.co/go/tools/quickfix"
	"honnef.co/go/tools/staticcheck"
	"honnef.co/go/tools/stylecheck"
)

var extraChecks = map[string]bool{
	"ST1005": true,
	"ST1012": true,
	"QF1001": true,
}

func main() {
	multichecker.Main(analyzers()...)
}

// analyzers returns the suite without duplicates.
func analyzers() []*analysis.Analyzer {
	used := map[string]bool{}
	var out []*analysis.Analyzer

	add := func(as ...*analysis.Analyzer) {
		for _, a := range as {
			if !used[a.Name] {
				out = append(out, a)
				used[a.Name] = true
			}
		}
	}

	add(
		appends.Analyzer,
		assign.Analyzer,
		atomic.Analyzer,
		bools.Analyzer,
		buildtag.Analyzer,
		composite.Analyzer,
		copylock.Analyzer,
		defers.Analyzer,
		directive.Analyzer,
		errorsas.Analyzer,
		httpresponse.Analyzer,
		ifaceassert.Analyzer,
		inspect.Analyzer,
		loopclosure.Analyzer,
		lostcancel.Analyzer,
		nilfunc.Analyzer,
		printf.Analyzer,
		shift.Analyzer,
		sigchanyzer.Analyzer,
		slog.Analyzer,
		stdmethods.Analyzer,
		stdversion.Analyzer,
		stringintconv.Analyzer,
		structtag.Analyzer,
		testinggoroutine.Analyzer,
		tests.Analyzer,
		timeformat.Analyzer,
		unmarshal.Analyzer,
		unreachable.Analyzer,
		unsafeptr.Analyzer,
		unusedresult.Analyzer,
		waitgroup.Analyzer,
	)

	for _, group := range [][]*lint.Analyzer{staticcheck.Analyzers, stylecheck.Analyzers, quickfix.Analyzers} {
		for _, a := range group {
			name := a.Analyzer.Name
			if strings.HasPrefix(name, "SA") || extraChecks[name] {
				add(a.Analyzer)
			}
		}
	}

	add(OsExitAnalyzer, SleepAnalyzer)
	return out
}
