package testutil

import (
	"go/ast"
	"testing"

	"github.com/cs-au-dk/dataflow/analysis/cfg"
	"github.com/cs-au-dk/dataflow/analysis/dataflow"
	L "github.com/cs-au-dk/dataflow/analysis/lattice"
	"github.com/cs-au-dk/dataflow/pkgutil"
)

// LoadResult contains relevant information obtained after loading a Go
// source snippet for a test: the type-checked package and the function
// under analysis with its control-flow graph.
type LoadResult struct {
	*pkgutil.SourcePackage
	// Fun is the function the test analyzes.
	Fun *ast.FuncDecl
	// Graph is the control-flow graph of Fun.
	Graph *cfg.Graph
}

// LoadSource type-checks the given source and builds the control-flow
// graph of the named function, failing the test on any error.
func LoadSource(t *testing.T, source string, fun string) LoadResult {
	t.Helper()

	pkg, err := pkgutil.LoadSource(source)
	if err != nil {
		t.Fatal(err)
	}

	fd := pkg.FindFunc(fun)
	if fd == nil {
		t.Fatalf("no function %q in test source", fun)
	}

	return LoadResult{
		SourcePackage: pkg,
		Fun:           fd,
		Graph:         cfg.FromFunc(pkg.Fset, fd),
	}
}

// RunDataflow runs the given analysis over the annotated function and
// returns the lattice element holding at each annotated point, keyed by
// label. Every label must resolve to a program point and every resolved
// point must have a materialized result.
func RunDataflow[E L.Element[E], Env any](
	t *testing.T,
	source string, fun string,
	mk func(LoadResult) dataflow.Analysis[E, Env],
) map[string]E {
	t.Helper()

	loadRes := LoadSource(t, source, fun)
	nm := MakeNotesManager(t, loadRes)
	points := nm.Points(t)

	wanted := make([]cfg.Point, 0, len(points))
	for _, p := range points {
		wanted = append(wanted, p)
	}

	results := dataflow.Run(loadRes.Graph, mk(loadRes), wanted)

	elements := make(map[string]E, len(points))
	for label, p := range points {
		el, found := results.Get(p)
		if !found {
			t.Fatalf("no result materialized for point %q at %s", label, p)
		}
		elements[label] = el
	}
	return elements
}
