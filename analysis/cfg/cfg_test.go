package cfg_test

import (
	"testing"

	"github.com/cs-au-dk/dataflow/analysis/cfg"
	"github.com/cs-au-dk/dataflow/pkgutil"

	"github.com/sebdah/goldie/v2"
)

func buildGraph(t *testing.T, source string, fun string) *cfg.Graph {
	t.Helper()

	pkg, err := pkgutil.LoadSource(source)
	if err != nil {
		t.Fatal(err)
	}
	fd := pkg.FindFunc(fun)
	if fd == nil {
		t.Fatalf("no function %q in test source", fun)
	}
	return cfg.FromFunc(pkg.Fset, fd)
}

// blockOf locates the block containing a statement that renders to the
// given source text.
func blockOf(t *testing.T, g *cfg.Graph, stmt string) *cfg.Block {
	t.Helper()

	for _, b := range g.Blocks() {
		for i := range b.Nodes() {
			p := cfg.PointAt(b.Index(), int32(i))
			if cfg.NodeString(g.FileSet(), g.NodeAt(p)) == stmt {
				return b
			}
		}
	}
	t.Fatalf("no block contains %q", stmt)
	return nil
}

func TestBranching(t *testing.T) {
	g := buildGraph(t, `package p

func fun(b bool) {
	x := 1
	if b {
		x = 2
	} else {
		x = 3
	}
	_ = x
}`, "fun")

	entry := g.Entry()
	if len(entry.Succs()) != 2 {
		t.Fatalf("expected 2 successors of the entry block, got %d", len(entry.Succs()))
	}

	thenBlock := blockOf(t, g, "x = 2")
	elseBlock := blockOf(t, g, "x = 3")
	doneBlock := blockOf(t, g, "_ = x")

	for _, b := range []*cfg.Block{thenBlock, elseBlock} {
		if len(b.Succs()) != 1 || b.Succs()[0] != doneBlock {
			t.Errorf("expected %s to flow into %s, got %v", b, doneBlock, b.Succs())
		}
	}
	if len(doneBlock.Preds()) != 2 {
		t.Errorf("expected 2 predecessors of %s, got %d", doneBlock, len(doneBlock.Preds()))
	}
}

// Linear chains are merged: the loop body block absorbs the post
// statement block, since control cannot flow anywhere in between.
func TestLoopCompression(t *testing.T) {
	g := buildGraph(t, `package p

func fun(n int) {
	for i := 0; i < n; i++ {
		n = n - 1
	}
	_ = n
}`, "fun")

	body := blockOf(t, g, "n = n - 1")
	if body != blockOf(t, g, "i++") {
		t.Errorf("expected the loop body to absorb the post statement")
	}

	cond := blockOf(t, g, "i < n")
	if len(cond.Succs()) != 2 {
		t.Errorf("expected 2 successors of the condition block %s, got %d", cond, len(cond.Succs()))
	}
	if len(cond.Preds()) != 2 {
		t.Errorf("expected 2 predecessors of the condition block %s, got %d", cond, len(cond.Preds()))
	}
}

func TestAllPointsOrdered(t *testing.T) {
	g := buildGraph(t, `package p

func fun(b bool) {
	x := 1
	if b {
		x = 2
	}
	_ = x
}`, "fun")

	points := g.AllPoints()
	if len(points) == 0 {
		t.Fatal("expected a non-empty point list")
	}
	for i := 1; i < len(points); i++ {
		if !points[i-1].Less(points[i]) {
			t.Errorf("points out of order: %s before %s", points[i-1], points[i])
		}
	}
	for _, p := range points {
		if g.NodeAt(p) == nil {
			t.Errorf("point %s names no statement", p)
		}
	}
}

func TestGraphString(t *testing.T) {
	g := buildGraph(t, `package p

func fun(b bool) {
	x := 1
	if b {
		x = 2
	} else {
		x = 3
	}
	_ = x
}`, "fun")

	goldie.New(t).Assert(t, t.Name(), []byte(g.String()))
}
