package constprop_test

import (
	"testing"

	"github.com/cs-au-dk/dataflow/analysis/constprop"
	"github.com/cs-au-dk/dataflow/analysis/dataflow"
	"github.com/cs-au-dk/dataflow/testutil"
)

// runConstProp runs the constant propagation analysis over the `fun`
// function of the given source and returns the abstract state at every
// annotated point. Points are annotated as `_ = x //@ point("p")`:
// the blank assignment is a no-op carrier statement, so the state at
// the point is the state after the previous statement.
func runConstProp(t *testing.T, source string) map[string]constprop.Value {
	return testutil.RunDataflow(t, source, "fun",
		func(loadRes testutil.LoadResult) dataflow.Analysis[constprop.Value, constprop.Environment] {
			return constprop.Analysis(loadRes.Info)
		})
}

func expectConst(t *testing.T, els map[string]constprop.Value, label, name string, val int64) {
	t.Helper()
	el, found := els[label]
	if !found {
		t.Errorf("no result at %q", label)
		return
	}
	if el.IsBot() || el.IsTop() {
		t.Errorf("at %q: expected %s = %d, got %s", label, name, val, el)
		return
	}
	if vv := el.Value(); vv.Var.Name() != name || vv.Val != val {
		t.Errorf("at %q: expected %s = %d, got %s", label, name, val, el)
	}
}

func expectUnknown(t *testing.T, els map[string]constprop.Value, label string) {
	t.Helper()
	if el, found := els[label]; !found || !el.IsBot() {
		t.Errorf("at %q: expected ⊥, got %s", label, el)
	}
}

func expectVaries(t *testing.T, els map[string]constprop.Value, label string) {
	t.Helper()
	if el, found := els[label]; !found || !el.IsTop() {
		t.Errorf("at %q: expected T, got %s", label, el)
	}
}

func TestJustInit(t *testing.T) {
	els := runConstProp(t, `package p

func fun() {
	target := 1
	_ = target //@ point("p")
}`)
	expectConst(t, els, "p", "target", 1)
}

// The analysis tracks the last variable seen.
func TestTwoVariables(t *testing.T) {
	els := runConstProp(t, `package p

func fun() {
	target := 1
	_ = target //@ point("p1")
	other := 2
	_ = other //@ point("p2")
	target = 3
	_ = target //@ point("p3")
}`)
	expectConst(t, els, "p1", "target", 1)
	expectConst(t, els, "p2", "other", 2)
	expectConst(t, els, "p3", "target", 3)
}

func TestAssignment(t *testing.T) {
	els := runConstProp(t, `package p

func fun() {
	target := 1
	_ = target //@ point("p1")
	target = 2
	_ = target //@ point("p2")
}`)
	expectConst(t, els, "p1", "target", 1)
	expectConst(t, els, "p2", "target", 2)
}

func TestVarDecl(t *testing.T) {
	els := runConstProp(t, `package p

func fun() {
	var target int = 1
	_ = target //@ point("p")
}`)
	expectConst(t, els, "p", "target", 1)
}

func TestVarDeclNonConst(t *testing.T) {
	els := runConstProp(t, `package p

func g() int { return 42 }

func fun() {
	var target int = g()
	_ = target //@ point("p")
}`)
	expectVaries(t, els, "p")
}

func TestAssignmentCall(t *testing.T) {
	els := runConstProp(t, `package p

func g() int { return 42 }

func fun() {
	var target int
	target = g()
	_ = target //@ point("p")
}`)
	expectVaries(t, els, "p")
}

func TestAssignmentBinOp(t *testing.T) {
	els := runConstProp(t, `package p

func fun() {
	var target int
	target = 2 + 3
	_ = target //@ point("p")
}`)
	expectConst(t, els, "p", "target", 5)
}

func TestPlusAssignment(t *testing.T) {
	els := runConstProp(t, `package p

func fun() {
	target := 1
	_ = target //@ point("p1")
	target += 2
	_ = target //@ point("p2")
}`)
	expectConst(t, els, "p1", "target", 1)
	expectVaries(t, els, "p2")
}

func TestIncrement(t *testing.T) {
	els := runConstProp(t, `package p

func fun() {
	target := 1
	_ = target //@ point("p1")
	target++
	_ = target //@ point("p2")
}`)
	expectConst(t, els, "p1", "target", 1)
	expectVaries(t, els, "p2")
}

func TestSameAssignmentInBranches(t *testing.T) {
	els := runConstProp(t, `package p

func fun(b bool) {
	var target int
	_ = target //@ point("p1")
	if b {
		target = 2
		_ = target //@ point("pT")
	} else {
		target = 2
		_ = target //@ point("pF")
	}
	_ = target //@ point("p2")
}`)
	expectUnknown(t, els, "p1")
	expectConst(t, els, "pT", "target", 2)
	expectConst(t, els, "pF", "target", 2)
	expectConst(t, els, "p2", "target", 2)
}

func TestSameAssignmentInBranch(t *testing.T) {
	els := runConstProp(t, `package p

func fun(b bool) {
	target := 1
	_ = target //@ point("p1")
	if b {
		target = 1
	}
	_ = target //@ point("p2")
}`)
	expectConst(t, els, "p1", "target", 1)
	expectConst(t, els, "p2", "target", 1)
}

func TestNewVarInBranch(t *testing.T) {
	els := runConstProp(t, `package p

func fun(b bool) {
	if b {
		var target int
		_ = target //@ point("p1")
		target = 1
		_ = target //@ point("p2")
	} else {
		var target int
		_ = target //@ point("p3")
		target = 1
		_ = target //@ point("p4")
	}
}`)
	expectUnknown(t, els, "p1")
	expectConst(t, els, "p2", "target", 1)
	expectUnknown(t, els, "p3")
	expectConst(t, els, "p4", "target", 1)
}

func TestDifferentAssignmentInBranches(t *testing.T) {
	els := runConstProp(t, `package p

func fun(b bool) {
	var target int
	_ = target //@ point("p1")
	if b {
		target = 1
		_ = target //@ point("pT")
	} else {
		target = 2
		_ = target //@ point("pF")
	}
	_ = target //@ point("p2")
}`)
	expectUnknown(t, els, "p1")
	expectConst(t, els, "pT", "target", 1)
	expectConst(t, els, "pF", "target", 2)
	expectVaries(t, els, "p2")
}

func TestDifferentAssignmentInBranch(t *testing.T) {
	els := runConstProp(t, `package p

func fun(b bool) {
	target := 1
	_ = target //@ point("p1")
	if b {
		target = 3
	}
	_ = target //@ point("p2")
}`)
	expectConst(t, els, "p1", "target", 1)
	expectVaries(t, els, "p2")
}

// The body of a loop is re-processed until the abstract states
// stabilize: the state after the loop accounts for every number of
// iterations, including zero.
func TestAssignmentInLoop(t *testing.T) {
	els := runConstProp(t, `package p

func fun() {
	x := 1
	_ = x //@ point("p1")
	for i := 0; i < 10; i++ {
		x = 2
		_ = x //@ point("p2")
	}
	_ = x //@ point("p3")
}`)
	expectConst(t, els, "p1", "x", 1)
	expectConst(t, els, "p2", "x", 2)
	expectVaries(t, els, "p3")
}
