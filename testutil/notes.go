package testutil

import (
	"testing"

	"github.com/cs-au-dk/dataflow/analysis/cfg"

	"golang.org/x/tools/go/expect"
)

// NotesManager collects the expectation notes of a loaded test source.
// Tests annotate program points with `//@ point("label")` comments on
// the line of the statement the point precedes.
type NotesManager struct {
	notes   []*expect.Note
	loadRes LoadResult
}

func MakeNotesManager(t *testing.T, loadRes LoadResult) (n NotesManager) {
	t.Helper()

	n.loadRes = loadRes
	notes, err := expect.ExtractGo(loadRes.Fset, loadRes.File)
	if err != nil {
		t.Fatal(err)
	}
	n.notes = notes
	return
}

func (n NotesManager) ForEachNote(do func(i int, note *expect.Note)) {
	for i, note := range n.notes {
		do(i, note)
	}
}

// Points resolves every point note within the analyzed function to the
// program point before the statement on the note's line. A note that
// does not resolve fails the test; a duplicated label fails the test.
func (n NotesManager) Points(t *testing.T) map[string]cfg.Point {
	t.Helper()

	fset := n.loadRes.Fset
	fun := n.loadRes.Fun

	points := make(map[string]cfg.Point)
	n.ForEachNote(func(_ int, note *expect.Note) {
		if note.Name != "point" {
			return
		}
		if note.Pos < fun.Pos() || fun.End() < note.Pos {
			return
		}

		if len(note.Args) != 1 {
			t.Fatalf("point note at %v takes exactly one label argument", fset.Position(note.Pos))
		}
		label, ok := note.Args[0].(string)
		if !ok {
			t.Fatalf("point note at %v has a non-string label", fset.Position(note.Pos))
		}
		if _, found := points[label]; found {
			t.Fatalf("duplicated point label %q", label)
		}

		p, found := n.loadRes.Graph.PointOnLine(fset.Position(note.Pos).Line)
		if !found {
			t.Fatalf("no statement on the line of point %q", label)
		}
		points[label] = p
	})
	return points
}
