package cfg

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/printer"
	"go/token"
	"strings"
)

// NodeString renders a statement handle the way it appears in source.
func NodeString(fset *token.FileSet, n ast.Node) string {
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, fset, n); err != nil {
		return fmt.Sprintf("<%T>", n)
	}
	return buf.String()
}

// String renders the graph deterministically, one block per section
// with its successor list and statements.
func (g *Graph) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "entry: %s\n", g.entry)
	for _, blk := range g.blocks {
		succs := make([]string, 0, len(blk.succs))
		for _, s := range blk.succs {
			succs = append(succs, s.String())
		}
		fmt.Fprintf(&b, "%s -> [%s]\n", blk, strings.Join(succs, " "))
		for _, n := range blk.nodes {
			fmt.Fprintf(&b, "\t%s\n", NodeString(g.fset, n))
		}
	}
	return b.String()
}
