package cfg

import (
	"fmt"
	"strings"

	"github.com/cs-au-dk/dataflow/utils/dot"
)

// Visualize creates a Dot Graph representing the function CFG.
func (g *Graph) Visualize() *dot.DotGraph {
	G := &dot.DotGraph{
		Title: g.fun.Name.Name,
		Options: map[string]string{
			"rankdir": "TB",
		},
	}

	blockToDotNode := make(map[*Block]*dot.DotNode)

	for _, b := range g.blocks {
		lines := []string{b.String()}
		for _, n := range b.nodes {
			lines = append(lines, NodeString(g.fset, n))
		}
		attrs := dot.DotAttrs{"label": strings.Join(lines, "\n")}
		if b == g.entry {
			attrs["fillcolor"] = "lightblue"
		}

		node := &dot.DotNode{
			ID:    fmt.Sprintf("%s-%s", g.fun.Name.Name, b),
			Attrs: attrs,
		}
		blockToDotNode[b] = node
		G.Nodes = append(G.Nodes, node)
	}

	for _, b := range g.blocks {
		for _, s := range b.succs {
			G.Edges = append(G.Edges, &dot.DotEdge{
				From: blockToDotNode[b],
				To:   blockToDotNode[s],
			})
		}
	}

	return G
}
