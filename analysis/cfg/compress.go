package cfg

import (
	uf "github.com/spakin/disjoint"
)

// compress merges every linear chain of blocks into a single block. A
// block absorbs its successor when the edge between them is the only
// way in and out: the block has exactly one successor and is that
// successor's only predecessor. Chain membership is tracked with a
// disjoint-set forest, which also rules out closing a chain into a
// cycle of dead blocks.
func (g *Graph) compress() {
	elems := make([]*uf.Element, len(g.blocks))
	for i := range g.blocks {
		elems[i] = uf.NewElement()
		elems[i].Data = g.blocks[i]
	}

	// next[i] is the successor absorbed by block i, if any.
	next := make([]*Block, len(g.blocks))
	absorbed := make([]bool, len(g.blocks))
	for i, b := range g.blocks {
		if len(b.succs) != 1 {
			continue
		}
		s := b.succs[0]
		if s == b || s == g.entry || len(s.preds) != 1 {
			continue
		}
		if elems[i].Find() == elems[s.index].Find() {
			// Same chain already; absorbing would close a cycle.
			continue
		}
		uf.Union(elems[i], elems[s.index])
		next[i] = s
		absorbed[s.index] = true
	}

	// Rebuild the block list, walking each chain from its head.
	repr := make([]*Block, len(g.blocks))
	blocks := []*Block{}
	for i, b := range g.blocks {
		if absorbed[i] {
			continue
		}
		nb := &Block{index: int32(len(blocks))}
		for cur := b; cur != nil; cur = next[cur.index] {
			nb.nodes = append(nb.nodes, cur.nodes...)
			repr[cur.index] = nb
		}
		blocks = append(blocks, nb)
	}

	// Re-wire edges between representatives.
	for i, b := range g.blocks {
		if next[i] != nil {
			// Chain-internal edge.
			continue
		}
		from := repr[i]
		for _, s := range b.succs {
			to := repr[s.index]
			from.succs = append(from.succs, to)
			to.preds = append(to.preds, from)
		}
	}

	g.blocks = blocks
	g.entry = repr[g.entry.index]
}
