package dataflow

import (
	"go/ast"

	"github.com/cs-au-dk/dataflow/analysis/cfg"
	L "github.com/cs-au-dk/dataflow/analysis/lattice"
	"github.com/cs-au-dk/dataflow/utils/worklist"
)

// TransferFunc maps one statement and the lattice element holding
// before it to the element holding after it. The environment is
// threaded through every invocation unchanged; the engine never
// inspects it. Transfer functions must be monotone, or the computed
// fixpoint is not guaranteed to be least.
type TransferFunc[E L.Element[E], Env any] func(n ast.Node, el E, env Env) E

// Analysis bundles a client analysis: its lattice, the element holding
// at function entry, the transfer function and its environment.
type Analysis[E L.Element[E], Env any] struct {
	Lattice  L.Lattice[E]
	Initial  E
	Transfer TransferFunc[E, Env]
	Env      Env
}

// blockState is the pair of lattice elements computed for one block:
// the entry element (join of all predecessor exit elements) and the
// exit element (transfer folded over the block's statements).
type blockState[E L.Element[E]] struct {
	entry, exit E
}

// Run computes the least fixpoint of the analysis over the graph and
// materializes the lattice element holding immediately before each of
// the requested points. Termination requires the client lattice to be
// of finite height; this precondition is not checked.
//
// The result is a pure function of the graph, the initial element and
// the transfer function: repeated runs yield identical results
// regardless of worklist processing order.
func Run[E L.Element[E], Env any](
	g *cfg.Graph,
	a Analysis[E, Env],
	points []cfg.Point,
) Results[E] {
	bot := a.Lattice.Bot()

	states := make([]blockState[E], len(g.Blocks()))
	for i := range states {
		states[i] = blockState[E]{entry: bot, exit: bot}
	}

	// Every block is in one of three states: unvisited, queued or
	// stable. The queued flags keep the worklist duplicate-free.
	queued := make([]bool, len(states))
	visited := make([]bool, len(states))

	queued[g.Entry().Index()] = true
	worklist.Start(g.Entry().Index(), func(i int32, add func(el int32)) {
		queued[i] = false
		first := !visited[i]
		visited[i] = true
		b := g.Block(i)

		// Recompute the entry element from the predecessors.
		entry := bot
		if b == g.Entry() {
			entry = a.Initial
		}
		for _, p := range b.Preds() {
			entry, _ = entry.Join(states[p.Index()].exit)
		}
		states[i].entry = entry

		exit := entry
		for _, n := range b.Nodes() {
			exit = a.Transfer(n, exit, a.Env)
		}

		// Successors are scheduled when the exit element changes, and
		// unconditionally on the first visit: reachability alone forces
		// a fold of every reachable block, even when its exit stays ⊥.
		if first || !exit.Eq(states[i].exit) {
			states[i].exit = exit
			for _, s := range b.Succs() {
				if !queued[s.Index()] {
					queued[s.Index()] = true
					add(s.Index())
				}
			}
		}
	})

	return materialize(g, a, states, visited, points)
}

// materialize replays the transfer function over the stable entry
// elements of the blocks holding requested points, recording the
// element as it stood immediately before each point's statement.
// Points in blocks the fixpoint iteration never reached stay at ⊥.
func materialize[E L.Element[E], Env any](
	g *cfg.Graph,
	a Analysis[E, Env],
	states []blockState[E],
	visited []bool,
	points []cfg.Point,
) Results[E] {
	wanted := make(map[int32]map[int32]struct{})
	for _, p := range points {
		if wanted[p.Block()] == nil {
			wanted[p.Block()] = make(map[int32]struct{})
		}
		wanted[p.Block()][p.Index()] = struct{}{}
	}

	res := newResults[E]()
	for bi, indices := range wanted {
		b := g.Block(bi)
		el := a.Lattice.Bot()
		if visited[bi] {
			el = states[bi].entry
		}
		for i, n := range b.Nodes() {
			if _, found := indices[int32(i)]; found {
				res = res.set(cfg.PointAt(bi, int32(i)), el)
			}
			if visited[bi] {
				el = a.Transfer(n, el, a.Env)
			}
		}
		if _, found := indices[int32(len(b.Nodes()))]; found {
			res = res.set(cfg.PointAt(bi, int32(len(b.Nodes()))), el)
		}
	}
	return res
}
