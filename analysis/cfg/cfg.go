package cfg

import (
	"fmt"
	"go/ast"
	"go/token"

	"github.com/cs-au-dk/dataflow/utils"

	tcfg "golang.org/x/tools/go/cfg"
)

// Block is a basic block of a function: an ordered sequence of statement
// handles, connected to its predecessors and successors. Condition
// expressions of branches appear as handles of the block that branches
// on them.
type Block struct {
	index int32
	nodes []ast.Node
	succs []*Block
	preds []*Block
}

// Index returns the position of the block in its graph.
func (b *Block) Index() int32 {
	return b.index
}

// Nodes returns the ordered statement handles of the block.
func (b *Block) Nodes() []ast.Node {
	return b.nodes
}

func (b *Block) Succs() []*Block {
	return b.succs
}

func (b *Block) Preds() []*Block {
	return b.preds
}

func (b *Block) String() string {
	return fmt.Sprintf("b%d", b.index)
}

// Graph is the control-flow graph of a single function body, in the
// shape consumed by the fixpoint engine. Construction of the raw block
// structure is delegated to golang.org/x/tools/go/cfg; this type adds
// predecessor edges, linear chain compression and program points.
type Graph struct {
	fset   *token.FileSet
	fun    *ast.FuncDecl
	blocks []*Block
	entry  *Block
}

// FromFunc builds the compressed control-flow graph of the given
// function declaration. The function must have a body.
func FromFunc(fset *token.FileSet, fun *ast.FuncDecl) *Graph {
	if fun.Body == nil {
		panic(fmt.Sprintf("cannot construct a CFG for bodyless function %q", fun.Name.Name))
	}

	raw := tcfg.New(fun.Body, func(*ast.CallExpr) bool { return true })

	blocks := make([]*Block, len(raw.Blocks))
	for i, b := range raw.Blocks {
		blocks[i] = &Block{index: int32(i), nodes: b.Nodes}
	}
	for i, b := range raw.Blocks {
		for _, s := range b.Succs {
			blocks[i].succs = append(blocks[i].succs, blocks[s.Index])
			blocks[s.Index].preds = append(blocks[s.Index].preds, blocks[i])
		}
	}

	g := &Graph{fset: fset, fun: fun, blocks: blocks, entry: blocks[0]}
	g.compress()
	return g
}

// FileSet extracts the FileSet from the graph.
func (g *Graph) FileSet() *token.FileSet {
	return g.fset
}

// Fun returns the function declaration the graph was built from.
func (g *Graph) Fun() *ast.FuncDecl {
	return g.fun
}

func (g *Graph) Blocks() []*Block {
	return g.blocks
}

func (g *Graph) Entry() *Block {
	return g.entry
}

func (g *Graph) Block(i int32) *Block {
	return g.blocks[i]
}

// Point names the program position immediately before the statement at
// the given index of the given block; an index equal to the number of
// statements names the block exit. Points are stable for the lifetime
// of one graph only.
type Point struct {
	block int32
	index int32
}

// PointAt constructs the point before the statement at the given index
// of the given block.
func PointAt(block, index int32) Point {
	return Point{block, index}
}

func (p Point) Block() int32 {
	return p.block
}

func (p Point) Index() int32 {
	return p.index
}

// Less orders points by (block, index).
func (p Point) Less(o Point) bool {
	return p.block < o.block || (p.block == o.block && p.index < o.index)
}

// Hash computes the uint32 hash of the point.
func (p Point) Hash() uint32 {
	return utils.HashCombine(uint32(p.block), uint32(p.index))
}

// Equal checks equality between two points.
func (p Point) Equal(o Point) bool {
	return p == o
}

func (p Point) String() string {
	return fmt.Sprintf("b%d[%d]", p.block, p.index)
}

// AllPoints returns the point before every statement of every block,
// ordered by (block, index).
func (g *Graph) AllPoints() []Point {
	points := []Point{}
	for _, b := range g.blocks {
		for i := range b.nodes {
			points = append(points, Point{b.index, int32(i)})
		}
	}
	return points
}

// NodeAt returns the statement handle a point precedes, or nil for a
// block exit point.
func (g *Graph) NodeAt(p Point) ast.Node {
	b := g.blocks[p.block]
	if int(p.index) < len(b.nodes) {
		return b.nodes[p.index]
	}
	return nil
}

// PointBefore locates the point before the given statement handle.
func (g *Graph) PointBefore(n ast.Node) (Point, bool) {
	for _, b := range g.blocks {
		for i, m := range b.nodes {
			if m == n {
				return Point{b.index, int32(i)}, true
			}
		}
	}
	return Point{}, false
}

// PointOnLine locates the point before the first statement that starts
// on the given source line.
func (g *Graph) PointOnLine(line int) (Point, bool) {
	for _, b := range g.blocks {
		for i, n := range b.nodes {
			if g.fset.Position(n.Pos()).Line == line {
				return Point{b.index, int32(i)}, true
			}
		}
	}
	return Point{}, false
}
