package constprop

import (
	"fmt"
	"go/ast"
	"go/types"
	"log"

	"github.com/cs-au-dk/dataflow/analysis/dataflow"
	"github.com/cs-au-dk/dataflow/analysis/lattice"
)

// VarValue is a single tracked binding: one variable and its known
// constant value. The flat lattice over VarValue is the abstract state
// of the analysis: ⊥ means no binding has been seen yet, a value means
// exactly this binding holds, ⊤ means the tracked value varies.
type VarValue struct {
	Var *types.Var
	Val int64
}

func (v VarValue) String() string {
	return fmt.Sprintf("%s = %d", v.Var.Name(), v.Val)
}

type Value = lattice.Flat[VarValue]

// Bot is the absent state: no tracked binding yet.
func Bot() Value {
	return lattice.Bot[VarValue]()
}

// Top is the varying state: the tracked value is not a single constant.
func Top() Value {
	return lattice.Top[VarValue]()
}

// Known is the state where the given variable is known to hold the
// given constant.
func Known(v *types.Var, val int64) Value {
	return lattice.Val(VarValue{v, val})
}

type Lattice = lattice.FlatLattice[VarValue]

// Environment carries the type information of the analyzed package
// into the transfer function.
type Environment struct {
	Info *types.Info
}

// Transfer implements the single-variable constant propagation rules.
// The slot is overwritten whenever a rule applies, whichever variable
// it previously tracked.
func Transfer(n ast.Node, el Value, env Environment) Value {
	c := Classify(n, env.Info)
	if c.Kind != Other && c.Var == nil {
		log.Fatalf("classified %v as %s without a bound variable", n, c.Kind)
	}

	switch c.Kind {
	case DeclConst, AssignConst:
		return Known(c.Var, c.Val)
	case DeclNonConst, AssignNonConst, CompoundAssign:
		return Top()
	default:
		return el
	}
}

// Analysis instantiates the dataflow engine with the constant
// propagation lattice and transfer function.
func Analysis(info *types.Info) dataflow.Analysis[Value, Environment] {
	return dataflow.Analysis[Value, Environment]{
		Lattice:  Lattice{},
		Initial:  Bot(),
		Transfer: Transfer,
		Env:      Environment{Info: info},
	}
}
