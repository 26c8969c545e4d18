package constprop

import (
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
)

// Kind is the classification of a statement as seen by the constant
// propagation transfer function.
type Kind uint8

const (
	// Other covers every statement no rule applies to, including
	// declarations without an initializer.
	Other Kind = iota
	// DeclConst is a declaration of a single integer variable with a
	// compile-time constant initializer.
	DeclConst
	// DeclNonConst is a declaration of a single integer variable with
	// a non-constant initializer.
	DeclNonConst
	// AssignConst is a simple assignment of a compile-time constant
	// integer expression to a variable.
	AssignConst
	// AssignNonConst is a simple assignment of a non-constant
	// expression to a variable.
	AssignNonConst
	// CompoundAssign is a compound update of a variable (x += e,
	// x -= e, ..., x++, x--).
	CompoundAssign
)

func (k Kind) String() string {
	switch k {
	case DeclConst:
		return "decl-const"
	case DeclNonConst:
		return "decl-nonconst"
	case AssignConst:
		return "assign-const"
	case AssignNonConst:
		return "assign-nonconst"
	case CompoundAssign:
		return "compound-assign"
	default:
		return "other"
	}
}

// Classified is the outcome of classifying one statement: its kind,
// the variable the rule binds, and the evaluated constant for the
// *Const kinds. Every kind except Other binds a variable.
type Classified struct {
	Kind Kind
	Var  *types.Var
	Val  int64
}

// Classify determines which single transfer rule applies to the given
// statement handle. Rule priority is declaration first, then simple
// assignment, then compound assignment; the shapes are disjoint in Go
// syntax, so the first structural match is the only one.
func Classify(n ast.Node, info *types.Info) Classified {
	switch n := n.(type) {
	case *ast.ValueSpec:
		// The block nodes of a control-flow graph carry the ValueSpec
		// of a var declaration, not the enclosing DeclStmt.
		return classifySpec(n, info)

	case *ast.DeclStmt:
		gd, ok := n.Decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.VAR || len(gd.Specs) != 1 {
			return Classified{Kind: Other}
		}
		vs, ok := gd.Specs[0].(*ast.ValueSpec)
		if !ok {
			return Classified{Kind: Other}
		}
		return classifySpec(vs, info)

	case *ast.AssignStmt:
		if len(n.Lhs) != 1 || len(n.Rhs) != 1 {
			return Classified{Kind: Other}
		}
		id, ok := n.Lhs[0].(*ast.Ident)
		if !ok {
			return Classified{Kind: Other}
		}

		switch n.Tok {
		case token.DEFINE:
			return classifyDecl(id, n.Rhs[0], info)
		case token.ASSIGN:
			v, ok := info.Uses[id].(*types.Var)
			if !ok {
				return Classified{Kind: Other}
			}
			if c, ok := constInt(n.Rhs[0], info); ok {
				return Classified{Kind: AssignConst, Var: v, Val: c}
			}
			return Classified{Kind: AssignNonConst, Var: v}
		default:
			// Op-assign tokens (+=, -=, ...).
			v, ok := info.Uses[id].(*types.Var)
			if !ok {
				return Classified{Kind: Other}
			}
			return Classified{Kind: CompoundAssign, Var: v}
		}

	case *ast.IncDecStmt:
		id, ok := n.X.(*ast.Ident)
		if !ok {
			return Classified{Kind: Other}
		}
		v, ok := info.Uses[id].(*types.Var)
		if !ok {
			return Classified{Kind: Other}
		}
		return Classified{Kind: CompoundAssign, Var: v}
	}

	return Classified{Kind: Other}
}

func classifySpec(vs *ast.ValueSpec, info *types.Info) Classified {
	if len(vs.Names) != 1 || len(vs.Values) != 1 {
		return Classified{Kind: Other}
	}
	return classifyDecl(vs.Names[0], vs.Values[0], info)
}

// classifyDecl handles both declaration forms, `var x T = e` and
// `x := e`. Only declarations of integer-typed variables are tracked.
func classifyDecl(name *ast.Ident, init ast.Expr, info *types.Info) Classified {
	v, ok := info.Defs[name].(*types.Var)
	if !ok || !isInteger(v.Type()) {
		return Classified{Kind: Other}
	}
	if c, ok := constInt(init, info); ok {
		return Classified{Kind: DeclConst, Var: v, Val: c}
	}
	return Classified{Kind: DeclNonConst, Var: v}
}

func isInteger(t types.Type) bool {
	basic, ok := t.Underlying().(*types.Basic)
	return ok && basic.Info()&types.IsInteger != 0
}

// constInt evaluates an expression as a compile-time constant integer,
// leaning on the constant folding the type checker already performed.
func constInt(e ast.Expr, info *types.Info) (int64, bool) {
	tv, ok := info.Types[e]
	if !ok || tv.Value == nil || tv.Value.Kind() != constant.Int {
		return 0, false
	}
	return constant.Int64Val(tv.Value)
}
