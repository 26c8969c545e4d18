package lattice

import (
	"fmt"
)

// flatKind discriminates the three variants of a flat lattice member.
type flatKind uint8

const (
	flatBot flatKind = iota
	flatValue
	flatTop
)

// Flat is a member of the flat lattice over the value domain T:
// ⊥ < v < ⊤ for every value v of T. Exactly one of {⊥, ⊤, valued}
// holds for any member; a valued member is never confused with ⊥ or ⊤.
// The zero value of Flat[T] is ⊥.
type Flat[T comparable] struct {
	kind  flatKind
	value T
}

// Bot constructs the ⊥ member of the flat lattice over T.
func Bot[T comparable]() Flat[T] {
	return Flat[T]{kind: flatBot}
}

// Top constructs the ⊤ member of the flat lattice over T.
func Top[T comparable]() Flat[T] {
	return Flat[T]{kind: flatTop}
}

// Val constructs the valued flat lattice member for v.
func Val[T comparable](v T) Flat[T] {
	return Flat[T]{kind: flatValue, value: v}
}

// IsBot checks whether the flat lattice member is ⊥.
func (e Flat[T]) IsBot() bool {
	return e.kind == flatBot
}

// IsTop checks whether the flat lattice member is ⊤.
func (e Flat[T]) IsTop() bool {
	return e.kind == flatTop
}

// Value will panic for ⊥/⊤, and must only be invoked for valued flat
// lattice members.
func (e Flat[T]) Value() T {
	if e.kind != flatValue {
		panic("Called Value() on a ⊥/⊤ flat element")
	}
	return e.value
}

// Is checks whether the flat element represents the given value.
func (e Flat[T]) Is(v T) bool {
	return e.kind == flatValue && e.value == v
}

// Eq computes m = o.
func (e1 Flat[T]) Eq(e2 Flat[T]) bool {
	return e1 == e2
}

// Leq computes m ⊑ o.
func (e1 Flat[T]) Leq(e2 Flat[T]) bool {
	return e1.IsBot() || e2.IsTop() || e1 == e2
}

// Geq computes m ⊒ o.
func (e1 Flat[T]) Geq(e2 Flat[T]) bool {
	return e2.Leq(e1)
}

// Join computes m ⊔ o, reporting whether the result is strictly above m.
func (e1 Flat[T]) Join(e2 Flat[T]) (Flat[T], JoinEffect) {
	switch {
	case e1 == e2, e2.IsBot(), e1.IsTop():
		return e1, Unchanged
	case e1.IsBot():
		return e2, Changed
	default:
		return Top[T](), Changed
	}
}

// Meet computes m ⊓ o.
func (e1 Flat[T]) Meet(e2 Flat[T]) Flat[T] {
	switch {
	case e1 == e2, e2.IsTop():
		return e1
	case e1.IsTop():
		return e2
	default:
		return Bot[T]()
	}
}

// Height is 0 for ⊥, 1 for valued members and 2 for ⊤.
func (e Flat[T]) Height() int {
	return int(e.kind)
}

func (e Flat[T]) String() string {
	switch e.kind {
	case flatBot:
		return colorize.Element("⊥")
	case flatTop:
		return colorize.Element("T")
	default:
		return colorize.Element(fmt.Sprintf("%v", e.value))
	}
}

var _ Element[Flat[int]] = Flat[int]{}

// FlatLattice is the flat lattice over the value domain T.
type FlatLattice[T comparable] struct{}

func (FlatLattice[T]) Bot() Flat[T] {
	return Bot[T]()
}

func (FlatLattice[T]) Top() Flat[T] {
	return Top[T]()
}

func (FlatLattice[T]) String() string {
	var v T
	return colorize.Lattice("⊥") +
		" < " + colorize.Lattice(fmt.Sprintf("%T", v)) + " < " +
		colorize.Lattice("T")
}

var _ Lattice[Flat[int]] = FlatLattice[int]{}
