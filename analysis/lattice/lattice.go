package lattice

// JoinEffect reports whether a join produced an element strictly above
// the receiver.
type JoinEffect bool

const (
	Unchanged JoinEffect = false
	Changed   JoinEffect = true
)

func (e JoinEffect) String() string {
	if e == Changed {
		return "Changed"
	}
	return "Unchanged"
}

// Element is implemented by the members of a join semi-lattice over E.
// Join must be idempotent, commutative, associative and monotone; Leq
// and Eq must agree with the partial order Join induces.
type Element[E any] interface {
	// Join computes the least upper bound of the receiver and o.
	Join(o E) (E, JoinEffect)
	// Leq computes e ⊑ o.
	Leq(o E) bool
	// Eq computes e = o.
	Eq(o E) bool
	// Height encodes the distance from the bottom of the lattice
	// to the element that calls this method.
	Height() int

	String() string
}

// Lattice is implemented by lattices with designated ⊥ and ⊤ members.
//
// The fixpoint engine relies on every strictly ascending chain of a
// client lattice being of small finite length for termination. This is
// a documented precondition; it is not enforced at run-time.
type Lattice[E Element[E]] interface {
	Bot() E
	Top() E

	String() string
}
