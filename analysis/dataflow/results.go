package dataflow

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cs-au-dk/dataflow/analysis/cfg"
	L "github.com/cs-au-dk/dataflow/analysis/lattice"
	"github.com/cs-au-dk/dataflow/utils"

	"github.com/benbjohnson/immutable"
)

// Results maps program points to the lattice element holding
// immediately before the point's statement. It is populated once per
// run and read-only afterwards.
type Results[E L.Element[E]] struct {
	m *immutable.Map[cfg.Point, E]
}

func newResults[E L.Element[E]]() Results[E] {
	return Results[E]{utils.NewImmMap[cfg.Point, E]()}
}

func (r Results[E]) set(p cfg.Point, el E) Results[E] {
	return Results[E]{r.m.Set(p, el)}
}

// Get returns the element recorded for the point, if the point was
// requested when the analysis ran.
func (r Results[E]) Get(p cfg.Point) (E, bool) {
	return r.m.Get(p)
}

// Size returns the number of materialized points.
func (r Results[E]) Size() int {
	return r.m.Len()
}

// ForEach executes the given procedure for every recorded point.
func (r Results[E]) ForEach(do func(p cfg.Point, el E)) {
	iter := r.m.Iterator()
	for !iter.Done() {
		p, el, _ := iter.Next()
		do(p, el)
	}
}

// Eq checks that two result stores cover the same points with equal
// lattice elements.
func (r Results[E]) Eq(o Results[E]) bool {
	if r.Size() != o.Size() {
		return false
	}

	equal := true
	r.ForEach(func(p cfg.Point, el E) {
		if oel, found := o.Get(p); !found || !el.Eq(oel) {
			equal = false
		}
	})
	return equal
}

// ForEachOrdered executes the given procedure for every recorded
// point, ordered by (block, index).
func (r Results[E]) ForEachOrdered(do func(p cfg.Point, el E)) {
	points := make([]cfg.Point, 0, r.Size())
	r.ForEach(func(p cfg.Point, el E) {
		points = append(points, p)
	})
	sort.Slice(points, func(i, j int) bool {
		return points[i].Less(points[j])
	})

	for _, p := range points {
		el, _ := r.Get(p)
		do(p, el)
	}
}

func (r Results[E]) String() string {
	strs := make([]string, 0, r.Size())
	r.ForEachOrdered(func(p cfg.Point, el E) {
		strs = append(strs, fmt.Sprintf("%s ↦ %s", p, el))
	})
	return "[" + strings.Join(strs, ", ") + "]"
}
