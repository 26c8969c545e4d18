package lattice

import (
	"testing"
)

func flatElements() []Flat[int] {
	return []Flat[int]{Bot[int](), Top[int](), Val(1), Val(2), Val(3)}
}

func TestFlatJoinLaws(t *testing.T) {
	for _, x := range flatElements() {
		if j, eff := x.Join(x); !j.Eq(x) || eff != Unchanged {
			t.Errorf("%s ⊔ %s = %s (%s), expected %s (Unchanged)", x, x, j, eff, x)
		}

		for _, y := range flatElements() {
			xy, _ := x.Join(y)
			yx, _ := y.Join(x)
			if !xy.Eq(yx) {
				t.Errorf("%s ⊔ %s = %s but %s ⊔ %s = %s", x, y, xy, y, x, yx)
			}

			if !x.Leq(xy) {
				t.Errorf("%s is not smaller than %s", x, xy)
			}
			if !y.Leq(xy) {
				t.Errorf("%s is not smaller than %s", y, xy)
			}

			for _, z := range flatElements() {
				l, _ := xy.Join(z)
				yz, _ := y.Join(z)
				r, _ := x.Join(yz)
				if !l.Eq(r) {
					t.Errorf("(%s ⊔ %s) ⊔ %s = %s but %s ⊔ (%s ⊔ %s) = %s",
						x, y, z, l, x, y, z, r)
				}
			}
		}
	}
}

func TestFlatBotIsJoinIdentity(t *testing.T) {
	for _, x := range flatElements() {
		j, eff := Bot[int]().Join(x)
		if !j.Eq(x) {
			t.Errorf("⊥ ⊔ %s = %s, expected %s", x, j, x)
		}
		if wantChange := !x.IsBot(); (eff == Changed) != wantChange {
			t.Errorf("⊥ ⊔ %s reported %s", x, eff)
		}
	}
}

func TestFlatTopAbsorbs(t *testing.T) {
	for _, x := range flatElements() {
		if j, eff := Top[int]().Join(x); !j.IsTop() || eff != Unchanged {
			t.Errorf("T ⊔ %s = %s (%s), expected T (Unchanged)", x, j, eff)
		}
		if j, _ := x.Join(Top[int]()); !j.IsTop() {
			t.Errorf("%s ⊔ T = %s, expected T", x, j)
		}
	}
}

func TestFlatValueJoin(t *testing.T) {
	if j, eff := Val(1).Join(Val(1)); !j.Is(1) || eff != Unchanged {
		t.Errorf("1 ⊔ 1 = %s (%s), expected 1 (Unchanged)", j, eff)
	}
	if j, eff := Val(1).Join(Val(2)); !j.IsTop() || eff != Changed {
		t.Errorf("1 ⊔ 2 = %s (%s), expected T (Changed)", j, eff)
	}
}

func TestFlatMeet(t *testing.T) {
	if m := Val(1).Meet(Val(2)); !m.IsBot() {
		t.Errorf("1 ⊓ 2 = %s, expected ⊥", m)
	}
	if m := Val(1).Meet(Top[int]()); !m.Is(1) {
		t.Errorf("1 ⊓ T = %s, expected 1", m)
	}
	if m := Top[int]().Meet(Val(2)); !m.Is(2) {
		t.Errorf("T ⊓ 2 = %s, expected 2", m)
	}
	if m := Bot[int]().Meet(Val(2)); !m.IsBot() {
		t.Errorf("⊥ ⊓ 2 = %s, expected ⊥", m)
	}
}

func TestFlatOrder(t *testing.T) {
	lat := FlatLattice[int]{}
	if !lat.Bot().Leq(Val(1)) || !Val(1).Leq(lat.Top()) {
		t.Errorf("expected ⊥ ⊑ 1 ⊑ T in %s", lat)
	}
	if Val(1).Leq(Val(2)) || Val(2).Leq(Val(1)) {
		t.Error("distinct values must be incomparable")
	}
	if !Val(2).Geq(lat.Bot()) {
		t.Error("expected 2 ⊒ ⊥")
	}
}

func TestFlatValuePanicsOnBotTop(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected Value() on ⊥ to panic")
		}
	}()
	Bot[int]().Value()
}
