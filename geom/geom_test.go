// SPDX-License-Identifier: GPL-2.0-or-later

package geom

import "testing"

func TestRectIntersects(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(5, 5, 10, 10)
	c := NewRect(10, 10, 5, 5)
	if !a.Intersects(b) {
		t.Errorf("expected %v to intersect %v", a, b)
	}
	if a.Intersects(c) {
		t.Errorf("expected %v not to intersect %v (touching edges only)", a, c)
	}
}

func TestRectContains(t *testing.T) {
	outer := NewRect(0, 0, 100, 100)
	inner := NewRect(10, 10, 5, 5)
	edge := NewRect(95, 0, 10, 10)
	if !outer.Contains(inner) {
		t.Errorf("expected %v to contain %v", outer, inner)
	}
	if outer.Contains(edge) {
		t.Errorf("expected %v not to contain %v (overflows right edge)", outer, edge)
	}
}

func TestRectSwapped(t *testing.T) {
	r := NewRect(3, 4, 16, 9)
	s := r.Swapped()
	if s.W != 9 || s.H != 16 || s.X != 3 || s.Y != 4 {
		t.Errorf("Swapped() = %v, want w=9 h=16 at same origin", s)
	}
}

func TestRectExpanded(t *testing.T) {
	r := NewRect(10, 10, 4, 4)
	e := r.Expanded(2)
	want := NewRect(8, 8, 8, 8)
	if e != want {
		t.Errorf("Expanded(2) = %v, want %v", e, want)
	}
}

func TestRectUnion(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(5, 5, 20, 1)
	u := a.Union(b)
	want := NewRect(0, 0, 25, 10)
	if u != want {
		t.Errorf("Union = %v, want %v", u, want)
	}
}

func TestRectIntersect(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(5, 5, 10, 10)
	got := a.Intersect(b)
	want := NewRect(5, 5, 5, 5)
	if got != want {
		t.Errorf("Intersect = %v, want %v", got, want)
	}
	none := NewRect(100, 100, 1, 1)
	if got := a.Intersect(none); !got.Empty() {
		t.Errorf("Intersect of disjoint rects should be empty, got %v", got)
	}
}

func TestPointFFloor(t *testing.T) {
	p := PointF{3.7, -1.2}
	f := p.Floor()
	if f.X != 3 || f.Y != -2 {
		t.Errorf("Floor() = %v, want {3 -2}", f)
	}
}
