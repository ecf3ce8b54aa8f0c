package core

import "testing"

func TestRectIntersect(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected Rect
	}{
		{"overlapping rects", NewRect(0, 0, 10, 10), NewRect(5, 8, 10, 10), NewRect(5, 8, 5, 2)},
		{"non-overlapping horizontal", NewRect(0, 0, 10, 10), NewRect(15, 0, 10, 10), Rect{}},
		{"non-overlapping vertical", NewRect(0, 0, 10, 10), NewRect(0, 15, 10, 10), Rect{}},
		{"adjacent horizontal", NewRect(0, 0, 4, 4), NewRect(4, 0, 4, 4), Rect{}},
		{"contained rect", NewRect(0, 0, 20, 20), NewRect(5, 5, 5, 5), NewRect(5, 5, 5, 5)},
		{"single pixel overlap", NewRect(0, 0, 10, 10), NewRect(9, 9, 10, 10), NewRect(9, 9, 1, 1)},
		{"clip to display", NewRect(38, 10, 10, 10), NewRect(0, 0, 40, 12), NewRect(38, 10, 2, 2)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersect(tc.b); got != tc.expected {
				t.Errorf("Intersect() = %+v, expected %+v", got, tc.expected)
			}
			if got := tc.b.Intersect(tc.a); got != tc.expected {
				t.Errorf("Intersect() (reversed) = %+v, expected %+v", got, tc.expected)
			}
		})
	}
}

func TestPointIn(t *testing.T) {
	tests := []struct {
		p        Point
		expected bool
	}{
		{Pt(0, 0), true},
		{Pt(39, 21), true},
		{Pt(40, 0), false},
		{Pt(0, 22), false},
		{Pt(-1, 5), false},
	}

	for _, tc := range tests {
		if got := tc.p.In(40, 22); got != tc.expected {
			t.Errorf("%+v.In(40, 22) = %v, expected %v", tc.p, got, tc.expected)
		}
	}
}

func TestPointManhattan(t *testing.T) {
	if d := Pt(1, 1).Manhattan(Pt(4, -3)); d != 7 {
		t.Errorf("Manhattan() = %d, expected 7", d)
	}
	if d := Pt(2, 2).Add(DirUp.Delta()).Manhattan(Pt(2, 2)); d != 1 {
		t.Errorf("one step should be distance 1, got %d", d)
	}
}
