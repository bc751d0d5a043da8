package core

import "testing"

func TestRectLayoutEdges(t *testing.T) {
	r := NewRect(4, 18, 6, 3)

	if r.Right() != 10 || r.Bottom() != 21 {
		t.Errorf("edges = (%d, %d), expected (10, 21)", r.Right(), r.Bottom())
	}
	if cx, cy := r.Center(); cx != 7 || cy != 19 {
		t.Errorf("Center() = (%d, %d), expected (7, 19)", cx, cy)
	}
}

func TestRectIntersects(t *testing.T) {
	left := NewRect(0, 18, 4, 3)
	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"side by side", NewRect(4, 18, 4, 3), false},
		{"stacked", NewRect(0, 21, 4, 3), false},
		{"one shared cell", NewRect(3, 20, 4, 3), true},
		{"contained", NewRect(1, 19, 1, 1), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := left.Intersects(tc.other); got != tc.want {
				t.Errorf("Intersects() = %v, expected %v", got, tc.want)
			}
			if got := tc.other.Intersects(left); got != tc.want {
				t.Errorf("Intersects() reversed = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestRectContainsF(t *testing.T) {
	button := NewRect(4, 18, 6, 3)

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"cell center", 4.5, 18.5, true},
		{"top-left corner", 4, 18, true},
		{"last cell", 9.99, 20.99, true},
		{"right edge is outside", 10, 19, false},
		{"bottom edge is outside", 5, 21, false},
		{"above", 5, 17.9, false},
		{"left", 3.5, 19, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := button.ContainsF(tc.x, tc.y); got != tc.want {
				t.Errorf("ContainsF(%v, %v) = %v, expected %v", tc.x, tc.y, got, tc.want)
			}
		})
	}
}

func TestFRectIntersects(t *testing.T) {
	tests := []struct {
		name string
		a, b FRect
		want bool
	}{
		{"bullet inside enemy", FRect{X: 10, Y: 5, W: 3, H: 1}, FRect{X: 11, Y: 5.5, W: 0.2, H: 1}, true},
		{"fractional overlap", FRect{X: 0, Y: 0, W: 1.5, H: 1.5}, FRect{X: 1.4, Y: 1.4, W: 1, H: 1}, true},
		{"shared vertical edge", FRect{X: 0, Y: 0, W: 2, H: 2}, FRect{X: 2, Y: 0, W: 2, H: 2}, false},
		{"shared horizontal edge", FRect{X: 0, Y: 0, W: 2, H: 2}, FRect{X: 0, Y: 2, W: 2, H: 2}, false},
		{"below", FRect{X: 0, Y: 0, W: 2, H: 2}, FRect{X: 0, Y: 3, W: 2, H: 2}, false},
		{"zero width", FRect{X: 1, Y: 0, W: 0, H: 2}, FRect{X: 0, Y: 0, W: 2, H: 2}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.want {
				t.Errorf("Intersects() = %v, expected %v", got, tc.want)
			}
			if got := tc.b.Intersects(tc.a); got != tc.want {
				t.Errorf("Intersects() reversed = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestFRectUnionAndOffset(t *testing.T) {
	a := FRect{X: 2, Y: 9.2, W: 1, H: 1}
	b := FRect{X: 2, Y: 8.6, W: 1, H: 1}

	if got, want := a.Union(b), (FRect{X: 2, Y: 8.6, W: 1, H: 1.6}); got != want {
		t.Errorf("Union() = %+v, expected %+v", got, want)
	}
	if got := a.Union(a); got != a {
		t.Errorf("Union() with itself = %+v, expected %+v", got, a)
	}
	if got, want := a.Offset(1, 2), (FRect{X: 3, Y: 11.2, W: 1, H: 1}); got != want {
		t.Errorf("Offset() = %+v, expected %+v", got, want)
	}
}

func TestOverlap(t *testing.T) {
	tests := []struct {
		name          string
		a, aw, b, bw  float64
		start, length float64
	}{
		{"partial from right", 50, 200, 0, 200, 50, 150},
		{"partial from left", 0, 200, 50, 200, 50, 150},
		{"exact", 10, 40, 10, 40, 10, 40},
		{"contained", 20, 10, 0, 100, 20, 10},
		{"touching", 200, 100, 0, 200, 200, 0},
		{"disjoint", 300, 50, 0, 200, 300, -100},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			start, length := Overlap(tc.a, tc.aw, tc.b, tc.bw)
			if start != tc.start || length != tc.length {
				t.Errorf("Overlap() = (%v, %v), expected (%v, %v)", start, length, tc.start, tc.length)
			}
		})
	}
}

func TestClamps(t *testing.T) {
	if got := Clamp(9, 1, 4); got != 4 {
		t.Errorf("Clamp(9, 1, 4) = %d", got)
	}
	if got := Clamp(0, 1, 4); got != 1 {
		t.Errorf("Clamp(0, 1, 4) = %d", got)
	}
	if got := ClampF(2.5, 0, 10); got != 2.5 {
		t.Errorf("ClampF(2.5, 0, 10) = %v", got)
	}
	// A surface narrower than the entity pins it to the lower bound
	if got := ClampF(5, 0, -3); got != 0 {
		t.Errorf("ClampF(5, 0, -3) = %v, expected 0", got)
	}
}
