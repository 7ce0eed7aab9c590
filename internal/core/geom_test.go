package core

import "testing"

func TestAdvanceWraps(t *testing.T) {
	const n = 100

	tests := []struct {
		name     string
		from     Point
		dir      Direction
		expected Point
	}{
		{"right inside", Point{10, 10}, DirRight, Point{11, 10}},
		{"left inside", Point{10, 10}, DirLeft, Point{9, 10}},
		{"up inside", Point{10, 10}, DirUp, Point{10, 9}},
		{"down inside", Point{10, 10}, DirDown, Point{10, 11}},
		{"right edge", Point{99, 5}, DirRight, Point{0, 5}},
		{"left edge", Point{0, 5}, DirLeft, Point{99, 5}},
		{"top edge", Point{5, 0}, DirUp, Point{5, 99}},
		{"bottom edge", Point{5, 99}, DirDown, Point{5, 0}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Advance(tc.from, tc.dir, n)
			if got != tc.expected {
				t.Errorf("Advance(%v, %s) = %v, expected %v", tc.from, tc.dir, got, tc.expected)
			}
		})
	}
}

func TestAdvanceRoundTrip(t *testing.T) {
	p := Point{0, 0}
	for _, d := range Directions {
		back := Advance(Advance(p, d, 7), d.Opposite(), 7)
		if back != p {
			t.Errorf("%s then %s from %v ended at %v", d, d.Opposite(), p, back)
		}
	}
}

func TestOpposite(t *testing.T) {
	pairs := map[Direction]Direction{
		DirUp:    DirDown,
		DirDown:  DirUp,
		DirLeft:  DirRight,
		DirRight: DirLeft,
	}
	for d, want := range pairs {
		if got := d.Opposite(); got != want {
			t.Errorf("%s.Opposite() = %s, expected %s", d, got, want)
		}
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		v, n, expected int
	}{
		{0, 10, 0},
		{9, 10, 9},
		{10, 10, 0},
		{-1, 10, 9},
		{-11, 10, 9},
		{25, 10, 5},
	}

	for _, tc := range tests {
		if got := Wrap(tc.v, tc.n); got != tc.expected {
			t.Errorf("Wrap(%d, %d) = %d, expected %d", tc.v, tc.n, got, tc.expected)
		}
	}
}

func TestParseDirection(t *testing.T) {
	for _, d := range Directions {
		got, ok := ParseDirection(d.String())
		if !ok || got != d {
			t.Errorf("ParseDirection(%q) = %v, %v", d.String(), got, ok)
		}
	}
	if _, ok := ParseDirection("up "); !ok {
		t.Error("ParseDirection should accept lower case with spaces")
	}
	if _, ok := ParseDirection("sideways"); ok {
		t.Error("ParseDirection should reject unknown names")
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestAbs(t *testing.T) {
	if Abs(5) != 5 || Abs(-5) != 5 || Abs(0) != 0 {
		t.Error("Abs returned wrong value")
	}
}
