package geo

import "testing"

func unitSquare(closed bool) [][]float64 {
	ring := [][]float64{{0, 0}, {0, 1}, {1, 1}, {1, 0}}
	if closed {
		ring = append(ring, []float64{0, 0})
	}
	return ring
}

func TestCloseRing_Open(t *testing.T) {
	ring := CloseRing(unitSquare(false))
	if len(ring) != 5 {
		t.Fatalf("expected 5 vertices after closing, got %d", len(ring))
	}
	first, last := ring[0], ring[len(ring)-1]
	if first[0] != last[0] || first[1] != last[1] {
		t.Errorf("ring not closed: first=%v last=%v", first, last)
	}
}

func TestCloseRing_DoesNotAliasInput(t *testing.T) {
	// Give the input spare capacity so an in-place append would land in
	// the same backing array.
	ring := make([][]float64, 0, 8)
	ring = append(ring, []float64{0, 0}, []float64{0, 1}, []float64{1, 1})

	closed := CloseRing(ring)
	ring = append(ring, []float64{9, 9})

	last := closed[len(closed)-1]
	if last[0] != 0 || last[1] != 0 {
		t.Fatalf("caller append clobbered the closing vertex: %v", last)
	}
}

func TestCloseRing_AlreadyClosed(t *testing.T) {
	ring := CloseRing(unitSquare(true))
	if len(ring) != 5 {
		t.Fatalf("closed ring must not grow, got %d vertices", len(ring))
	}
}

func TestCountDistinct_IgnoresClosingVertex(t *testing.T) {
	if n := CountDistinct(unitSquare(true)); n != 4 {
		t.Errorf("expected 4 distinct vertices, got %d", n)
	}
	if n := CountDistinct([][]float64{{0, 0}, {0, 1}, {0, 0}}); n != 2 {
		t.Errorf("expected 2 distinct vertices, got %d", n)
	}
}

func TestPolygonContains(t *testing.T) {
	poly := [][][]float64{unitSquare(true)}
	if !PolygonContains(poly, 0.5, 0.5) {
		t.Error("(0.5,0.5) should be inside the unit square")
	}
	if PolygonContains(poly, 2, 2) {
		t.Error("(2,2) should be outside the unit square")
	}
	if PolygonContains(poly, -0.5, 0.5) {
		t.Error("(-0.5,0.5) should be outside the unit square")
	}
}

func TestPolygonContains_Hole(t *testing.T) {
	outer := unitSquare(true)
	hole := [][]float64{{0.25, 0.25}, {0.25, 0.75}, {0.75, 0.75}, {0.75, 0.25}, {0.25, 0.25}}
	poly := [][][]float64{outer, hole}
	if PolygonContains(poly, 0.5, 0.5) {
		t.Error("point inside the hole should not be contained")
	}
	if !PolygonContains(poly, 0.1, 0.1) {
		t.Error("point between outer ring and hole should be contained")
	}
}

func TestPolygonContains_OutOfRangeCoordinates(t *testing.T) {
	// Out-of-range lat/lng is still evaluated, it just falls outside.
	poly := [][][]float64{unitSquare(true)}
	if PolygonContains(poly, 540, -123) {
		t.Error("nonsense coordinates should not match any sane polygon")
	}
}
