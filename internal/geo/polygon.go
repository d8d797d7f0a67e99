package geo

// Polygon geometry helpers for GeoJSON-style coordinates: a polygon is one
// or more linear rings, each ring an ordered slice of [lng, lat] pairs.

// RingClosed reports whether the ring's last vertex equals its first.
func RingClosed(ring [][]float64) bool {
	if len(ring) < 2 {
		return false
	}
	first, last := ring[0], ring[len(ring)-1]
	return first[0] == last[0] && first[1] == last[1]
}

// CloseRing returns the ring with the first vertex appended if it is open.
// Already-closed rings are returned as-is; an open ring is copied into a
// fresh slice so the caller's backing array is never extended in place.
func CloseRing(ring [][]float64) [][]float64 {
	if len(ring) == 0 || RingClosed(ring) {
		return ring
	}
	closed := make([][]float64, 0, len(ring)+1)
	closed = append(closed, ring...)
	return append(closed, []float64{ring[0][0], ring[0][1]})
}

// CountDistinct counts distinct vertices in a ring, ignoring a closing
// duplicate of the first vertex.
func CountDistinct(ring [][]float64) int {
	seen := make(map[[2]float64]struct{}, len(ring))
	for _, v := range ring {
		if len(v) < 2 {
			continue
		}
		seen[[2]float64{v[0], v[1]}] = struct{}{}
	}
	return len(seen)
}

// PolygonContains reports whether the point (lng, lat) lies inside the
// polygon, using even-odd ray casting across every ring. A hole ring flips
// containment back to false, which matches the exterior-minus-holes
// convention without needing ring orientation.
//
// Boundary convention: edges are treated half-open, so a point exactly on a
// boundary edge or vertex is deterministic but not guaranteed to be reported
// inside. Callers must not rely on boundary points matching.
func PolygonContains(polygon [][][]float64, lng, lat float64) bool {
	inside := false
	for _, ring := range polygon {
		if ringContains(ring, lng, lat) {
			inside = !inside
		}
	}
	return inside
}

func ringContains(ring [][]float64, x, y float64) bool {
	n := len(ring)
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		xi, yi := ring[i][0], ring[i][1]
		xj, yj := ring[j][0], ring[j][1]
		if (yi > y) != (yj > y) &&
			x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
		j = i
	}
	return inside
}
