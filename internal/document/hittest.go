package document

// HitTest returns the first Point within radius of (x, y). Items are scanned
// topmost first (last inserted wins); within an item, points are tested in
// construction order. Returns nil when nothing is hit.
func HitTest(items []Entity, x, y, radius float64) Entity {
	for i := len(items) - 1; i >= 0; i-- {
		for _, p := range pointsOf(items[i]) {
			if p != nil && p.Within(x, y, radius) {
				return p
			}
		}
	}
	return nil
}

// HitTestPoint is HitTest narrowed to the *Point result.
func HitTestPoint(items []Entity, x, y, radius float64) *Point {
	if p, ok := HitTest(items, x, y, radius).(*Point); ok {
		return p
	}
	return nil
}

// HitTestShape returns the topmost shape whose bounding box, grown by radius,
// contains (x, y).
func HitTestShape(items []Entity, x, y, radius float64) Shape {
	for i := len(items) - 1; i >= 0; i-- {
		s, ok := items[i].(Shape)
		if !ok {
			continue
		}
		points := DistinctPoints(s)
		if len(points) > 0 && BoundsOf(points).Inflate(radius).Contains(x, y) {
			return s
		}
	}
	return nil
}

func pointsOf(e Entity) []*Point {
	switch e := e.(type) {
	case *Point:
		return []*Point{e}
	case Shape:
		return e.Points()
	default:
		return nil
	}
}
