package document

// Shape is a drawable item. Its geometry is expressed only through *Point
// references so endpoints can be shared between shapes.
type Shape interface {
	Entity
	Base() *ShapeBase
	// Points returns the defining points in construction order.
	Points() []*Point
}

// ShapeBase holds the paint settings common to every shape.
type ShapeBase struct {
	IsStroked bool
	IsFilled  bool
	Brush     Brush
	Pen       *Pen
}

func (b *ShapeBase) Base() *ShapeBase { return b }

func (b *ShapeBase) copyTo(dst *ShapeBase, shared Shared) {
	dst.IsStroked = b.IsStroked
	dst.IsFilled = b.IsFilled
	dst.Brush = CopyBrush(b.Brush, shared)
	dst.Pen = b.Pen.Copy(shared)
}

type LineShape struct {
	ShapeBase
	Start *Point
	End   *Point
}

func (l *LineShape) Points() []*Point { return []*Point{l.Start, l.End} }

func (l *LineShape) Copy(shared Shared) *LineShape {
	if l == nil {
		return nil
	}
	if c, ok := lookup(shared, l); ok {
		return c
	}
	c := &LineShape{}
	shared[l] = c
	l.copyTo(&c.ShapeBase, shared)
	c.Start = l.Start.Copy(shared)
	c.End = l.End.Copy(shared)
	return c
}

func (l *LineShape) Clone(shared Shared) Entity { return l.Copy(shared) }

type CubicBezierShape struct {
	ShapeBase
	Start  *Point
	Point1 *Point
	Point2 *Point
	Point3 *Point
}

func (b *CubicBezierShape) Points() []*Point {
	return []*Point{b.Start, b.Point1, b.Point2, b.Point3}
}

func (b *CubicBezierShape) Copy(shared Shared) *CubicBezierShape {
	if b == nil {
		return nil
	}
	if c, ok := lookup(shared, b); ok {
		return c
	}
	c := &CubicBezierShape{}
	shared[b] = c
	b.copyTo(&c.ShapeBase, shared)
	c.Start = b.Start.Copy(shared)
	c.Point1 = b.Point1.Copy(shared)
	c.Point2 = b.Point2.Copy(shared)
	c.Point3 = b.Point3.Copy(shared)
	return c
}

func (b *CubicBezierShape) Clone(shared Shared) Entity { return b.Copy(shared) }

type QuadraticBezierShape struct {
	ShapeBase
	Start   *Point
	Control *Point
	End     *Point
}

func (q *QuadraticBezierShape) Points() []*Point {
	return []*Point{q.Start, q.Control, q.End}
}

func (q *QuadraticBezierShape) Copy(shared Shared) *QuadraticBezierShape {
	if q == nil {
		return nil
	}
	if c, ok := lookup(shared, q); ok {
		return c
	}
	c := &QuadraticBezierShape{}
	shared[q] = c
	q.copyTo(&c.ShapeBase, shared)
	c.Start = q.Start.Copy(shared)
	c.Control = q.Control.Copy(shared)
	c.End = q.End.Copy(shared)
	return c
}

func (q *QuadraticBezierShape) Clone(shared Shared) Entity { return q.Copy(shared) }

// FillRule selects how a path's interior is computed.
type FillRule int

const (
	FillEvenOdd FillRule = iota
	FillNonZero
)

var fillRuleNames = []string{"EvenOdd", "NonZero"}

func (r FillRule) String() string { return enumName(fillRuleNames, int(r)) }

func ParseFillRule(s string) (FillRule, error) {
	i, err := parseEnum("fill rule", fillRuleNames, s)
	return FillRule(i), err
}

// PathShape is a figure made of consecutive segments. Each segment is a
// *LineShape, *CubicBezierShape or *QuadraticBezierShape, and a segment's
// start is normally the same *Point as the previous segment's end.
type PathShape struct {
	ShapeBase
	Segments []Shape
	IsClosed bool
	FillRule FillRule
}

func (p *PathShape) Points() []*Point {
	var points []*Point
	for _, s := range p.Segments {
		points = append(points, s.Points()...)
	}
	return points
}

// First returns the start point of the first segment, or nil.
func (p *PathShape) First() *Point {
	if len(p.Segments) == 0 {
		return nil
	}
	return p.Segments[0].Points()[0]
}

func (p *PathShape) Copy(shared Shared) *PathShape {
	if p == nil {
		return nil
	}
	if c, ok := lookup(shared, p); ok {
		return c
	}
	c := &PathShape{IsClosed: p.IsClosed, FillRule: p.FillRule}
	shared[p] = c
	p.copyTo(&c.ShapeBase, shared)
	c.Segments = make([]Shape, 0, len(p.Segments))
	for _, s := range p.Segments {
		c.Segments = append(c.Segments, s.Clone(shared).(Shape))
	}
	return c
}

func (p *PathShape) Clone(shared Shared) Entity { return p.Copy(shared) }

type RectangleShape struct {
	ShapeBase
	TopLeft     *Point
	BottomRight *Point
	RadiusX     float64
	RadiusY     float64
}

func (r *RectangleShape) Points() []*Point { return []*Point{r.TopLeft, r.BottomRight} }

func (r *RectangleShape) Copy(shared Shared) *RectangleShape {
	if r == nil {
		return nil
	}
	if c, ok := lookup(shared, r); ok {
		return c
	}
	c := &RectangleShape{RadiusX: r.RadiusX, RadiusY: r.RadiusY}
	shared[r] = c
	r.copyTo(&c.ShapeBase, shared)
	c.TopLeft = r.TopLeft.Copy(shared)
	c.BottomRight = r.BottomRight.Copy(shared)
	return c
}

func (r *RectangleShape) Clone(shared Shared) Entity { return r.Copy(shared) }

type EllipseShape struct {
	ShapeBase
	TopLeft     *Point
	BottomRight *Point
}

func (e *EllipseShape) Points() []*Point { return []*Point{e.TopLeft, e.BottomRight} }

func (e *EllipseShape) Copy(shared Shared) *EllipseShape {
	if e == nil {
		return nil
	}
	if c, ok := lookup(shared, e); ok {
		return c
	}
	c := &EllipseShape{}
	shared[e] = c
	e.copyTo(&c.ShapeBase, shared)
	c.TopLeft = e.TopLeft.Copy(shared)
	c.BottomRight = e.BottomRight.Copy(shared)
	return c
}

func (e *EllipseShape) Clone(shared Shared) Entity { return e.Copy(shared) }

// DistinctPoints returns the points of s with repeated references removed,
// keeping first occurrence order.
func DistinctPoints(s Shape) []*Point {
	seen := make(map[*Point]bool)
	var out []*Point
	for _, p := range s.Points() {
		if p == nil || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
