package document

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopySharesCommonPoints(t *testing.T) {
	p1 := NewPoint(0, 0)
	p2 := NewPoint(10, 10)
	p3 := NewPoint(20, 0)
	a := &LineShape{Start: p1, End: p2}
	b := &LineShape{Start: p2, End: p3}

	c := NewCanvas(100, 100)
	c.AddItem(a)
	c.AddItem(b)

	cc := c.Copy(NewShared())
	require.Len(t, cc.Items, 2)

	ca := cc.Items[0].(*LineShape)
	cb := cc.Items[1].(*LineShape)
	assert.Same(t, ca.End, cb.Start)
	assert.NotSame(t, a.End, ca.End)

	ca.End.Set(50, 50)
	assert.Equal(t, 50.0, cb.Start.X)
	assert.Equal(t, 10.0, p2.X)
}

func TestCopyDiamond(t *testing.T) {
	pen := NewPen(NewSolidColorBrush(ARGB(255, 0, 0, 0)), 2)
	a := &RectangleShape{ShapeBase: ShapeBase{Pen: pen}, TopLeft: NewPoint(0, 0), BottomRight: NewPoint(1, 1)}
	b := &EllipseShape{ShapeBase: ShapeBase{Pen: pen}, TopLeft: NewPoint(2, 2), BottomRight: NewPoint(3, 3)}

	shared := NewShared()
	ca := a.Copy(shared)
	cb := b.Copy(shared)

	assert.Same(t, ca.Pen, cb.Pen)
	assert.Same(t, ca.Pen.Brush, cb.Pen.Brush)
	assert.NotSame(t, pen, ca.Pen)
}

func TestCopyIsIdempotentWithinOneShared(t *testing.T) {
	p := NewPoint(1, 2)
	shared := NewShared()
	assert.Same(t, p.Copy(shared), p.Copy(shared))
	assert.NotSame(t, p.Copy(shared), p.Copy(NewShared()))
}

func TestCopyPreservesValues(t *testing.T) {
	brush := &LinearGradientBrush{
		GradientStops: []GradientStop{{Color: ARGB(255, 255, 0, 0), Offset: 0}, {Color: ARGB(255, 0, 0, 255), Offset: 1}},
		SpreadMethod:  SpreadReflect,
		StartPoint:    RelativePoint{X: 0, Y: 0, Unit: UnitRelative},
		EndPoint:      RelativePoint{X: 1, Y: 1, Unit: UnitRelative},
	}
	dash := &DashStyle{Dashes: []float64{2, 1}, Offset: 0.5}
	path := &PathShape{
		ShapeBase: ShapeBase{IsFilled: true, Brush: brush, Pen: &Pen{Brush: brush, Thickness: 3, DashStyle: dash}},
		IsClosed:  true,
		FillRule:  FillNonZero,
	}
	start := NewPoint(0, 0)
	mid := NewPoint(5, 5)
	path.Segments = []Shape{
		&LineShape{Start: start, End: mid},
		&QuadraticBezierShape{Start: mid, Control: NewPoint(8, 0), End: start},
	}

	cp := path.Copy(NewShared())
	if diff := cmp.Diff(path, cp); diff != "" {
		t.Errorf("copy mismatch (-want +got):\n%s", diff)
	}
	assert.Same(t, cp.Brush, cp.Pen.Brush)
	assert.Same(t, cp.First(), cp.Segments[1].Points()[2])

	cp.Brush.(*LinearGradientBrush).GradientStops[0].Offset = 0.25
	assert.Equal(t, 0.0, brush.GradientStops[0].Offset)
}

func TestCanvasCopySkipsDecorators(t *testing.T) {
	c := NewCanvas(10, 10)
	c.AddItem(NewPoint(1, 1))
	c.AddDecorator(NewPoint(2, 2))

	cc := c.Copy(NewShared())
	assert.Len(t, cc.Items, 1)
	assert.Empty(t, cc.Decorators)
	assert.Equal(t, 10.0, cc.Width)
}

func TestCopyOfCopyKeepsTopology(t *testing.T) {
	joint := NewPoint(1, 1)
	c := NewCanvas(10, 10)
	c.AddItem(&LineShape{Start: NewPoint(0, 0), End: joint})
	c.AddItem(&QuadraticBezierShape{Start: joint, Control: NewPoint(2, 0), End: NewPoint(3, 3)})
	c.AddItem(joint)

	twice := c.Copy(NewShared()).Copy(NewShared())
	require.Len(t, twice.Items, 3)

	line := twice.Items[0].(*LineShape)
	quad := twice.Items[1].(*QuadraticBezierShape)
	assert.Same(t, line.End, quad.Start)
	assert.Same(t, line.End, twice.Items[2])
	assert.NotSame(t, joint, twice.Items[2])
}
