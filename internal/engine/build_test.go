package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/simpledraw/simpledraw/internal/document"
)

func TestShapePathSkipsIncompleteShapes(t *testing.T) {
	assert.Nil(t, ShapePath(&document.LineShape{Start: document.NewPoint(0, 0)}))
}

func TestFigurePathJoinsSharedPoints(t *testing.T) {
	a, b, c := document.NewPoint(0, 0), document.NewPoint(10, 0), document.NewPoint(10, 10)
	p := &document.PathShape{
		Segments: []document.Shape{
			&document.LineShape{Start: a, End: b},
			&document.QuadraticBezierShape{Start: b, Control: c, End: a},
		},
		IsClosed: true,
	}
	assert.Equal(t, []PathCommand{
		{"M", 0.0, 0.0},
		{"L", 10.0, 0.0},
		{"Q", 10.0, 10.0, 0.0, 0.0},
		{"Z"},
	}, ShapePath(p))
}

func TestFigurePathStartsSubpathOnGap(t *testing.T) {
	p := &document.PathShape{Segments: []document.Shape{
		&document.LineShape{Start: document.NewPoint(0, 0), End: document.NewPoint(1, 0)},
		&document.LineShape{Start: document.NewPoint(5, 5), End: document.NewPoint(6, 5)},
	}}
	assert.Equal(t, []PathCommand{
		{"M", 0.0, 0.0},
		{"L", 1.0, 0.0},
		{"M", 5.0, 5.0},
		{"L", 6.0, 5.0},
	}, ShapePath(p))
}

func TestRectPathNormalizesCorners(t *testing.T) {
	r := &document.RectangleShape{TopLeft: document.NewPoint(10, 10), BottomRight: document.NewPoint(0, 0)}
	path := ShapePath(r)
	assert.Equal(t, PathCommand{"M", 0.0, 0.0}, path[0])
	assert.Len(t, path, 5)

	r.RadiusX, r.RadiusY = 2, 2
	assert.Len(t, ShapePath(r), 10)
}

func TestViewInverse(t *testing.T) {
	v := View(3, 7, -2)
	assert.True(t, v.Multiply(v.Invert()).IsIdentity())
	x, y := v.TransformPoint(1, 1)
	assert.Equal(t, 10.0, x)
	assert.Equal(t, 1.0, y)
	assert.InDelta(t, 3, v.ScaleFactor(), 1e-12)
}
