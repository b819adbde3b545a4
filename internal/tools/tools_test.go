package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simpledraw/simpledraw/internal/document"
)

func canvasWith(t *testing.T, name string) *document.Canvas {
	t.Helper()
	c := CreateDefault()
	tool := c.ToolByName(name)
	require.NotNil(t, tool, "tool %s", name)
	c.SetTool(tool)
	return c
}

func press(c *document.Canvas, x, y float64) { c.Pressed(x, y, document.PointerLeft, 0) }
func hover(c *document.Canvas, x, y float64) { c.Moved(x, y, document.PointerNone, 0) }

func TestCreateDefault(t *testing.T) {
	c := CreateDefault()

	names := make([]string, len(c.Tools))
	for i, tool := range c.Tools {
		names[i] = tool.Name()
	}
	assert.Equal(t, []string{
		NameNone, NameSelection, NameLine, NameCubicBezier,
		NameQuadraticBezier, NamePath, NameRectangle, NameEllipse,
	}, names)
	assert.Equal(t, NameSelection, c.Tool.Name())
	assert.Equal(t, float64(DefaultWidth), c.Width)
	assert.Empty(t, c.Items)

	line := c.ToolByName(NameLine).(*LineTool)
	assert.Nil(t, line.Brush)
	assert.False(t, line.IsFilled)

	path := c.ToolByName(NamePath).(*PathTool)
	assert.True(t, path.IsClosed)
	assert.True(t, path.IsFilled)
	assert.Equal(t, document.FillEvenOdd, path.FillRule)

	rect := c.ToolByName(NameRectangle).(*RectangleTool)
	assert.Equal(t, 4.0, rect.RadiusX)
	assert.NotSame(t, rect.Pen, path.Pen)
}

func TestNewKnowsEveryName(t *testing.T) {
	for _, tool := range CreateDefault().Tools {
		created, ok := New(tool.Name())
		require.True(t, ok, tool.Name())
		assert.Equal(t, tool.Name(), created.Name())
	}
	_, ok := New("Spray")
	assert.False(t, ok)
}

func TestRectangleTool(t *testing.T) {
	c := canvasWith(t, NameRectangle)

	press(c, 10, 10)
	require.Len(t, c.Decorators, 1)
	hover(c, 50, 40)
	preview := c.Decorators[0].(*document.RectangleShape)
	assert.Equal(t, document.Point{X: 50, Y: 40}, *preview.BottomRight)

	press(c, 60, 70)
	assert.Empty(t, c.Decorators)
	require.Len(t, c.Items, 1)
	r := c.Items[0].(*document.RectangleShape)
	assert.Equal(t, document.Point{X: 10, Y: 10}, *r.TopLeft)
	assert.Equal(t, document.Point{X: 60, Y: 70}, *r.BottomRight)
	assert.Equal(t, 4.0, r.RadiusX)
	assert.True(t, r.IsFilled)
}

func TestRectangleStyleIsNotAliased(t *testing.T) {
	c := canvasWith(t, NameRectangle)
	press(c, 0, 0)
	press(c, 10, 10)

	tool := c.Tool.(*RectangleTool)
	r := c.Items[0].(*document.RectangleShape)
	assert.NotSame(t, tool.Pen, r.Pen)
	tool.Pen.Thickness = 9
	assert.Equal(t, 2.0, r.Pen.Thickness)
}

func TestEllipseRightPressAborts(t *testing.T) {
	c := canvasWith(t, NameEllipse)
	press(c, 10, 10)
	c.Pressed(20, 20, document.PointerRight, 0)

	assert.Empty(t, c.Decorators)
	assert.Empty(t, c.Items)

	press(c, 1, 1)
	press(c, 5, 5)
	assert.Len(t, c.Items, 1)
}

func TestLineSnapsToExistingPoint(t *testing.T) {
	c := canvasWith(t, NameLine)
	press(c, 0, 0)
	press(c, 100, 0)
	press(c, 102, 3)
	press(c, 200, 50)

	require.Len(t, c.Items, 2)
	first := c.Items[0].(*document.LineShape)
	second := c.Items[1].(*document.LineShape)
	assert.Same(t, first.End, second.Start)

	first.End.Set(120, 10)
	assert.Equal(t, 120.0, second.Start.X)
}

func TestLineWithoutSnapping(t *testing.T) {
	c := canvasWith(t, NameLine)
	c.Tool.(*LineTool).TryToConnect = false
	press(c, 0, 0)
	press(c, 100, 0)
	press(c, 101, 1)
	press(c, 200, 50)

	first := c.Items[0].(*document.LineShape)
	second := c.Items[1].(*document.LineShape)
	assert.NotSame(t, first.End, second.Start)
}

func TestCubicBezierTool(t *testing.T) {
	c := canvasWith(t, NameCubicBezier)
	press(c, 0, 0)
	hover(c, 100, 0)
	curve := c.Decorators[0].(*document.CubicBezierShape)
	assert.Equal(t, document.Point{X: 100, Y: 0}, *curve.Point2)
	assert.Equal(t, document.Point{X: 100, Y: 0}, *curve.Point3)

	press(c, 100, 0)
	hover(c, 30, 50)
	assert.Equal(t, document.Point{X: 30, Y: 50}, *curve.Point1)
	press(c, 30, 50)
	press(c, 70, 50)

	require.Len(t, c.Items, 1)
	assert.Same(t, curve, c.Items[0])
	assert.Equal(t, document.Point{X: 0, Y: 0}, *curve.Start)
	assert.Equal(t, document.Point{X: 70, Y: 50}, *curve.Point1)
	assert.Equal(t, document.Point{X: 30, Y: 50}, *curve.Point2)
	assert.Equal(t, document.Point{X: 100, Y: 0}, *curve.Point3)
	assert.Empty(t, c.Decorators)
}

func TestCubicBezierCancel(t *testing.T) {
	c := canvasWith(t, NameCubicBezier)
	press(c, 0, 0)
	press(c, 100, 0)
	c.Tool.Cancel(c)

	assert.Empty(t, c.Decorators)
	assert.Empty(t, c.Items)
	assert.Equal(t, cubicNone, c.Tool.(*CubicBezierTool).state)
}

func TestQuadraticBezierTool(t *testing.T) {
	c := canvasWith(t, NameQuadraticBezier)
	press(c, 0, 0)
	press(c, 100, 0)
	hover(c, 50, 60)
	press(c, 50, 50)

	require.Len(t, c.Items, 1)
	q := c.Items[0].(*document.QuadraticBezierShape)
	assert.Equal(t, document.Point{X: 100, Y: 0}, *q.End)
	assert.Equal(t, document.Point{X: 50, Y: 50}, *q.Control)
}

func TestMovedWhileIdleDoesNothing(t *testing.T) {
	for _, name := range []string{NameLine, NameCubicBezier, NameQuadraticBezier, NamePath, NameRectangle, NameEllipse, NameSelection, NameNone} {
		c := canvasWith(t, name)
		invalidated := false
		c.SetOnInvalidate(func() { invalidated = true })
		hover(c, 10, 10)
		c.Moved(10, 10, document.PointerLeft, 0)
		assert.False(t, invalidated, name)
		assert.Empty(t, c.Decorators, name)
	}
}

func TestPressedWithButtonDoesNotPreview(t *testing.T) {
	c := canvasWith(t, NameRectangle)
	press(c, 0, 0)
	c.Moved(30, 30, document.PointerLeft, 0)
	r := c.Decorators[0].(*document.RectangleShape)
	assert.Equal(t, document.Point{X: 0, Y: 0}, *r.BottomRight)
}

func TestSetToolCancelsConstruction(t *testing.T) {
	c := canvasWith(t, NameRectangle)
	rect := c.Tool
	press(c, 10, 10)
	require.Len(t, c.Decorators, 1)

	c.SetTool(c.ToolByName(NameSelection))
	assert.Empty(t, c.Decorators)
	assert.Empty(t, c.Items)

	c.SetTool(rect)
	press(c, 1, 1)
	assert.Empty(t, c.Items)
	assert.Len(t, c.Decorators, 1)
}

func TestLineSnapsToStandalonePoint(t *testing.T) {
	c := canvasWith(t, NameLine)
	q := document.NewPoint(20, 20)
	c.AddItem(q)

	press(c, 22, 21)
	line := c.Decorators[0].(*document.LineShape)
	assert.Same(t, q, line.Start)

	press(c, 80, 80)
	q.Set(0, 5)
	assert.Equal(t, document.Point{X: 0, Y: 5}, *c.Items[1].(*document.LineShape).Start)
}

func TestCubicBezierRightPressAfterFirstPoint(t *testing.T) {
	c := canvasWith(t, NameCubicBezier)
	press(c, 0, 0)
	c.Pressed(5, 5, document.PointerRight, 0)

	assert.Empty(t, c.Decorators)
	assert.Empty(t, c.Items)
	assert.Equal(t, cubicNone, c.Tool.(*CubicBezierTool).state)
}

func TestToolCopyKeepsSettingsOnly(t *testing.T) {
	c := CreateDefault()
	shared := document.NewShared()
	cc := c.Copy(shared)

	src := c.ToolByName(NamePath).(*PathTool)
	dst := cc.ToolByName(NamePath).(*PathTool)
	assert.NotSame(t, src, dst)
	assert.NotSame(t, src.Pen, dst.Pen)
	assert.Equal(t, src.Pen.Thickness, dst.Pen.Thickness)
	assert.Equal(t, src.IsClosed, dst.IsClosed)
	assert.Same(t, cc.Tools[1], cc.Tool)
}
