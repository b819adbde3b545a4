package tools

import "github.com/simpledraw/simpledraw/internal/document"

type rectangleState int

const (
	rectangleNone rectangleState = iota
	rectanglePressed
)

// RectangleTool builds a rectangle from two opposite corners.
type RectangleTool struct {
	ShapeSettings
	RadiusX float64
	RadiusY float64

	state     rectangleState
	rectangle *document.RectangleShape
}

var rectangleTransitions = transitions[*RectangleTool, rectangleState]{
	{rectangleNone, document.PointerLeft}:     (*RectangleTool).begin,
	{rectanglePressed, document.PointerLeft}:  (*RectangleTool).finish,
	{rectanglePressed, document.PointerRight}: (*RectangleTool).abort,
}

var rectanglePreviews = previews[*RectangleTool, rectangleState]{
	rectanglePressed: func(t *RectangleTool, x, y float64) { t.rectangle.BottomRight.Set(x, y) },
}

func (t *RectangleTool) Name() string { return NameRectangle }

func (t *RectangleTool) Pressed(c *document.Canvas, x, y float64, pointer document.PointerType, _ document.KeyModifiers) {
	t.state = rectangleTransitions.fire(t, c, t.state, pointer, x, y)
}

func (t *RectangleTool) Released(*document.Canvas, float64, float64, document.PointerType, document.KeyModifiers) {
}

func (t *RectangleTool) Moved(c *document.Canvas, x, y float64, pointer document.PointerType, _ document.KeyModifiers) {
	if rectanglePreviews.track(t, t.state, pointer, x, y) {
		c.Invalidate()
	}
}

func (t *RectangleTool) Cancel(c *document.Canvas) {
	if t.state != rectangleNone {
		t.state = t.abort(c, 0, 0)
	}
}

func (t *RectangleTool) begin(c *document.Canvas, x, y float64) rectangleState {
	t.rectangle = &document.RectangleShape{
		ShapeBase:   t.base(),
		TopLeft:     t.anchor(c, x, y),
		BottomRight: document.NewPoint(x, y),
		RadiusX:     t.RadiusX,
		RadiusY:     t.RadiusY,
	}
	c.AddDecorator(t.rectangle)
	c.Invalidate()
	return rectanglePressed
}

func (t *RectangleTool) finish(c *document.Canvas, x, y float64) rectangleState {
	t.place(c, &t.rectangle.BottomRight, x, y)
	commit(c, t.rectangle)
	t.rectangle = nil
	return rectangleNone
}

func (t *RectangleTool) abort(c *document.Canvas, _, _ float64) rectangleState {
	discard(c, t.rectangle)
	t.rectangle = nil
	return rectangleNone
}

func (t *RectangleTool) Copy(shared document.Shared) *RectangleTool {
	if c, ok := shared[t].(*RectangleTool); ok {
		return c
	}
	c := &RectangleTool{RadiusX: t.RadiusX, RadiusY: t.RadiusY}
	shared[t] = c
	c.ShapeSettings = t.copySettings(shared)
	return c
}

func (t *RectangleTool) Clone(shared document.Shared) document.Entity { return t.Copy(shared) }
