package tools

import "github.com/simpledraw/simpledraw/internal/document"

type ellipseState int

const (
	ellipseNone ellipseState = iota
	ellipsePressed
)

// EllipseTool builds an ellipse inscribed in the box of two opposite corners.
type EllipseTool struct {
	ShapeSettings

	state   ellipseState
	ellipse *document.EllipseShape
}

var ellipseTransitions = transitions[*EllipseTool, ellipseState]{
	{ellipseNone, document.PointerLeft}:     (*EllipseTool).begin,
	{ellipsePressed, document.PointerLeft}:  (*EllipseTool).finish,
	{ellipsePressed, document.PointerRight}: (*EllipseTool).abort,
}

var ellipsePreviews = previews[*EllipseTool, ellipseState]{
	ellipsePressed: func(t *EllipseTool, x, y float64) { t.ellipse.BottomRight.Set(x, y) },
}

func (t *EllipseTool) Name() string { return NameEllipse }

func (t *EllipseTool) Pressed(c *document.Canvas, x, y float64, pointer document.PointerType, _ document.KeyModifiers) {
	t.state = ellipseTransitions.fire(t, c, t.state, pointer, x, y)
}

func (t *EllipseTool) Released(*document.Canvas, float64, float64, document.PointerType, document.KeyModifiers) {
}

func (t *EllipseTool) Moved(c *document.Canvas, x, y float64, pointer document.PointerType, _ document.KeyModifiers) {
	if ellipsePreviews.track(t, t.state, pointer, x, y) {
		c.Invalidate()
	}
}

func (t *EllipseTool) Cancel(c *document.Canvas) {
	if t.state != ellipseNone {
		t.state = t.abort(c, 0, 0)
	}
}

func (t *EllipseTool) begin(c *document.Canvas, x, y float64) ellipseState {
	t.ellipse = &document.EllipseShape{
		ShapeBase:   t.base(),
		TopLeft:     t.anchor(c, x, y),
		BottomRight: document.NewPoint(x, y),
	}
	c.AddDecorator(t.ellipse)
	c.Invalidate()
	return ellipsePressed
}

func (t *EllipseTool) finish(c *document.Canvas, x, y float64) ellipseState {
	t.place(c, &t.ellipse.BottomRight, x, y)
	commit(c, t.ellipse)
	t.ellipse = nil
	return ellipseNone
}

func (t *EllipseTool) abort(c *document.Canvas, _, _ float64) ellipseState {
	discard(c, t.ellipse)
	t.ellipse = nil
	return ellipseNone
}

func (t *EllipseTool) Copy(shared document.Shared) *EllipseTool {
	if c, ok := shared[t].(*EllipseTool); ok {
		return c
	}
	c := &EllipseTool{}
	shared[t] = c
	c.ShapeSettings = t.copySettings(shared)
	return c
}

func (t *EllipseTool) Clone(shared document.Shared) document.Entity { return t.Copy(shared) }
