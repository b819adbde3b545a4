package tools

import "github.com/simpledraw/simpledraw/internal/document"

type quadraticState int

const (
	quadraticNone quadraticState = iota
	quadraticEnd
	quadraticControl
)

// QuadraticBezierTool builds a quadratic curve in three presses: start, end,
// then the control point.
type QuadraticBezierTool struct {
	ShapeSettings

	state quadraticState
	curve *document.QuadraticBezierShape
}

var quadraticTransitions = transitions[*QuadraticBezierTool, quadraticState]{
	{quadraticNone, document.PointerLeft}:     (*QuadraticBezierTool).begin,
	{quadraticEnd, document.PointerLeft}:      (*QuadraticBezierTool).placeEnd,
	{quadraticControl, document.PointerLeft}:  (*QuadraticBezierTool).finish,
	{quadraticEnd, document.PointerRight}:     (*QuadraticBezierTool).abort,
	{quadraticControl, document.PointerRight}: (*QuadraticBezierTool).abort,
}

var quadraticPreviews = previews[*QuadraticBezierTool, quadraticState]{
	quadraticEnd: func(t *QuadraticBezierTool, x, y float64) {
		t.curve.Control.Set(x, y)
		t.curve.End.Set(x, y)
	},
	quadraticControl: func(t *QuadraticBezierTool, x, y float64) {
		t.curve.Control.Set(x, y)
	},
}

func (t *QuadraticBezierTool) Name() string { return NameQuadraticBezier }

func (t *QuadraticBezierTool) Pressed(c *document.Canvas, x, y float64, pointer document.PointerType, _ document.KeyModifiers) {
	t.state = quadraticTransitions.fire(t, c, t.state, pointer, x, y)
}

func (t *QuadraticBezierTool) Released(*document.Canvas, float64, float64, document.PointerType, document.KeyModifiers) {
}

func (t *QuadraticBezierTool) Moved(c *document.Canvas, x, y float64, pointer document.PointerType, _ document.KeyModifiers) {
	if quadraticPreviews.track(t, t.state, pointer, x, y) {
		c.Invalidate()
	}
}

func (t *QuadraticBezierTool) Cancel(c *document.Canvas) {
	if t.state != quadraticNone {
		t.state = t.abort(c, 0, 0)
	}
}

func (t *QuadraticBezierTool) begin(c *document.Canvas, x, y float64) quadraticState {
	t.curve = &document.QuadraticBezierShape{
		ShapeBase: t.base(),
		Start:     t.anchor(c, x, y),
		Control:   document.NewPoint(x, y),
		End:       document.NewPoint(x, y),
	}
	c.AddDecorator(t.curve)
	c.Invalidate()
	return quadraticEnd
}

func (t *QuadraticBezierTool) placeEnd(c *document.Canvas, x, y float64) quadraticState {
	t.place(c, &t.curve.End, x, y)
	c.Invalidate()
	return quadraticControl
}

func (t *QuadraticBezierTool) finish(c *document.Canvas, x, y float64) quadraticState {
	t.place(c, &t.curve.Control, x, y)
	commit(c, t.curve)
	t.curve = nil
	return quadraticNone
}

func (t *QuadraticBezierTool) abort(c *document.Canvas, _, _ float64) quadraticState {
	discard(c, t.curve)
	t.curve = nil
	return quadraticNone
}

func (t *QuadraticBezierTool) Copy(shared document.Shared) *QuadraticBezierTool {
	if c, ok := shared[t].(*QuadraticBezierTool); ok {
		return c
	}
	c := &QuadraticBezierTool{}
	shared[t] = c
	c.ShapeSettings = t.copySettings(shared)
	return c
}

func (t *QuadraticBezierTool) Clone(shared document.Shared) document.Entity { return t.Copy(shared) }
