package tools

import "github.com/simpledraw/simpledraw/internal/document"

type cubicState int

const (
	cubicNone cubicState = iota
	cubicPoint3
	cubicPoint2
	cubicPoint1
)

// CubicBezierTool builds a cubic curve in four presses: start, end (Point3),
// then the control points Point2 and Point1.
type CubicBezierTool struct {
	ShapeSettings

	state cubicState
	curve *document.CubicBezierShape
}

var cubicTransitions = transitions[*CubicBezierTool, cubicState]{
	{cubicNone, document.PointerLeft}:    (*CubicBezierTool).begin,
	{cubicPoint3, document.PointerLeft}:  (*CubicBezierTool).placePoint3,
	{cubicPoint2, document.PointerLeft}:  (*CubicBezierTool).placePoint2,
	{cubicPoint1, document.PointerLeft}:  (*CubicBezierTool).finish,
	{cubicPoint3, document.PointerRight}: (*CubicBezierTool).abort,
	{cubicPoint2, document.PointerRight}: (*CubicBezierTool).abort,
	{cubicPoint1, document.PointerRight}: (*CubicBezierTool).abort,
}

// The control point placed next mirrors the one under the cursor so the
// preview keeps symmetric handles.
var cubicPreviews = previews[*CubicBezierTool, cubicState]{
	cubicPoint3: func(t *CubicBezierTool, x, y float64) {
		t.curve.Point2.Set(x, y)
		t.curve.Point3.Set(x, y)
	},
	cubicPoint2: func(t *CubicBezierTool, x, y float64) {
		t.curve.Point2.Set(x, y)
		t.curve.Point1.Set(x, y)
	},
	cubicPoint1: func(t *CubicBezierTool, x, y float64) {
		t.curve.Point1.Set(x, y)
	},
}

func (t *CubicBezierTool) Name() string { return NameCubicBezier }

func (t *CubicBezierTool) Pressed(c *document.Canvas, x, y float64, pointer document.PointerType, _ document.KeyModifiers) {
	t.state = cubicTransitions.fire(t, c, t.state, pointer, x, y)
}

func (t *CubicBezierTool) Released(*document.Canvas, float64, float64, document.PointerType, document.KeyModifiers) {
}

func (t *CubicBezierTool) Moved(c *document.Canvas, x, y float64, pointer document.PointerType, _ document.KeyModifiers) {
	if cubicPreviews.track(t, t.state, pointer, x, y) {
		c.Invalidate()
	}
}

func (t *CubicBezierTool) Cancel(c *document.Canvas) {
	if t.state != cubicNone {
		t.state = t.abort(c, 0, 0)
	}
}

func (t *CubicBezierTool) begin(c *document.Canvas, x, y float64) cubicState {
	t.curve = &document.CubicBezierShape{
		ShapeBase: t.base(),
		Start:     t.anchor(c, x, y),
		Point1:    document.NewPoint(x, y),
		Point2:    document.NewPoint(x, y),
		Point3:    document.NewPoint(x, y),
	}
	c.AddDecorator(t.curve)
	c.Invalidate()
	return cubicPoint3
}

func (t *CubicBezierTool) placePoint3(c *document.Canvas, x, y float64) cubicState {
	t.place(c, &t.curve.Point3, x, y)
	c.Invalidate()
	return cubicPoint2
}

func (t *CubicBezierTool) placePoint2(c *document.Canvas, x, y float64) cubicState {
	t.place(c, &t.curve.Point2, x, y)
	c.Invalidate()
	return cubicPoint1
}

func (t *CubicBezierTool) finish(c *document.Canvas, x, y float64) cubicState {
	t.place(c, &t.curve.Point1, x, y)
	commit(c, t.curve)
	t.curve = nil
	return cubicNone
}

func (t *CubicBezierTool) abort(c *document.Canvas, _, _ float64) cubicState {
	discard(c, t.curve)
	t.curve = nil
	return cubicNone
}

func (t *CubicBezierTool) Copy(shared document.Shared) *CubicBezierTool {
	if c, ok := shared[t].(*CubicBezierTool); ok {
		return c
	}
	c := &CubicBezierTool{}
	shared[t] = c
	c.ShapeSettings = t.copySettings(shared)
	return c
}

func (t *CubicBezierTool) Clone(shared document.Shared) document.Entity { return t.Copy(shared) }
