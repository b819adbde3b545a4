// Package tools implements the interactive tools that build and edit shapes
// on a document.Canvas from pointer events.
package tools

import "github.com/simpledraw/simpledraw/internal/document"

const (
	NameNone            = "None"
	NameSelection       = "Selection"
	NameLine            = "Line"
	NameCubicBezier     = "CubicBezier"
	NameQuadraticBezier = "QuadraticBezier"
	NamePath            = "Path"
	NameRectangle       = "Rectangle"
	NameEllipse         = "Ellipse"
)

// New returns an unconfigured tool for a registered name.
func New(name string) (document.Tool, bool) {
	switch name {
	case NameNone:
		return &NoneTool{}, true
	case NameSelection:
		return &SelectionTool{}, true
	case NameLine:
		return &LineTool{}, true
	case NameCubicBezier:
		return &CubicBezierTool{}, true
	case NameQuadraticBezier:
		return &QuadraticBezierTool{}, true
	case NamePath:
		return &PathTool{}, true
	case NameRectangle:
		return &RectangleTool{}, true
	case NameEllipse:
		return &EllipseTool{}, true
	default:
		return nil, false
	}
}

type trigger[S comparable] struct {
	state   S
	pointer document.PointerType
}

// transitions maps a (state, pointer) press to the action that performs it
// and returns the next state. Presses without an entry are ignored.
type transitions[T any, S comparable] map[trigger[S]]func(t T, c *document.Canvas, x, y float64) S

func (tt transitions[T, S]) fire(t T, c *document.Canvas, state S, pointer document.PointerType, x, y float64) S {
	action, ok := tt[trigger[S]{state: state, pointer: pointer}]
	if !ok {
		return state
	}
	return action(t, c, x, y)
}

// previews maps a construction state to the hover update of its trailing
// points. Hover updates only run while no button is held.
type previews[T any, S comparable] map[S]func(t T, x, y float64)

func (pv previews[T, S]) track(t T, state S, pointer document.PointerType, x, y float64) bool {
	if pointer != document.PointerNone {
		return false
	}
	update, ok := pv[state]
	if !ok {
		return false
	}
	update(t, x, y)
	return true
}

// ShapeSettings is the paint and snapping configuration shared by the shape
// construction tools.
type ShapeSettings struct {
	Brush        document.Brush
	Pen          *document.Pen
	IsStroked    bool
	IsFilled     bool
	HitRadius    float64
	TryToConnect bool
}

// base returns paint settings for a new shape. Brush and pen are copied so
// the shape never aliases the tool's template style.
func (s *ShapeSettings) base() document.ShapeBase {
	shared := document.NewShared()
	return document.ShapeBase{
		IsStroked: s.IsStroked,
		IsFilled:  s.IsFilled,
		Brush:     document.CopyBrush(s.Brush, shared),
		Pen:       s.Pen.Copy(shared),
	}
}

// connect returns the committed point under (x, y) when snapping is enabled.
func (s *ShapeSettings) connect(c *document.Canvas, x, y float64) *document.Point {
	if !s.TryToConnect {
		return nil
	}
	return document.HitTestPoint(c.Items, x, y, s.HitRadius)
}

// anchor returns the snapped point under (x, y), or a new point there.
func (s *ShapeSettings) anchor(c *document.Canvas, x, y float64) *document.Point {
	if p := s.connect(c, x, y); p != nil {
		return p
	}
	return document.NewPoint(x, y)
}

// place sets *slot to the snapped point under (x, y), or moves the point
// already in the slot there.
func (s *ShapeSettings) place(c *document.Canvas, slot **document.Point, x, y float64) {
	if p := s.connect(c, x, y); p != nil {
		*slot = p
		return
	}
	(*slot).Set(x, y)
}

func (s *ShapeSettings) copySettings(shared document.Shared) ShapeSettings {
	return ShapeSettings{
		Brush:        document.CopyBrush(s.Brush, shared),
		Pen:          s.Pen.Copy(shared),
		IsStroked:    s.IsStroked,
		IsFilled:     s.IsFilled,
		HitRadius:    s.HitRadius,
		TryToConnect: s.TryToConnect,
	}
}

// discard removes an in-progress shape from the canvas previews.
func discard(c *document.Canvas, shape document.Entity) {
	if shape == nil {
		return
	}
	c.RemoveDecorator(shape)
	c.Invalidate()
}

// commit promotes an in-progress shape to a committed item.
func commit(c *document.Canvas, shape document.Entity) {
	c.Commit(shape)
	c.Invalidate()
}
