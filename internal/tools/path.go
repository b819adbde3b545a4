package tools

import (
	"fmt"

	"github.com/simpledraw/simpledraw/internal/document"
)

// PathMode selects the kind of segment the path tool appends next.
type PathMode int

const (
	PathModeLine PathMode = iota
	PathModeCubicBezier
	PathModeQuadraticBezier
)

var pathModeNames = []string{"Line", "CubicBezier", "QuadraticBezier"}

func (m PathMode) String() string {
	if m < 0 || int(m) >= len(pathModeNames) {
		return fmt.Sprintf("PathMode(%d)", int(m))
	}
	return pathModeNames[m]
}

func ParsePathMode(s string) (PathMode, error) {
	for i, n := range pathModeNames {
		if n == s {
			return PathMode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown path mode %q", s)
}

type pathState int

const (
	pathNone pathState = iota
	pathLineEnd
	pathCubicPoint3
	pathCubicPoint2
	pathCubicPoint1
	pathQuadraticEnd
	pathQuadraticControl
)

// PathTool builds a multi-segment figure. Consecutive segments share their
// joint point by reference.
type PathTool struct {
	ShapeSettings
	FillRule     document.FillRule
	IsClosed     bool
	Mode         PathMode
	PreviousMode PathMode

	state     pathState
	path      *document.PathShape
	line      *document.LineShape
	cubic     *document.CubicBezierShape
	quadratic *document.QuadraticBezierShape
	closing   bool
}

var pathTransitions = transitions[*PathTool, pathState]{
	{pathNone, document.PointerLeft}:             (*PathTool).begin,
	{pathLineEnd, document.PointerLeft}:          (*PathTool).placeLineEnd,
	{pathCubicPoint3, document.PointerLeft}:      (*PathTool).placeCubicPoint3,
	{pathCubicPoint2, document.PointerLeft}:      (*PathTool).placeCubicPoint2,
	{pathCubicPoint1, document.PointerLeft}:      (*PathTool).placeCubicPoint1,
	{pathQuadraticEnd, document.PointerLeft}:     (*PathTool).placeQuadraticEnd,
	{pathQuadraticControl, document.PointerLeft}: (*PathTool).placeQuadraticControl,
	{pathLineEnd, document.PointerRight}:          (*PathTool).finish,
	{pathCubicPoint3, document.PointerRight}:      (*PathTool).finish,
	{pathCubicPoint2, document.PointerRight}:      (*PathTool).finish,
	{pathCubicPoint1, document.PointerRight}:      (*PathTool).finish,
	{pathQuadraticEnd, document.PointerRight}:     (*PathTool).finish,
	{pathQuadraticControl, document.PointerRight}: (*PathTool).finish,
}

var pathPreviews = previews[*PathTool, pathState]{
	pathLineEnd: func(t *PathTool, x, y float64) { t.line.End.Set(x, y) },
	pathCubicPoint3: func(t *PathTool, x, y float64) {
		t.cubic.Point2.Set(x, y)
		t.cubic.Point3.Set(x, y)
	},
	pathCubicPoint2: func(t *PathTool, x, y float64) {
		t.cubic.Point2.Set(x, y)
		t.cubic.Point1.Set(x, y)
	},
	pathCubicPoint1: func(t *PathTool, x, y float64) { t.cubic.Point1.Set(x, y) },
	pathQuadraticEnd: func(t *PathTool, x, y float64) {
		t.quadratic.Control.Set(x, y)
		t.quadratic.End.Set(x, y)
	},
	pathQuadraticControl: func(t *PathTool, x, y float64) { t.quadratic.Control.Set(x, y) },
}

func (t *PathTool) Name() string { return NamePath }

// SetMode changes the kind of the next segment. The segment in progress
// keeps its kind.
func (t *PathTool) SetMode(m PathMode) {
	t.PreviousMode = t.Mode
	t.Mode = m
}

func (t *PathTool) Pressed(c *document.Canvas, x, y float64, pointer document.PointerType, _ document.KeyModifiers) {
	t.state = pathTransitions.fire(t, c, t.state, pointer, x, y)
}

func (t *PathTool) Released(*document.Canvas, float64, float64, document.PointerType, document.KeyModifiers) {
}

func (t *PathTool) Moved(c *document.Canvas, x, y float64, pointer document.PointerType, _ document.KeyModifiers) {
	if pathPreviews.track(t, t.state, pointer, x, y) {
		c.Invalidate()
	}
}

func (t *PathTool) Cancel(c *document.Canvas) {
	if t.state != pathNone {
		discard(c, t.path)
		t.reset()
	}
}

func (t *PathTool) begin(c *document.Canvas, x, y float64) pathState {
	t.path = &document.PathShape{
		ShapeBase: t.base(),
		FillRule:  t.FillRule,
	}
	start := t.anchor(c, x, y)
	c.AddDecorator(t.path)
	c.Invalidate()
	return t.open(start, x, y)
}

// open appends a segment of the current mode starting at start.
func (t *PathTool) open(start *document.Point, x, y float64) pathState {
	t.line, t.cubic, t.quadratic = nil, nil, nil
	switch t.Mode {
	case PathModeCubicBezier:
		t.cubic = &document.CubicBezierShape{
			Start:  start,
			Point1: document.NewPoint(x, y),
			Point2: document.NewPoint(x, y),
			Point3: document.NewPoint(x, y),
		}
		t.path.Segments = append(t.path.Segments, t.cubic)
		return pathCubicPoint3
	case PathModeQuadraticBezier:
		t.quadratic = &document.QuadraticBezierShape{
			Start:   start,
			Control: document.NewPoint(x, y),
			End:     document.NewPoint(x, y),
		}
		t.path.Segments = append(t.path.Segments, t.quadratic)
		return pathQuadraticEnd
	default:
		t.line = &document.LineShape{
			Start: start,
			End:   document.NewPoint(x, y),
		}
		t.path.Segments = append(t.path.Segments, t.line)
		return pathLineEnd
	}
}

// placeEnd sets a segment endpoint. A press on the figure's first point
// reuses it and marks the figure for closing once the segment completes.
func (t *PathTool) placeEnd(c *document.Canvas, slot **document.Point, x, y float64) {
	first := t.path.First()
	if len(t.path.Segments) > 1 && first != nil && first.Within(x, y, t.HitRadius) {
		*slot = first
		t.closing = true
		return
	}
	t.place(c, slot, x, y)
}

// next closes and commits the figure, or continues it from end.
func (t *PathTool) next(c *document.Canvas, end *document.Point, x, y float64) pathState {
	if t.closing {
		t.path.IsClosed = true
		commit(c, t.path)
		t.reset()
		return pathNone
	}
	c.Invalidate()
	return t.open(end, x, y)
}

func (t *PathTool) placeLineEnd(c *document.Canvas, x, y float64) pathState {
	t.placeEnd(c, &t.line.End, x, y)
	return t.next(c, t.line.End, x, y)
}

func (t *PathTool) placeCubicPoint3(c *document.Canvas, x, y float64) pathState {
	t.placeEnd(c, &t.cubic.Point3, x, y)
	c.Invalidate()
	return pathCubicPoint2
}

func (t *PathTool) placeCubicPoint2(c *document.Canvas, x, y float64) pathState {
	t.place(c, &t.cubic.Point2, x, y)
	c.Invalidate()
	return pathCubicPoint1
}

func (t *PathTool) placeCubicPoint1(c *document.Canvas, x, y float64) pathState {
	t.place(c, &t.cubic.Point1, x, y)
	return t.next(c, t.cubic.Point3, x, y)
}

func (t *PathTool) placeQuadraticEnd(c *document.Canvas, x, y float64) pathState {
	t.placeEnd(c, &t.quadratic.End, x, y)
	c.Invalidate()
	return pathQuadraticControl
}

func (t *PathTool) placeQuadraticControl(c *document.Canvas, x, y float64) pathState {
	t.place(c, &t.quadratic.Control, x, y)
	return t.next(c, t.quadratic.End, x, y)
}

// finish drops the unfinished trailing segment and commits whatever is
// complete.
func (t *PathTool) finish(c *document.Canvas, _, _ float64) pathState {
	if n := len(t.path.Segments); n > 0 {
		t.path.Segments = t.path.Segments[:n-1]
	}
	if len(t.path.Segments) == 0 {
		discard(c, t.path)
	} else {
		t.path.IsClosed = t.IsClosed
		commit(c, t.path)
	}
	t.reset()
	return pathNone
}

func (t *PathTool) reset() {
	t.state = pathNone
	t.path = nil
	t.line, t.cubic, t.quadratic = nil, nil, nil
	t.closing = false
}

func (t *PathTool) Copy(shared document.Shared) *PathTool {
	if c, ok := shared[t].(*PathTool); ok {
		return c
	}
	c := &PathTool{
		FillRule:     t.FillRule,
		IsClosed:     t.IsClosed,
		Mode:         t.Mode,
		PreviousMode: t.PreviousMode,
	}
	shared[t] = c
	c.ShapeSettings = t.copySettings(shared)
	return c
}

func (t *PathTool) Clone(shared document.Shared) document.Entity { return t.Copy(shared) }
