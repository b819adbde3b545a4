package tools

import "github.com/simpledraw/simpledraw/internal/document"

type selectionState int

const (
	selectionIdle selectionState = iota
	selectionDragging
)

// SelectionTool picks a point or shape and drags it. Picked points are
// exposed through Handles; they stay committed items and never become
// decorators.
type SelectionTool struct {
	HitRadius float64

	state    selectionState
	selected document.Entity
	points   []*document.Point
	origins  []document.Point
	lastX    float64
	lastY    float64
}

var selectionTransitions = transitions[*SelectionTool, selectionState]{
	{selectionIdle, document.PointerLeft}:       (*SelectionTool).pick,
	{selectionDragging, document.PointerLeft}:   (*SelectionTool).drop,
	{selectionDragging, document.PointerMiddle}: (*SelectionTool).drop,
	{selectionDragging, document.PointerRight}:  (*SelectionTool).revert,
}

func (t *SelectionTool) Name() string { return NameSelection }

// Selected returns the selected *Point or Shape, or nil.
func (t *SelectionTool) Selected() document.Entity { return t.selected }

// Handles returns the points of the current selection.
func (t *SelectionTool) Handles() []*document.Point { return t.points }

// Deselect clears the selection and its handles.
func (t *SelectionTool) Deselect(c *document.Canvas) {
	t.state = selectionIdle
	t.selected = nil
	t.points = nil
	t.origins = nil
	c.Invalidate()
}

func (t *SelectionTool) Pressed(c *document.Canvas, x, y float64, pointer document.PointerType, _ document.KeyModifiers) {
	t.state = selectionTransitions.fire(t, c, t.state, pointer, x, y)
}

func (t *SelectionTool) Released(c *document.Canvas, x, y float64, _ document.PointerType, _ document.KeyModifiers) {
	if t.state == selectionDragging {
		t.state = t.drop(c, x, y)
	}
}

func (t *SelectionTool) Moved(c *document.Canvas, x, y float64, pointer document.PointerType, _ document.KeyModifiers) {
	if t.state != selectionDragging {
		return
	}
	if pointer != document.PointerNone && pointer != document.PointerLeft {
		return
	}
	dx, dy := x-t.lastX, y-t.lastY
	t.lastX, t.lastY = x, y
	for _, p := range t.points {
		p.Translate(dx, dy)
	}
	c.Invalidate()
}

func (t *SelectionTool) Cancel(c *document.Canvas) {
	if t.selected != nil {
		t.Deselect(c)
	}
}

func (t *SelectionTool) pick(c *document.Canvas, x, y float64) selectionState {
	t.selected, t.points = nil, nil
	if p := document.HitTestPoint(c.Items, x, y, t.HitRadius); p != nil {
		t.selected = p
		t.points = []*document.Point{p}
	} else if s := document.HitTestShape(c.Items, x, y, t.HitRadius); s != nil {
		t.selected = s
		t.points = document.DistinctPoints(s)
	}
	t.origins = make([]document.Point, len(t.points))
	for i, p := range t.points {
		t.origins[i] = *p
	}
	c.Invalidate()
	if t.selected == nil {
		return selectionIdle
	}
	t.lastX, t.lastY = x, y
	return selectionDragging
}

func (t *SelectionTool) drop(*document.Canvas, float64, float64) selectionState {
	return selectionIdle
}

func (t *SelectionTool) revert(c *document.Canvas, _, _ float64) selectionState {
	for i, p := range t.points {
		p.Set(t.origins[i].X, t.origins[i].Y)
	}
	c.Invalidate()
	return selectionIdle
}

func (t *SelectionTool) Copy(shared document.Shared) *SelectionTool {
	if c, ok := shared[t].(*SelectionTool); ok {
		return c
	}
	c := &SelectionTool{HitRadius: t.HitRadius}
	shared[t] = c
	return c
}

func (t *SelectionTool) Clone(shared document.Shared) document.Entity { return t.Copy(shared) }
