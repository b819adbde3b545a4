package tools

import "github.com/simpledraw/simpledraw/internal/document"

type lineState int

const (
	lineNone lineState = iota
	lineEnd
)

// LineTool builds a straight line: the first press places the start, the
// second the end.
type LineTool struct {
	ShapeSettings

	state lineState
	line  *document.LineShape
}

var lineTransitions = transitions[*LineTool, lineState]{
	{lineNone, document.PointerLeft}: (*LineTool).begin,
	{lineEnd, document.PointerLeft}:  (*LineTool).finish,
	{lineEnd, document.PointerRight}: (*LineTool).abort,
}

var linePreviews = previews[*LineTool, lineState]{
	lineEnd: func(t *LineTool, x, y float64) { t.line.End.Set(x, y) },
}

func (t *LineTool) Name() string { return NameLine }

func (t *LineTool) Pressed(c *document.Canvas, x, y float64, pointer document.PointerType, _ document.KeyModifiers) {
	t.state = lineTransitions.fire(t, c, t.state, pointer, x, y)
}

func (t *LineTool) Released(*document.Canvas, float64, float64, document.PointerType, document.KeyModifiers) {
}

func (t *LineTool) Moved(c *document.Canvas, x, y float64, pointer document.PointerType, _ document.KeyModifiers) {
	if linePreviews.track(t, t.state, pointer, x, y) {
		c.Invalidate()
	}
}

func (t *LineTool) Cancel(c *document.Canvas) {
	if t.state != lineNone {
		t.state = t.abort(c, 0, 0)
	}
}

func (t *LineTool) begin(c *document.Canvas, x, y float64) lineState {
	t.line = &document.LineShape{
		ShapeBase: t.base(),
		Start:     t.anchor(c, x, y),
		End:       document.NewPoint(x, y),
	}
	c.AddDecorator(t.line)
	c.Invalidate()
	return lineEnd
}

func (t *LineTool) finish(c *document.Canvas, x, y float64) lineState {
	t.place(c, &t.line.End, x, y)
	commit(c, t.line)
	t.line = nil
	return lineNone
}

func (t *LineTool) abort(c *document.Canvas, _, _ float64) lineState {
	discard(c, t.line)
	t.line = nil
	return lineNone
}

func (t *LineTool) Copy(shared document.Shared) *LineTool {
	if c, ok := shared[t].(*LineTool); ok {
		return c
	}
	c := &LineTool{}
	shared[t] = c
	c.ShapeSettings = t.copySettings(shared)
	return c
}

func (t *LineTool) Clone(shared document.Shared) document.Entity { return t.Copy(shared) }
