package engine

import (
	"errors"
	"fmt"

	"github.com/simpledraw/simpledraw/internal/codec"
	"github.com/simpledraw/simpledraw/internal/document"
	"github.com/simpledraw/simpledraw/internal/tools"
)

var ErrUnknownTool = errors.New("unknown tool")

// Engine owns one canvas and the view it is displayed through. It turns
// screen-space pointer events into tool input and renders draw commands.
// An Engine is not safe for concurrent use.
type Engine struct {
	canvas *document.Canvas

	// View state
	view    Matrix2D
	inverse Matrix2D

	// Dirty flag - set by canvas invalidation, cleared by TakeDirty
	dirty bool
}

// NewEngine creates an engine holding the default drawing.
func NewEngine() *Engine {
	e := &Engine{view: Identity(), inverse: Identity()}
	e.NewDocument()
	return e
}

// --- Commands (frontend → backend) ---

// NewDocument replaces the drawing with the default one.
func (e *Engine) NewDocument() {
	e.attach(tools.CreateDefault())
}

// LoadDocument replaces the drawing with a decoded one. On error the
// current drawing is kept.
func (e *Engine) LoadDocument(data []byte) error {
	c, err := codec.Unmarshal(data)
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}
	e.attach(c)
	return nil
}

func (e *Engine) attach(c *document.Canvas) {
	if e.canvas != nil {
		e.canvas.SetOnInvalidate(nil)
	}
	c.Decorators = nil
	c.SetOnInvalidate(func() { e.dirty = true })
	e.canvas = c
	e.dirty = true
}

// SetTool activates the registered tool with the given name.
func (e *Engine) SetTool(name string) error {
	t := e.canvas.ToolByName(name)
	if t == nil {
		return fmt.Errorf("%w: %q", ErrUnknownTool, name)
	}
	e.canvas.SetTool(t)
	return nil
}

// SetView sets the canvas-to-screen mapping. Non-positive zoom means 1.
func (e *Engine) SetView(zoom, panX, panY float64) {
	if zoom <= 0 {
		zoom = 1
	}
	e.view = View(zoom, panX, panY)
	e.inverse = e.view.Invert()
	e.dirty = true
}

// Pressed, Released and Moved take screen coordinates.
func (e *Engine) Pressed(x, y float64, pointer document.PointerType, mods document.KeyModifiers) {
	cx, cy := e.inverse.TransformPoint(x, y)
	e.canvas.Pressed(cx, cy, pointer, mods)
}

func (e *Engine) Released(x, y float64, pointer document.PointerType, mods document.KeyModifiers) {
	cx, cy := e.inverse.TransformPoint(x, y)
	e.canvas.Released(cx, cy, pointer, mods)
}

func (e *Engine) Moved(x, y float64, pointer document.PointerType, mods document.KeyModifiers) {
	cx, cy := e.inverse.TransformPoint(x, y)
	e.canvas.Moved(cx, cy, pointer, mods)
}

// Cancel abandons whatever the active tool is doing.
func (e *Engine) Cancel() {
	if e.canvas.Tool != nil {
		e.canvas.Tool.Cancel(e.canvas)
	}
}

// DeleteSelection removes the selection tool's current pick. A selected
// shape is removed; a selected point removes every item built on it.
// Reports whether anything was removed.
func (e *Engine) DeleteSelection() bool {
	sel, ok := e.canvas.Tool.(*tools.SelectionTool)
	if !ok || sel.Selected() == nil {
		return false
	}
	target := sel.Selected()
	sel.Deselect(e.canvas)

	removed := false
	switch target := target.(type) {
	case *document.Point:
		for _, item := range referencing(e.canvas.Items, target) {
			removed = e.canvas.RemoveItem(item) || removed
		}
	default:
		removed = e.canvas.RemoveItem(target)
	}
	if removed {
		e.canvas.Invalidate()
	}
	return removed
}

// referencing returns the items that are p or hold p.
func referencing(items []document.Entity, p *document.Point) []document.Entity {
	var out []document.Entity
	for _, item := range items {
		switch item := item.(type) {
		case *document.Point:
			if item == p {
				out = append(out, item)
			}
		case document.Shape:
			for _, q := range item.Points() {
				if q == p {
					out = append(out, item)
					break
				}
			}
		}
	}
	return out
}

// --- Queries (frontend ← backend) ---

// Canvas returns the live canvas.
func (e *Engine) Canvas() *document.Canvas {
	return e.canvas
}

// Document encodes the drawing.
func (e *Engine) Document() ([]byte, error) {
	return codec.Marshal(e.canvas)
}

// ToolName returns the active tool's name, or "".
func (e *Engine) ToolName() string {
	if e.canvas.Tool == nil {
		return ""
	}
	return e.canvas.Tool.Name()
}

// HitTest returns the topmost point under the screen position (x, y), or
// nil. The radius is the default hit radius in screen units.
func (e *Engine) HitTest(x, y float64) *document.Point {
	cx, cy := e.inverse.TransformPoint(x, y)
	return document.HitTestPoint(e.canvas.Items, cx, cy, tools.DefaultHitRadius/e.view.ScaleFactor())
}

// TakeDirty reports whether rendered content changed since the last call.
func (e *Engine) TakeDirty() bool {
	d := e.dirty
	e.dirty = false
	return d
}

// RenderCommands compiles the canvas into draw commands.
func (e *Engine) RenderCommands() []DrawCommand {
	return CompileDrawCommands(e.canvas, e.view)
}

// Render returns the draw commands as JSON.
func (e *Engine) Render() string {
	result, _ := DrawCommandsToJSON(e.RenderCommands())
	return result
}
