package document

import "slices"

// PointerType is the button involved in a pointer event.
// PointerNone means no button is held (hover).
type PointerType int

const (
	PointerNone PointerType = iota
	PointerLeft
	PointerRight
	PointerMiddle
)

var pointerTypeNames = []string{"none", "left", "right", "middle"}

func (p PointerType) String() string { return enumName(pointerTypeNames, int(p)) }

func ParsePointerType(s string) (PointerType, error) {
	i, err := parseEnum("pointer type", pointerTypeNames, s)
	return PointerType(i), err
}

// KeyModifiers is the set of modifier keys held during a pointer event.
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota
	ModControl
	ModAlt
	ModMeta
)

var keyModifierNames = map[string]KeyModifiers{
	"shift":   ModShift,
	"control": ModControl,
	"alt":     ModAlt,
	"meta":    ModMeta,
}

func (m KeyModifiers) Has(k KeyModifiers) bool { return m&k == k }

// ParseKeyModifiers builds a modifier set from names; unknown names are ignored.
func ParseKeyModifiers(names []string) KeyModifiers {
	var m KeyModifiers
	for _, n := range names {
		m |= keyModifierNames[n]
	}
	return m
}

// Tool consumes pointer events and edits a Canvas. Tools keep their own
// construction state; only the active tool may touch Canvas.Decorators.
type Tool interface {
	Entity
	Name() string
	Pressed(c *Canvas, x, y float64, pointer PointerType, mods KeyModifiers)
	Released(c *Canvas, x, y float64, pointer PointerType, mods KeyModifiers)
	Moved(c *Canvas, x, y float64, pointer PointerType, mods KeyModifiers)
	// Cancel abandons any construction in flight and removes its decorators.
	Cancel(c *Canvas)
}

// Canvas is the editable document. Items are committed and persisted;
// Decorators are in-progress previews owned by the active tool.
type Canvas struct {
	Width      float64
	Height     float64
	Items      []Entity
	Decorators []Entity
	Tools      []Tool
	Tool       Tool

	onInvalidate func()
}

func NewCanvas(width, height float64) *Canvas {
	return &Canvas{Width: width, Height: height}
}

// SetOnInvalidate installs the redraw callback raised by Invalidate.
func (c *Canvas) SetOnInvalidate(fn func()) {
	c.onInvalidate = fn
}

// Invalidate signals that rendered content changed.
func (c *Canvas) Invalidate() {
	if c.onInvalidate != nil {
		c.onInvalidate()
	}
}

// SetTool activates t. The previously active tool is cancelled first, and
// any decorators it left behind are dropped.
func (c *Canvas) SetTool(t Tool) {
	if c.Tool == t {
		return
	}
	if c.Tool != nil {
		c.Tool.Cancel(c)
	}
	c.Decorators = nil
	c.Tool = t
	c.Invalidate()
}

// ToolByName returns the registered tool with the given name, or nil.
func (c *Canvas) ToolByName(name string) Tool {
	for _, t := range c.Tools {
		if t.Name() == name {
			return t
		}
	}
	return nil
}

func (c *Canvas) Pressed(x, y float64, pointer PointerType, mods KeyModifiers) {
	if c.Tool != nil {
		c.Tool.Pressed(c, x, y, pointer, mods)
	}
}

func (c *Canvas) Released(x, y float64, pointer PointerType, mods KeyModifiers) {
	if c.Tool != nil {
		c.Tool.Released(c, x, y, pointer, mods)
	}
}

func (c *Canvas) Moved(x, y float64, pointer PointerType, mods KeyModifiers) {
	if c.Tool != nil {
		c.Tool.Moved(c, x, y, pointer, mods)
	}
}

func (c *Canvas) AddItem(e Entity) {
	c.Items = append(c.Items, e)
}

// RemoveItem removes e from Items by identity and reports whether it was there.
func (c *Canvas) RemoveItem(e Entity) bool {
	var ok bool
	c.Items, ok = remove(c.Items, e)
	return ok
}

func (c *Canvas) AddDecorator(e Entity) {
	c.Decorators = append(c.Decorators, e)
}

func (c *Canvas) RemoveDecorator(e Entity) bool {
	var ok bool
	c.Decorators, ok = remove(c.Decorators, e)
	return ok
}

// Commit moves e from Decorators to Items.
func (c *Canvas) Commit(e Entity) {
	c.RemoveDecorator(e)
	c.AddItem(e)
}

// Copy duplicates the canvas with its items and tools. Decorators and tool
// construction state are transient and are not copied.
func (c *Canvas) Copy(shared Shared) *Canvas {
	if c == nil {
		return nil
	}
	if cc, ok := lookup(shared, c); ok {
		return cc
	}
	cc := &Canvas{Width: c.Width, Height: c.Height}
	shared[c] = cc
	for _, item := range c.Items {
		cc.Items = append(cc.Items, item.Clone(shared))
	}
	for _, t := range c.Tools {
		cc.Tools = append(cc.Tools, t.Clone(shared).(Tool))
	}
	if c.Tool != nil {
		cc.Tool = c.Tool.Clone(shared).(Tool)
	}
	return cc
}

func (c *Canvas) Clone(shared Shared) Entity { return c.Copy(shared) }

// remove returns a new slice without e. The input's backing array is left
// untouched so slices taken earlier keep their contents.
func remove(list []Entity, e Entity) ([]Entity, bool) {
	i := slices.Index(list, e)
	if i < 0 {
		return list, false
	}
	return slices.Delete(slices.Clone(list), i, i+1), true
}
