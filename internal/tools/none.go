package tools

import "github.com/simpledraw/simpledraw/internal/document"

// NoneTool ignores every pointer event.
type NoneTool struct {
	_ byte // non-zero size so every instance has its own address
}

func (t *NoneTool) Name() string { return NameNone }

func (t *NoneTool) Pressed(*document.Canvas, float64, float64, document.PointerType, document.KeyModifiers) {
}

func (t *NoneTool) Released(*document.Canvas, float64, float64, document.PointerType, document.KeyModifiers) {
}

func (t *NoneTool) Moved(*document.Canvas, float64, float64, document.PointerType, document.KeyModifiers) {
}

func (t *NoneTool) Cancel(*document.Canvas) {}

func (t *NoneTool) Copy(shared document.Shared) *NoneTool {
	if c, ok := shared[t].(*NoneTool); ok {
		return c
	}
	c := &NoneTool{}
	shared[t] = c
	return c
}

func (t *NoneTool) Clone(shared document.Shared) document.Entity { return t.Copy(shared) }
