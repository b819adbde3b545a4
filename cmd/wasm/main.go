//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/simpledraw/simpledraw/internal/document"
	"github.com/simpledraw/simpledraw/internal/engine"
)

var eng *engine.Engine

func main() {
	eng = engine.NewEngine()

	// Create the engine API object
	simpledrawEngine := js.Global().Get("Object").New()

	// --- Commands (frontend → backend) ---
	simpledrawEngine.Set("newDocument", js.FuncOf(newDocument))
	simpledrawEngine.Set("loadDocument", js.FuncOf(loadDocument))
	simpledrawEngine.Set("setTool", js.FuncOf(setTool))
	simpledrawEngine.Set("setView", js.FuncOf(setView))
	simpledrawEngine.Set("pressed", js.FuncOf(pressed))
	simpledrawEngine.Set("released", js.FuncOf(released))
	simpledrawEngine.Set("moved", js.FuncOf(moved))
	simpledrawEngine.Set("cancel", js.FuncOf(cancel))
	simpledrawEngine.Set("deleteSelection", js.FuncOf(deleteSelection))

	// --- Queries (frontend ← backend) ---
	simpledrawEngine.Set("render", js.FuncOf(render))
	simpledrawEngine.Set("takeDirty", js.FuncOf(takeDirty))
	simpledrawEngine.Set("hitTest", js.FuncOf(hitTest))
	simpledrawEngine.Set("getDocument", js.FuncOf(getDocument))
	simpledrawEngine.Set("getTool", js.FuncOf(getTool))

	// Register on global scope
	js.Global().Set("simpledrawEngine", simpledrawEngine)

	// Signal that WASM is ready
	js.Global().Set("simpledrawWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func ok() interface{} {
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func fail(msg string) interface{} {
	return js.ValueOf(map[string]interface{}{"error": msg})
}

// pointerArgs reads (x, y, button, modifiers...) where button is "none",
// "left", "right" or "middle" and modifiers are key names.
func pointerArgs(args []js.Value) (x, y float64, pointer document.PointerType, mods document.KeyModifiers, ok bool) {
	if len(args) < 3 {
		return 0, 0, 0, 0, false
	}
	pointer, err := document.ParsePointerType(args[2].String())
	if err != nil {
		return 0, 0, 0, 0, false
	}
	var names []string
	for _, a := range args[3:] {
		names = append(names, a.String())
	}
	return args[0].Float(), args[1].Float(), pointer, document.ParseKeyModifiers(names), true
}

// --- Command Handlers ---

func newDocument(this js.Value, args []js.Value) interface{} {
	eng.NewDocument()
	return ok()
}

func loadDocument(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return fail("missing document JSON")
	}
	if err := eng.LoadDocument([]byte(args[0].String())); err != nil {
		return fail(err.Error())
	}
	return ok()
}

func setTool(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return fail("missing tool name")
	}
	if err := eng.SetTool(args[0].String()); err != nil {
		return fail(err.Error())
	}
	return ok()
}

func setView(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return nil
	}
	eng.SetView(args[0].Float(), args[1].Float(), args[2].Float())
	return nil
}

func pressed(this js.Value, args []js.Value) interface{} {
	if x, y, p, m, ok := pointerArgs(args); ok {
		eng.Pressed(x, y, p, m)
	}
	return nil
}

func released(this js.Value, args []js.Value) interface{} {
	if x, y, p, m, ok := pointerArgs(args); ok {
		eng.Released(x, y, p, m)
	}
	return nil
}

func moved(this js.Value, args []js.Value) interface{} {
	if x, y, p, m, ok := pointerArgs(args); ok {
		eng.Moved(x, y, p, m)
	}
	return nil
}

func cancel(this js.Value, args []js.Value) interface{} {
	eng.Cancel()
	return nil
}

func deleteSelection(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.DeleteSelection())
}

// --- Query Handlers ---

func render(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Render())
}

func takeDirty(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.TakeDirty())
}

// hitTest returns the point under (x, y) as {x, y}, or null.
func hitTest(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.Null()
	}
	p := eng.HitTest(args[0].Float(), args[1].Float())
	if p == nil {
		return js.Null()
	}
	return js.ValueOf(map[string]interface{}{"x": p.X, "y": p.Y})
}

func getDocument(this js.Value, args []js.Value) interface{} {
	data, err := eng.Document()
	if err != nil {
		return fail(err.Error())
	}
	return js.ValueOf(string(data))
}

func getTool(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.ToolName())
}
