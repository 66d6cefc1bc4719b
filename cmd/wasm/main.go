//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/drostelab/droste/internal/editor"
	"github.com/drostelab/droste/internal/geom"
	"github.com/drostelab/droste/internal/render"
	"github.com/drostelab/droste/internal/scene"
)

var (
	ed   *editor.Editor
	opts render.Options
)

func main() {
	ed = editor.New()
	opts = render.Options{}

	// Create the engine API object
	drosteEngine := js.Global().Get("Object").New()

	// --- Commands (frontend → backend) ---
	drosteEngine.Set("pointerDown", js.FuncOf(pointerDown))
	drosteEngine.Set("pointerMove", js.FuncOf(pointerMove))
	drosteEngine.Set("pointerUp", js.FuncOf(pointerUp))
	drosteEngine.Set("cancelDrag", js.FuncOf(cancelDrag))
	drosteEngine.Set("reset", js.FuncOf(reset))
	drosteEngine.Set("setRenderDepth", js.FuncOf(setRenderDepth))

	// --- Queries (frontend ← backend) ---
	drosteEngine.Set("tick", js.FuncOf(tick))
	drosteEngine.Set("render", js.FuncOf(renderScene))
	drosteEngine.Set("hitTest", js.FuncOf(hitTest))
	drosteEngine.Set("getScene", js.FuncOf(getScene))
	drosteEngine.Set("isDragging", js.FuncOf(isDragging))

	// Register on global scope
	js.Global().Set("drosteEngine", drosteEngine)

	// Signal that WASM is ready
	js.Global().Set("drosteWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func pointAt(args []js.Value) (geom.Point, bool) {
	if len(args) < 2 {
		return geom.Point{}, false
	}
	return geom.Point{X: args[0].Float(), Y: args[1].Float()}, true
}

// --- Command Handlers ---

func pointerDown(this js.Value, args []js.Value) interface{} {
	if p, ok := pointAt(args); ok {
		ed.PointerDown(p)
	}
	return nil
}

func pointerMove(this js.Value, args []js.Value) interface{} {
	if p, ok := pointAt(args); ok {
		ed.PointerMove(p)
	}
	return nil
}

func pointerUp(this js.Value, args []js.Value) interface{} {
	if p, ok := pointAt(args); ok {
		ed.PointerUp(p)
	}
	return nil
}

func cancelDrag(this js.Value, args []js.Value) interface{} {
	ed.CancelDrag()
	return nil
}

func reset(this js.Value, args []js.Value) interface{} {
	ed.Reset()
	return nil
}

func setRenderDepth(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	opts.MaxDepth = args[0].Int()
	return nil
}

// --- Query Handlers ---

// tick is called once per animation frame: it compiles the preview of the
// in-progress drag (or the committed scene when idle) into draw commands
// for the canvas.
func tick(this js.Value, args []js.Value) interface{} {
	commands, err := render.ToJSON(render.Compile(ed.Preview(), opts))
	if err != nil {
		return js.ValueOf("[]")
	}
	return js.ValueOf(commands)
}

// renderScene compiles the committed scene only, ignoring any drag.
func renderScene(this js.Value, args []js.Value) interface{} {
	commands, err := render.ToJSON(render.Compile(ed.Scene(), opts))
	if err != nil {
		return js.ValueOf("[]")
	}
	return js.ValueOf(commands)
}

func hitTest(this js.Value, args []js.Value) interface{} {
	p, ok := pointAt(args)
	if !ok {
		return js.ValueOf("{}")
	}

	path, hit := scene.HitTest(ed.Scene(), p)
	if !hit {
		return js.ValueOf("{}")
	}

	result := map[string]interface{}{
		"screen": path.Screen,
	}
	indices := make([]interface{}, len(path.Path))
	for i, idx := range path.Path {
		indices[i] = idx
	}
	result["path"] = indices
	return js.ValueOf(result)
}

func getScene(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(ed.SceneJSON())
}

func isDragging(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(ed.Dragging())
}
