// Package editor holds the interaction state of a single board: the
// committed scene plus the transient drag in progress. It is the command
// surface the transports (websocket rooms, the wasm build) drive.
package editor

import (
	"encoding/json"

	"github.com/drostelab/droste/internal/geom"
	"github.com/drostelab/droste/internal/scene"
)

// Editor owns a board's scene and drag state. It is deliberately free of
// locks: every caller serializes access on a single goroutine (the room run
// loop on the server, the main thread under wasm), matching the
// single-writer discipline the model assumes.
type Editor struct {
	scene scene.Scene

	// Drag state. The anchor and clicked path are captured at pointer-down
	// and stay fixed; the cursor is overwritten by every move and read by
	// the next frame tick.
	dragging bool
	anchor   geom.Point
	cursor   geom.Point
	clicked  *scene.ClickedPath
}

// New creates an editor over an empty scene.
func New() *Editor {
	return &Editor{}
}

// Scene returns the committed scene.
func (e *Editor) Scene() scene.Scene {
	return e.scene
}

// Dragging reports whether a drag is in progress.
func (e *Editor) Dragging() bool {
	return e.dragging
}

// Cursor returns the last recorded pointer position.
func (e *Editor) Cursor() geom.Point {
	return e.cursor
}

// PointerDown starts a drag: the press point becomes the fixed anchor and
// the hit-test result at the press point is captured for the whole drag.
func (e *Editor) PointerDown(p geom.Point) {
	e.dragging = true
	e.anchor = p
	e.cursor = p
	if path, ok := scene.HitTest(e.scene, p); ok {
		e.clicked = &path
	} else {
		e.clicked = nil
	}
}

// PointerMove records the live cursor position. The value is read by the
// next frame tick; whatever was last recorded before a frame runs is what
// that frame previews.
func (e *Editor) PointerMove(p geom.Point) {
	e.cursor = p
}

// PointerUp completes the drag and commits the resulting screen or pattern.
// Undersized drags are discarded by the resolver; either way the drag state
// is cleared.
func (e *Editor) PointerUp(p geom.Point) {
	if !e.dragging {
		return
	}
	e.cursor = p
	draft := geom.NormalizeRect(e.anchor, p)
	e.scene = scene.ResolveDraft(e.scene, e.clicked, &draft)
	e.clearDrag()
}

// CancelDrag abandons an active drag without committing anything.
func (e *Editor) CancelDrag() {
	e.clearDrag()
}

// Reset clears both collections and any drag in progress.
func (e *Editor) Reset() {
	e.scene = scene.Scene{}
	e.clearDrag()
}

func (e *Editor) clearDrag() {
	e.dragging = false
	e.clicked = nil
}

// Preview returns the scene as it would look if the in-progress drag
// committed right now. With no active drag it is the committed scene. The
// committed state is never touched; calling Preview any number of times
// with the same drag state yields the same result.
func (e *Editor) Preview() scene.Scene {
	if !e.dragging {
		return e.scene
	}
	draft := geom.NormalizeRect(e.anchor, e.cursor)
	return scene.ResolveDraft(e.scene, e.clicked, &draft)
}

// HitTest resolves a viewport point against the committed scene.
func (e *Editor) HitTest(p geom.Point) (scene.ClickedPath, bool) {
	return scene.HitTest(e.scene, p)
}

// SceneJSON returns the committed scene as JSON, for query surfaces that
// hand state to a frontend.
func (e *Editor) SceneJSON() string {
	data, err := json.Marshal(e.scene)
	if err != nil {
		return "{}"
	}
	return string(data)
}
