package board

import (
	"encoding/json"

	"github.com/drostelab/droste/internal/geom"
	"github.com/drostelab/droste/internal/render"
	"github.com/drostelab/droste/internal/scene"
)

type Message struct {
	Type     string          `json:"type"`
	BoardID  string          `json:"boardId,omitempty"`
	ClientID string          `json:"clientId,omitempty"`
	UserID   string          `json:"userId,omitempty"`
	Seq      int64           `json:"seq,omitempty"`
	Payload  json.RawMessage `json:"payload,omitempty"`
}

const (
	// Connection
	TypeWelcome = "welcome"
	TypeError   = "error"

	// Pointer/keyboard events (client → server). The websocket client is
	// the editor's event source: points arrive already normalized to the
	// board's viewport space.
	TypePointerDown = "pointer.down"
	TypePointerMove = "pointer.move"
	TypePointerUp   = "pointer.up"
	TypePointerStop = "pointer.cancel"
	TypeBoardReset  = "board.reset"

	// Scene/frame updates (server → clients)
	TypeFrameUpdate = "frame.update"
	TypeSceneSync   = "scene.sync"

	// Watcher lifecycle
	TypeWatcherJoin  = "watcher.join"
	TypeWatcherLeave = "watcher.leave"
	TypeWatcherState = "watcher.state"
)

// Role of a connected client. The first client to join a board drives it;
// everyone after that watches. Watchers receive frame updates but their
// pointer events are ignored.
const (
	RoleDriver  = "driver"
	RoleWatcher = "watcher"
)

// PointerPayload carries a single pointer position in normalized viewport
// coordinates.
type PointerPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Point converts the payload to a geometry point.
func (p PointerPayload) Point() geom.Point {
	return geom.Point{X: p.X, Y: p.Y}
}

// WelcomePayload is sent to a client right after it joins a room.
type WelcomePayload struct {
	ClientID string      `json:"clientId"`
	Role     string      `json:"role"`
	Scene    scene.Scene `json:"scene"`
}

// FramePayload is broadcast once per frame while a drag is active: the
// speculative preview scene, the compiled draw commands for it, and the
// driver's live cursor.
type FramePayload struct {
	Scene    scene.Scene          `json:"scene"`
	Commands []render.DrawCommand `json:"commands,omitempty"`
	Cursor   geom.Point           `json:"cursor"`
	Dragging bool                 `json:"dragging"`
}

// SceneSyncPayload is broadcast after every committed change (pointer-up
// above the minimum drag size, or a reset).
type SceneSyncPayload struct {
	Scene scene.Scene `json:"scene"`
}

type WatcherJoinPayload struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
}

type WatcherLeavePayload struct {
	UserID string `json:"userId"`
}

// WatcherStatePayload lists everyone currently connected to the board.
type WatcherStatePayload struct {
	Watchers map[string]*WatcherJoinPayload `json:"watchers"`
}

type ErrorPayload struct {
	Reason string `json:"reason"`
}
