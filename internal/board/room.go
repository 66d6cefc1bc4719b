package board

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/drostelab/droste/internal/editor"
	"github.com/drostelab/droste/internal/render"
	"github.com/drostelab/droste/internal/scene"
)

type eventKind int

const (
	evJoin eventKind = iota
	evLeave
	evMessage
	evSnapshot
)

type roomEvent struct {
	kind   eventKind
	client *Client
	msg    *Message
	reply  chan scene.Scene
}

// Room is one live board. All editor state lives behind the room's run
// loop: pointer events, resets, joins, leaves and the frame ticker are
// serialized through a single goroutine, so the editor itself needs no
// locking. The clients map is owned by the hub (under its mutex); the room
// only reads it through broadcast.
type Room struct {
	boardID  string
	hub      *Hub
	clients  map[string]*Client // clientID -> client, guarded by hub.mu
	watchers *WatcherManager

	inbox chan roomEvent
	stop  chan struct{}

	// Run-loop state.
	editor     *editor.Editor
	driverID   string // clientID of the driving client, "" when vacant
	fps        int
	renderOpts render.Options
}

func NewRoom(hub *Hub, boardID string, fps int, renderOpts render.Options) *Room {
	return &Room{
		boardID:    boardID,
		hub:        hub,
		clients:    make(map[string]*Client),
		watchers:   NewWatcherManager(),
		inbox:      make(chan roomEvent, 1024),
		stop:       make(chan struct{}),
		editor:     editor.New(),
		fps:        fps,
		renderOpts: renderOpts,
	}
}

// Run drives the room until the hub closes it. The frame ticker fires at
// the configured FPS; a frame broadcast goes out only while a drag is
// active, using whatever cursor position was last recorded before the tick.
func (r *Room) Run() {
	ticker := time.NewTicker(time.Second / time.Duration(r.fps))
	defer ticker.Stop()

	for {
		select {
		case ev := <-r.inbox:
			r.handleEvent(ev)
		case <-ticker.C:
			r.tickFrame()
		case <-r.stop:
			return
		}
	}
}

func (r *Room) handleEvent(ev roomEvent) {
	switch ev.kind {
	case evJoin:
		r.handleJoin(ev.client)
	case evLeave:
		r.handleLeave(ev.client)
	case evMessage:
		r.handleMessage(ev.client, ev.msg)
	case evSnapshot:
		ev.reply <- r.editor.Scene()
	}
}

// Snapshot returns the committed scene as seen by the run loop. It is the
// race-free read path for the HTTP debug surface.
func (r *Room) Snapshot() scene.Scene {
	reply := make(chan scene.Scene, 1)
	select {
	case r.inbox <- roomEvent{kind: evSnapshot, reply: reply}:
	case <-r.stop:
		return scene.Scene{}
	}

	// The run loop may shut down with the event still queued; don't wait
	// on a reply that will never come.
	select {
	case s := <-reply:
		return s
	case <-r.stop:
		return scene.Scene{}
	}
}

func (r *Room) handleJoin(client *Client) {
	role := RoleWatcher
	if r.driverID == "" {
		r.driverID = client.ClientID
		role = RoleDriver
	}
	r.watchers.Add(client.UserID, client.DisplayName, role)

	welcome, err := json.Marshal(WelcomePayload{
		ClientID: client.ClientID,
		Role:     role,
		Scene:    r.editor.Scene(),
	})
	if err != nil {
		slog.Error("marshal welcome", "error", err)
		return
	}
	client.Send(&Message{Type: TypeWelcome, Payload: welcome})

	if state := r.watchers.StateMessage(); state != nil {
		client.Send(state)
	}

	joinPayload, _ := json.Marshal(WatcherJoinPayload{
		UserID:      client.UserID,
		DisplayName: client.DisplayName,
		Role:        role,
	})
	r.broadcast(&Message{Type: TypeWatcherJoin, UserID: client.UserID, Payload: joinPayload}, client.ClientID)

	slog.Info("client joined board", "user", client.UserID, "board", r.boardID, "role", role)
}

func (r *Room) handleLeave(client *Client) {
	r.watchers.Remove(client.UserID)

	if client.ClientID == r.driverID {
		// The driver is gone; abandon any drag in flight rather than ever
		// committing a partial one. The board then idles until a new
		// client joins and takes over.
		r.driverID = ""
		if r.editor.Dragging() {
			r.editor.CancelDrag()
			r.broadcastFrame()
		}
	}

	leavePayload, _ := json.Marshal(WatcherLeavePayload{UserID: client.UserID})
	r.broadcast(&Message{Type: TypeWatcherLeave, UserID: client.UserID, Payload: leavePayload}, "")

	slog.Info("client left board", "user", client.UserID, "board", r.boardID)
}

func (r *Room) handleMessage(sender *Client, msg *Message) {
	switch msg.Type {
	case TypePointerDown, TypePointerMove, TypePointerUp, TypePointerStop, TypeBoardReset:
		if sender.ClientID != r.driverID {
			r.rejectWatcherInput(sender, msg.Type)
			return
		}
		r.applyDriverMessage(msg)
	default:
		slog.Warn("unknown message type", "type", msg.Type, "user", sender.UserID)
	}
}

func (r *Room) applyDriverMessage(msg *Message) {
	switch msg.Type {
	case TypeBoardReset:
		r.editor.Reset()
		r.broadcastSceneSync()
		return
	case TypePointerStop:
		r.editor.CancelDrag()
		r.broadcastFrame()
		return
	}

	var pointer PointerPayload
	if err := json.Unmarshal(msg.Payload, &pointer); err != nil {
		slog.Warn("invalid pointer payload", "error", err, "board", r.boardID)
		return
	}

	switch msg.Type {
	case TypePointerDown:
		r.editor.PointerDown(pointer.Point())
	case TypePointerMove:
		r.editor.PointerMove(pointer.Point())
	case TypePointerUp:
		r.editor.PointerUp(pointer.Point())
		r.broadcastSceneSync()
	}
}

func (r *Room) rejectWatcherInput(sender *Client, msgType string) {
	payload, _ := json.Marshal(ErrorPayload{Reason: "watchers cannot edit the board"})
	sender.Send(&Message{Type: TypeError, Payload: payload})
	slog.Debug("watcher input rejected", "type", msgType, "user", sender.UserID, "board", r.boardID)
}

// tickFrame runs once per animation frame. The preview is a speculative
// resolve of the in-progress drag; committed state is untouched.
func (r *Room) tickFrame() {
	if !r.editor.Dragging() {
		return
	}
	r.broadcastFrame()
}

func (r *Room) broadcastFrame() {
	preview := r.editor.Preview()
	payload, err := json.Marshal(FramePayload{
		Scene:    preview,
		Commands: render.Compile(preview, r.renderOpts),
		Cursor:   r.editor.Cursor(),
		Dragging: r.editor.Dragging(),
	})
	if err != nil {
		slog.Error("marshal frame", "error", err)
		return
	}
	r.broadcast(&Message{Type: TypeFrameUpdate, Payload: payload}, "")
}

func (r *Room) broadcastSceneSync() {
	payload, err := json.Marshal(SceneSyncPayload{Scene: r.editor.Scene()})
	if err != nil {
		slog.Error("marshal scene sync", "error", err)
		return
	}
	r.broadcast(&Message{Type: TypeSceneSync, Payload: payload}, "")
}

func (r *Room) broadcast(msg *Message, excludeClientID string) {
	r.hub.broadcastToRoom(r.boardID, msg, excludeClientID)
}
