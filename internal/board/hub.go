// Package board hosts live editing sessions. Each board gets a room with
// its own run loop; the hub owns the room registry and fans websocket
// clients in and out.
package board

import (
	"log/slog"
	"sync"

	"github.com/drostelab/droste/internal/render"
)

type Hub struct {
	mu         sync.RWMutex
	rooms      map[string]*Room // boardID -> room
	register   chan *Client
	unregister chan *Client
	quit       chan struct{}

	fps        int
	renderOpts render.Options
}

func NewHub(fps int, renderOpts render.Options) *Hub {
	if fps <= 0 {
		fps = 30
	}
	return &Hub{
		rooms:      make(map[string]*Room),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		quit:       make(chan struct{}),
		fps:        fps,
		renderOpts: renderOpts,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-h.quit:
			h.closeAllRooms()
			return
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Stop shuts down every room's run loop. Board state is in-memory only and
// simply discarded; there is deliberately nothing to flush.
func (h *Hub) Stop() {
	close(h.quit)
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.BoardID]
	if !ok {
		room = NewRoom(h, client.BoardID, h.fps, h.renderOpts)
		h.rooms[client.BoardID] = room
		go room.Run()
	}
	room.clients[client.ClientID] = client
	h.mu.Unlock()

	room.inbox <- roomEvent{kind: evJoin, client: client}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.BoardID]
	if !ok {
		h.mu.Unlock()
		return
	}

	delete(room.clients, client.ClientID)
	// Close, not close(chan): broadcasts snapshot the client list before
	// sending, so a frame fan-out can race this removal.
	client.Close()

	empty := len(room.clients) == 0
	if empty {
		delete(h.rooms, client.BoardID)
	}
	h.mu.Unlock()

	if empty {
		// Nobody left to notify; just stop the run loop.
		close(room.stop)
		slog.Info("board room closed", "board", client.BoardID)
		return
	}

	room.inbox <- roomEvent{kind: evLeave, client: client}
}

func (h *Hub) handleMessage(sender *Client, msg *Message) {
	h.mu.RLock()
	room, ok := h.rooms[sender.BoardID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	select {
	case room.inbox <- roomEvent{kind: evMessage, client: sender, msg: msg}:
	default:
		slog.Warn("room inbox full, dropping message", "board", sender.BoardID, "type", msg.Type)
	}
}

// Room returns the live room for a board, if any. Reads of the room's
// scene must go through Room.Snapshot, which routes through the run loop.
func (h *Hub) Room(boardID string) (*Room, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	room, ok := h.rooms[boardID]
	return room, ok
}

func (h *Hub) broadcastToRoom(boardID string, msg *Message, excludeClientID string) {
	h.mu.RLock()
	room, ok := h.rooms[boardID]
	if !ok {
		h.mu.RUnlock()
		return
	}

	clients := make([]*Client, 0, len(room.clients))
	for _, c := range room.clients {
		if c.ClientID != excludeClientID {
			clients = append(clients, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.Send(msg)
	}
}

func (h *Hub) closeAllRooms() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for boardID, room := range h.rooms {
		close(room.stop)
		delete(h.rooms, boardID)
	}
}
