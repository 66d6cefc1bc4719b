package board

import (
	"encoding/json"
	"log/slog"
)

// WatcherManager tracks who is connected to a board and in which role. It
// is owned by the room's run loop and accessed from that goroutine only, so
// it carries no locking.
type WatcherManager struct {
	watchers map[string]*WatcherJoinPayload // userID -> watcher
}

func NewWatcherManager() *WatcherManager {
	return &WatcherManager{
		watchers: make(map[string]*WatcherJoinPayload),
	}
}

func (wm *WatcherManager) Add(userID, displayName, role string) {
	wm.watchers[userID] = &WatcherJoinPayload{
		UserID:      userID,
		DisplayName: displayName,
		Role:        role,
	}
}

func (wm *WatcherManager) Remove(userID string) {
	delete(wm.watchers, userID)
}

func (wm *WatcherManager) StateMessage() *Message {
	payload, err := json.Marshal(WatcherStatePayload{Watchers: wm.watchers})
	if err != nil {
		slog.Error("marshal watcher state", "error", err)
		return nil
	}
	return &Message{
		Type:    TypeWatcherState,
		Payload: payload,
	}
}
