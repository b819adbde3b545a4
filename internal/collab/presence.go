package collab

import (
	"log/slog"
	"sync"
)

// PresenceManager tracks where each connected user's cursor is.
type PresenceManager struct {
	mu        sync.RWMutex
	presences map[string]*PresencePayload // userID -> presence
}

func NewPresenceManager() *PresenceManager {
	return &PresenceManager{
		presences: make(map[string]*PresencePayload),
	}
}

func (pm *PresenceManager) Update(userID string, p *PresencePayload) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.presences[userID] = p
}

// Move records a cursor position and returns the updated presence.
func (pm *PresenceManager) Move(userID, displayName, tool string, x, y float64) *PresencePayload {
	p := &PresencePayload{Cursor: &CursorPos{X: x, Y: y}, Tool: tool, DisplayName: displayName}
	pm.Update(userID, p)
	return p
}

func (pm *PresenceManager) Remove(userID string) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	delete(pm.presences, userID)
}

func (pm *PresenceManager) GetAll() map[string]*PresencePayload {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	result := make(map[string]*PresencePayload, len(pm.presences))
	for k, v := range pm.presences {
		result[k] = v
	}
	return result
}

func (pm *PresenceManager) StateMessage() *Message {
	all := pm.GetAll()
	if len(all) == 0 {
		return nil
	}
	msg := newMessage(TypePresenceState, PresenceStatePayload{Presences: all})
	if msg.Payload == nil {
		slog.Error("marshal presence state")
		return nil
	}
	return msg
}
