package collab

import (
	"encoding/json"

	"github.com/simpledraw/simpledraw/internal/engine"
)

type Message struct {
	Type      string          `json:"type"`
	ProjectID string          `json:"projectId,omitempty"`
	ClientID  string          `json:"clientId,omitempty"`
	UserID    string          `json:"userId,omitempty"`
	Seq       int64           `json:"seq,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

const (
	// Pointer input, in canvas coordinates
	TypePointerPressed  = "pointer.pressed"
	TypePointerReleased = "pointer.released"
	TypePointerMoved    = "pointer.moved"

	// Editing
	TypeToolSet         = "tool.set"
	TypeToolCancel      = "tool.cancel"
	TypeSelectionDelete = "selection.delete"
	TypeDocSave         = "doc.save"

	// Connection
	TypeWelcome = "welcome"
	TypeError   = "error"

	// Document sync
	TypeDocSync          = "doc.sync"
	TypeCanvasInvalidate = "canvas.invalidate"

	// Presence
	TypePresenceUpdate = "presence.update"
	TypePresenceState  = "presence.state"
	TypePresenceJoin   = "presence.join"
	TypePresenceLeave  = "presence.leave"
)

type PointerPayload struct {
	X         float64  `json:"x"`
	Y         float64  `json:"y"`
	Button    string   `json:"button,omitempty"`
	Modifiers []string `json:"modifiers,omitempty"`
}

type ToolSetPayload struct {
	Name string `json:"name"`
}

type WelcomePayload struct {
	ClientID  string   `json:"clientId"`
	ProjectID string   `json:"projectId"`
	Tool      string   `json:"tool"`
	Tools     []string `json:"tools"`
}

type DocSyncPayload struct {
	Document json.RawMessage       `json:"document"`
	Commands []engine.DrawCommand `json:"commands"`
}

type InvalidatePayload struct {
	Commands []engine.DrawCommand `json:"commands"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

type PresencePayload struct {
	Cursor      *CursorPos `json:"cursor,omitempty"`
	Tool        string     `json:"tool,omitempty"`
	DisplayName string     `json:"displayName,omitempty"`
}

type CursorPos struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type PresenceStatePayload struct {
	Presences map[string]*PresencePayload `json:"presences"`
}

type PresenceJoinPayload struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

type PresenceLeavePayload struct {
	UserID string `json:"userId"`
}

// newMessage builds an outgoing message. Payloads are plain structs, so a
// marshal failure is a programming error and yields an empty payload.
func newMessage(msgType string, payload any) *Message {
	msg := &Message{Type: msgType}
	if payload != nil {
		msg.Payload, _ = json.Marshal(payload)
	}
	return msg
}

func errorMessage(err error) *Message {
	return newMessage(TypeError, ErrorPayload{Message: err.Error()})
}
