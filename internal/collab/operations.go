package collab

import (
	"encoding/json"
	"fmt"

	"github.com/simpledraw/simpledraw/internal/document"
	"github.com/simpledraw/simpledraw/internal/engine"
)

// DocumentState holds the authoritative drawing of a room. Only the hub
// goroutine touches it.
type DocumentState struct {
	engine    *engine.Engine
	serverSeq int64
	modified  bool
}

// NewDocumentState wraps an engine holding the room's drawing.
func NewDocumentState(eng *engine.Engine) *DocumentState {
	return &DocumentState{engine: eng}
}

// Apply applies an editing message and returns the server sequence.
func (ds *DocumentState) Apply(msg *Message) (int64, error) {
	if err := ds.apply(msg); err != nil {
		return 0, err
	}
	ds.serverSeq++
	return ds.serverSeq, nil
}

func (ds *DocumentState) apply(msg *Message) error {
	switch msg.Type {
	case TypePointerPressed, TypePointerReleased, TypePointerMoved:
		return ds.applyPointer(msg)
	case TypeToolSet:
		var p ToolSetPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return fmt.Errorf("invalid %s payload: %w", msg.Type, err)
		}
		return ds.engine.SetTool(p.Name)
	case TypeToolCancel:
		ds.engine.Cancel()
		return nil
	case TypeSelectionDelete:
		ds.engine.DeleteSelection()
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMessage, msg.Type)
	}
}

func (ds *DocumentState) applyPointer(msg *Message) error {
	p, err := parsePointer(msg.Payload)
	if err != nil {
		return fmt.Errorf("invalid %s payload: %w", msg.Type, err)
	}
	pointer := document.PointerNone
	if p.Button != "" {
		pointer, err = document.ParsePointerType(p.Button)
		if err != nil {
			return err
		}
	}
	mods := document.ParseKeyModifiers(p.Modifiers)

	switch msg.Type {
	case TypePointerPressed:
		ds.engine.Pressed(p.X, p.Y, pointer, mods)
	case TypePointerReleased:
		ds.engine.Released(p.X, p.Y, pointer, mods)
	case TypePointerMoved:
		ds.engine.Moved(p.X, p.Y, pointer, mods)
	}
	return nil
}

func parsePointer(raw json.RawMessage) (PointerPayload, error) {
	var p PointerPayload
	err := json.Unmarshal(raw, &p)
	return p, err
}

// Flush returns fresh draw commands when the drawing changed since the last
// flush.
func (ds *DocumentState) Flush() ([]engine.DrawCommand, bool) {
	if !ds.engine.TakeDirty() {
		return nil, false
	}
	ds.modified = true
	return ds.engine.RenderCommands(), true
}

// Cancel abandons in-flight tool input.
func (ds *DocumentState) Cancel() {
	ds.engine.Cancel()
}

// Snapshot encodes the drawing.
func (ds *DocumentState) Snapshot() ([]byte, error) {
	return ds.engine.Document()
}

// Modified reports whether the drawing changed since it was last saved.
func (ds *DocumentState) Modified() bool {
	return ds.modified
}

func (ds *DocumentState) MarkSaved() {
	ds.modified = false
}

// SyncPayload describes the whole drawing for a joining client.
func (ds *DocumentState) SyncPayload() (DocSyncPayload, error) {
	doc, err := ds.engine.Document()
	if err != nil {
		return DocSyncPayload{}, err
	}
	return DocSyncPayload{Document: doc, Commands: ds.engine.RenderCommands()}, nil
}

// Welcome describes the session for a joining client.
func (ds *DocumentState) Welcome(clientID, projectID string) WelcomePayload {
	w := WelcomePayload{ClientID: clientID, ProjectID: projectID, Tool: ds.engine.ToolName()}
	for _, t := range ds.engine.Canvas().Tools {
		w.Tools = append(w.Tools, t.Name())
	}
	return w
}

// ToolName returns the room's active tool name.
func (ds *DocumentState) ToolName() string {
	return ds.engine.ToolName()
}
