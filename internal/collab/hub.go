package collab

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/simpledraw/simpledraw/internal/engine"
)

// Loader returns the stored drawing of a project, or nil for a project
// that has none yet.
type Loader func(ctx context.Context, projectID string) ([]byte, error)

// Saver stores the drawing of a project.
type Saver func(ctx context.Context, projectID string, doc []byte) error

const saveTimeout = 10 * time.Second

type Room struct {
	projectID string
	clients   map[string]*Client // clientID -> client
	state     *DocumentState
	presence  *PresenceManager
}

func NewRoom(projectID string, state *DocumentState) *Room {
	return &Room{
		projectID: projectID,
		clients:   make(map[string]*Client),
		state:     state,
		presence:  NewPresenceManager(),
	}
}

type inbound struct {
	client *Client
	msg    *Message
}

// Hub owns every room. Run applies registrations, departures and client
// messages one at a time, so each room's drawing has a single writer.
type Hub struct {
	mu         sync.RWMutex
	rooms      map[string]*Room // projectID -> room
	register   chan *Client
	unregister chan *Client
	incoming   chan inbound
	stop       chan struct{}
	done       chan struct{}
	stopOnce   sync.Once

	load     Loader
	save     Saver
	autosave time.Duration
}

// NewHub creates a hub. A non-positive autosave interval disables periodic
// saves; rooms are still saved when emptied, on doc.save and on Stop.
func NewHub(load Loader, save Saver, autosave time.Duration) *Hub {
	return &Hub{
		rooms:      make(map[string]*Room),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		incoming:   make(chan inbound, 256),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
		load:       load,
		save:       save,
		autosave:   autosave,
	}
}

func (h *Hub) Run() {
	defer close(h.done)

	var tick <-chan time.Time
	if h.autosave > 0 {
		ticker := time.NewTicker(h.autosave)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case in := <-h.incoming:
			h.handleMessage(in.client, in.msg)
		case <-tick:
			h.saveModified()
		case <-h.stop:
			h.saveModified()
			return
		}
	}
}

// Stop saves every modified room and ends Run.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.stop) })
	<-h.done
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		close(client.send)
	}
}

func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// submit queues a client message for the hub goroutine.
func (h *Hub) submit(ctx context.Context, client *Client, msg *Message) {
	select {
	case h.incoming <- inbound{client: client, msg: msg}:
	case <-ctx.Done():
	case <-h.done:
	}
}

// RoomCount returns the number of open rooms.
func (h *Hub) RoomCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms)
}

func (h *Hub) addClient(client *Client) {
	h.mu.RLock()
	room, ok := h.rooms[client.ProjectID]
	h.mu.RUnlock()
	if !ok {
		state, err := h.openDocument(client.ProjectID)
		if err != nil {
			slog.Error("open document", "error", err, "project", client.ProjectID)
			client.Send(errorMessage(err))
			close(client.send)
			return
		}
		room = NewRoom(client.ProjectID, state)
		h.mu.Lock()
		h.rooms[client.ProjectID] = room
		h.mu.Unlock()
	}
	room.clients[client.ClientID] = client

	client.Send(newMessage(TypeWelcome, room.state.Welcome(client.ClientID, client.ProjectID)))
	syncPayload, err := room.state.SyncPayload()
	if err != nil {
		slog.Error("encode document", "error", err, "project", client.ProjectID)
		client.Send(errorMessage(err))
	} else {
		client.Send(newMessage(TypeDocSync, syncPayload))
	}

	// Send current presence state to new client
	if stateMsg := room.presence.StateMessage(); stateMsg != nil {
		client.Send(stateMsg)
	}

	joinMsg := newMessage(TypePresenceJoin, PresenceJoinPayload{
		UserID:      client.UserID,
		DisplayName: client.DisplayName,
	})
	joinMsg.UserID = client.UserID
	h.broadcastToRoom(room, joinMsg, client.ClientID)

	slog.Info("client joined", "user", client.UserID, "project", client.ProjectID)
}

func (h *Hub) openDocument(projectID string) (*DocumentState, error) {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	eng := engine.NewEngine()
	data, err := h.load(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("load project %s: %w", projectID, err)
	}
	if data != nil {
		if err := eng.LoadDocument(data); err != nil {
			return nil, err
		}
	}
	eng.TakeDirty()
	return NewDocumentState(eng), nil
}

func (h *Hub) removeClient(client *Client) {
	h.mu.RLock()
	room, ok := h.rooms[client.ProjectID]
	h.mu.RUnlock()
	if !ok {
		return
	}
	if _, ok := room.clients[client.ClientID]; !ok {
		return
	}

	delete(room.clients, client.ClientID)
	close(client.send)
	room.presence.Remove(client.UserID)

	// Whatever the leaving client was constructing is abandoned.
	room.state.Cancel()
	h.flush(room, 0)

	if len(room.clients) == 0 {
		h.saveRoom(room)
		h.mu.Lock()
		delete(h.rooms, client.ProjectID)
		h.mu.Unlock()
	} else {
		leaveMsg := newMessage(TypePresenceLeave, PresenceLeavePayload{UserID: client.UserID})
		leaveMsg.UserID = client.UserID
		h.broadcastToRoom(room, leaveMsg, "")
	}

	slog.Info("client left", "user", client.UserID, "project", client.ProjectID)
}

func (h *Hub) handleMessage(sender *Client, msg *Message) {
	h.mu.RLock()
	room, ok := h.rooms[sender.ProjectID]
	h.mu.RUnlock()
	if !ok {
		return
	}
	if _, ok := room.clients[sender.ClientID]; !ok {
		return
	}

	if msg.Type == TypeDocSave {
		if err := h.saveRoom(room); err != nil {
			sender.Send(errorMessage(err))
		}
		return
	}

	seq, err := room.state.Apply(msg)
	if err != nil {
		slog.Warn("apply message", "error", err, "type", msg.Type, "user", sender.UserID)
		sender.Send(errorMessage(err))
		return
	}

	if msg.Type == TypePointerMoved {
		h.updatePresence(room, sender, msg)
	}
	h.flush(room, seq)
}

func (h *Hub) updatePresence(room *Room, sender *Client, msg *Message) {
	p, err := parsePointer(msg.Payload)
	if err != nil {
		return
	}
	presence := room.presence.Move(sender.UserID, sender.DisplayName, room.state.ToolName(), p.X, p.Y)
	out := newMessage(TypePresenceUpdate, presence)
	out.UserID = sender.UserID
	h.broadcastToRoom(room, out, sender.ClientID)
}

// flush broadcasts fresh draw commands if the drawing changed.
func (h *Hub) flush(room *Room, seq int64) {
	commands, changed := room.state.Flush()
	if !changed {
		return
	}
	msg := newMessage(TypeCanvasInvalidate, InvalidatePayload{Commands: commands})
	msg.Seq = seq
	h.broadcastToRoom(room, msg, "")
}

func (h *Hub) saveRoom(room *Room) error {
	if !room.state.Modified() {
		return nil
	}
	doc, err := room.state.Snapshot()
	if err != nil {
		slog.Error("encode document", "error", err, "project", room.projectID)
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := h.save(ctx, room.projectID, doc); err != nil {
		slog.Error("save document", "error", err, "project", room.projectID)
		return err
	}
	room.state.MarkSaved()
	slog.Info("document saved", "project", room.projectID, "bytes", len(doc))
	return nil
}

func (h *Hub) saveModified() {
	h.mu.RLock()
	rooms := make([]*Room, 0, len(h.rooms))
	for _, r := range h.rooms {
		rooms = append(rooms, r)
	}
	h.mu.RUnlock()

	for _, r := range rooms {
		h.saveRoom(r)
	}
}

func (h *Hub) broadcastToRoom(room *Room, msg *Message, excludeClientID string) {
	msg.ProjectID = room.projectID
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("marshal message", "error", err)
		return
	}
	for _, c := range room.clients {
		if c.ClientID != excludeClientID {
			c.sendRaw(data)
		}
	}
}
