package collab

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simpledraw/simpledraw/internal/codec"
	"github.com/simpledraw/simpledraw/internal/tools"
)

type memoryDocs struct {
	mu    sync.Mutex
	docs  map[string][]byte
	saves int
	fail  error
}

func newMemoryDocs() *memoryDocs {
	return &memoryDocs{docs: make(map[string][]byte)}
}

func (m *memoryDocs) load(_ context.Context, projectID string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	return m.docs[projectID], nil
}

func (m *memoryDocs) save(_ context.Context, projectID string, doc []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.docs[projectID] = doc
	m.saves++
	return nil
}

func testClient(h *Hub, projectID, clientID string) *Client {
	return &Client{
		hub:         h,
		send:        make(chan []byte, 64),
		UserID:      "user-" + clientID,
		DisplayName: clientID,
		ProjectID:   projectID,
		ClientID:    clientID,
	}
}

// drain returns the messages queued for c without blocking.
func drain(t *testing.T, c *Client) []*Message {
	t.Helper()
	var out []*Message
	for {
		select {
		case data, ok := <-c.send:
			if !ok {
				return out
			}
			var msg Message
			require.NoError(t, json.Unmarshal(data, &msg))
			out = append(out, &msg)
		default:
			return out
		}
	}
}

func types(msgs []*Message) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = m.Type
	}
	return out
}

func TestHubSessionSavesOnLastLeave(t *testing.T) {
	docs := newMemoryDocs()
	h := NewHub(docs.load, docs.save, 0)

	a := testClient(h, "proj_1", "a")
	b := testClient(h, "proj_1", "b")
	h.addClient(a)
	assert.Equal(t, []string{TypeWelcome, TypeDocSync}, types(drain(t, a)))
	assert.Equal(t, 1, h.RoomCount())

	h.addClient(b)
	drain(t, b)
	assert.Equal(t, []string{TypePresenceJoin}, types(drain(t, a)))

	h.handleMessage(a, toolMsg(tools.NameRectangle))
	h.handleMessage(a, pointerMsg(TypePointerPressed, 10, 10, "left"))
	h.handleMessage(b, pointerMsg(TypePointerMoved, 20, 20, ""))
	h.handleMessage(a, pointerMsg(TypePointerPressed, 30, 30, "left"))

	fromB := drain(t, b)
	require.NotEmpty(t, fromB)
	last := fromB[len(fromB)-1]
	assert.Equal(t, TypeCanvasInvalidate, last.Type)
	assert.Equal(t, int64(4), last.Seq)

	var inv InvalidatePayload
	require.NoError(t, json.Unmarshal(last.Payload, &inv))
	require.Len(t, inv.Commands, 1)

	fromA := types(drain(t, a))
	assert.Contains(t, fromA, TypePresenceUpdate)

	h.removeClient(b)
	assert.Equal(t, 0, docs.saves)
	assert.Equal(t, []string{TypePresenceLeave}, types(drain(t, a)))

	h.removeClient(a)
	assert.Equal(t, 0, h.RoomCount())
	require.Equal(t, 1, docs.saves)

	c, err := codec.Unmarshal(docs.docs["proj_1"])
	require.NoError(t, err)
	assert.Len(t, c.Items, 1)
}

func TestHubReopensSavedDrawing(t *testing.T) {
	docs := newMemoryDocs()
	h := NewHub(docs.load, docs.save, 0)

	a := testClient(h, "proj_1", "a")
	h.addClient(a)
	h.handleMessage(a, toolMsg(tools.NameLine))
	h.handleMessage(a, pointerMsg(TypePointerPressed, 0, 0, "left"))
	h.handleMessage(a, pointerMsg(TypePointerPressed, 5, 5, "left"))
	h.removeClient(a)

	b := testClient(h, "proj_1", "b")
	h.addClient(b)
	msgs := drain(t, b)
	require.Len(t, msgs, 2)

	var welcome WelcomePayload
	require.NoError(t, json.Unmarshal(msgs[0].Payload, &welcome))
	assert.Equal(t, tools.NameLine, welcome.Tool)

	var syncPayload DocSyncPayload
	require.NoError(t, json.Unmarshal(msgs[1].Payload, &syncPayload))
	assert.Len(t, syncPayload.Commands, 1)
}

func TestHubReportsErrors(t *testing.T) {
	docs := newMemoryDocs()
	h := NewHub(docs.load, docs.save, 0)

	a := testClient(h, "proj_1", "a")
	h.addClient(a)
	drain(t, a)

	h.handleMessage(a, toolMsg("Spray"))
	assert.Equal(t, []string{TypeError}, types(drain(t, a)))

	h.handleMessage(a, toolMsg(tools.NameEllipse))
	drain(t, a)
	docs.fail = errors.New("disk full")
	h.handleMessage(a, &Message{Type: TypeDocSave})
	assert.Equal(t, []string{TypeError}, types(drain(t, a)))

	docs.fail = nil
	h.handleMessage(a, &Message{Type: TypeDocSave})
	assert.Empty(t, drain(t, a))
	assert.Equal(t, 1, docs.saves)
}

func TestHubLoadFailureClosesClient(t *testing.T) {
	docs := newMemoryDocs()
	docs.fail = errors.New("db down")
	h := NewHub(docs.load, docs.save, 0)

	a := testClient(h, "proj_1", "a")
	h.addClient(a)
	assert.Equal(t, []string{TypeError}, types(drain(t, a)))
	_, open := <-a.send
	assert.False(t, open)
	assert.Equal(t, 0, h.RoomCount())
}

func TestHubStopSavesModifiedRooms(t *testing.T) {
	docs := newMemoryDocs()
	h := NewHub(docs.load, docs.save, time.Hour)
	go h.Run()

	a := testClient(h, "proj_1", "a")
	h.Register(a)
	h.submit(context.Background(), a, toolMsg(tools.NameRectangle))

	deadline := time.After(5 * time.Second)
	for invalidated := false; !invalidated; {
		select {
		case data := <-a.send:
			var msg Message
			require.NoError(t, json.Unmarshal(data, &msg))
			invalidated = msg.Type == TypeCanvasInvalidate
		case <-deadline:
			t.Fatal("no canvas.invalidate")
		}
	}

	h.Stop()
	assert.Equal(t, 1, docs.saves)

	late := testClient(h, "proj_1", "late")
	h.Register(late)
	_, open := <-late.send
	assert.False(t, open)
}
