package realtime

import (
	"testing"

	"nextcareer-backend/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func init() {
	logger.Init()
}

func newTestClient(hub *Hub) *Client {
	return &Client{
		hub:  hub,
		send: make(chan Event, sendBufferSize),
		done: make(chan struct{}),
	}
}

func TestPushToUnregisteredUser(t *testing.T) {
	hub := NewHub()

	// never panics, just reports non-delivery
	delivered := hub.Push("ghost", "stageProgress", map[string]any{"stage": "interview"})
	assert.False(t, delivered)
}

func TestPushDeliversToRegisteredUser(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub)
	hub.Register("user-1", client)

	delivered := hub.Push("user-1", "jobApplication", map[string]any{"jobId": int64(7)})
	assert.True(t, delivered)

	event := <-client.send
	assert.Equal(t, "jobApplication", event.Event)
}

func TestRegisterLastWriteWins(t *testing.T) {
	hub := NewHub()
	first := newTestClient(hub)
	second := newTestClient(hub)

	hub.Register("user-1", first)
	hub.Register("user-1", second)

	// the superseded connection is told to close
	select {
	case <-first.done:
	default:
		t.Fatal("expected the first connection to be closed")
	}

	assert.True(t, hub.Push("user-1", "stageProgress", nil))
	assert.Len(t, second.send, 1)
	assert.Len(t, first.send, 0)
}

func TestUnregisterRemovesPresence(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub)
	hub.Register("user-1", client)
	assert.True(t, hub.Online("user-1"))

	hub.Unregister(client)

	assert.False(t, hub.Online("user-1"))
	assert.False(t, hub.Push("user-1", "stageProgress", nil))
}

func TestUnregisterIgnoresForeignClient(t *testing.T) {
	hub := NewHub()
	registered := newTestClient(hub)
	stranger := newTestClient(hub)
	hub.Register("user-1", registered)

	hub.Unregister(stranger)

	assert.True(t, hub.Online("user-1"))
}

func TestBroadcastReachesAllConnections(t *testing.T) {
	hub := NewHub()
	a := newTestClient(hub)
	b := newTestClient(hub)
	hub.Register("user-a", a)
	hub.Register("user-b", b)

	hub.Broadcast("jobViewIncremented", map[string]any{"jobId": int64(3), "newViewCount": int64(9)})

	assert.Len(t, a.send, 1)
	assert.Len(t, b.send, 1)
}

func TestPushDropsWhenBufferFull(t *testing.T) {
	hub := NewHub()
	client := &Client{hub: hub, send: make(chan Event), done: make(chan struct{})}
	hub.Register("user-1", client)

	// unbuffered channel with no reader: delivery must fail fast, not block
	delivered := hub.Push("user-1", "stageProgress", nil)
	assert.False(t, delivered)
}
