package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"noter-be/internal/pkg/logger"
	"noter-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) (*Hub, context.CancelFunc) {
	t.Helper()
	hub := NewHub(logger.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)
	return hub, cancel
}

func attach(t *testing.T, hub *Hub, userID *uuid.UUID) *Client {
	t.Helper()
	c := &Client{Hub: hub, UserID: userID, Send: make(chan []byte, 4)}
	require.True(t, hub.join(c))
	return c
}

func receive(t *testing.T, c *Client) (Message, bool) {
	t.Helper()
	select {
	case raw := <-c.Send:
		var msg Message
		require.NoError(t, json.Unmarshal(raw, &msg))
		return msg, true
	case <-time.After(50 * time.Millisecond):
		return Message{}, false
	}
}

func TestHubNotify_Visibility(t *testing.T) {
	hub, _ := startHub(t)
	author, stranger := uuid.New(), uuid.New()

	owner := attach(t, hub, &author)
	other := attach(t, hub, &stranger)
	anon := attach(t, hub, nil)
	require.Eventually(t, func() bool { return hub.ClientCount() == 3 }, time.Second, 5*time.Millisecond)

	hub.Notify(events.New(events.TypeNoteUpdated, map[string]interface{}{
		"note_id":   uuid.NewString(),
		"author_id": author.String(),
		"is_public": false,
		"origin":    "instance-a",
	}))

	msg, ok := receive(t, owner)
	require.True(t, ok)
	assert.Equal(t, events.TypeNoteUpdated, msg.Type)
	assert.NotContains(t, msg.Data, "origin")
	_, ok = receive(t, other)
	assert.False(t, ok)
	_, ok = receive(t, anon)
	assert.False(t, ok)

	hub.Notify(events.New(events.TypeFolderCreated, map[string]interface{}{
		"folder_id": uuid.NewString(),
		"author_id": author.String(),
		"is_public": true,
	}))
	for _, c := range []*Client{owner, other, anon} {
		msg, ok := receive(t, c)
		require.True(t, ok)
		assert.Equal(t, events.TypeFolderCreated, msg.Type)
	}
}

func TestHubNotify_SlowClientDropsFrames(t *testing.T) {
	hub, _ := startHub(t)
	c := attach(t, hub, nil)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	for i := 0; i < cap(c.Send)+3; i++ {
		hub.Notify(events.New(events.TypeNoteCreated, map[string]interface{}{"is_public": true}))
	}
	assert.Len(t, c.Send, cap(c.Send))
}

func TestHubLeaveAndShutdown(t *testing.T) {
	hub, cancel := startHub(t)
	first := attach(t, hub, nil)
	second := attach(t, hub, nil)

	hub.leave(first)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)
	_, open := <-first.Send
	assert.False(t, open)

	cancel()
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
	_, open = <-second.Send
	assert.False(t, open)

	assert.False(t, hub.join(&Client{Hub: hub, Send: make(chan []byte, 1)}), "a stopped hub refuses new clients")
}
