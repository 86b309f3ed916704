package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"noter-be/internal/pkg/logger"
	"noter-be/pkg/cache"
	"noter-be/pkg/events"
	pktNats "noter-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingForwarder struct {
	mu     sync.Mutex
	events []events.Event
}

func (f *recordingForwarder) Publish(_ context.Context, event events.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func (f *recordingForwarder) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

type recordingLive struct {
	mu    sync.Mutex
	types []string
}

func (l *recordingLive) Notify(event events.BaseEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.types = append(l.types, event.Type)
}

func (l *recordingLive) seen() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.types...)
}

type capturingSource struct {
	handler pktNats.EventHandler
}

func (s *capturingSource) Subscribe(_ context.Context, _ string, handler pktNats.EventHandler) error {
	s.handler = handler
	return nil
}

type consumerFixture struct {
	ctx       context.Context
	store     *cache.MemoryStore
	memo      *cache.Cache
	publisher IPublisherService
	forwarder *recordingForwarder
	source    *capturingSource
	live      *recordingLive
}

func newConsumerFixture(t *testing.T) *consumerFixture {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	log := logger.NewNopLogger()
	store := cache.NewMemoryStore()
	memo := cache.New(store, 150*time.Millisecond, log)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { _ = pubSub.Close() })

	forwarder := &recordingForwarder{}
	source := &capturingSource{}
	live := &recordingLive{}
	consumer := NewConsumerService(pubSub, "content-events", memo, forwarder, source, live, "local", log)
	require.NoError(t, consumer.Consume(ctx))

	return &consumerFixture{
		ctx:       ctx,
		store:     store,
		memo:      memo,
		publisher: NewPublisherService("content-events", pubSub, "local", log),
		forwarder: forwarder,
		source:    source,
		live:      live,
	}
}

func (f *consumerFixture) has(key string) bool {
	_, found, _ := f.store.Get(f.ctx, key)
	return found
}

func TestConsumer_LocalEventPurgesCachesAndForwards(t *testing.T) {
	f := newConsumerFixture(t)
	noteId, authorId := uuid.New(), uuid.New()

	f.memo.SetJSON(f.ctx, cache.NoteKey(noteId, &authorId), "owner", time.Minute)
	f.memo.SetJSON(f.ctx, cache.NoteKey(noteId, nil), "shared", time.Minute)
	f.memo.SetJSON(f.ctx, cache.ExploreKey(50, 50), "feed", time.Minute)
	f.memo.SetJSON(f.ctx, cache.PublicNotesKey(50), "feed", time.Minute)

	f.publisher.Publish(f.ctx, events.New(events.TypeNoteUpdated, map[string]interface{}{
		"note_id":   noteId.String(),
		"author_id": authorId.String(),
	}))

	assert.Eventually(t, func() bool {
		return !f.has(cache.NoteKey(noteId, &authorId)) &&
			!f.has(cache.NoteKey(noteId, nil)) &&
			!f.has(cache.ExploreKey(50, 50)) &&
			!f.has(cache.PublicNotesKey(50))
	}, time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool { return f.forwarder.count() == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{events.TypeNoteUpdated}, f.live.seen())
}

func TestConsumer_CreateEventOnlyPurgesFeeds(t *testing.T) {
	f := newConsumerFixture(t)
	noteId, authorId := uuid.New(), uuid.New()

	f.memo.SetJSON(f.ctx, cache.NoteKey(noteId, nil), "shared", time.Minute)
	f.memo.SetJSON(f.ctx, cache.ExploreKey(10, 10), "feed", time.Minute)

	f.publisher.Publish(f.ctx, events.New(events.TypeNoteCreated, map[string]interface{}{
		"note_id":   noteId.String(),
		"author_id": authorId.String(),
	}))

	assert.Eventually(t, func() bool { return !f.has(cache.ExploreKey(10, 10)) }, time.Second, 10*time.Millisecond)
	assert.True(t, f.has(cache.NoteKey(noteId, nil)))
}

func TestConsumer_RemoteEvents(t *testing.T) {
	f := newConsumerFixture(t)
	require.NotNil(t, f.source.handler)
	noteId, authorId := uuid.New(), uuid.New()
	payload := map[string]interface{}{"note_id": noteId.String(), "author_id": authorId.String()}

	f.memo.SetJSON(f.ctx, cache.NoteKey(noteId, nil), "shared", time.Minute)

	own := events.New(events.TypeNoteDeleted, payload)
	own.Data[OriginKey] = "local"
	require.NoError(t, f.source.handler(f.ctx, own))
	assert.True(t, f.has(cache.NoteKey(noteId, nil)), "echoes of our own events are ignored")

	peer := events.New(events.TypeNoteDeleted, map[string]interface{}{
		"note_id":   noteId.String(),
		"author_id": authorId.String(),
		OriginKey:   "peer",
	})
	require.NoError(t, f.source.handler(f.ctx, peer))
	assert.False(t, f.has(cache.NoteKey(noteId, nil)))
	assert.Zero(t, f.forwarder.count(), "peer events are never re-forwarded")
	assert.Equal(t, []string{events.TypeNoteDeleted}, f.live.seen(), "peer events still reach local live clients")
}
