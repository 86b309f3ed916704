package service

import (
	"context"
	"encoding/json"

	"noter-be/internal/pkg/logger"
	"noter-be/pkg/cache"
	"noter-be/pkg/events"
	pktNats "noter-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// EventForwarder ships local events to other instances.
type EventForwarder interface {
	Publish(ctx context.Context, event events.Event) error
}

// EventSource delivers events published by other instances.
type EventSource interface {
	Subscribe(ctx context.Context, subject string, handler pktNats.EventHandler) error
}

// LiveNotifier pushes applied events to connected clients.
type LiveNotifier interface {
	Notify(event events.BaseEvent)
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService applies content changes to the caches and live clients.
// With a bus configured it also forwards events to peers and applies theirs.
type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	cache      *cache.Cache
	forwarder  EventForwarder
	source     EventSource
	live       LiveNotifier
	origin     string
	logger     logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	c *cache.Cache,
	forwarder EventForwarder,
	source EventSource,
	live LiveNotifier,
	origin string,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		cache:      c,
		forwarder:  forwarder,
		source:     source,
		live:       live,
		origin:     origin,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	if cs.source != nil {
		err := cs.source.Subscribe(ctx, pktNats.Subject(">"), func(ctx context.Context, event events.BaseEvent) error {
			if event.String(OriginKey) == cs.origin {
				return nil
			}
			cs.apply(ctx, event)
			return nil
		})
		if err != nil {
			cs.logger.Warn("EVENTS", "Remote event subscription failed, running standalone", map[string]interface{}{"error": err.Error()})
		}
	}

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var event events.BaseEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		cs.logger.Error("EVENTS", "Dropping undecodable event", map[string]interface{}{"error": err.Error()})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.apply(ctx, event)

	if cs.forwarder != nil {
		if err := cs.forwarder.Publish(ctx, event); err != nil {
			cs.logger.Warn("EVENTS", "Failed to forward event", map[string]interface{}{"type": event.Type, "error": err.Error()})
		}
	}

	msg.Ack()
}

func (cs *consumerService) apply(ctx context.Context, event events.BaseEvent) {
	switch event.Type {
	case events.TypeNoteUpdated, events.TypeNoteDeleted:
		noteId, errNote := uuid.Parse(event.String("note_id"))
		authorId, errAuthor := uuid.Parse(event.String("author_id"))
		if errNote == nil && errAuthor == nil {
			cs.cache.InvalidateNote(ctx, noteId, authorId)
		}
	}

	cs.cache.InvalidateFeeds(ctx)
	if cs.live != nil {
		cs.live.Notify(event)
	}
	cs.logger.Debug("EVENTS", "Applied event", map[string]interface{}{"type": event.Type})
}
