package service

import (
	"context"
	"encoding/json"

	"noter-be/internal/pkg/logger"
	"noter-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// OriginKey marks which process emitted an event so it can ignore its own echoes.
const OriginKey = "origin"

type IPublisherService interface {
	// Publish never fails the caller's operation; errors are logged.
	Publish(ctx context.Context, event events.BaseEvent)
}

type publisherService struct {
	topicName string
	pubSub    message.Publisher
	origin    string
	logger    logger.ILogger
}

func NewPublisherService(topicName string, pubSub message.Publisher, origin string, log logger.ILogger) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
		origin:    origin,
		logger:    log,
	}
}

func (p *publisherService) Publish(ctx context.Context, event events.BaseEvent) {
	if event.Data == nil {
		event.Data = map[string]interface{}{}
	}
	event.Data[OriginKey] = p.origin

	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("EVENTS", "Failed to encode event", map[string]interface{}{"type": event.Type, "error": err.Error()})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	if err := p.pubSub.Publish(p.topicName, msg); err != nil {
		p.logger.Warn("EVENTS", "Failed to publish event", map[string]interface{}{"type": event.Type, "error": err.Error()})
	}
}
