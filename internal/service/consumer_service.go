package service

import (
	"context"
	"encoding/json"

	"stylista-be/internal/dto"
	"stylista-be/internal/pkg/logger"
	"stylista-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

const TurnFrameType = "chat_turn"

// EventPublisher is the NATS side of the bus.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// TurnDelivery pushes frames to a user's live connections.
type TurnDelivery interface {
	Send(userID uuid.UUID, eventType string, payload any)
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	events     EventPublisher
	delivery   TurnDelivery
	analytics  logger.ILogger
	logger     logger.ILogger
}

// NewConsumerService handles turn-completed messages from the in-process
// bus. With an event publisher the turn is forwarded to NATS and the
// notification service does the websocket push; without one it is pushed
// here directly.
func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	events EventPublisher,
	delivery TurnDelivery,
	analytics logger.ILogger,
	logger logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		events:     events,
		delivery:   delivery,
		analytics:  analytics,
		logger:     logger,
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

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var turn dto.TurnCompletedMessage
	if err := json.Unmarshal(msg.Payload, &turn); err != nil {
		cs.logger.Error("CONSUMER", "Failed to unmarshal turn", map[string]interface{}{"error": err.Error()})
		msg.Ack()
		return
	}

	cs.analytics.Info("TURN", "Turn completed", map[string]interface{}{
		"user_id":         turn.UserId.String(),
		"chat_session_id": turn.ChatSessionId.String(),
		"shopper_id":      turn.ShopperId,
		"action":          turn.Action,
		"stage":           turn.Stage,
		"status":          turn.Status,
		"attempts":        turn.Attempts,
		"degraded":        turn.Degraded,
		"product_ids":     turn.ProductIds,
	})

	if cs.events == nil {
		cs.delivery.Send(turn.UserId, TurnFrameType, turn)
		msg.Ack()
		return
	}

	evt, err := events.NewChatTurnCompleted(turn, turn.OccurredAt)
	if err != nil {
		cs.logger.Error("CONSUMER", "Failed to build turn event", map[string]interface{}{"error": err.Error()})
		msg.Ack()
		return
	}
	if err := cs.events.Publish(ctx, evt); err != nil {
		cs.logger.Warn("CONSUMER", "Event bus unavailable, pushing directly", map[string]interface{}{"error": err.Error()})
		cs.delivery.Send(turn.UserId, TurnFrameType, turn)
	}
	msg.Ack()
}
