package service

import (
	"context"
	"encoding/json"

	"stylista-be/internal/dto"
	"stylista-be/internal/pkg/logger"
	"stylista-be/pkg/events"
	pktNats "stylista-be/pkg/nats"
)

const notificationDurable = "stylista-turn-notifier"

// NotificationService relays turn events from the bus to the user's
// websocket connections.
type NotificationService struct {
	subscriber *pktNats.Subscriber
	delivery   TurnDelivery
	logger     logger.ILogger
}

func NewNotificationService(sub *pktNats.Subscriber, delivery TurnDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

func (s *NotificationService) Start() {
	if err := s.subscriber.Subscribe(events.TypeChatTurnCompleted, notificationDurable, s.handleEvent); err != nil {
		s.logger.Error("NOTIFICATION", "Failed to start subscriber", map[string]interface{}{"error": err.Error()})
		return
	}
	s.logger.Info("NOTIFICATION", "Listening for turn events", nil)
}

// handleEvent drops payloads it cannot decode instead of redelivering them.
func (s *NotificationService) handleEvent(_ context.Context, event events.Event) error {
	raw, err := json.Marshal(event.Payload())
	if err != nil {
		return nil
	}
	var turn dto.TurnCompletedMessage
	if err := json.Unmarshal(raw, &turn); err != nil {
		s.logger.Warn("NOTIFICATION", "Malformed turn event", map[string]interface{}{"error": err.Error()})
		return nil
	}

	s.delivery.Send(turn.UserId, TurnFrameType, turn)
	return nil
}
