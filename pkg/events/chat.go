package events

import (
	"encoding/json"
	"time"
)

const TypeChatTurnCompleted = "CHAT_TURN_COMPLETED"

// NewChatTurnCompleted flattens a turn record into an event payload. The
// record is round-tripped through JSON so the payload uses its wire names.
func NewChatTurnCompleted(turn any, occurredAt time.Time) (BaseEvent, error) {
	raw, err := json.Marshal(turn)
	if err != nil {
		return BaseEvent{}, err
	}
	var data map[string]interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return BaseEvent{}, err
	}
	return BaseEvent{Type: TypeChatTurnCompleted, Data: data, OccurredAt: occurredAt}, nil
}
