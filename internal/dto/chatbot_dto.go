package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionResponse struct {
	Id    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

type GetAllSessionsResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type GetChatHistoryResponse struct {
	Id         uuid.UUID      `json:"id"`
	Role       string         `json:"role"`
	Chat       string         `json:"chat"`
	CreatedAt  time.Time      `json:"created_at"`
	Action     map[string]any `json:"action,omitempty"`
	ProductIds []int64        `json:"product_ids,omitempty"`
}

// SendChatRequest starts a new session when ChatSessionId is nil.
type SendChatRequest struct {
	ChatSessionId *uuid.UUID `json:"chat_session_id"`
	Chat          string     `json:"chat" validate:"required,max=2000"`
}

type SendChatResponseChat struct {
	Id        uuid.UUID `json:"id"`
	Chat      string    `json:"chat"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type SendChatResponse struct {
	ChatSessionId    uuid.UUID             `json:"chat_session_id"`
	ChatSessionTitle string                `json:"title"`
	Sent             *SendChatResponseChat `json:"sent"`
	Reply            *SendChatResponseChat `json:"reply"`
	Action           map[string]any        `json:"action"`
	Stage            string                `json:"stage"`
	Products         []ProductResponse     `json:"products"`
}

// TurnCompletedMessage is published on the in-process bus after every turn.
type TurnCompletedMessage struct {
	UserId        uuid.UUID      `json:"user_id"`
	ChatSessionId uuid.UUID      `json:"chat_session_id"`
	ShopperId     *int64         `json:"shopper_id,omitempty"`
	MessageId     uuid.UUID      `json:"message_id"`
	Chat          string         `json:"chat"`
	Reply         string         `json:"reply"`
	Action        map[string]any `json:"action"`
	Stage         string         `json:"stage"`
	Status        string         `json:"status"`
	Attempts      int            `json:"attempts"`
	Degraded      bool           `json:"degraded"`
	ProductIds    []int64        `json:"product_ids"`
	OccurredAt    time.Time      `json:"occurred_at"`
}
