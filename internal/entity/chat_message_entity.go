package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessageRole string

const (
	ChatMessageRoleUser ChatMessageRole = "user"
	ChatMessageRoleAI   ChatMessageRole = "ai"
)

type ChatMessage struct {
	Id            uuid.UUID
	Chat          string
	Role          ChatMessageRole
	ChatSessionId uuid.UUID
	Metadata      *ChatMessageMetadata
	CreatedAt     time.Time
	UpdatedAt     *time.Time
	DeletedAt     *time.Time
	IsDeleted     bool
}

// ChatMessageMetadata is stored with assistant replies so the history
// endpoint can re-render product cards without re-running the turn.
type ChatMessageMetadata struct {
	Action     map[string]any `json:"action,omitempty"`
	Stage      string         `json:"stage,omitempty"`
	Status     string         `json:"status,omitempty"`
	ProductIds []int64        `json:"product_ids,omitempty"`
}
