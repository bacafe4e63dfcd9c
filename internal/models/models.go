package models

import "time"

// Direction tells whether a message was sent by the user or by the assistant.
type Direction string

const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

type MessageType string

const (
	TextMessage     MessageType = "text"
	ImageMessage    MessageType = "image"
	AudioMessage    MessageType = "audio"
	VideoMessage    MessageType = "video"
	DocumentMessage MessageType = "document"
)

// Conversation status values. The engine only ever moves a conversation
// from active to human_takeover, never back.
const (
	StatusActive        = "active"
	StatusHumanTakeover = "human_takeover"
)

// StateEscalated is the terminal chatbot state written when a conversation
// is handed off to a human agent. It is deliberately not an intent label so
// state history distinguishes "classified as X" from "escalated".
const StateEscalated = "escalated_to_agent"

// Conversation is the externally owned dialog record. The engine reads its
// message history and writes ChatbotState and Status, nothing else.
type Conversation struct {
	ID           int64     `json:"id"`
	ChatbotState *string   `json:"chatbot_state,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Message is a single turn in a conversation. Content is nil for media
// messages. Immutable once created.
type Message struct {
	ID             string      `json:"id"`
	ConversationID int64       `json:"conversation_id"`
	Direction      Direction   `json:"direction"`
	Content        *string     `json:"content,omitempty"`
	Type           MessageType `json:"type"`
	CreatedAt      time.Time   `json:"created_at"`
}
