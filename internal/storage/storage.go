package storage

import (
	"context"

	"github.com/agrovox/chatbot-engine/internal/models"
)

// Storage is the conversation read/write contract the engine depends on.
// Conversations and messages are owned by the wider platform; the engine
// reads history and mutates only chatbot_state and status.
type Storage interface {
	GetConversation(ctx context.Context, id int64) (*models.Conversation, error)
	CreateConversation(ctx context.Context) (*models.Conversation, error)

	// ListMessages returns the full history ordered by creation time.
	ListMessages(ctx context.Context, conversationID int64) ([]models.Message, error)
	AppendMessage(ctx context.Context, msg *models.Message) error

	// UpdateState records the last classified intent as the chatbot state.
	UpdateState(ctx context.Context, conversationID int64, state string) error

	// EscalateToHuman sets status=human_takeover and the terminal handoff
	// state in a single write, so no reader can observe one without the other.
	EscalateToHuman(ctx context.Context, conversationID int64) error

	Close() error
}
