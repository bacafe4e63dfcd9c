package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/agrovox/chatbot-engine/internal/models"
)

// MemoryStorage is an in-memory Storage for tests and local runs.
type MemoryStorage struct {
	mu            sync.RWMutex
	nextID        int64
	conversations map[int64]*models.Conversation
	messages      map[int64][]models.Message
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		nextID:        1,
		conversations: make(map[int64]*models.Conversation),
		messages:      make(map[int64][]models.Message),
	}
}

func (s *MemoryStorage) GetConversation(ctx context.Context, id int64) (*models.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, exists := s.conversations[id]
	if !exists {
		return nil, fmt.Errorf("conversation %d not found", id)
	}
	copied := *conv
	return &copied, nil
}

func (s *MemoryStorage) CreateConversation(ctx context.Context) (*models.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	conv := &models.Conversation{
		ID:        s.nextID,
		Status:    models.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.nextID++
	s.conversations[conv.ID] = conv

	copied := *conv
	return &copied, nil
}

func (s *MemoryStorage) ListMessages(ctx context.Context, conversationID int64) ([]models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := make([]models.Message, len(s.messages[conversationID]))
	copy(msgs, s.messages[conversationID])
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].CreatedAt.Before(msgs[j].CreatedAt)
	})
	return msgs, nil
}

func (s *MemoryStorage) AppendMessage(ctx context.Context, msg *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.conversations[msg.ConversationID]; !exists {
		return fmt.Errorf("conversation %d not found", msg.ConversationID)
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	s.messages[msg.ConversationID] = append(s.messages[msg.ConversationID], *msg)
	return nil
}

func (s *MemoryStorage) UpdateState(ctx context.Context, conversationID int64, state string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, exists := s.conversations[conversationID]
	if !exists {
		return fmt.Errorf("conversation %d not found", conversationID)
	}
	conv.ChatbotState = &state
	conv.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryStorage) EscalateToHuman(ctx context.Context, conversationID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, exists := s.conversations[conversationID]
	if !exists {
		return fmt.Errorf("conversation %d not found", conversationID)
	}
	state := models.StateEscalated
	conv.Status = models.StatusHumanTakeover
	conv.ChatbotState = &state
	conv.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryStorage) Close() error {
	return nil
}
