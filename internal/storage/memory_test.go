package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/agrovox/chatbot-engine/internal/models"
)

func TestMemoryStorageConversationLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()
	defer store.Close()

	conv, err := store.CreateConversation(ctx)
	require.NoError(t, err)
	require.Equal(t, models.StatusActive, conv.Status)
	require.Nil(t, conv.ChatbotState)

	require.NoError(t, store.UpdateState(ctx, conv.ID, "info-animal-health"))

	got, err := store.GetConversation(ctx, conv.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ChatbotState)
	require.Equal(t, "info-animal-health", *got.ChatbotState)
	require.Equal(t, models.StatusActive, got.Status)
}

func TestMemoryStorageEscalateSetsBothFieldsTogether(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()

	conv, err := store.CreateConversation(ctx)
	require.NoError(t, err)

	require.NoError(t, store.EscalateToHuman(ctx, conv.ID))

	got, err := store.GetConversation(ctx, conv.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusHumanTakeover, got.Status)
	require.NotNil(t, got.ChatbotState)
	require.Equal(t, models.StateEscalated, *got.ChatbotState)
}

func TestMemoryStorageMessagesOrderedByCreation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()

	conv, err := store.CreateConversation(ctx)
	require.NoError(t, err)

	first := "first"
	second := "second"
	base := time.Now()
	require.NoError(t, store.AppendMessage(ctx, &models.Message{
		ID:             "m2",
		ConversationID: conv.ID,
		Direction:      models.DirectionOutbound,
		Content:        &second,
		Type:           models.TextMessage,
		CreatedAt:      base.Add(time.Second),
	}))
	require.NoError(t, store.AppendMessage(ctx, &models.Message{
		ID:             "m1",
		ConversationID: conv.ID,
		Direction:      models.DirectionInbound,
		Content:        &first,
		Type:           models.TextMessage,
		CreatedAt:      base,
	}))

	msgs, err := store.ListMessages(ctx, conv.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	require.Equal(t, "m1", msgs[0].ID)
	require.Equal(t, "m2", msgs[1].ID)
}

func TestMemoryStorageUnknownConversation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()

	_, err := store.GetConversation(ctx, 42)
	require.Error(t, err)

	require.Error(t, store.UpdateState(ctx, 42, "state"))
	require.Error(t, store.EscalateToHuman(ctx, 42))

	content := "orphan"
	require.Error(t, store.AppendMessage(ctx, &models.Message{
		ID:             "m1",
		ConversationID: 42,
		Content:        &content,
		Type:           models.TextMessage,
	}))
}

func TestMemoryStorageReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()

	conv, err := store.CreateConversation(ctx)
	require.NoError(t, err)

	// Mutating a returned conversation must not leak into the store.
	conv.Status = "corrupted"

	got, err := store.GetConversation(ctx, conv.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusActive, got.Status)
}
