package prompt

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agrovox/chatbot-engine/internal/models"
)

func TestFormatHistoryEmpty(t *testing.T) {
	require.Equal(t, "No prior conversation history.", FormatHistory(nil))
}

func TestFormatHistoryTurnsAndMediaPlaceholder(t *testing.T) {
	question := "how do I join the credit program?"
	answer := "You can apply through an accredited bank."
	msgs := []models.Message{
		{Direction: models.DirectionInbound, Content: &question, Type: models.TextMessage},
		{Direction: models.DirectionOutbound, Content: &answer, Type: models.TextMessage},
		{Direction: models.DirectionInbound, Content: nil, Type: models.ImageMessage},
	}

	got := FormatHistory(msgs)
	require.Contains(t, got, "Producer: how do I join the credit program?")
	require.Contains(t, got, "Assistant: You can apply through an accredited bank.")
	require.Contains(t, got, "Producer: [Media: image]")
}
