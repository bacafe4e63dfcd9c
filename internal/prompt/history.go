// Package prompt holds the plain-text formatting shared by the analysis and
// response prompts.
package prompt

import (
	"fmt"
	"strings"

	"github.com/agrovox/chatbot-engine/internal/models"
)

// FormatHistory renders prior messages as alternating labeled turns. Media
// messages without text content get a placeholder so the backend still sees
// the turn happened.
func FormatHistory(history []models.Message) string {
	if len(history) == 0 {
		return "No prior conversation history."
	}

	var b strings.Builder
	b.WriteString("Conversation history:\n")
	for _, msg := range history {
		author := "Producer"
		if msg.Direction == models.DirectionOutbound {
			author = "Assistant"
		}
		content := fmt.Sprintf("[Media: %s]", msg.Type)
		if msg.Content != nil {
			content = *msg.Content
		}
		fmt.Fprintf(&b, "%s: %s\n", author, content)
	}
	return b.String()
}
