// Package response implements the free-text generation phase.
package response

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/agrovox/chatbot-engine/internal/llm"
	"github.com/agrovox/chatbot-engine/internal/models"
	"github.com/agrovox/chatbot-engine/internal/prompt"
)

// ErrGenerationFailed covers every way the generation call can go wrong:
// backend failure, non-success response, empty text.
var ErrGenerationFailed = errors.New("response: generation failed")

const noKnowledgeBase = "No knowledge base is available at the moment."

const responseTemplate = `You are the Virtual Assistant of the Ministry of Agriculture. Your role is to provide official, accurate information to rural producers, technicians and citizens about the ministry's programs and services.

--- KNOWLEDGE BASE ---
%s
--- END OF KNOWLEDGE BASE ---

# Essential rules
1. Always be formal, technical and helpful. Use clear, direct language. Avoid emojis.
2. NEVER invent information, regulations or dates. If the answer is not in the knowledge base, say you do not have details on that specific topic at the moment and that, for detailed information, the user should consult the ministry's official website or be transferred to a specialist.
3. Do not request sensitive personal data such as CPF, CNPJ or state registration numbers.
4. Respond only with the requested text, without code or JSON formatting.

# Conversation history
%s

# Question from the producer/citizen
%s`

// Adapter generates grounded textual replies. The knowledge base is loaded
// once at startup and injected here as an immutable value; an empty string
// is a valid state and yields an explicit marker in the prompt.
type Adapter struct {
	client        llm.Client
	knowledgeBase string
	temperature   float32
	maxTokens     int
	logger        *zap.Logger
}

func NewAdapter(client llm.Client, knowledgeBase string, temperature float32, maxTokens int, logger *zap.Logger) *Adapter {
	return &Adapter{
		client:        client,
		knowledgeBase: knowledgeBase,
		temperature:   temperature,
		maxTokens:     maxTokens,
		logger:        logger,
	}
}

func (a *Adapter) Generate(ctx context.Context, history []models.Message, userMessage string) (string, error) {
	kb := a.knowledgeBase
	if kb == "" {
		kb = noKnowledgeBase
	}

	p := fmt.Sprintf(responseTemplate, kb, prompt.FormatHistory(history), userMessage)

	text, err := a.client.Complete(ctx, p, a.temperature, a.maxTokens)
	if err != nil {
		a.logger.Error("Generation backend call failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	return text, nil
}
