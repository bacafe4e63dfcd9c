package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

type OpenAIClient struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

func NewOpenAIClient(apiKey, model string, logger *zap.Logger) (*OpenAIClient, error) {
	if apiKey == "" {
		logger.Error("OpenAI API key is not configured")
		return nil, errors.New("llm: missing API key")
	}

	return &OpenAIClient{
		client: openai.NewClient(apiKey),
		model:  model,
		logger: logger,
	}, nil
}

func (c *OpenAIClient) Complete(ctx context.Context, prompt string, temperature float32, maxTokens int) (string, error) {
	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   maxTokens,
			Temperature: temperature,
		},
	)
	if err != nil {
		c.logger.Error("Backend completion request failed", zap.Error(err))
		return "", fmt.Errorf("llm: completion request: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("llm: empty completion response")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", errors.New("llm: empty completion text")
	}

	return text, nil
}
