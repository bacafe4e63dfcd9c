// Package analysis implements the structured-classification phase: one
// backend call that must come back as a fixed-schema JSON object.
package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/agrovox/chatbot-engine/internal/llm"
	"github.com/agrovox/chatbot-engine/internal/models"
	"github.com/agrovox/chatbot-engine/internal/prompt"
)

// ErrAnalysisFailed is the single failure signal of this adapter. Backend
// errors, empty responses, unextractable JSON and malformed payloads all
// collapse into it so the engine has exactly one recovery path.
var ErrAnalysisFailed = errors.New("analysis: classification failed")

type Adapter struct {
	client      llm.Client
	temperature float32
	maxTokens   int
	logger      *zap.Logger
}

func NewAdapter(client llm.Client, temperature float32, maxTokens int, logger *zap.Logger) *Adapter {
	return &Adapter{
		client:      client,
		temperature: temperature,
		maxTokens:   maxTokens,
		logger:      logger,
	}
}

// Analyze classifies userMessage in the context of the conversation so far.
// The returned result always carries a taxonomy-valid intent.
func (a *Adapter) Analyze(ctx context.Context, history []models.Message, state *string, userMessage string) (*models.AnalysisResult, error) {
	p := buildAnalysisPrompt(userMessage, prompt.FormatHistory(history), state)

	raw, err := a.client.Complete(ctx, p, a.temperature, a.maxTokens)
	if err != nil {
		a.logger.Error("Analysis backend call failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
	}

	jsonStr, err := extractJSON(raw)
	if err != nil {
		a.logger.Warn("No JSON object found in analysis response",
			zap.String("raw_response", raw))
		return nil, fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
	}

	var decoded struct {
		IsOffTopic  bool    `json:"is_off_topic"`
		ContainsPII bool    `json:"contains_pii"`
		PIIType     *string `json:"pii_type"`
		CEPDetected *string `json:"cep_detected"`
		Intent      *string `json:"intent"`
		CropOrPest  *string `json:"cultura_ou_praga_identificada"`
	}
	if err := json.Unmarshal([]byte(jsonStr), &decoded); err != nil {
		a.logger.Warn("Failed to decode analysis JSON",
			zap.Error(err),
			zap.String("raw_response", raw))
		return nil, fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
	}
	if decoded.Intent == nil {
		a.logger.Warn("Analysis JSON is missing the intent field",
			zap.String("raw_response", raw))
		return nil, fmt.Errorf("%w: missing intent", ErrAnalysisFailed)
	}

	intent, err := models.ParseIntent(*decoded.Intent)
	if err != nil {
		a.logger.Warn("Analysis returned an intent outside the taxonomy",
			zap.String("intent", *decoded.Intent))
		return nil, fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
	}

	result := &models.AnalysisResult{
		IsOffTopic:  decoded.IsOffTopic,
		ContainsPII: decoded.ContainsPII,
		PIIType:     decoded.PIIType,
		CEPDetected: decoded.CEPDetected,
		Intent:      intent,
		CropOrPest:  decoded.CropOrPest,
	}

	a.logger.Info("Analysis received",
		zap.String("intent", string(result.Intent)),
		zap.Bool("is_off_topic", result.IsOffTopic),
		zap.Bool("contains_pii", result.ContainsPII))

	return result, nil
}

// extractJSON takes the substring between the first '{' and the last '}' in
// the raw backend text. This is a best-effort scan, not a parser; stricter
// delimiter-aware scanning would change which malformed responses are
// recoverable, so the heuristic is kept as-is.
func extractJSON(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return "", errors.New("no JSON object in response")
	}
	return text[start : end+1], nil
}
