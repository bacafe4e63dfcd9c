// Package engine orchestrates one inbound message end to end: analyze,
// persist the detected intent, route, then reply or hand off to a human.
package engine

import (
	"context"

	"go.uber.org/zap"

	"github.com/agrovox/chatbot-engine/internal/models"
	"github.com/agrovox/chatbot-engine/internal/router"
	"github.com/agrovox/chatbot-engine/internal/storage"
)

// Fallback copy for the two failure paths the engine owns. Routing-decided
// escalations carry their own notices from the router.
const (
	analysisFailureNotice = "Sorry, I could not process your message. I will transfer you to one of our specialists."

	generationFailureNotice = "I could not find the information you need right now. I will transfer you to a specialist."
)

// Analyzer is the structured-classification phase.
type Analyzer interface {
	Analyze(ctx context.Context, history []models.Message, state *string, userMessage string) (*models.AnalysisResult, error)
}

// Generator is the free-text reply phase.
type Generator interface {
	Generate(ctx context.Context, history []models.Message, userMessage string) (string, error)
}

// Result is the engine's verdict for one inbound message. Exactly one
// action, always with a non-empty response text.
type Result struct {
	Action       models.Action
	ResponseText string
}

type Engine struct {
	analyzer  Analyzer
	generator Generator
	storage   storage.Storage
	logger    *zap.Logger
}

func New(analyzer Analyzer, generator Generator, store storage.Storage, logger *zap.Logger) *Engine {
	return &Engine{
		analyzer:  analyzer,
		generator: generator,
		storage:   store,
		logger:    logger,
	}
}

// Handle processes one inbound user message and always resolves it to a
// reply or an escalation. Callers are expected to serialize Handle per
// conversation; different conversations may run concurrently.
func (e *Engine) Handle(ctx context.Context, conversationID int64, userMessage string) Result {
	conv, err := e.storage.GetConversation(ctx, conversationID)
	if err != nil {
		e.logger.Error("Failed to load conversation",
			zap.Error(err),
			zap.Int64("conversation_id", conversationID))
		return e.escalate(ctx, conversationID, analysisFailureNotice)
	}

	history, err := e.storage.ListMessages(ctx, conversationID)
	if err != nil {
		e.logger.Error("Failed to load conversation history",
			zap.Error(err),
			zap.Int64("conversation_id", conversationID))
		return e.escalate(ctx, conversationID, analysisFailureNotice)
	}

	analysis, err := e.analyzer.Analyze(ctx, history, conv.ChatbotState, userMessage)
	if err != nil {
		e.logger.Warn("Message analysis failed, escalating to a human",
			zap.Error(err),
			zap.Int64("conversation_id", conversationID))
		return e.escalate(ctx, conversationID, analysisFailureNotice)
	}

	// Record the last detected intent before anything else can go wrong,
	// so operators see it even when a later step escalates.
	if err := e.storage.UpdateState(ctx, conversationID, string(analysis.Intent)); err != nil {
		e.logger.Error("Failed to persist conversation state",
			zap.Error(err),
			zap.Int64("conversation_id", conversationID),
			zap.String("state", string(analysis.Intent)))
	}

	decision := router.Route(*analysis)
	if decision.Action == models.ActionEscalate {
		return e.escalate(ctx, conversationID, decision.EscalationNotice)
	}

	text, err := e.generator.Generate(ctx, history, userMessage)
	if err != nil {
		e.logger.Warn("Response generation failed, escalating to a human",
			zap.Error(err),
			zap.Int64("conversation_id", conversationID))
		return e.escalate(ctx, conversationID, generationFailureNotice)
	}

	return Result{Action: models.ActionReply, ResponseText: text}
}

func (e *Engine) escalate(ctx context.Context, conversationID int64, notice string) Result {
	if err := e.storage.EscalateToHuman(ctx, conversationID); err != nil {
		e.logger.Error("Failed to persist human takeover",
			zap.Error(err),
			zap.Int64("conversation_id", conversationID))
	} else {
		e.logger.Info("Conversation escalated to human support",
			zap.Int64("conversation_id", conversationID))
	}

	return Result{Action: models.ActionEscalate, ResponseText: notice}
}
