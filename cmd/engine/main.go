package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agrovox/chatbot-engine/internal/analysis"
	"github.com/agrovox/chatbot-engine/internal/engine"
	"github.com/agrovox/chatbot-engine/internal/llm"
	"github.com/agrovox/chatbot-engine/internal/models"
	"github.com/agrovox/chatbot-engine/internal/response"
	"github.com/agrovox/chatbot-engine/internal/storage"
	"github.com/agrovox/chatbot-engine/pkg/config"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err), zap.String("path", "config.yaml"))
	}

	// Initialize storage
	var store storage.Storage
	if cfg.Database.UseInMemory {
		logger.Info("Using in-memory storage")
		store = storage.NewMemoryStorage()
	} else {
		logger.Info("Using PostgreSQL storage")
		dbConfig := storage.DatabaseConfig{
			Host:        cfg.Database.Host,
			Port:        cfg.Database.Port,
			User:        cfg.Database.User,
			Password:    cfg.Database.Password,
			DBName:      cfg.Database.DBName,
			SSLMode:     cfg.Database.SSLMode,
			UseInMemory: cfg.Database.UseInMemory,
		}
		store, err = storage.NewPostgresStorage(dbConfig, logger)
		if err != nil {
			logger.Fatal("Failed to initialize storage", zap.Error(err))
		}
	}
	defer store.Close()

	// Load the knowledge base once; running without one is allowed.
	knowledgeBase := ""
	if data, err := os.ReadFile(cfg.Knowledge.Path); err != nil {
		logger.Warn("Knowledge base not loaded, generation will run without a corpus",
			zap.Error(err),
			zap.String("path", cfg.Knowledge.Path))
	} else {
		knowledgeBase = string(data)
	}

	// Initialize the backend client and both adapters
	client, err := llm.NewOpenAIClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, logger)
	if err != nil {
		logger.Fatal("Failed to create backend client", zap.Error(err))
	}

	analyzer := analysis.NewAdapter(client, float32(cfg.OpenAI.AnalysisTemperature), cfg.OpenAI.MaxTokens, logger)
	generator := response.NewAdapter(client, knowledgeBase, float32(cfg.OpenAI.GenerationTemperature), cfg.OpenAI.MaxTokens, logger)

	eng := engine.New(analyzer, generator, store, logger)

	if err := runConsole(eng, store, logger); err != nil {
		logger.Fatal("Console error", zap.Error(err))
	}
}

// runConsole drives the engine from stdin against a single conversation.
// Message transport is owned by the wider platform; this loop stands in for
// it during local runs.
func runConsole(eng *engine.Engine, store storage.Storage, logger *zap.Logger) error {
	ctx := context.Background()

	conv, err := store.CreateConversation(ctx)
	if err != nil {
		return fmt.Errorf("failed to create conversation: %w", err)
	}
	logger.Info("Console session started", zap.Int64("conversation_id", conv.ID))

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			fmt.Print("> ")
			continue
		}

		inbound := &models.Message{
			ID:             uuid.New().String(),
			ConversationID: conv.ID,
			Direction:      models.DirectionInbound,
			Content:        &text,
			Type:           models.TextMessage,
		}
		if err := store.AppendMessage(ctx, inbound); err != nil {
			logger.Error("Failed to record inbound message", zap.Error(err))
		}

		result := eng.Handle(ctx, conv.ID, text)
		fmt.Printf("[%s] %s\n", result.Action, result.ResponseText)

		reply := result.ResponseText
		outbound := &models.Message{
			ID:             uuid.New().String(),
			ConversationID: conv.ID,
			Direction:      models.DirectionOutbound,
			Content:        &reply,
			Type:           models.TextMessage,
		}
		if err := store.AppendMessage(ctx, outbound); err != nil {
			logger.Error("Failed to record outbound message", zap.Error(err))
		}

		if result.Action == models.ActionEscalate {
			logger.Info("Conversation handed off, ending console session",
				zap.Int64("conversation_id", conv.ID))
			return nil
		}
		fmt.Print("> ")
	}

	return scanner.Err()
}
