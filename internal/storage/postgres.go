package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/agrovox/chatbot-engine/internal/models"
)

//go:embed migrations.sql
var migrations embed.FS

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	UseInMemory bool
}

type PostgresStorage struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewPostgresStorage(config DatabaseConfig, logger *zap.Logger) (*PostgresStorage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	storage := &PostgresStorage{db: db, logger: logger}

	if err := storage.initializeSchema(); err != nil {
		return nil, fmt.Errorf("error initializing database schema: %w", err)
	}
	logger.Info("PostgreSQL storage ready",
		zap.String("host", config.Host),
		zap.String("dbname", config.DBName))

	return storage, nil
}

func (s *PostgresStorage) initializeSchema() error {
	migrationSQL, err := migrations.ReadFile("migrations.sql")
	if err != nil {
		return fmt.Errorf("error reading migrations file: %w", err)
	}

	if _, err := s.db.Exec(string(migrationSQL)); err != nil {
		return fmt.Errorf("error executing migrations: %w", err)
	}

	return nil
}

func (s *PostgresStorage) GetConversation(ctx context.Context, id int64) (*models.Conversation, error) {
	query := `
		SELECT id, chatbot_state, status, created_at, updated_at
		FROM conversations
		WHERE id = $1`

	conv := &models.Conversation{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&conv.ID,
		&conv.ChatbotState,
		&conv.Status,
		&conv.CreatedAt,
		&conv.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("error getting conversation %d: %w", id, err)
	}

	return conv, nil
}

func (s *PostgresStorage) CreateConversation(ctx context.Context) (*models.Conversation, error) {
	query := `
		INSERT INTO conversations (status)
		VALUES ($1)
		RETURNING id, chatbot_state, status, created_at, updated_at`

	conv := &models.Conversation{}
	err := s.db.QueryRowContext(ctx, query, models.StatusActive).Scan(
		&conv.ID,
		&conv.ChatbotState,
		&conv.Status,
		&conv.CreatedAt,
		&conv.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("error creating conversation: %w", err)
	}

	return conv, nil
}

func (s *PostgresStorage) ListMessages(ctx context.Context, conversationID int64) ([]models.Message, error) {
	query := `
		SELECT id, conversation_id, direction, content, message_type, created_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, conversationID)
	if err != nil {
		return nil, fmt.Errorf("error querying messages: %w", err)
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var msg models.Message
		err := rows.Scan(
			&msg.ID,
			&msg.ConversationID,
			&msg.Direction,
			&msg.Content,
			&msg.Type,
			&msg.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning message: %w", err)
		}
		messages = append(messages, msg)
	}

	return messages, rows.Err()
}

func (s *PostgresStorage) AppendMessage(ctx context.Context, msg *models.Message) error {
	query := `
		INSERT INTO messages (id, conversation_id, direction, content, message_type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	err := s.db.QueryRowContext(
		ctx,
		query,
		msg.ID,
		msg.ConversationID,
		msg.Direction,
		msg.Content,
		msg.Type,
	).Scan(&msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("error appending message: %w", err)
	}

	return nil
}

func (s *PostgresStorage) UpdateState(ctx context.Context, conversationID int64, state string) error {
	query := `
		UPDATE conversations
		SET chatbot_state = $1, updated_at = NOW()
		WHERE id = $2`

	result, err := s.db.ExecContext(ctx, query, state, conversationID)
	if err != nil {
		return fmt.Errorf("error updating conversation state: %w", err)
	}

	return requireOneRow(result, conversationID)
}

func (s *PostgresStorage) EscalateToHuman(ctx context.Context, conversationID int64) error {
	// Single UPDATE so status and state change atomically.
	query := `
		UPDATE conversations
		SET status = $1, chatbot_state = $2, updated_at = NOW()
		WHERE id = $3`

	result, err := s.db.ExecContext(ctx, query, models.StatusHumanTakeover, models.StateEscalated, conversationID)
	if err != nil {
		return fmt.Errorf("error escalating conversation: %w", err)
	}

	return requireOneRow(result, conversationID)
}

func requireOneRow(result sql.Result, conversationID int64) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("conversation %d not found", conversationID)
	}
	return nil
}

func (s *PostgresStorage) Close() error {
	return s.db.Close()
}
