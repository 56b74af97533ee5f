package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rogerjeasy/bav-roger/internal/domain"
	"github.com/rogerjeasy/bav-roger/internal/provider"
)

// Dispatcher routes text to the provider registered for a model identifier.
type Dispatcher interface {
	Generate(ctx context.Context, text, modelID string) (string, error)
}

// MessageStore persists chat messages.
type MessageStore interface {
	SaveChatMessage(ctx context.Context, msg domain.ChatMessage) error
}

// ChatService handles one chat turn: validate, record the user message,
// dispatch, record the reply.
type ChatService struct {
	dispatcher Dispatcher
	store      MessageStore
}

type ChatInput struct {
	Content string
	ModelID string
}

type ChatOutput struct {
	Message string
}

func NewChatService(d Dispatcher, s MessageStore) (*ChatService, error) {
	if d == nil {
		return nil, errors.New("usecase: dispatcher must not be nil")
	}
	if s == nil {
		return nil, errors.New("usecase: message store must not be nil")
	}
	return &ChatService{dispatcher: d, store: s}, nil
}

// Chat runs one turn. The user message is durably recorded before the
// provider call is attempted, so a failed dispatch leaves it recoverable.
// Each submission is independent; retrying after a failure produces a second
// user message, not a merge.
func (s *ChatService) Chat(ctx context.Context, in ChatInput) (ChatOutput, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return ChatOutput{}, newError(ErrorInvalidInput, "empty_content", nil)
	}
	modelID := strings.TrimSpace(in.ModelID)
	if modelID == "" {
		return ChatOutput{}, newError(ErrorInvalidInput, "empty_model_id", nil)
	}

	userMsg := domain.ChatMessage{
		ID:        newUUID(),
		Role:      domain.RoleUser,
		Content:   content,
		ModelID:   modelID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.SaveChatMessage(ctx, userMsg); err != nil {
		return ChatOutput{}, newError(ErrorInternal, "dynamodb_write_error", err)
	}

	answer, err := s.dispatcher.Generate(ctx, content, modelID)
	if err != nil {
		if errors.Is(err, provider.ErrUnknownModel) {
			return ChatOutput{}, newError(ErrorInvalidModel, "unknown_model", err)
		}
		return ChatOutput{}, newError(ErrorUpstream, "provider_error", err)
	}
	if strings.TrimSpace(answer) == "" {
		return ChatOutput{}, newError(ErrorUpstream, "empty_completion", nil)
	}

	assistantMsg := domain.ChatMessage{
		ID:        newUUID(),
		Role:      domain.RoleAssistant,
		Content:   answer,
		ModelID:   modelID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.SaveChatMessage(ctx, assistantMsg); err != nil {
		return ChatOutput{}, newError(ErrorInternal, "dynamodb_write_error", err)
	}

	return ChatOutput{Message: answer}, nil
}

var newUUID = func() string {
	return uuid.NewString()
}
