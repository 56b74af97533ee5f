// Package transcript implements the chat widget's client-side state: an
// ordered in-memory message list over a single remote chat endpoint.
package transcript

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/rogerjeasy/bav-roger/internal/domain"
	"github.com/rogerjeasy/bav-roger/internal/provider"
)

// Sender submits one user message and returns the assistant reply.
type Sender interface {
	Send(ctx context.Context, content, modelID string) (string, error)
}

// Transcript holds the ordered message list. The user message is appended
// optimistically before the call; on failure nothing further is appended and
// the failure is only logged, so the transcript shows the absence of a reply
// rather than an error state. Concurrent submissions are independent and
// append in response-arrival order.
type Transcript struct {
	sender Sender
	log    *slog.Logger

	mu       sync.Mutex
	modelID  string
	messages []domain.ChatMessage
	inflight int
}

// New creates a Transcript starting on modelID.
func New(sender Sender, modelID string, log *slog.Logger) (*Transcript, error) {
	if sender == nil {
		return nil, errors.New("transcript: sender must not be nil")
	}
	if _, ok := provider.Lookup(modelID); !ok {
		return nil, fmt.Errorf("transcript: unknown model %q", modelID)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Transcript{sender: sender, log: log, modelID: modelID}, nil
}

// Messages returns a copy of the transcript in append order.
func (t *Transcript) Messages() []domain.ChatMessage {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]domain.ChatMessage, len(t.messages))
	copy(out, t.messages)
	return out
}

// Model returns the currently selected model identifier.
func (t *Transcript) Model() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.modelID
}

// Sending reports whether any submission is in flight.
func (t *Transcript) Sending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.inflight > 0
}

// SwitchModel selects a different model and appends a local system message
// narrating the switch. The system message is never sent to the server and
// never persisted.
func (t *Transcript) SwitchModel(modelID string) error {
	m, ok := provider.Lookup(modelID)
	if !ok {
		return fmt.Errorf("transcript: unknown model %q", modelID)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.modelID = m.ID
	t.messages = append(t.messages, domain.ChatMessage{
		Role:      domain.RoleSystem,
		Content:   "Switched to " + m.Name,
		CreatedAt: time.Now().UTC(),
	})
	return nil
}

// Submit sends content as a user message. Blank input is ignored. The reply
// is appended on success; on failure the transcript is left with the
// unanswered user message.
func (t *Transcript) Submit(ctx context.Context, content string) {
	if strings.TrimSpace(content) == "" {
		return
	}

	t.mu.Lock()
	modelID := t.modelID
	t.messages = append(t.messages, domain.ChatMessage{
		Role:      domain.RoleUser,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	})
	t.inflight++
	t.mu.Unlock()

	reply, err := t.sender.Send(ctx, content, modelID)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.inflight--
	if err != nil {
		t.log.Error("error sending message", "err", err)
		return
	}
	t.messages = append(t.messages, domain.ChatMessage{
		Role:      domain.RoleAssistant,
		Content:   reply,
		CreatedAt: time.Now().UTC(),
	})
}
