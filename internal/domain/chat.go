package domain

import "time"

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleSystem    Role = "system"
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is one of the three recognized roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleSystem, RoleAssistant:
		return true
	}
	return false
}

// ChatMessage is a single chat turn. Persisted messages always carry a
// non-empty Content and a valid Role; system messages exist only in the
// client-side transcript and are never persisted.
type ChatMessage struct {
	ID        string    `json:"id,omitempty"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	ModelID   string    `json:"modelId,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// PromptMessage is the provider-agnostic message shape sent to the LLM
// integrations.
type PromptMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
