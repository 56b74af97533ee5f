// Package provider defines the generation capability every LLM backend must
// satisfy and the static model table that keys dispatch.
package provider

import (
	"context"

	"github.com/rogerjeasy/bav-roger/internal/domain"
)

// Generator produces a completion for a single block of user text. Each
// integration (OpenAI, Anthropic, Google) implements it; the registry never
// needs to know which backend is handling a request.
type Generator interface {
	Generate(ctx context.Context, text string) (string, error)
}

// Model identifiers recognized by the registry.
const (
	ModelGPT4   = "gpt-4"
	ModelGPT35  = "gpt-3.5"
	ModelClaude = "claude"
	ModelGemini = "gemini"
)

// models is the fixed model table. Adding a model is a deployment-time
// change, not a runtime one.
var models = []domain.AIModel{
	{ID: ModelGPT4, Name: "OpenAI GPT-4", Provider: domain.ProviderOpenAI},
	{ID: ModelGPT35, Name: "OpenAI GPT-3.5", Provider: domain.ProviderOpenAI},
	{ID: ModelClaude, Name: "Anthropic Claude", Provider: domain.ProviderAnthropic},
	{ID: ModelGemini, Name: "Google Gemini", Provider: domain.ProviderGoogle},
}

// Models returns the full model table in declaration order.
func Models() []domain.AIModel {
	out := make([]domain.AIModel, len(models))
	copy(out, models)
	return out
}

// Lookup returns the model for id, if it exists.
func Lookup(id string) (domain.AIModel, bool) {
	for _, m := range models {
		if m.ID == id {
			return m, true
		}
	}
	return domain.AIModel{}, false
}
