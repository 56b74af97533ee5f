package domain

// AIModel describes one selectable model: the dispatch key, the display
// name shown in the widget, and the provider that serves it.
type AIModel struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Provider string `json:"provider"`
}

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGoogle    = "google"
)
