package provider

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnknownModel is returned when a model identifier matches no registry
// entry. Callers detect it with errors.Is.
var ErrUnknownModel = errors.New("provider: unknown model")

// Registry routes a model identifier to the Generator that serves it. It is
// built once at startup and read-only afterwards.
type Registry struct {
	generators map[string]Generator
}

// NewRegistry creates a Registry from a model-id-keyed generator map. Every
// entry in the model table must have a generator, and every generator must
// correspond to a table entry.
func NewRegistry(generators map[string]Generator) (*Registry, error) {
	if len(generators) == 0 {
		return nil, errors.New("provider: generators must not be empty")
	}
	for _, m := range models {
		g, ok := generators[m.ID]
		if !ok {
			return nil, fmt.Errorf("provider: no generator for model %q", m.ID)
		}
		if g == nil {
			return nil, fmt.Errorf("provider: nil generator for model %q", m.ID)
		}
	}
	for id := range generators {
		if _, ok := Lookup(id); !ok {
			return nil, fmt.Errorf("provider: generator for unrecognized model %q", id)
		}
	}
	gens := make(map[string]Generator, len(generators))
	for id, g := range generators {
		gens[id] = g
	}
	return &Registry{generators: gens}, nil
}

// Generate dispatches text to the generator registered for modelID. An
// unrecognized modelID fails with ErrUnknownModel before any upstream call;
// there is no fallback between providers.
func (r *Registry) Generate(ctx context.Context, text, modelID string) (string, error) {
	g, ok := r.generators[modelID]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownModel, modelID)
	}
	out, err := g.Generate(ctx, text)
	if err != nil {
		return "", fmt.Errorf("provider: generate with %q: %w", modelID, err)
	}
	return out, nil
}
