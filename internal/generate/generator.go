// Package generate produces stub chat responses per provider. Each known
// provider has a dedicated generator; unknown providers fall back to a default
// that reports the provider as unsupported. Swapping a stub for a real client
// means replacing one Generator value in the registry.
package generate

import (
	"fmt"

	"github.com/google/uuid"
)

// Response is the generation result surfaced to the client.
type Response struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Text     string `json:"response"`
}

// Generator produces a response for a model/prompt pair. Implementations must
// embed the model identifier and a fresh opaque response id in the text.
type Generator interface {
	Generate(model, prompt string) Response
}

// Registry maps provider identifiers to generators. Resolution never fails:
// unrecognized providers get the fallback.
type Registry struct {
	generators map[string]Generator
	fallback   Generator
}

// NewRegistry builds the dispatch table for all known providers.
func NewRegistry() *Registry {
	return &Registry{
		generators: map[string]Generator{
			"openai":    stubGenerator{provider: "openai", label: "OpenAI"},
			"anthropic": stubGenerator{provider: "anthropic", label: "Anthropic"},
			"google":    stubGenerator{provider: "google", label: "Google"},
		},
		fallback: defaultGenerator{},
	}
}

// Resolve returns the generator for a provider, or the default generator when
// the provider is not registered.
func (r *Registry) Resolve(provider string) Generator {
	if g, ok := r.generators[provider]; ok {
		return g
	}
	return r.fallback
}

// stubGenerator echoes the prompt back with a per-call response id.
type stubGenerator struct {
	provider string
	label    string
}

func (g stubGenerator) Generate(model, prompt string) Response {
	responseID := fmt.Sprintf("%s_response_%s", g.provider, uuid.New().String()[:8])
	return Response{
		Provider: g.provider,
		Model:    model,
		Text: fmt.Sprintf("%s: Processed prompt '%s' with model %s. Response ID: %s",
			g.label, prompt, model, responseID),
	}
}

// defaultGenerator answers for providers outside the registry. It ignores the
// prompt and reports the requested model under provider "unknown".
type defaultGenerator struct{}

func (defaultGenerator) Generate(model, prompt string) Response {
	return Response{
		Provider: "unknown",
		Model:    model,
		Text:     "Unknown provider requested. Please use a supported provider.",
	}
}
