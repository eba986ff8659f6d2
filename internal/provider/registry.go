package provider

import (
	"fmt"

	"github.com/capgen/backend/internal/config"
	"github.com/capgen/backend/internal/models"
)

// Registry holds the providers built from configuration at startup. It is
// read-only after construction and safe for concurrent use.
type Registry struct {
	providers map[string]Provider
	order     []string
	defaultID string
}

// NewRegistry builds one adapter per provider with a configured credential.
// Order is fixed: gemini, openai.
func NewRegistry(cfg *config.Config) *Registry {
	r := &Registry{
		providers: make(map[string]Provider),
		defaultID: cfg.DefaultProvider,
	}
	if cfg.Gemini.APIKey != "" {
		r.add(NewGemini(cfg.Gemini))
	}
	if cfg.OpenAI.APIKey != "" {
		r.add(NewOpenAI(cfg.OpenAI))
	}
	return r
}

func (r *Registry) add(p Provider) {
	r.providers[p.ID()] = p
	r.order = append(r.order, p.ID())
}

// List returns the configured providers in registration order.
func (r *Registry) List() []models.ProviderInfo {
	infos := make([]models.ProviderInfo, 0, len(r.order))
	for _, id := range r.order {
		p := r.providers[id]
		infos = append(infos, models.ProviderInfo{
			ID:        p.ID(),
			Name:      p.Name(),
			Available: true,
			Default:   p.ID() == r.defaultID,
		})
	}
	return infos
}

// Resolve picks the provider for one request. An explicit selector must name
// a configured provider; an empty selector falls back to the default.
func (r *Registry) Resolve(selector string) (Provider, error) {
	if selector != "" {
		p, ok := r.providers[selector]
		if !ok {
			return nil, fmt.Errorf("%w: %q", models.ErrUnknownProvider, selector)
		}
		return p, nil
	}
	p, ok := r.providers[r.defaultID]
	if !ok {
		return nil, fmt.Errorf("%w: default %q has no credentials", models.ErrNoProvider, r.defaultID)
	}
	return p, nil
}
