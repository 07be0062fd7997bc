package catalog

import (
	"sort"

	"github.com/Noodieknoodie/AI-HELPER/internal/models"
)

// Registry answers capability questions about the configured providers. It is
// immutable after construction and safe for concurrent use.
type Registry struct {
	providers map[string]models.Provider
	names     []string
}

// NewRegistry copies the provider catalogue keyed by provider name.
func NewRegistry(providers map[string]models.Provider) *Registry {
	r := &Registry{providers: make(map[string]models.Provider, len(providers))}
	for name, p := range providers {
		slug := NormalizeProviderSlug(name)
		if slug == "" {
			continue
		}
		p.Name = slug
		p.Models = append([]models.ModelInfo(nil), p.Models...)
		r.providers[slug] = p
		r.names = append(r.names, slug)
	}
	sort.Strings(r.names)
	return r
}

// Lookup returns the capabilities of model on provider, or the zero value when
// either is unknown.
func (r *Registry) Lookup(provider, modelID string) models.Capabilities {
	m, ok := r.Model(provider, modelID)
	if !ok {
		return models.Capabilities{}
	}
	return m.Capabilities
}

// Provider returns the configuration for name.
func (r *Registry) Provider(name string) (models.Provider, bool) {
	if r == nil {
		return models.Provider{}, false
	}
	p, ok := r.providers[NormalizeProviderSlug(name)]
	return p, ok
}

// Providers lists provider names sorted alphabetically.
func (r *Registry) Providers() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.names...)
}

// Models lists the models of provider in configuration order.
func (r *Registry) Models(provider string) []models.ModelInfo {
	p, ok := r.Provider(provider)
	if !ok {
		return nil
	}
	return append([]models.ModelInfo(nil), p.Models...)
}

// Model returns one catalogue entry.
func (r *Registry) Model(provider, modelID string) (models.ModelInfo, bool) {
	p, ok := r.Provider(provider)
	if !ok {
		return models.ModelInfo{}, false
	}
	return p.Model(modelID)
}
