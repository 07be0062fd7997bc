// Package session holds the provider, model, parameters and credential of
// one tool run and dispatches prompts to the selected provider.
package session

import (
	"log/slog"
	"maps"
	"net/http"
	"sync"

	"github.com/Noodieknoodie/AI-HELPER/internal/catalog"
	"github.com/Noodieknoodie/AI-HELPER/internal/credentials"
	"github.com/Noodieknoodie/AI-HELPER/internal/models"
	"github.com/Noodieknoodie/AI-HELPER/internal/observability"
	"github.com/Noodieknoodie/AI-HELPER/internal/providers"
)

const defaultProvider = "anthropic"

// Session is the mutable state of one tool run. All methods are safe for
// concurrent use; Send works on a snapshot so configuration changes made
// while a request is in flight only affect later sends.
type Session struct {
	registry    *catalog.Registry
	factory     *providers.Factory
	credentials credentials.Store
	httpClient  *http.Client
	logger      *slog.Logger
	metrics     *observability.Metrics

	mu         sync.Mutex
	provider   string
	modelID    string
	parameters map[string]any
	derived    map[string]struct{}
	apiKey     string
	keys       map[string]string

	extendedThinking *models.ExtendedThinking
	thinking         *models.Thinking
	reasoningEffort  *models.ReasoningEffort

	lastUsage *models.Usage
	adapters  map[string]providers.Adapter
}

// Option customises a Session at construction.
type Option func(*Session)

// WithProvider selects the initial provider. Unknown names fall back to the
// default provider.
func WithProvider(name string) Option {
	return func(s *Session) { s.provider = catalog.NormalizeProviderSlug(name) }
}

// WithModel selects the initial model instead of the provider default.
func WithModel(id string) Option {
	return func(s *Session) { s.modelID = id }
}

// WithParameters seeds the generation parameters. They are never replaced
// by derived defaults during construction.
func WithParameters(params map[string]any) Option {
	return func(s *Session) { maps.Copy(s.parameters, params) }
}

// WithCredentials injects the store used to load a key whenever the
// provider changes.
func WithCredentials(store credentials.Store) Option {
	return func(s *Session) { s.credentials = store }
}

// WithAPIKey sets the credential for the initial provider.
func WithAPIKey(key string) Option {
	return func(s *Session) { s.apiKey = key }
}

func WithHTTPClient(client *http.Client) Option {
	return func(s *Session) { s.httpClient = client }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

func WithMetrics(metrics *observability.Metrics) Option {
	return func(s *Session) { s.metrics = metrics }
}

// WithFactory replaces the adapter factory, mostly for tests.
func WithFactory(factory *providers.Factory) Option {
	return func(s *Session) { s.factory = factory }
}

// New creates a session over registry.
func New(registry *catalog.Registry, opts ...Option) *Session {
	s := &Session{
		registry:   registry,
		parameters: map[string]any{},
		derived:    map[string]struct{}{},
		keys:       map[string]string{},
		adapters:   map[string]providers.Adapter{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.factory == nil {
		s.factory = providers.NewFactory(providers.BuildOptions{HTTPClient: s.httpClient, Logger: s.logger})
	}

	s.provider = s.initialProvider()
	if s.modelID == "" {
		if p, ok := registry.Provider(s.provider); ok {
			s.modelID = p.DefaultModel
		}
	}
	if s.apiKey == "" && s.credentials != nil && s.provider != "" {
		s.apiKey = s.credentials.Load(s.provider)
	}
	if s.apiKey != "" {
		s.keys[s.provider] = s.apiKey
	}
	s.configureForModel(true)
	return s
}

func (s *Session) initialProvider() string {
	for _, name := range []string{s.provider, defaultProvider} {
		if p, ok := s.registry.Provider(name); ok {
			return p.Name
		}
	}
	if names := s.registry.Providers(); len(names) > 0 {
		return names[0]
	}
	return ""
}

// Provider returns the active provider name.
func (s *Session) Provider() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.provider
}

// Model returns the active model id.
func (s *Session) Model() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.modelID
}

// Parameters returns a copy of the generation parameters.
func (s *Session) Parameters() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.parameters)
}

// Capabilities returns the capabilities of the active model.
func (s *Session) Capabilities() models.Capabilities {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Lookup(s.provider, s.modelID)
}

// ModelInfo returns the catalogue entry of the active model, if any.
func (s *Session) ModelInfo() (models.ModelInfo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Model(s.provider, s.modelID)
}

// ExtendedThinking returns the extended thinking mode, or nil when the
// active model does not support it.
func (s *Session) ExtendedThinking() *models.ExtendedThinking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clonePtr(s.extendedThinking)
}

// Thinking returns the thinking mode, or nil when unsupported.
func (s *Session) Thinking() *models.Thinking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clonePtr(s.thinking)
}

// ReasoningEffort returns the reasoning effort, or nil when unsupported.
func (s *Session) ReasoningEffort() *models.ReasoningEffort {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clonePtr(s.reasoningEffort)
}

// LastUsage returns the usage of the last successful call that reported
// one, or nil.
func (s *Session) LastUsage() *models.Usage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clonePtr(s.lastUsage)
}

// APIKeySet reports whether a credential is associated with the provider.
func (s *Session) APIKeySet() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apiKey != ""
}

// AvailableProviders lists the configured providers.
func (s *Session) AvailableProviders() []string {
	return s.registry.Providers()
}

// AvailableModels lists the models of provider, or of the active provider
// when provider is empty.
func (s *Session) AvailableModels(provider string) []models.ModelInfo {
	if provider == "" {
		provider = s.Provider()
	}
	return s.registry.Models(provider)
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
