package providers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Noodieknoodie/AI-HELPER/internal/models"
)

// ErrUnsupportedProvider is returned when no builder is registered for a provider.
var ErrUnsupportedProvider = errors.New("unsupported provider")

// BuildOptions are shared by every adapter a factory builds.
type BuildOptions struct {
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Builder constructs an adapter for one configured provider.
type Builder func(provider models.Provider, opts BuildOptions) (Adapter, error)

// Factory builds provider adapters using a registry of builders.
type Factory struct {
	opts     BuildOptions
	builders map[string]Builder
}

// NewFactory creates a factory with the default provider registry.
func NewFactory(opts BuildOptions) *Factory {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Factory{opts: opts, builders: cloneDefaultBuilders()}
}

// Register allows tests or callers to override provider builders.
func (f *Factory) Register(name string, builder Builder) {
	if f.builders == nil {
		f.builders = make(map[string]Builder)
	}
	f.builders[name] = builder
}

// Supports reports whether a builder exists for name.
func (f *Factory) Supports(name string) bool {
	_, ok := f.builders[name]
	return ok
}

// Build instantiates the adapter for provider.
func (f *Factory) Build(provider models.Provider) (Adapter, error) {
	builder, ok := f.builders[provider.Name]
	if !ok {
		return nil, fmt.Errorf("%w %s", ErrUnsupportedProvider, provider.Name)
	}
	adapter, err := builder(provider, f.opts)
	if err != nil {
		return nil, fmt.Errorf("provider %q: %w", provider.Name, err)
	}
	return adapter, nil
}
