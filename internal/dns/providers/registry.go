package providers

import (
	"fmt"
	"sort"
	"sync"

	"ffc/zonectl/internal/dns/domain"
	"ffc/zonectl/internal/util"
)

// Config carries the resolved credential and endpoint settings a factory
// needs to construct a provider. The token has already been through the
// credential precedence chain; factories only require it to be nonempty.
type Config struct {
	// Token is the bearer credential for the provider API.
	Token string

	// BaseURL overrides the provider's default API endpoint. Empty
	// means the provider default. Used for self-hosted gateways and
	// tests.
	BaseURL string
}

// Factory is a constructor function that builds a DNS Provider from
// resolved configuration.
type Factory func(cfg Config) (domain.Provider, error)

var (
	mu       sync.RWMutex
	registry = map[string]Factory{}
)

// Register adds a provider factory to the DNS registry.
// It panics on empty name, nil factory, or duplicate registration
// (programmer errors detected at startup).
func Register(name string, factory Factory) {
	normalizedName := util.NormalizeKey(name)
	if normalizedName == "" {
		panic("dns/providers: empty provider name")
	}
	if factory == nil {
		panic("dns/providers: nil factory")
	}

	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[normalizedName]; exists {
		panic(fmt.Sprintf("dns/providers: provider %q already registered", name))
	}

	registry[normalizedName] = factory
}

// Get constructs and returns the DNS Provider for the given name.
func Get(name string, cfg Config) (domain.Provider, error) {
	normalizedName := util.NormalizeKey(name)
	mu.RLock()
	factory, ok := registry[normalizedName]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("dns/providers: unknown provider %q", name)
	}

	return factory(cfg)
}

// List returns the names of all registered DNS providers, sorted.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Reset clears the DNS provider registry. Intended for use in tests only.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	registry = map[string]Factory{}
}
