package paramstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// DefaultSecretNames maps environment names to parameter names relative to
// the provider prefix.
var DefaultSecretNames = map[string]string{
	"OPENAI_API_KEY":      "openai-api-key",
	"OPENAI_ASSISTANT_ID": "openai-assistant-id",
}

// SecretsProvider exposes SSM parameters under a prefix as environment-style
// name -> value pairs. Successful loads are cached for the process lifetime;
// a failed load is retried on the next call.
type SecretsProvider struct {
	getter Getter
	prefix string
	names  map[string]string

	cacheMu     sync.RWMutex
	cacheLoaded bool
	values      map[string]string
}

// NewSecretsProvider creates a SecretsProvider reading names (env name ->
// parameter suffix) under prefix. A nil names map uses DefaultSecretNames.
func NewSecretsProvider(g Getter, prefix string, names map[string]string) (*SecretsProvider, error) {
	if g == nil {
		return nil, errors.New("paramstore: getter must not be nil")
	}
	prefix = strings.TrimRight(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		return nil, errors.New("paramstore: parameter prefix must not be empty")
	}
	if names == nil {
		names = DefaultSecretNames
	}
	return &SecretsProvider{getter: g, prefix: prefix, names: names}, nil
}

func (p *SecretsProvider) Environ(ctx context.Context) (map[string]string, error) {
	if err := p.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	p.cacheMu.RLock()
	defer p.cacheMu.RUnlock()
	out := make(map[string]string, len(p.values))
	for k, v := range p.values {
		out[k] = v
	}
	return out, nil
}

func (p *SecretsProvider) ensureLoaded(ctx context.Context) error {
	p.cacheMu.RLock()
	if p.cacheLoaded {
		p.cacheMu.RUnlock()
		return nil
	}
	p.cacheMu.RUnlock()

	p.cacheMu.Lock()
	defer p.cacheMu.Unlock()
	if p.cacheLoaded {
		return nil
	}

	values := make(map[string]string, len(p.names))
	for envName, suffix := range p.names {
		v, err := p.getter.GetParameter(ctx, p.prefix+"/"+strings.TrimLeft(suffix, "/"))
		if errors.Is(err, ErrNotFound) {
			// A missing secret reads as unset.
			continue
		}
		if err != nil {
			return fmt.Errorf("paramstore: load %s: %w", envName, err)
		}
		values[envName] = strings.TrimSpace(v)
	}

	p.values = values
	p.cacheLoaded = true
	return nil
}
