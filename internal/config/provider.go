package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// Provider yields a snapshot of name -> value process configuration.
// Handlers never read os.Getenv directly so tests can inject a plain map.
type Provider interface {
	Environ(ctx context.Context) (map[string]string, error)
}

// MapProvider serves a fixed mapping.
type MapProvider map[string]string

func (m MapProvider) Environ(_ context.Context) (map[string]string, error) {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out, nil
}

// OSProvider serves the process environment.
type OSProvider struct{}

func (OSProvider) Environ(_ context.Context) (map[string]string, error) {
	return env.ToMap(os.Environ()), nil
}

type layered struct {
	providers []Provider
}

// Layered combines providers; a later provider's non-empty value wins over an
// earlier one for the same name.
func Layered(providers ...Provider) (Provider, error) {
	for i, p := range providers {
		if p == nil {
			return nil, fmt.Errorf("config: provider %d must not be nil", i)
		}
	}
	if len(providers) == 0 {
		return nil, errors.New("config: at least one provider is required")
	}
	return &layered{providers: providers}, nil
}

func (l *layered) Environ(ctx context.Context) (map[string]string, error) {
	out := make(map[string]string)
	for _, p := range l.providers {
		vals, err := p.Environ(ctx)
		if err != nil {
			return nil, err
		}
		for k, v := range vals {
			if v == "" {
				continue
			}
			out[k] = v
		}
	}
	return out, nil
}

// NonEmpty drops entries whose value is the empty string.
func NonEmpty(vals map[string]string) map[string]string {
	out := make(map[string]string, len(vals))
	for k, v := range vals {
		if v != "" {
			out[k] = v
		}
	}
	return out
}
