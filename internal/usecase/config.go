package usecase

import (
	"context"
	"errors"
	"fmt"

	"lsrc-api/internal/config"
)

type ConfigService struct {
	provider config.Provider
}

func NewConfigService(p config.Provider) (*ConfigService, error) {
	if p == nil {
		return nil, errors.New("usecase: config provider must not be nil")
	}
	return &ConfigService{provider: p}, nil
}

// Reflect returns the allow-listed public settings, defaults applied, with
// empty values removed.
func (s *ConfigService) Reflect(ctx context.Context) (map[string]string, error) {
	vals, err := s.provider.Environ(ctx)
	if err != nil {
		return nil, newError(ErrorInternal, "", fmt.Errorf("usecase: read environment: %w", err))
	}
	settings, err := config.ParsePublicSettings(vals)
	if err != nil {
		return nil, newError(ErrorInternal, "", err)
	}
	out, err := settings.Map()
	if err != nil {
		return nil, newError(ErrorInternal, "", err)
	}
	return out, nil
}
