package appconfig

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"lsrc-api/internal/logger"
)

const defaultLoadTimeout = 10 * time.Second

// Loader fetches the flat override map: first from the config endpoint, then,
// only if that yields nothing, from a local .env file.
type Loader struct {
	ConfigURL  string
	DotenvPath string

	client *resty.Client
}

func NewLoader(configURL, dotenvPath string) *Loader {
	return &Loader{
		ConfigURL:  strings.TrimSpace(configURL),
		DotenvPath: strings.TrimSpace(dotenvPath),
		client:     resty.New().SetTimeout(defaultLoadTimeout),
	}
}

// Load never fails: sources that cannot be read are logged and skipped.
func (l *Loader) Load(ctx context.Context) map[string]string {
	log := logger.FromContext(ctx)

	vals, err := l.fetchRemote(ctx)
	if err != nil {
		log.Warn().Err(err).Str("url", l.ConfigURL).Msg("could not load config from API")
	} else if len(vals) > 0 {
		log.Info().Int("keys", len(vals)).Msg("loaded config from API")
		return vals
	}

	vals, err = l.readDotenv()
	if err != nil {
		log.Warn().Err(err).Str("path", l.DotenvPath).Msg("could not load .env file")
		return map[string]string{}
	}
	if len(vals) > 0 {
		log.Info().Int("keys", len(vals)).Msg("loaded config from .env file")
	}
	return vals
}

func (l *Loader) fetchRemote(ctx context.Context) (map[string]string, error) {
	if l.ConfigURL == "" {
		return nil, nil
	}
	client := l.client
	if client == nil {
		client = resty.New().SetTimeout(defaultLoadTimeout)
	}

	res, err := client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(l.ConfigURL)
	if err != nil {
		return nil, fmt.Errorf("appconfig: fetch config: %w", err)
	}
	if res.StatusCode() < 200 || res.StatusCode() >= 300 {
		return nil, fmt.Errorf("appconfig: fetch config: unexpected status %s", res.Status())
	}

	var raw map[string]any
	if err := json.Unmarshal(res.Body(), &raw); err != nil {
		return nil, fmt.Errorf("appconfig: decode config: %w", err)
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		switch tv := v.(type) {
		case string:
			out[k] = tv
		case nil:
		default:
			out[k] = fmt.Sprint(tv)
		}
	}
	return out, nil
}

func (l *Loader) readDotenv() (map[string]string, error) {
	if l.DotenvPath == "" {
		return map[string]string{}, nil
	}
	f, err := os.Open(l.DotenvPath)
	if err != nil {
		return nil, fmt.Errorf("appconfig: open dotenv: %w", err)
	}
	defer func() { _ = f.Close() }()

	vals, err := ParseDotenv(f)
	if err != nil {
		return nil, fmt.Errorf("appconfig: parse dotenv: %w", err)
	}
	return vals, nil
}

// Initialize loads overrides and merges them over Defaults. It never fails;
// the defaults stand when nothing can be loaded.
func Initialize(ctx context.Context, l *Loader) AppConfig {
	if l == nil {
		return Defaults()
	}
	cfg, err := Merge(Defaults(), l.Load(ctx))
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).Msg("could not merge config overrides")
		return Defaults()
	}
	return cfg
}
