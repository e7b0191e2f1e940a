package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

// Names of the secrets the chat handler requires.
const (
	OpenAIAPIKey      = "OPENAI_API_KEY"
	OpenAIAssistantID = "OPENAI_ASSISTANT_ID"
)

// PublicSettings is the allow-list of variables that may be reflected to
// browsers. Empty values are dropped by the omitempty JSON tags.
type PublicSettings struct {
	SupabaseURL         string `env:"SUPABASE_URL" json:"SUPABASE_URL,omitempty"`
	SupabaseAnonKey     string `env:"SUPABASE_ANON_KEY" json:"SUPABASE_ANON_KEY,omitempty"`
	VercelURL           string `env:"VERCEL_URL" json:"VERCEL_URL,omitempty"`
	TelegramBotUsername string `env:"TELEGRAM_BOT_USERNAME" envDefault:"ListenSoundReflectCreateBot" json:"TELEGRAM_BOT_USERNAME,omitempty"`
	MaxAudioFileSizeMB  string `env:"MAX_AUDIO_FILE_SIZE_MB" envDefault:"10" json:"MAX_AUDIO_FILE_SIZE_MB,omitempty"`
	AllowedAudioFormats string `env:"ALLOWED_AUDIO_FORMATS" envDefault:"webm,wav,mp3,m4a" json:"ALLOWED_AUDIO_FORMATS,omitempty"`
	AudioStorageBucket  string `env:"AUDIO_STORAGE_BUCKET" envDefault:"audio" json:"AUDIO_STORAGE_BUCKET,omitempty"`
	DefaultLanguage     string `env:"DEFAULT_LANGUAGE" envDefault:"en" json:"DEFAULT_LANGUAGE,omitempty"`
	EnableAnalytics     string `env:"ENABLE_ANALYTICS" envDefault:"false" json:"ENABLE_ANALYTICS,omitempty"`
	DebugMode           string `env:"DEBUG_MODE" envDefault:"false" json:"DEBUG_MODE,omitempty"`
}

// ParsePublicSettings resolves PublicSettings from vals. An empty value falls
// back to the default, same as an unset one.
func ParsePublicSettings(vals map[string]string) (PublicSettings, error) {
	var s PublicSettings
	if err := env.ParseWithOptions(&s, env.Options{Environment: NonEmpty(vals)}); err != nil {
		return PublicSettings{}, fmt.Errorf("config: parse public settings: %w", err)
	}
	return s, nil
}

// Map flattens the settings into name -> value, keeping only non-empty values.
func (s PublicSettings) Map() (map[string]string, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("config: marshal public settings: %w", err)
	}
	out := make(map[string]string)
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("config: flatten public settings: %w", err)
	}
	return out, nil
}

// Runtime holds deployment settings read once at process start.
type Runtime struct {
	OpenAIBaseURL     string        `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	OpenAIHTTPTimeout time.Duration `env:"OPENAI_HTTP_TIMEOUT" envDefault:"15s"`
	ParamPrefix       string        `env:"PARAM_PREFIX"`
	LogLevel          string        `env:"LOG_LEVEL" envDefault:"info"`
	DevServerAddr     string        `env:"DEV_SERVER_ADDR" envDefault:":8000"`
	DevStaticDir      string        `env:"DEV_STATIC_DIR" envDefault:"."`
}

// ParseRuntime reads Runtime from the process environment. Empty variables
// count as unset.
func ParseRuntime() (Runtime, error) {
	rt, err := env.ParseAsWithOptions[Runtime](env.Options{
		Environment: NonEmpty(env.ToMap(os.Environ())),
	})
	if err != nil {
		return Runtime{}, fmt.Errorf("config: parse runtime: %w", err)
	}
	return rt, nil
}
