// Package appconfig builds the client application configuration: built-in
// defaults, overridden by the flat map served from /api/config (or a local
// .env file), then validated.
package appconfig

// Placeholder values shipped in Defaults. Validate reports fields still
// holding them.
const (
	PlaceholderSupabaseURL = "https://your-project.supabase.co"
	PlaceholderAnonKey     = "your-anon-key-here"
	PlaceholderVercelURL   = "https://your-project.vercel.app"
)

type AppConfig struct {
	Supabase         SupabaseConfig   `json:"supabase"`
	Telegram         TelegramConfig   `json:"telegram"`
	Deployment       DeploymentConfig `json:"deployment"`
	Audio            AudioConfig      `json:"audio"`
	App              AppSettings      `json:"app"`
	Security         SecurityConfig   `json:"security"`
	ExternalServices ExternalServices `json:"externalServices"`
}

type SupabaseConfig struct {
	URL            string `json:"url"`
	AnonKey        string `json:"anonKey"`
	ServiceRoleKey string `json:"serviceRoleKey"`
}

type TelegramConfig struct {
	BotToken    string `json:"botToken"`
	BotUsername string `json:"botUsername"`
	WebAppURL   string `json:"webAppUrl"`
}

type DeploymentConfig struct {
	VercelURL string `json:"vercelUrl"`
	Domain    string `json:"domain"`
}

type AudioConfig struct {
	MaxFileSizeMB      int      `json:"maxFileSizeMb"`
	AllowedFormats     []string `json:"allowedFormats"`
	StorageBucket      string   `json:"storageBucket"`
	MaxDurationSeconds int      `json:"maxDurationSeconds"`
}

type AppSettings struct {
	DefaultLanguage string `json:"defaultLanguage"`
	EnableAnalytics bool   `json:"enableAnalytics"`
	DebugMode       bool   `json:"debugMode"`
	Version         string `json:"version"`
}

type SecurityConfig struct {
	CORSOrigins        []string `json:"corsOrigins"`
	RateLimitPerMinute int      `json:"rateLimitPerMinute"`
}

type ExternalServices struct {
	OpenAIAPIKey        string `json:"openaiApiKey"`
	OpenAIAssistantID   string `json:"openaiAssistantId"`
	GoogleCloudAPIKey   string `json:"googleCloudApiKey"`
	EnableTranscription bool   `json:"enableTranscription"`
	EnableAssistantChat bool   `json:"enableAssistantChat"`
}

// Defaults returns a fresh copy of the built-in configuration.
func Defaults() AppConfig {
	return AppConfig{
		Supabase: SupabaseConfig{
			URL:            PlaceholderSupabaseURL,
			AnonKey:        PlaceholderAnonKey,
			ServiceRoleKey: "your-service-role-key-here",
		},
		Telegram: TelegramConfig{
			BotToken:    "your-bot-token-here",
			BotUsername: "ListenSoundReflectCreateBot",
			WebAppURL:   "https://t.me/ListenSoundReflectCreateBot/LSRC",
		},
		Deployment: DeploymentConfig{
			VercelURL: PlaceholderVercelURL,
			Domain:    "your-custom-domain.com",
		},
		Audio: AudioConfig{
			MaxFileSizeMB:      10,
			AllowedFormats:     []string{"webm", "wav", "mp3", "m4a"},
			StorageBucket:      "audio",
			MaxDurationSeconds: 300,
		},
		App: AppSettings{
			DefaultLanguage: "en",
			Version:         "1.0.0",
		},
		Security: SecurityConfig{
			CORSOrigins:        []string{PlaceholderVercelURL, "https://t.me"},
			RateLimitPerMinute: 60,
		},
	}
}
