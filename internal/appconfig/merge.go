package appconfig

import (
	"fmt"
	"strconv"
	"strings"

	"dario.cat/mergo"
)

// Binding maps one flat override key onto a nested AppConfig field.
type Binding struct {
	Key   string
	Field string
	apply func(c *AppConfig, raw string)
}

// Overrides is the complete flat-key -> field table. Keys not listed here are
// ignored by Merge.
var Overrides = []Binding{
	{Key: "SUPABASE_URL", Field: "supabase.url", apply: text(func(c *AppConfig, v string) { c.Supabase.URL = v })},
	{Key: "SUPABASE_ANON_KEY", Field: "supabase.anonKey", apply: text(func(c *AppConfig, v string) { c.Supabase.AnonKey = v })},
	{Key: "SUPABASE_SERVICE_ROLE_KEY", Field: "supabase.serviceRoleKey", apply: text(func(c *AppConfig, v string) { c.Supabase.ServiceRoleKey = v })},

	{Key: "TELEGRAM_BOT_TOKEN", Field: "telegram.botToken", apply: text(func(c *AppConfig, v string) { c.Telegram.BotToken = v })},
	{Key: "TELEGRAM_BOT_USERNAME", Field: "telegram.botUsername", apply: text(func(c *AppConfig, v string) { c.Telegram.BotUsername = v })},
	{Key: "TELEGRAM_WEBAPP_URL", Field: "telegram.webAppUrl", apply: text(func(c *AppConfig, v string) { c.Telegram.WebAppURL = v })},

	{Key: "VERCEL_URL", Field: "deployment.vercelUrl", apply: text(func(c *AppConfig, v string) { c.Deployment.VercelURL = v })},
	{Key: "DOMAIN", Field: "deployment.domain", apply: text(func(c *AppConfig, v string) { c.Deployment.Domain = v })},

	{Key: "MAX_AUDIO_FILE_SIZE_MB", Field: "audio.maxFileSizeMb", apply: integer(func(c *AppConfig, v int) { c.Audio.MaxFileSizeMB = v })},
	{Key: "MAX_AUDIO_DURATION_SECONDS", Field: "audio.maxDurationSeconds", apply: integer(func(c *AppConfig, v int) { c.Audio.MaxDurationSeconds = v })},
	{Key: "ALLOWED_AUDIO_FORMATS", Field: "audio.allowedFormats", apply: list(func(c *AppConfig, v []string) { c.Audio.AllowedFormats = v })},
	{Key: "AUDIO_STORAGE_BUCKET", Field: "audio.storageBucket", apply: text(func(c *AppConfig, v string) { c.Audio.StorageBucket = v })},

	{Key: "DEFAULT_LANGUAGE", Field: "app.defaultLanguage", apply: text(func(c *AppConfig, v string) { c.App.DefaultLanguage = v })},
	{Key: "ENABLE_ANALYTICS", Field: "app.enableAnalytics", apply: flag(func(c *AppConfig, v bool) { c.App.EnableAnalytics = v })},
	{Key: "DEBUG_MODE", Field: "app.debugMode", apply: flag(func(c *AppConfig, v bool) { c.App.DebugMode = v })},
	{Key: "APP_VERSION", Field: "app.version", apply: text(func(c *AppConfig, v string) { c.App.Version = v })},

	{Key: "OPENAI_API_KEY", Field: "externalServices.openaiApiKey", apply: text(func(c *AppConfig, v string) { c.ExternalServices.OpenAIAPIKey = v })},
	{Key: "OPENAI_ASSISTANT_ID", Field: "externalServices.openaiAssistantId", apply: text(func(c *AppConfig, v string) { c.ExternalServices.OpenAIAssistantID = v })},
	{Key: "GOOGLE_CLOUD_API_KEY", Field: "externalServices.googleCloudApiKey", apply: text(func(c *AppConfig, v string) { c.ExternalServices.GoogleCloudAPIKey = v })},
	{Key: "ENABLE_TRANSCRIPTION", Field: "externalServices.enableTranscription", apply: flag(func(c *AppConfig, v bool) { c.ExternalServices.EnableTranscription = v })},
	{Key: "ENABLE_ASSISTANT_CHAT", Field: "externalServices.enableAssistantChat", apply: flag(func(c *AppConfig, v bool) { c.ExternalServices.EnableAssistantChat = v })},
}

func text(set func(*AppConfig, string)) func(*AppConfig, string) {
	return set
}

// integer ignores values that are not positive integers.
func integer(set func(*AppConfig, int)) func(*AppConfig, string) {
	return func(c *AppConfig, raw string) {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || n <= 0 {
			return
		}
		set(c, n)
	}
}

// list splits a comma-separated value, dropping blank items.
func list(set func(*AppConfig, []string)) func(*AppConfig, string) {
	return func(c *AppConfig, raw string) {
		var items []string
		for _, item := range strings.Split(raw, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		if len(items) > 0 {
			set(c, items)
		}
	}
}

// flag only ever turns a default on; any value but "true" keeps the default.
func flag(set func(*AppConfig, bool)) func(*AppConfig, string) {
	return func(c *AppConfig, raw string) {
		if raw == "true" {
			set(c, true)
		}
	}
}

// Merge applies overrides on top of base. A missing, empty or unparsable
// override keeps the base value. base is not modified.
func Merge(base AppConfig, overrides map[string]string) (AppConfig, error) {
	var patch AppConfig
	for _, b := range Overrides {
		raw, ok := overrides[b.Key]
		if !ok || raw == "" {
			continue
		}
		b.apply(&patch, raw)
	}

	merged := clone(base)
	if err := mergo.Merge(&merged, patch, mergo.WithOverride); err != nil {
		return AppConfig{}, fmt.Errorf("appconfig: merge overrides: %w", err)
	}
	return merged, nil
}

func clone(c AppConfig) AppConfig {
	c.Audio.AllowedFormats = append([]string(nil), c.Audio.AllowedFormats...)
	c.Security.CORSOrigins = append([]string(nil), c.Security.CORSOrigins...)
	return c
}
