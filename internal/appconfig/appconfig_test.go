package appconfig

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Merge
// ---------------------------------------------------------------------------

func TestMerge_AudioSizeOnly(t *testing.T) {
	cfg, err := Merge(Defaults(), map[string]string{"MAX_AUDIO_FILE_SIZE_MB": "20"})
	require.NoError(t, err)

	want := Defaults().Audio
	want.MaxFileSizeMB = 20
	assert.Equal(t, want, cfg.Audio)

	rest := cfg
	rest.Audio = Defaults().Audio
	assert.Equal(t, Defaults(), rest)
}

func TestMerge_NoOverridesKeepsDefaults(t *testing.T) {
	cfg, err := Merge(Defaults(), nil)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestMerge_EmptyAndInvalidValuesKeepDefaults(t *testing.T) {
	cfg, err := Merge(Defaults(), map[string]string{
		"SUPABASE_URL":               "",
		"MAX_AUDIO_FILE_SIZE_MB":     "lots",
		"MAX_AUDIO_DURATION_SECONDS": "0",
		"ALLOWED_AUDIO_FORMATS":      " , ",
		"ENABLE_ANALYTICS":           "yes",
		"UNKNOWN_KEY":                "ignored",
	})
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestMerge_DoesNotModifyBase(t *testing.T) {
	base := Defaults()
	_, err := Merge(base, map[string]string{"ALLOWED_AUDIO_FORMATS": "ogg", "SUPABASE_URL": "https://x.supabase.co"})
	require.NoError(t, err)
	assert.Equal(t, Defaults(), base)
}

func TestMerge_EachBinding(t *testing.T) {
	cases := []struct {
		key   string
		value string
		check func(t *testing.T, c AppConfig)
	}{
		{"SUPABASE_URL", "https://abc.supabase.co", func(t *testing.T, c AppConfig) { assert.Equal(t, "https://abc.supabase.co", c.Supabase.URL) }},
		{"SUPABASE_ANON_KEY", "anon", func(t *testing.T, c AppConfig) { assert.Equal(t, "anon", c.Supabase.AnonKey) }},
		{"SUPABASE_SERVICE_ROLE_KEY", "role", func(t *testing.T, c AppConfig) { assert.Equal(t, "role", c.Supabase.ServiceRoleKey) }},
		{"TELEGRAM_BOT_TOKEN", "123:abc", func(t *testing.T, c AppConfig) { assert.Equal(t, "123:abc", c.Telegram.BotToken) }},
		{"TELEGRAM_BOT_USERNAME", "OtherBot", func(t *testing.T, c AppConfig) { assert.Equal(t, "OtherBot", c.Telegram.BotUsername) }},
		{"TELEGRAM_WEBAPP_URL", "https://t.me/OtherBot/app", func(t *testing.T, c AppConfig) { assert.Equal(t, "https://t.me/OtherBot/app", c.Telegram.WebAppURL) }},
		{"VERCEL_URL", "https://lsrc.vercel.app", func(t *testing.T, c AppConfig) { assert.Equal(t, "https://lsrc.vercel.app", c.Deployment.VercelURL) }},
		{"DOMAIN", "lsrc.example", func(t *testing.T, c AppConfig) { assert.Equal(t, "lsrc.example", c.Deployment.Domain) }},
		{"MAX_AUDIO_FILE_SIZE_MB", "25", func(t *testing.T, c AppConfig) { assert.Equal(t, 25, c.Audio.MaxFileSizeMB) }},
		{"MAX_AUDIO_DURATION_SECONDS", "600", func(t *testing.T, c AppConfig) { assert.Equal(t, 600, c.Audio.MaxDurationSeconds) }},
		{"ALLOWED_AUDIO_FORMATS", "ogg, mp3", func(t *testing.T, c AppConfig) { assert.Equal(t, []string{"ogg", "mp3"}, c.Audio.AllowedFormats) }},
		{"AUDIO_STORAGE_BUCKET", "voice", func(t *testing.T, c AppConfig) { assert.Equal(t, "voice", c.Audio.StorageBucket) }},
		{"DEFAULT_LANGUAGE", "ru", func(t *testing.T, c AppConfig) { assert.Equal(t, "ru", c.App.DefaultLanguage) }},
		{"ENABLE_ANALYTICS", "true", func(t *testing.T, c AppConfig) { assert.True(t, c.App.EnableAnalytics) }},
		{"DEBUG_MODE", "true", func(t *testing.T, c AppConfig) { assert.True(t, c.App.DebugMode) }},
		{"APP_VERSION", "2.0.0", func(t *testing.T, c AppConfig) { assert.Equal(t, "2.0.0", c.App.Version) }},
		{"OPENAI_API_KEY", "sk", func(t *testing.T, c AppConfig) { assert.Equal(t, "sk", c.ExternalServices.OpenAIAPIKey) }},
		{"OPENAI_ASSISTANT_ID", "asst", func(t *testing.T, c AppConfig) { assert.Equal(t, "asst", c.ExternalServices.OpenAIAssistantID) }},
		{"GOOGLE_CLOUD_API_KEY", "g", func(t *testing.T, c AppConfig) { assert.Equal(t, "g", c.ExternalServices.GoogleCloudAPIKey) }},
		{"ENABLE_TRANSCRIPTION", "true", func(t *testing.T, c AppConfig) { assert.True(t, c.ExternalServices.EnableTranscription) }},
		{"ENABLE_ASSISTANT_CHAT", "true", func(t *testing.T, c AppConfig) { assert.True(t, c.ExternalServices.EnableAssistantChat) }},
	}
	require.Len(t, cases, len(Overrides), "every binding needs a case")

	for _, tc := range cases {
		t.Run(tc.key, func(t *testing.T) {
			cfg, err := Merge(Defaults(), map[string]string{tc.key: tc.value})
			require.NoError(t, err)
			tc.check(t, cfg)
		})
	}
}

func TestOverrides_KeysUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, b := range Overrides {
		require.False(t, seen[b.Key], "duplicate key %s", b.Key)
		seen[b.Key] = true
		require.NotEmpty(t, b.Field)
	}
}

func TestMerge_FalseFlagKeepsTrueBase(t *testing.T) {
	base := Defaults()
	base.App.DebugMode = true
	cfg, err := Merge(base, map[string]string{"DEBUG_MODE": "false"})
	require.NoError(t, err)
	assert.True(t, cfg.App.DebugMode)
}

// ---------------------------------------------------------------------------
// Validate
// ---------------------------------------------------------------------------

func TestValidate_Defaults(t *testing.T) {
	res := Validate(Defaults())
	assert.False(t, res.Valid)
	assert.Equal(t, []string{
		"SUPABASE_URL is not configured",
		"SUPABASE_ANON_KEY is not configured",
		"VERCEL_URL is not configured",
	}, res.Errors)
}

func TestValidate_PlaceholderSupabaseURLOnly(t *testing.T) {
	cfg, err := Merge(Defaults(), map[string]string{
		"SUPABASE_ANON_KEY": "anon",
		"VERCEL_URL":        "https://lsrc.vercel.app",
	})
	require.NoError(t, err)

	res := Validate(cfg)
	assert.False(t, res.Valid)
	assert.Equal(t, []string{"SUPABASE_URL is not configured"}, res.Errors)
}

func TestValidate_Configured(t *testing.T) {
	cfg := Defaults()
	cfg.Supabase.URL = "https://abc.supabase.co"
	cfg.Supabase.AnonKey = "anon"
	cfg.Deployment.VercelURL = "https://lsrc.vercel.app"

	res := Validate(cfg)
	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
}

func TestValidate_EmptyField(t *testing.T) {
	cfg := Defaults()
	cfg.Supabase.URL = "https://abc.supabase.co"
	cfg.Supabase.AnonKey = " "
	cfg.Deployment.VercelURL = "https://lsrc.vercel.app"

	res := Validate(cfg)
	assert.False(t, res.Valid)
	assert.Equal(t, []string{"SUPABASE_ANON_KEY is not configured"}, res.Errors)
}

// ---------------------------------------------------------------------------
// ParseDotenv
// ---------------------------------------------------------------------------

func TestParseDotenv(t *testing.T) {
	in := strings.Join([]string{
		"# comment",
		"",
		"SUPABASE_URL=https://abc.supabase.co",
		"  SUPABASE_ANON_KEY = key=with=equals  ",
		"NOVALUE",
		"=orphan",
		"EMPTY=",
		"   # indented comment",
	}, "\n")

	vals, err := ParseDotenv(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"SUPABASE_URL":      "https://abc.supabase.co",
		"SUPABASE_ANON_KEY": "key=with=equals",
		"EMPTY":             "",
	}, vals)
}

// ---------------------------------------------------------------------------
// Loader / Initialize
// ---------------------------------------------------------------------------

func writeDotenv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoader_PrefersRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"MAX_AUDIO_FILE_SIZE_MB":"20"}`))
	}))
	defer srv.Close()

	l := NewLoader(srv.URL+"/api/config", writeDotenv(t, "DEFAULT_LANGUAGE=ru\n"))
	vals := l.Load(context.Background())
	assert.Equal(t, map[string]string{"MAX_AUDIO_FILE_SIZE_MB": "20"}, vals)
}

func TestLoader_FallsBackOnErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	l := NewLoader(srv.URL, writeDotenv(t, "# local\nDEFAULT_LANGUAGE=ru\n"))
	assert.Equal(t, map[string]string{"DEFAULT_LANGUAGE": "ru"}, l.Load(context.Background()))
}

func TestLoader_FallsBackOnEmptyRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	l := NewLoader(srv.URL, writeDotenv(t, "DEBUG_MODE=true\n"))
	assert.Equal(t, map[string]string{"DEBUG_MODE": "true"}, l.Load(context.Background()))
}

func TestLoader_NothingAvailable(t *testing.T) {
	l := NewLoader("http://127.0.0.1:1/api/config", filepath.Join(t.TempDir(), "missing.env"))
	assert.Empty(t, l.Load(context.Background()))
}

func TestInitialize_RemoteOverride(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"MAX_AUDIO_FILE_SIZE_MB":"20","ALLOWED_AUDIO_FORMATS":"ogg,mp3"}`))
	}))
	defer srv.Close()

	cfg := Initialize(context.Background(), NewLoader(srv.URL, ""))
	assert.Equal(t, 20, cfg.Audio.MaxFileSizeMB)
	assert.Equal(t, []string{"ogg", "mp3"}, cfg.Audio.AllowedFormats)
	assert.Equal(t, "audio", cfg.Audio.StorageBucket)
}

func TestInitialize_DefaultsWhenNothingLoads(t *testing.T) {
	assert.Equal(t, Defaults(), Initialize(context.Background(), NewLoader("", "")))
	assert.Equal(t, Defaults(), Initialize(context.Background(), nil))
}
