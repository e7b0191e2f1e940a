package appconfig

import "strings"

type ValidationResult struct {
	Valid  bool     `json:"isValid"`
	Errors []string `json:"errors"`
}

type requiredField struct {
	key         string
	value       func(AppConfig) string
	placeholder string
}

var requiredFields = []requiredField{
	{key: "SUPABASE_URL", value: func(c AppConfig) string { return c.Supabase.URL }, placeholder: "your-project"},
	{key: "SUPABASE_ANON_KEY", value: func(c AppConfig) string { return c.Supabase.AnonKey }, placeholder: "your-anon-key"},
	{key: "VERCEL_URL", value: func(c AppConfig) string { return c.Deployment.VercelURL }, placeholder: "your-project"},
}

// Validate reports required identity fields that are empty or still hold a
// placeholder.
func Validate(c AppConfig) ValidationResult {
	errs := []string{}
	for _, f := range requiredFields {
		v := strings.TrimSpace(f.value(c))
		if v == "" || strings.Contains(v, f.placeholder) {
			errs = append(errs, f.key+" is not configured")
		}
	}
	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}
