package appconfig

import (
	"bufio"
	"io"
	"strings"
)

// ParseDotenv reads KEY=VALUE lines. Blank lines and lines starting with '#'
// are skipped; the first '=' separates key from value, so values may contain
// '='. Keys and values are trimmed; no quoting or expansion is applied.
func ParseDotenv(r io.Reader) (map[string]string, error) {
	out := make(map[string]string)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			continue
		}
		out[key] = strings.TrimSpace(value)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
