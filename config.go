package stayhooks

import (
	"net/url"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "http://localhost:3000"
	DefaultTimeout = 10 * time.Second

	defaultAPIPrefix = "/api"
	defaultUserAgent = "stayhooks-go/0.1"
)

// Config holds connection settings and per-client defaults. It is read once
// during New and never mutated afterwards, so a single client is safe to use
// from multiple goroutines.
type Config struct {
	// BaseURL is the root of the StayHere server, e.g. https://stay.example.com.
	BaseURL string
	// Token is the owner/admin API token used for webhook management calls.
	// Invoke calls do not use it.
	Token string
	// APIPrefix is prepended to every path. Defaults to "/api".
	APIPrefix string
	// Timeout bounds each request-response exchange.
	Timeout   time.Duration
	UserAgent string

	// DefaultAlias is applied to outgoing payloads that do not set their own.
	DefaultAlias string
	// DefaultRoom, DefaultWebhook and DefaultSecret fill in invoke targets
	// when per-call values are not given.
	DefaultRoom    string
	DefaultWebhook string
	DefaultSecret  string
}

func (c Config) withDefaults() Config {
	if strings.TrimSpace(c.BaseURL) == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.APIPrefix == "" {
		c.APIPrefix = defaultAPIPrefix
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = defaultUserAgent
	}
	return c
}

// buildAPIBaseURL validates the configured base URL and joins it with the
// normalized API prefix. Trailing slashes and stray prefix slashes are
// tolerated so pasted URLs work as-is.
func buildAPIBaseURL(rawBaseURL, rawPrefix string) (string, error) {
	value := strings.TrimSpace(rawBaseURL)
	parsed, err := url.Parse(value)
	if err != nil {
		return "", validationError("base URL is not a valid URL: " + err.Error())
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", validationError("base URL must be absolute, like https://example.com")
	}
	if !strings.EqualFold(parsed.Scheme, "http") && !strings.EqualFold(parsed.Scheme, "https") {
		return "", validationError("base URL scheme must be http or https")
	}
	return strings.TrimRight(value, "/") + normalizeAPIPrefix(rawPrefix), nil
}

func normalizeAPIPrefix(prefix string) string {
	trimmed := strings.Trim(strings.TrimSpace(prefix), "/")
	if trimmed == "" {
		return ""
	}
	return "/" + trimmed
}
