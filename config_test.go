package stayhooks

import (
	"testing"
	"time"
)

func TestBuildAPIBaseURL_Normalization(t *testing.T) {
	tests := []struct {
		name   string
		base   string
		prefix string
		want   string
	}{
		{name: "root host", base: "http://localhost:3000", prefix: "/api", want: "http://localhost:3000/api"},
		{name: "trailing slash", base: "http://localhost:3000/", prefix: "/api", want: "http://localhost:3000/api"},
		{name: "prefix without slashes", base: "https://stay.example.com", prefix: "api", want: "https://stay.example.com/api"},
		{name: "prefix with stray slashes", base: "https://stay.example.com", prefix: "/api/", want: "https://stay.example.com/api"},
		{name: "empty prefix", base: "https://stay.example.com", prefix: "", want: "https://stay.example.com"},
		{name: "nested prefix", base: "https://stay.example.com", prefix: "/v2/api", want: "https://stay.example.com/v2/api"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := buildAPIBaseURL(tt.base, tt.prefix)
			if err != nil {
				t.Fatalf("buildAPIBaseURL failed: %v", err)
			}
			if got != tt.want {
				t.Fatalf("base = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildAPIBaseURL_Invalid(t *testing.T) {
	tests := []string{
		"ftp://example.com",
		"ws://example.com",
		"example.com",
		"/just/a/path",
	}
	for _, base := range tests {
		t.Run(base, func(t *testing.T) {
			_, err := buildAPIBaseURL(base, "/api")
			if !IsValidation(err) {
				t.Fatalf("err = %v, want validation error for %q", err, base)
			}
		})
	}
}

func TestConfig_Defaults(t *testing.T) {
	cfg := Config{}.withDefaults()
	if cfg.BaseURL != DefaultBaseURL {
		t.Fatalf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.APIPrefix != "/api" {
		t.Fatalf("APIPrefix = %q", cfg.APIPrefix)
	}
	if cfg.Timeout != 10*time.Second {
		t.Fatalf("Timeout = %v", cfg.Timeout)
	}
	if cfg.UserAgent == "" {
		t.Fatalf("UserAgent must have a default")
	}
}

func TestConfig_ExplicitValuesKept(t *testing.T) {
	cfg := Config{
		BaseURL:   "https://stay.example.com",
		APIPrefix: "/v2",
		Timeout:   3 * time.Second,
		UserAgent: "custom/1.0",
	}.withDefaults()
	if cfg.BaseURL != "https://stay.example.com" || cfg.APIPrefix != "/v2" {
		t.Fatalf("cfg = %#v", cfg)
	}
	if cfg.Timeout != 3*time.Second || cfg.UserAgent != "custom/1.0" {
		t.Fatalf("cfg = %#v", cfg)
	}
}
