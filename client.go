package stayhooks

import (
	"net/http"

	"stayhooks/internal/logging"
)

// Client talks to one StayHere server. Construct it with New; the zero value
// is not usable.
type Client struct {
	http    *http.Client
	cfg     Config
	baseURL string
	logger  *logging.Logger
}

type Option func(*Client)

// WithHTTPClient swaps the underlying HTTP client. The configured timeout is
// not applied to a caller-supplied client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.http = httpClient
		}
	}
}

func WithLogger(logger *logging.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New validates the configuration and returns a ready client. A missing base
// URL falls back to DefaultBaseURL; an unparseable one is a validation error.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg = cfg.withDefaults()
	baseURL, err := buildAPIBaseURL(cfg.BaseURL, cfg.APIPrefix)
	if err != nil {
		return nil, err
	}
	c := &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		cfg:     cfg,
		baseURL: baseURL,
		logger:  logging.New(false),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}
