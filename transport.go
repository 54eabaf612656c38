package stayhooks

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"stayhooks/internal/logging"
)

// SecretHeader carries the shared secret on invoke calls.
const SecretHeader = "x-stay-webhook-secret"

const maxResponseBytes = 1 << 20

type authMode int

const (
	// authOwner attaches the configured owner token as a bearer header.
	authOwner authMode = iota
	// authSecret attaches a caller-supplied shared secret and no owner token.
	authSecret
)

// do performs one authenticated exchange and returns the raw 2xx body.
// rawURL may be a path (resolved against the configured base URL) or a fully
// qualified URL. Exactly one attempt is made; failures are classified into
// the error taxonomy, never returned as bare transport errors.
func (c *Client) do(ctx context.Context, method, rawURL string, body any, mode authMode, secret string) ([]byte, error) {
	fullURL := rawURL
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		if !strings.HasPrefix(rawURL, "/") {
			rawURL = "/" + rawURL
		}
		fullURL = c.baseURL + rawURL
	}

	var reader io.Reader
	var encoded []byte
	if body != nil {
		var err error
		encoded, err = json.Marshal(body)
		if err != nil {
			return nil, validationError("request body is not JSON-serializable: " + err.Error())
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, validationError("invalid request: " + err.Error())
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("X-Request-Id", uuid.NewString())
	if encoded != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	switch mode {
	case authOwner:
		if strings.TrimSpace(c.cfg.Token) == "" {
			return nil, authError(http.StatusUnauthorized, "missing API token for this request", nil)
		}
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	case authSecret:
		req.Header.Set(SecretHeader, secret)
	}

	c.logger.Debug("request",
		logging.Field("method", method),
		logging.Field("url", fullURL),
		logging.Field("payload", logging.FormatHTTPPayload(encoded)),
	)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, networkError(err, "failed to reach StayHere server")
	}
	defer resp.Body.Close()
	c.logger.Debugf("%s %s -> %s", method, fullURL, resp.Status)

	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if resp.StatusCode >= 400 {
		return nil, c.classify(method, fullURL, resp, data)
	}
	return data, nil
}

// classify maps a non-2xx response onto the error taxonomy. The body is
// decoded best-effort; non-JSON bodies still produce a useful message.
func (c *Client) classify(method, fullURL string, resp *http.Response, data []byte) error {
	parsed := map[string]any{}
	_ = json.Unmarshal(data, &parsed)

	message, _ := parsed["error"].(string)
	if message == "" {
		message = strings.TrimSpace(string(data))
	}
	if message == "" {
		message = resp.Status
	}

	c.logger.Warn("request failed",
		logging.Field("method", method),
		logging.Field("url", fullURL),
		logging.Field("status", resp.Status),
		logging.Field("response", logging.FormatHTTPPayload(data)),
	)

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return authError(resp.StatusCode, message, parsed)
	}
	return httpError(resp.StatusCode, message, parsed)
}

// decodeBody tolerates empty 2xx bodies: out is left at its zero value.
func decodeBody(data []byte, out any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return badResponseError(err, data)
	}
	return nil
}
