package stayhooks

import (
	"context"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// Target identifies the webhook to invoke. Leave fields empty to fall back
// to the client's configured defaults; InvokeURL, when set, wins over
// RoomID/WebhookID path construction. The secret is always required.
type Target struct {
	RoomID    string
	WebhookID string
	Secret    string
	InvokeURL string
}

// resolveTarget applies the precedence explicit value > client default >
// validation error, in one place.
func (c *Client) resolveTarget(t Target) (invokeURL, secret string, err error) {
	secret = firstNonEmpty(t.Secret, c.cfg.DefaultSecret)
	if secret == "" {
		return "", "", validationError("invoke target is missing a secret", goerrors.FieldError{
			Field: "secret", Message: "required",
		})
	}
	if t.InvokeURL != "" {
		return t.InvokeURL, secret, nil
	}
	roomID := firstNonEmpty(t.RoomID, c.cfg.DefaultRoom)
	webhookID := firstNonEmpty(t.WebhookID, c.cfg.DefaultWebhook)
	if roomID == "" || webhookID == "" {
		return "", "", validationError("room_id and webhook_id are required when invoke_url is missing")
	}
	return webhookPath(roomID, webhookID) + "/invoke", secret, nil
}

// Send builds and validates the payload, resolves the invoke target, and
// delivers it with shared-secret auth. The typed Send* wrappers below are
// the usual entry points.
func (c *Client) Send(ctx context.Context, target Target, payload Payload) (*InvokeResult, error) {
	body, err := payload.build(c.cfg.DefaultAlias)
	if err != nil {
		return nil, err
	}
	return c.invoke(ctx, target, payload.Action(), body)
}

func (c *Client) SendMessage(ctx context.Context, target Target, payload MessagePayload) (*InvokeResult, error) {
	return c.Send(ctx, target, payload)
}

func (c *Client) SendEmbed(ctx context.Context, target Target, payload EmbedPayload) (*InvokeResult, error) {
	return c.Send(ctx, target, payload)
}

func (c *Client) SendPoll(ctx context.Context, target Target, payload PollPayload) (*InvokeResult, error) {
	return c.Send(ctx, target, payload)
}

func (c *Client) SendImage(ctx context.Context, target Target, payload ImagePayload) (*InvokeResult, error) {
	return c.Send(ctx, target, payload)
}

// Invoke is the low-level escape hatch: it sends an already-shaped payload
// without any client-side payload validation, deferring every check to the
// server. The target must still resolve.
func (c *Client) Invoke(ctx context.Context, target Target, action string, payload map[string]any) (*InvokeResult, error) {
	if strings.TrimSpace(action) == "" {
		return nil, validationError("invoke action must not be empty", goerrors.FieldError{
			Field: "action", Message: "required",
		})
	}
	return c.invoke(ctx, target, action, payload)
}

func (c *Client) invoke(ctx context.Context, target Target, action string, payload map[string]any) (*InvokeResult, error) {
	invokeURL, secret, err := c.resolveTarget(target)
	if err != nil {
		return nil, err
	}
	body := map[string]any{"action": action, "payload": payload}
	data, err := c.do(ctx, http.MethodPost, invokeURL, body, authSecret, secret)
	if err != nil {
		return nil, err
	}
	result := &InvokeResult{}
	if err := decodeBody(data, result); err != nil {
		return nil, err
	}
	return result, nil
}
