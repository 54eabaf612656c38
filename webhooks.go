package stayhooks

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// ListWebhooks returns every webhook registered in the room, with the room's
// webhook limit. An empty room is a valid result, not an error.
func (c *Client) ListWebhooks(ctx context.Context, roomID string) (*WebhookPage, error) {
	if err := requireID("room_id", roomID); err != nil {
		return nil, err
	}
	data, err := c.do(ctx, http.MethodGet, "/webhooks/"+url.PathEscape(roomID), nil, authOwner, "")
	if err != nil {
		return nil, err
	}
	page := &WebhookPage{}
	if err := decodeBody(data, page); err != nil {
		return nil, err
	}
	if page.Webhooks == nil {
		page.Webhooks = []Webhook{}
	}
	return page, nil
}

// CreateWebhook registers a new webhook and returns the only response that
// will ever contain its secret. Permissions must be a non-empty subset of
// KnownPermissions; duplicates and casing are normalized away.
func (c *Client) CreateWebhook(ctx context.Context, roomID, label string, permissions []string) (*WebhookBundle, error) {
	if err := requireID("room_id", roomID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(label) == "" {
		return nil, validationError("webhook label must not be empty", goerrors.FieldError{
			Field: "label", Message: "required",
		})
	}
	normalized, err := normalizePermissions(permissions)
	if err != nil {
		return nil, err
	}
	body := map[string]any{"label": label, "permissions": normalized}
	data, err := c.do(ctx, http.MethodPost, "/webhooks/"+url.PathEscape(roomID), body, authOwner, "")
	if err != nil {
		return nil, err
	}
	return decodeBundle(data)
}

// UpdateWebhook applies a partial update. At least one field must be set;
// no-op calls are rejected before any request. A permission update replaces
// the webhook's full permission set.
func (c *Client) UpdateWebhook(ctx context.Context, roomID, webhookID string, update WebhookUpdate) (*Webhook, error) {
	if err := requireID("room_id", roomID); err != nil {
		return nil, err
	}
	if err := requireID("webhook_id", webhookID); err != nil {
		return nil, err
	}
	if update.isEmpty() {
		return nil, validationError("webhook update must change at least one field")
	}
	if update.Label != nil && strings.TrimSpace(*update.Label) == "" {
		return nil, validationError("webhook label must not be empty", goerrors.FieldError{
			Field: "label", Message: "required",
		})
	}
	if update.Permissions != nil {
		normalized, err := normalizePermissions(update.Permissions)
		if err != nil {
			return nil, err
		}
		update.Permissions = normalized
	}
	data, err := c.do(ctx, http.MethodPatch, webhookPath(roomID, webhookID), update, authOwner, "")
	if err != nil {
		return nil, err
	}

	// The server may return the webhook bare or wrapped in an envelope.
	var envelope struct {
		Webhook *Webhook `json:"webhook"`
	}
	if err := decodeBody(data, &envelope); err != nil {
		return nil, err
	}
	if envelope.Webhook != nil {
		return envelope.Webhook, nil
	}
	hook := &Webhook{}
	if err := decodeBody(data, hook); err != nil {
		return nil, err
	}
	return hook, nil
}

// RotateSecret mints a new secret for the webhook and invalidates the old
// one server-side. Like CreateWebhook, the returned bundle is the only view
// of the new secret.
func (c *Client) RotateSecret(ctx context.Context, roomID, webhookID string) (*WebhookBundle, error) {
	if err := requireID("room_id", roomID); err != nil {
		return nil, err
	}
	if err := requireID("webhook_id", webhookID); err != nil {
		return nil, err
	}
	data, err := c.do(ctx, http.MethodPost, webhookPath(roomID, webhookID)+"/rotate", nil, authOwner, "")
	if err != nil {
		return nil, err
	}
	return decodeBundle(data)
}

// DeleteWebhook removes the webhook permanently. Invoke calls against the
// deleted id fail from then on.
func (c *Client) DeleteWebhook(ctx context.Context, roomID, webhookID string) error {
	if err := requireID("room_id", roomID); err != nil {
		return err
	}
	if err := requireID("webhook_id", webhookID); err != nil {
		return err
	}
	_, err := c.do(ctx, http.MethodDelete, webhookPath(roomID, webhookID), nil, authOwner, "")
	return err
}

// GetPermittedActions reports which payload kinds the room accepts and its
// webhook limit, for pre-validating payloads before building them.
func (c *Client) GetPermittedActions(ctx context.Context, roomID string) (*PermittedActions, error) {
	if err := requireID("room_id", roomID); err != nil {
		return nil, err
	}
	data, err := c.do(ctx, http.MethodGet, "/webhooks/"+url.PathEscape(roomID)+"/meta/permitted-actions", nil, authOwner, "")
	if err != nil {
		return nil, err
	}
	actions := &PermittedActions{}
	if err := decodeBody(data, actions); err != nil {
		return nil, err
	}
	return actions, nil
}

func webhookPath(roomID, webhookID string) string {
	return "/webhooks/" + url.PathEscape(roomID) + "/" + url.PathEscape(webhookID)
}

func requireID(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return validationError(field+" must not be empty", goerrors.FieldError{
			Field: field, Message: "required",
		})
	}
	return nil
}

// normalizePermissions trims, lowercases and dedupes while preserving order.
// Empty results and unknown entries are validation errors, never silently
// widened to a default set.
func normalizePermissions(permissions []string) ([]string, error) {
	seen := map[string]struct{}{}
	normalized := make([]string, 0, len(permissions))
	for _, perm := range permissions {
		key := strings.ToLower(strings.TrimSpace(perm))
		if key == "" {
			continue
		}
		if !isKnownPermission(key) {
			return nil, validationError("unknown permission "+strconv.Quote(key), goerrors.FieldError{
				Field: "permissions", Message: "must be a subset of " + strings.Join(KnownPermissions, ", "),
			})
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		normalized = append(normalized, key)
	}
	if len(normalized) == 0 {
		return nil, validationError("permissions must include at least one action", goerrors.FieldError{
			Field: "permissions", Message: "required",
		})
	}
	return normalized, nil
}

func isKnownPermission(perm string) bool {
	for _, known := range KnownPermissions {
		if perm == known {
			return true
		}
	}
	return false
}

func decodeBundle(data []byte) (*WebhookBundle, error) {
	bundle := &WebhookBundle{}
	if err := decodeBody(data, bundle); err != nil {
		return nil, err
	}
	if bundle.InvokeURL == "" {
		bundle.InvokeURL = bundle.Webhook.InvokeURL
	}
	if bundle.ExampleCurl == "" {
		bundle.ExampleCurl = bundle.Webhook.ExampleCurl
	}
	return bundle, nil
}
