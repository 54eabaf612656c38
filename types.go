package stayhooks

import "encoding/json"

// Webhook is the service's view of one automation endpoint. Everything here
// is a possibly-stale copy returned by a previous call; the secret is never
// included (see WebhookBundle).
type Webhook struct {
	ID            string   `json:"id"`
	Label         string   `json:"label"`
	Permissions   []string `json:"permissions"`
	Paused        bool     `json:"paused"`
	CreatedAt     string   `json:"createdAt,omitempty"`
	CreatedBy     string   `json:"createdBy,omitempty"`
	LastUsedAt    string   `json:"lastUsedAt,omitempty"`
	SecretPreview string   `json:"secretPreview,omitempty"`
	InvokeURL     string   `json:"invokeUrl,omitempty"`
	ExampleCurl   string   `json:"exampleCurl,omitempty"`
}

// WebhookBundle pairs a webhook with its shared secret. The server only
// reveals the secret in create and rotate responses; persist it immediately,
// it cannot be fetched again.
type WebhookBundle struct {
	Webhook     Webhook `json:"webhook"`
	Secret      string  `json:"secret"`
	InvokeURL   string  `json:"invokeUrl,omitempty"`
	ExampleCurl string  `json:"exampleCurl,omitempty"`
}

// WebhookPage is the list response envelope for one room.
type WebhookPage struct {
	RoomID   string    `json:"roomId"`
	Limit    int       `json:"limit"`
	Webhooks []Webhook `json:"webhooks"`
}

// PermittedActions declares which payload kinds a room accepts and its
// webhook count limit. Query it before building large payloads to
// pre-validate against per-room limits.
type PermittedActions struct {
	Actions []string `json:"actions"`
	Limit   int      `json:"limit"`
}

// Allows reports whether the given action is permitted for the room.
func (p *PermittedActions) Allows(action string) bool {
	if p == nil {
		return false
	}
	for _, a := range p.Actions {
		if a == action {
			return true
		}
	}
	return false
}

// WebhookUpdate is a partial update; nil/empty fields are left untouched
// server-side. Permissions, when set, replace the full permission set.
type WebhookUpdate struct {
	Label       *string  `json:"label,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
	Paused      *bool    `json:"paused,omitempty"`
}

func (u WebhookUpdate) isEmpty() bool {
	return u.Label == nil && u.Permissions == nil && u.Paused == nil
}

// String returns a pointer to s, for WebhookUpdate literals.
func String(s string) *string { return &s }

// Bool returns a pointer to b, for WebhookUpdate literals.
func Bool(b bool) *bool { return &b }

// Int returns a pointer to n, for image placement coordinates.
func Int(n int) *int { return &n }

// InvokeResult is the server acknowledgment of a delivered payload. Keys the
// client does not know about are preserved in Extra.
type InvokeResult struct {
	OK        bool
	Kind      string
	MessageID string
	PollID    string
	Extra     map[string]any
}

func (r *InvokeResult) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.OK, _ = raw["ok"].(bool)
	r.Kind, _ = raw["kind"].(string)
	r.MessageID, _ = raw["messageId"].(string)
	r.PollID, _ = raw["pollId"].(string)
	for _, known := range []string{"ok", "kind", "messageId", "pollId"} {
		delete(raw, known)
	}
	if len(raw) > 0 {
		r.Extra = raw
	}
	return nil
}
