package stayhooks

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	goerrors "github.com/goliatone/go-errors"
)

// Action names, doubling as the known permission set.
const (
	ActionMessage = "message"
	ActionEmbed   = "embed"
	ActionPoll    = "poll"
	ActionImage   = "image"
)

// KnownPermissions lists every payload kind a webhook can be granted.
var KnownPermissions = []string{ActionMessage, ActionEmbed, ActionPoll, ActionImage}

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Full six-digit form only; the service rejects #RGB shorthand.
	_ = v.RegisterValidation("rrggbb", func(fl validator.FieldLevel) bool {
		return hexColorPattern.MatchString(fl.Field().String())
	})
	return v
}

// Payload is one of MessagePayload, EmbedPayload, PollPayload, ImagePayload.
// Each validates itself entirely client-side and shapes its own wire body;
// a malformed payload never costs a round trip.
type Payload interface {
	// Action returns the payload kind as it appears on the wire and in
	// webhook permission sets.
	Action() string
	build(defaultAlias string) (map[string]any, error)
}

// MessagePayload is a plain chat message.
type MessagePayload struct {
	Text string `validate:"required"`
	// Alias overrides the client's default display alias.
	Alias string
	// Extra is passed through verbatim under the payload's "extra" field.
	Extra map[string]any
}

func (p MessagePayload) Action() string { return ActionMessage }

func (p MessagePayload) build(defaultAlias string) (map[string]any, error) {
	p.Text = strings.TrimSpace(p.Text)
	if err := runValidation(p, ActionMessage); err != nil {
		return nil, err
	}
	body := map[string]any{"text": p.Text}
	if alias := firstNonEmpty(p.Alias, defaultAlias); alias != "" {
		body["alias"] = alias
	}
	if len(p.Extra) > 0 {
		body["extra"] = p.Extra
	}
	return body, nil
}

// EmbedPayload is a rich-content card. Notes are rendered into the
// description as a bullet block, after any caller-supplied description.
type EmbedPayload struct {
	Title       string `validate:"required"`
	Description string
	Notes       []string
	Color       string `validate:"omitempty,rrggbb"`
	URL         string `validate:"omitempty,url"`
	Image       string `validate:"omitempty,url"`
	Footer      string
	// Text is supplementary plain text shown beside the embed.
	Text  string
	Alias string
	// Fields is merged into the embed object verbatim.
	Fields map[string]any
}

func (p EmbedPayload) Action() string { return ActionEmbed }

func (p EmbedPayload) build(defaultAlias string) (map[string]any, error) {
	p.Title = strings.TrimSpace(p.Title)
	notes := make([]string, 0, len(p.Notes))
	for i, note := range p.Notes {
		trimmed := strings.TrimSpace(note)
		if trimmed == "" {
			return nil, validationError("embed payload validation failed", goerrors.FieldError{
				Field:   "notes",
				Message: "note " + strconv.Itoa(i) + " is empty",
			})
		}
		notes = append(notes, trimmed)
	}
	if err := runValidation(p, ActionEmbed); err != nil {
		return nil, err
	}

	embed := map[string]any{"title": p.Title}
	description := strings.TrimSpace(p.Description)
	if len(notes) > 0 {
		bullets := make([]string, len(notes))
		for i, note := range notes {
			bullets[i] = "• " + note
		}
		block := strings.Join(bullets, "\n")
		if description != "" {
			description = description + "\n\n" + block
		} else {
			description = block
		}
	}
	if description != "" {
		embed["description"] = description
	}
	if p.Color != "" {
		embed["color"] = p.Color
	}
	if p.URL != "" {
		embed["url"] = p.URL
	}
	if p.Image != "" {
		embed["image"] = p.Image
	}
	if p.Footer != "" {
		embed["footer"] = p.Footer
	}
	for key, value := range p.Fields {
		embed[key] = value
	}

	body := map[string]any{"embed": embed}
	if p.Text != "" {
		body["text"] = p.Text
	}
	if alias := firstNonEmpty(p.Alias, defaultAlias); alias != "" {
		body["alias"] = alias
	}
	return body, nil
}

// PollPayload asks a question with 2 to 8 unique options. Options are
// compared case-sensitively. EndsAt, when set, must lie in the future and is
// sent to the server as whole minutes.
type PollPayload struct {
	Question       string   `validate:"required"`
	Options        []string `validate:"required,min=2,max=8,unique,dive,required"`
	MultipleChoice bool
	EndsAt         time.Time `validate:"omitempty,gt"`
	Alias          string
}

func (p PollPayload) Action() string { return ActionPoll }

func (p PollPayload) build(defaultAlias string) (map[string]any, error) {
	p.Question = strings.TrimSpace(p.Question)
	options := make([]string, len(p.Options))
	for i, opt := range p.Options {
		options[i] = strings.TrimSpace(opt)
	}
	p.Options = options
	if err := runValidation(p, ActionPoll); err != nil {
		return nil, err
	}

	body := map[string]any{
		"question":       p.Question,
		"options":        options,
		"multipleChoice": p.MultipleChoice,
	}
	if !p.EndsAt.IsZero() {
		minutes := int(time.Until(p.EndsAt) / time.Minute)
		if minutes < 1 {
			minutes = 1
		}
		body["endsInMinutes"] = minutes
	}
	if alias := firstNonEmpty(p.Alias, defaultAlias); alias != "" {
		body["alias"] = alias
	}
	return body, nil
}

// ImagePayload drops an image onto the room's shared board. Width and height
// hints must be positive when given; X and Y place the drop and must be set
// together.
type ImagePayload struct {
	URL    string `validate:"required,http_url"`
	Width  int    `validate:"omitempty,gt=0"`
	Height int    `validate:"omitempty,gt=0"`
	X      *int
	Y      *int
	Alias  string
}

func (p ImagePayload) Action() string { return ActionImage }

func (p ImagePayload) build(defaultAlias string) (map[string]any, error) {
	p.URL = strings.TrimSpace(p.URL)
	if err := runValidation(p, ActionImage); err != nil {
		return nil, err
	}
	if (p.X == nil) != (p.Y == nil) {
		return nil, validationError("image payload validation failed", goerrors.FieldError{
			Field:   "position",
			Message: "x and y must be set together",
		})
	}

	body := map[string]any{"url": p.URL}
	if p.Width > 0 {
		body["w"] = p.Width
	}
	if p.Height > 0 {
		body["h"] = p.Height
	}
	if p.X != nil {
		body["x"] = *p.X
		body["y"] = *p.Y
	}
	if alias := firstNonEmpty(p.Alias, defaultAlias); alias != "" {
		body["alias"] = alias
	}
	return body, nil
}

func runValidation(payload any, kind string) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return validationError(kind + " payload validation failed: " + invalid.Error())
	}
	var fields []goerrors.FieldError
	for _, fe := range err.(validator.ValidationErrors) {
		fields = append(fields, goerrors.FieldError{
			Field:   strings.ToLower(fe.Field()),
			Message: "failed " + fe.Tag(),
		})
	}
	return validationError(kind+" payload validation failed", fields...)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
