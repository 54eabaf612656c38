package main

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	flags "github.com/jessevdk/go-flags"

	"stayhooks"
	"stayhooks/internal/logging"
)

func addCommands(ctx context.Context, parser *flags.Parser) {
	mustAdd := func(name, short, long string, data any) {
		if _, err := parser.AddCommand(name, short, long, data); err != nil {
			panic(fmt.Sprintf("register %s command: %v", name, err))
		}
	}
	mustAdd("list", "List webhooks", "List every webhook in a room.", &listCommand{ctx: ctx})
	mustAdd("create", "Create a webhook", "Create a webhook and print its one-time secret bundle.", &createCommand{ctx: ctx})
	mustAdd("update", "Update a webhook", "Apply a partial update to a webhook.", &updateCommand{ctx: ctx})
	mustAdd("rotate", "Rotate a webhook secret", "Mint a new secret, invalidating the previous one.", &rotateCommand{ctx: ctx})
	mustAdd("delete", "Delete a webhook", "Delete a webhook permanently.", &deleteCommand{ctx: ctx})
	mustAdd("actions", "Show permitted actions", "Show which payload kinds the room accepts.", &actionsCommand{ctx: ctx})
	mustAdd("message", "Send a message", "Deliver a text message through a webhook.", &messageCommand{ctx: ctx})
	mustAdd("embed", "Send an embed", "Deliver a rich embed card through a webhook.", &embedCommand{ctx: ctx})
	mustAdd("poll", "Send a poll", "Start a poll through a webhook.", &pollCommand{ctx: ctx})
	mustAdd("image", "Send an image", "Drop an image onto the room board through a webhook.", &imageCommand{ctx: ctx})
}

func target() stayhooks.Target {
	// Per-call flags already flow in as client defaults; an empty target
	// lets the SDK's precedence rules resolve them.
	return stayhooks.Target{}
}

// sendWithRetry runs one SDK send, optionally retried per --retry. The SDK
// itself never retries; this is strictly caller-side policy. Validation and
// auth failures are permanent, retrying them cannot succeed.
func sendWithRetry(ctx context.Context, fn func() (*stayhooks.InvokeResult, error)) (*stayhooks.InvokeResult, error) {
	if opts.Retry == 0 {
		return fn()
	}
	retry := backoff.NewExponentialBackOff()
	retry.InitialInterval = time.Second
	retry.MaxInterval = 15 * time.Second
	return backoff.Retry(ctx, func() (*stayhooks.InvokeResult, error) {
		result, err := fn()
		if err != nil && (stayhooks.IsValidation(err) || stayhooks.IsAuth(err)) {
			return nil, backoff.Permanent(err)
		}
		return result, err
	},
		backoff.WithBackOff(retry),
		backoff.WithMaxTries(opts.Retry+1),
		backoff.WithNotify(func(err error, next time.Duration) {
			logger.Warn("send failed, retrying",
				logging.Field("error", err),
				logging.Field("next_retry", next.String()))
		}),
	)
}

type listCommand struct {
	ctx  context.Context
	Args struct {
		Room string `positional-arg-name:"room" description:"Room id (defaults to --room)"`
	} `positional-args:"yes"`
}

func (cmd *listCommand) Execute([]string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	page, err := client.ListWebhooks(cmd.ctx, roomOrDefault(cmd.Args.Room))
	if err != nil {
		return err
	}
	return printJSON(page)
}

type createCommand struct {
	ctx         context.Context
	Label       string   `long:"label" required:"yes" description:"Webhook label"`
	Permissions []string `long:"perm" description:"Permitted action (repeatable: message, embed, poll, image)"`
	Args        struct {
		Room string `positional-arg-name:"room"`
	} `positional-args:"yes"`
}

func (cmd *createCommand) Execute([]string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	perms := cmd.Permissions
	if len(perms) == 0 {
		perms = stayhooks.KnownPermissions
	}
	bundle, err := client.CreateWebhook(cmd.ctx, roomOrDefault(cmd.Args.Room), cmd.Label, perms)
	if err != nil {
		return err
	}
	return printJSON(bundle)
}

type updateCommand struct {
	ctx         context.Context
	Label       *string  `long:"label" description:"New label"`
	Permissions []string `long:"perm" description:"Replacement permission set (repeatable)"`
	Pause       bool     `long:"pause" description:"Pause the webhook"`
	Resume      bool     `long:"resume" description:"Resume a paused webhook"`
	Args        struct {
		Room    string `positional-arg-name:"room"`
		Webhook string `positional-arg-name:"webhook"`
	} `positional-args:"yes"`
}

func (cmd *updateCommand) Execute([]string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	update := stayhooks.WebhookUpdate{
		Label:       cmd.Label,
		Permissions: cmd.Permissions,
	}
	if cmd.Pause {
		update.Paused = stayhooks.Bool(true)
	} else if cmd.Resume {
		update.Paused = stayhooks.Bool(false)
	}
	hook, err := client.UpdateWebhook(cmd.ctx, roomOrDefault(cmd.Args.Room), webhookOrDefault(cmd.Args.Webhook), update)
	if err != nil {
		return err
	}
	return printJSON(hook)
}

type rotateCommand struct {
	ctx  context.Context
	Args struct {
		Room    string `positional-arg-name:"room"`
		Webhook string `positional-arg-name:"webhook"`
	} `positional-args:"yes"`
}

func (cmd *rotateCommand) Execute([]string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	bundle, err := client.RotateSecret(cmd.ctx, roomOrDefault(cmd.Args.Room), webhookOrDefault(cmd.Args.Webhook))
	if err != nil {
		return err
	}
	return printJSON(bundle)
}

type deleteCommand struct {
	ctx  context.Context
	Args struct {
		Room    string `positional-arg-name:"room"`
		Webhook string `positional-arg-name:"webhook"`
	} `positional-args:"yes"`
}

func (cmd *deleteCommand) Execute([]string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	if err := client.DeleteWebhook(cmd.ctx, roomOrDefault(cmd.Args.Room), webhookOrDefault(cmd.Args.Webhook)); err != nil {
		return err
	}
	fmt.Println("deleted")
	return nil
}

type actionsCommand struct {
	ctx  context.Context
	Args struct {
		Room string `positional-arg-name:"room"`
	} `positional-args:"yes"`
}

func (cmd *actionsCommand) Execute([]string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	actions, err := client.GetPermittedActions(cmd.ctx, roomOrDefault(cmd.Args.Room))
	if err != nil {
		return err
	}
	return printJSON(actions)
}

type messageCommand struct {
	ctx  context.Context
	Args struct {
		Text string `positional-arg-name:"text" required:"yes"`
	} `positional-args:"yes"`
}

func (cmd *messageCommand) Execute([]string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	result, err := sendWithRetry(cmd.ctx, func() (*stayhooks.InvokeResult, error) {
		return client.SendMessage(cmd.ctx, target(), stayhooks.MessagePayload{Text: cmd.Args.Text})
	})
	if err != nil {
		return err
	}
	return printJSON(result)
}

type embedCommand struct {
	ctx         context.Context
	Title       string   `long:"title" required:"yes" description:"Embed title"`
	Description string   `long:"description" description:"Embed description"`
	Notes       []string `long:"note" description:"Bullet note (repeatable)"`
	Color       string   `long:"color" description:"Accent color as #RRGGBB"`
	URL         string   `long:"url" description:"Link URL"`
	Image       string   `long:"image" description:"Embed image URL"`
	Footer      string   `long:"footer" description:"Footer text"`
	Text        string   `long:"text" description:"Plain text shown beside the embed"`
}

func (cmd *embedCommand) Execute([]string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	result, err := sendWithRetry(cmd.ctx, func() (*stayhooks.InvokeResult, error) {
		return client.SendEmbed(cmd.ctx, target(), stayhooks.EmbedPayload{
			Title:       cmd.Title,
			Description: cmd.Description,
			Notes:       cmd.Notes,
			Color:       cmd.Color,
			URL:         cmd.URL,
			Image:       cmd.Image,
			Footer:      cmd.Footer,
			Text:        cmd.Text,
		})
	})
	if err != nil {
		return err
	}
	return printJSON(result)
}

type pollCommand struct {
	ctx      context.Context
	Question string        `long:"question" required:"yes" description:"Poll question"`
	Options  []string      `long:"option" description:"Poll option (repeatable, 2-8 unique values)"`
	Multiple bool          `long:"multiple" description:"Allow multiple choices"`
	EndsIn   time.Duration `long:"ends-in" description:"Close the poll after this duration (e.g. 30m)"`
}

func (cmd *pollCommand) Execute([]string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	payload := stayhooks.PollPayload{
		Question:       cmd.Question,
		Options:        cmd.Options,
		MultipleChoice: cmd.Multiple,
	}
	if cmd.EndsIn > 0 {
		payload.EndsAt = time.Now().Add(cmd.EndsIn)
	}
	result, err := sendWithRetry(cmd.ctx, func() (*stayhooks.InvokeResult, error) {
		return client.SendPoll(cmd.ctx, target(), payload)
	})
	if err != nil {
		return err
	}
	return printJSON(result)
}

type imageCommand struct {
	ctx    context.Context
	URL    string `long:"url" required:"yes" description:"Image URL"`
	Width  int    `long:"width" description:"Width hint in pixels"`
	Height int    `long:"height" description:"Height hint in pixels"`
	X      *int   `long:"x" description:"Board placement X"`
	Y      *int   `long:"y" description:"Board placement Y"`
}

func (cmd *imageCommand) Execute([]string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	result, err := sendWithRetry(cmd.ctx, func() (*stayhooks.InvokeResult, error) {
		return client.SendImage(cmd.ctx, target(), stayhooks.ImagePayload{
			URL:    cmd.URL,
			Width:  cmd.Width,
			Height: cmd.Height,
			X:      cmd.X,
			Y:      cmd.Y,
		})
	})
	if err != nil {
		return err
	}
	return printJSON(result)
}

func roomOrDefault(room string) string {
	if room != "" {
		return room
	}
	return opts.Room
}

func webhookOrDefault(webhook string) string {
	if webhook != "" {
		return webhook
	}
	return opts.Webhook
}
