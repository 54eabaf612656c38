package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	flags "github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"

	"stayhooks"
	"stayhooks/internal/logging"
)

type options struct {
	BaseURL string        `long:"base-url" env:"STAYHERE_BASE_URL" default:"http://localhost:3000" description:"StayHere base URL"`
	Token   string        `long:"token" env:"STAYHERE_TOKEN" description:"Owner API token for management commands"`
	Room    string        `long:"room" env:"STAYHERE_ROOM" description:"Default room id"`
	Webhook string        `long:"webhook" env:"STAYHERE_WEBHOOK" description:"Default webhook id"`
	Secret  string        `long:"secret" env:"STAYHERE_SECRET" description:"Default webhook shared secret"`
	Alias   string        `long:"alias" env:"STAYHERE_ALIAS" description:"Default display alias for payloads"`
	Timeout time.Duration `long:"timeout" env:"STAYHERE_TIMEOUT" default:"10s" description:"Request timeout"`
	Retry   uint          `long:"retry" description:"Retry failed sends up to N extra times with exponential backoff"`
	Debug   bool          `long:"debug" env:"STAYHERE_DEBUG" description:"Enable verbose debug output"`
}

var (
	opts   options
	logger *logging.Logger
)

func main() {
	ctx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	_ = godotenv.Load()

	parser := flags.NewParser(&opts, flags.Default)
	addCommands(ctx, parser)

	if _, err := parser.Parse(); err != nil {
		var flagErr *flags.Error
		if errors.As(err, &flagErr) {
			if flagErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
			// go-flags already printed the usage error.
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newClient() (*stayhooks.Client, error) {
	logger = logging.New(opts.Debug)
	return stayhooks.New(stayhooks.Config{
		BaseURL:        opts.BaseURL,
		Token:          opts.Token,
		Timeout:        opts.Timeout,
		DefaultAlias:   opts.Alias,
		DefaultRoom:    opts.Room,
		DefaultWebhook: opts.Webhook,
		DefaultSecret:  opts.Secret,
	}, stayhooks.WithLogger(logger))
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
