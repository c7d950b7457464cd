// Package cli implements carctl, a command-line client for the car catalog API.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"carcatalog/internal/auth"
	"carcatalog/internal/client"
	"carcatalog/internal/config"
	"carcatalog/internal/logging"
)

type options struct {
	apiURL    string
	token     string
	jwtSecret string
	issuer    string
	pageSize  int
	output    string
	timeout   time.Duration
	verbose   bool
}

// NewRootCmd builds the carctl command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "carctl",
		Short: "carctl manages the car catalog over its HTTP API",
		Long: `carctl lists, inspects and edits cars through the catalog API.

Requests carry a bearer token taken from --token, or minted from --jwt-secret
when the server shares an HS256 secret with the client.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.output {
			case "table", "json", "yaml":
				return nil
			default:
				return fmt.Errorf("unknown output format %q (want table, json or yaml)", opts.output)
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.apiURL, "api-url", envOr("CARCTL_API_URL", "http://localhost:8080/api/"), "API base URL")
	pf.StringVar(&opts.token, "token", os.Getenv("CARCTL_TOKEN"), "bearer token sent with every request")
	pf.StringVar(&opts.jwtSecret, "jwt-secret", os.Getenv("AUTH_JWT_SECRET"), "HS256 secret used to mint tokens when --token is empty")
	pf.StringVar(&opts.issuer, "issuer", os.Getenv("AUTH_ISSUER"), "issuer claim for minted tokens")
	pf.IntVar(&opts.pageSize, "page-size", client.DefaultPageSize, "cars per page")
	pf.StringVarP(&opts.output, "output", "o", "table", "output format: table, json or yaml")
	pf.DurationVar(&opts.timeout, "timeout", 30*time.Second, "HTTP timeout")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "log requests to stderr")

	root.AddCommand(newCarsCmd(opts), newCategoriesCmd(opts))
	return root
}

// Execute runs carctl and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func (o *options) tokenSource() (auth.TokenSource, error) {
	switch {
	case o.token != "":
		return auth.StaticTokenSource{Value: o.token}, nil
	case o.jwtSecret != "":
		src, err := auth.NewHMACTokenSource(o.jwtSecret, o.issuer, "carctl", 15*time.Minute)
		if err != nil {
			return nil, err
		}
		return auth.NewCachedTokenSource(src, 0), nil
	default:
		return nil, nil
	}
}

func (o *options) logger(w io.Writer) *slog.Logger {
	if !o.verbose {
		return logging.Nop()
	}
	return logging.New(config.LogConfig{Level: "debug", Format: "text"}, w)
}

func (o *options) dataService(cmd *cobra.Command) (*client.DataService, error) {
	tokens, err := o.tokenSource()
	if err != nil {
		return nil, err
	}
	return client.New(client.Config{
		BaseURL: o.apiURL,
		HTTPClient: &http.Client{
			Timeout:   o.timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		Tokens:   tokens,
		PageSize: o.pageSize,
		Logger:   o.logger(cmd.ErrOrStderr()),
	})
}

func (o *options) printer(cmd *cobra.Command) printer {
	return printer{w: cmd.OutOrStdout(), format: o.output}
}
