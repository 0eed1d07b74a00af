package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kbukum/llmcouncil/bootstrap"
	"github.com/kbukum/llmcouncil/council"
)

type askOptions struct {
	models  []string
	timeout time.Duration
	summary bool
}

func newAskCmd(root *rootOptions) *cobra.Command {
	opts := &askOptions{}
	cmd := &cobra.Command{
		Use:   "ask [query]",
		Short: "Send a query to every enabled provider and print answers as they arrive",
		Long: "Send a query to every enabled provider concurrently. Each answer is printed\n" +
			"as soon as its provider resolves. With no arguments the query is read from stdin.",
		Example: "  council ask \"What is a monad?\"\n" +
			"  council ask --model gemini=gemini-2.0-flash-lite \"Explain CRDTs\"",
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := readQuery(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			return runAsk(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), root, opts, query)
		},
	}
	cmd.Flags().StringArrayVarP(&opts.models, "model", "m", nil, "model for one provider as provider=model (repeatable)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "stop waiting after this long (0 waits for every provider)")
	cmd.Flags().BoolVar(&opts.summary, "summary", false, "print the startup summary to stderr")
	return cmd
}

func readQuery(in io.Reader, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("read query from stdin: %w", err)
	}
	return string(data), nil
}

func runAsk(ctx context.Context, stdout, stderr io.Writer, root *rootOptions, opts *askOptions, query string) error {
	overrides, err := council.ParseModelFlags(opts.models)
	if err != nil {
		return err
	}
	cfg, err := root.load()
	if err != nil {
		return err
	}

	summaryOut := io.Discard
	if opts.summary {
		summaryOut = stderr
	}
	app, err := bootstrap.NewApp(cfg, bootstrap.WithOutput(summaryOut))
	if err != nil {
		return err
	}
	tracer, metrics, err := setupTelemetry(ctx, app)
	if err != nil {
		return err
	}

	c, err := council.New(cfg, council.WithLogger(app.Logger), council.WithTracer(tracer), council.WithMetrics(metrics))
	if err != nil {
		return err
	}
	for _, p := range c.Providers() {
		app.Summary.TrackProvider(p.Name, p.Model, p.Endpoint, true)
	}

	return app.RunTask(ctx, func(ctx context.Context) error {
		if opts.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, opts.timeout)
			defer cancel()
		}
		sub, err := c.Ask(ctx, query, overrides)
		if err != nil {
			return err
		}
		rep, err := council.NewRenderer(stdout, c.Display).Render(ctx, sub)
		if err != nil {
			return err
		}
		if rep.Answered == 0 {
			return fmt.Errorf("no provider answered")
		}
		return nil
	})
}
