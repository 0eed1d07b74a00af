package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kbukum/llmcouncil/bootstrap"
	"github.com/kbukum/llmcouncil/council"
	"github.com/kbukum/llmcouncil/proxy"
	"github.com/kbukum/llmcouncil/server"
	"github.com/kbukum/llmcouncil/server/endpoint"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the reference proxy that forwards queries to the provider APIs",
		Long: "Run the reference proxy. POST /api/{openai,gemini,claude,deepseek} forwards\n" +
			"{query, model} upstream with the API key read from the environment.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Proxy.Server.Port = port
			}
			return runServe(cmd.Context(), cfg)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides proxy.server.port)")
	return cmd
}

func runServe(ctx context.Context, cfg *council.Config) error {
	app, err := bootstrap.NewApp(cfg)
	if err != nil {
		return err
	}
	tracer, _, err := setupTelemetry(ctx, app)
	if err != nil {
		return err
	}

	h, err := proxy.NewHandler(cfg.Proxy.Upstream, proxy.WithLogger(app.Logger))
	if err != nil {
		return err
	}
	app.AddHealthCheckers(h.Checkers()...)

	srv := server.New(cfg.Proxy.Server, app.Logger, server.WithTracer(tracer))
	srv.ApplyMiddleware()
	r := srv.Engine()
	r.GET("/health", endpoint.Health(cfg.Name, h.Checkers()...))
	r.GET("/alive", endpoint.Liveness(cfg.Name))
	r.GET("/version", endpoint.Version())
	h.Register(r)

	for _, ri := range r.Routes() {
		app.Summary.TrackRoute(ri.Method, ri.Path, ri.Handler)
	}
	app.OnStart(srv.Start)
	app.OnReady(func(context.Context) error {
		app.Summary.SetListen(srv.Addr())
		return nil
	})
	app.OnStop(srv.Stop)

	return app.Run(ctx)
}
