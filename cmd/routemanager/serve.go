package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/fasthttp/routemanager"
	"github.com/fasthttp/routemanager/internal/logging"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

const metricsPath = "/metrics"

func serveCmd(opts *options) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve location changes over HTTP",
		Long: `Serve location change notifications over HTTP: each GET request path is
a new location and the response lists the states exited and entered.
Prometheus metrics are exposed on ` + metricsPath + `.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := prometheus.NewRegistry()
			registry.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)

			m, err := loadManager(opts.treePath, routemanager.WithMetrics(registry))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, addr, newHandler(m, registry))
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "Listen address")

	return cmd
}

// newHandler routes the metrics path to Prometheus and everything else to
// the manager.
func newHandler(m *routemanager.Manager, gatherer prometheus.Gatherer) fasthttp.RequestHandler {
	metrics := fasthttpadaptor.NewFastHTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return func(ctx *fasthttp.RequestCtx) {
		if string(ctx.Path()) == metricsPath {
			metrics(ctx)
			return
		}

		m.Handler(ctx)
	}
}

func serve(ctx context.Context, addr string, handler fasthttp.RequestHandler) error {
	logger := logging.GetLogger("server")

	s := &fasthttp.Server{
		Handler: handler,
		Name:    "routemanager",
	}

	errCh := make(chan error, 1)

	go func() {
		logger.Info().Str("addr", addr).Msg("Listening")
		errCh <- s.ListenAndServe(addr)
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "server stopped")
	case <-ctx.Done():
		logger.Info().Msg("Shutting down")

		return s.Shutdown()
	}
}
