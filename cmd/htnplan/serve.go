package htnplan

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/inductorhtn/htnplan/internal/logging"
)

type serveParams struct {
	addr      string
	logLevel  string
	logFormat string
}

func initServe(rootCommand *cobra.Command) *cobra.Command {
	var params serveParams

	serveCommand := &cobra.Command{
		Use:   "serve",
		Short: "Expose Prometheus metrics over HTTP",
		Long: `Serve /metrics from a new, empty Prometheus registry until
interrupted. No planner runs in this command and no collector is
registered on that registry, so the endpoint reports no planner metrics.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := bindConfig(cmd)
			if err != nil {
				return err
			}
			params.addr = v.GetString("addr")
			params.logLevel = v.GetString("log-level")
			params.logFormat = v.GetString("log-format")
			return runServe(params)
		},
	}

	serveCommand.Flags().StringVar(&params.addr, "addr", ":9273", "address to serve /metrics on")
	serveCommand.Flags().StringVar(&params.logLevel, "log-level", "info", "log level: debug|info|warn|error")
	serveCommand.Flags().StringVar(&params.logFormat, "log-format", "json", "log format: json|json-pretty|text")

	rootCommand.AddCommand(serveCommand)
	return serveCommand
}

func runServe(params serveParams) error {
	level, err := logging.GetLevel(params.logLevel)
	if err != nil {
		return err
	}
	log := logging.New(level, params.logFormat)

	reg := prometheus.NewRegistry()
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	server := &http.Server{Addr: params.addr, Handler: mux}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logging.Infof(log, map[string]any{"addr": params.addr}, "serving metrics")
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logging.Infof(log, nil, "shutting down")
		return server.Shutdown(context.Background())
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
