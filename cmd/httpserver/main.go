package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Brownie44l1/hanode/internal/logger"
	"github.com/Brownie44l1/hanode/internal/request"
	"github.com/Brownie44l1/hanode/internal/response"
	"github.com/Brownie44l1/hanode/internal/server"
)

const minPort = 3000

type startOptions struct {
	host         string
	port         uint16
	logLevel     string
	wire         string
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "hanode",
		Short:        "A server for manage node",
		SilenceUsage: true,
	}
	root.AddCommand(newStartCmd())
	return root
}

func newStartCmd() *cobra.Command {
	defaults := server.DefaultConfig()
	opts := &startOptions{}

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a node",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := opts.config()
			if err != nil {
				return err
			}
			return runServer(config, logger.NewConsole(opts.logLevel))
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.host, "host", "H", defaults.Host, "Specify a host to listen")
	flags.Uint16VarP(&opts.port, "port", "p", defaults.Port, "Specify a port to listen (>= 3000)")
	flags.StringVar(&opts.logLevel, "log-level", "info", "debug, info, warn or error")
	flags.StringVar(&opts.wire, "wire", response.WireCompat.String(), "response format: compat or standard")
	flags.DurationVar(&opts.readTimeout, "read-timeout", defaults.ReadTimeout, "per-connection read deadline")
	flags.DurationVar(&opts.writeTimeout, "write-timeout", defaults.WriteTimeout, "per-connection write deadline")
	return cmd
}

func (o *startOptions) config() (server.Config, error) {
	config := server.DefaultConfig()

	if o.port < minPort {
		return config, fmt.Errorf("port %d out of range, must be >= %d", o.port, minPort)
	}
	wire, err := response.ParseWireFormat(o.wire)
	if err != nil {
		return config, err
	}

	config.Host = o.host
	config.Port = o.port
	config.WireFormat = wire
	config.ReadTimeout = o.readTimeout
	config.WriteTimeout = o.writeTimeout
	return config, config.Validate()
}

// alertHookPath is where Alertmanager's webhook receiver posts alerts
const alertHookPath = "/prometheus/hook"

func newServer(config server.Config, log logger.Logger) *server.Server {
	return server.New(config, log).
		Use(server.LoggingMiddleware(log)).
		Route("/hello", handleHello).
		Route(alertHookPath, server.MethodsMiddleware(request.MethodPost)(newHookHandler(log)))
}

func runServer(config server.Config, log logger.Logger) error {
	srv := newServer(config, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		var bindErr *server.BindError
		if errors.As(err, &bindErr) {
			log.Error("unable to create listener", logger.Field{Key: "addr", Value: bindErr.Addr}, logger.Field{Key: "error", Value: bindErr.Err})
		}
		return err
	case <-sigChan:
	}

	log.Info("shutting down")
	if err := srv.Close(); err != nil {
		return err
	}
	if err := <-errCh; err != nil {
		return err
	}

	stats := srv.Stats()
	log.Info("server stopped",
		logger.Field{Key: "requests_total", Value: stats.RequestsTotal},
		logger.Field{Key: "errors_4xx", Value: stats.Errors4xx},
		logger.Field{Key: "errors_5xx", Value: stats.Errors5xx},
		logger.Field{Key: "avg_latency", Value: stats.AverageLatency.String()},
	)
	return nil
}
