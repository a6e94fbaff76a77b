package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ehrlich-b/axlab/internal/logger"
	"github.com/ehrlich-b/axlab/internal/obs"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve Prometheus metrics on a loopback address until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			metrics := obs.NewMetrics()
			logger.Info("serving metrics", "addr", addr)
			if err := metrics.Serve(ctx, addr); err != nil {
				return fmt.Errorf("serve metrics: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:9091", "address to serve /metrics and /healthz on")
	return cmd
}
