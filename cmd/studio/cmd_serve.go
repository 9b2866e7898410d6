package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"practicestudio/internal/layout"
	"practicestudio/internal/server"
	"practicestudio/internal/widgets"
)

var serveAddr string

// serveCmd runs only the status API over the starter layout
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the read-only status API without the dashboard",
	Long: `Serves GET /ping, /api/catalog and /api/layout for the configured
starter layout until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default status_addr, else "+server.DefaultAddr+")")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := serveAddr
	if addr == "" {
		addr = cfg.StatusAddr
	}
	if addr == "" {
		addr = server.DefaultAddr
	}

	registry, err := widgets.NewRegistry()
	if err != nil {
		return err
	}
	srv := server.New(addr, registry.Descriptors(), cfg.GridBreakpoints(), logger)
	store, err := cfg.NewStore(layout.WithObserver(srv))
	if err != nil {
		return err
	}
	srv.LayoutReplaced(store.List())

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	logger.Info("shutting down", zap.String("addr", srv.Addr()))
	stopServer(srv)
	return nil
}
