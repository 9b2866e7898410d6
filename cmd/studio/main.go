package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"practicestudio/internal/config"
	"practicestudio/internal/layout"
	"practicestudio/internal/logging"
	"practicestudio/internal/server"
	"practicestudio/internal/telemetry"
	"practicestudio/internal/ui"
	"practicestudio/internal/widgets"
)

var (
	// Global flags
	configPath string
	verbose    bool

	// Set up by PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd runs the dashboard.
var rootCmd = &cobra.Command{
	Use:   "studio",
	Short: "Practice Studio - a terminal dashboard of music practice tools",
	Long: `Practice Studio arranges practice tools (metronome, scale guide, timer,
tuner, chord book, journal, regimen) as cards on a responsive grid.

Run without arguments to open the dashboard. Press SPC inside it for commands.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runDashboard,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.practicestudio/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(catalogCmd, layoutCmd, serveCmd, configCmd)
}

// setup loads the configuration and builds the logger. The config commands
// run on the defaults so that a broken file can still be replaced.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if managesConfig(cmd) {
		cfg = config.Default()
	} else if cfg, err = loadConfig(); err != nil {
		return err
	}
	logCfg := cfg.Logging
	// Only the dashboard owns the terminal; other commands log to stderr
	// unless a file is configured.
	if cmd != cmd.Root() && logCfg.File == "" {
		logCfg.File = "stderr"
	}
	logger, err = logging.New(logCfg, verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

func managesConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c == configCmd {
			return true
		}
	}
	return false
}

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return config.Load(path)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	tp, err := telemetry.Setup(ctx, telemetry.DefaultServiceName)
	if err != nil {
		logger.Warn("tracing disabled", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tp.Shutdown(shutdownCtx)
	}()

	registry, err := widgets.NewRegistry()
	if err != nil {
		return err
	}

	observers := []layout.Observer{
		logging.NewStoreLogger(logger),
		telemetry.NewSpanObserver(nil),
	}
	var srv *server.Server
	if cfg.StatusAddr != "" {
		srv = server.New(cfg.StatusAddr, registry.Descriptors(), cfg.GridBreakpoints(), logger)
		observers = append(observers, srv)
	}

	store, err := cfg.NewStore(layout.WithObserver(layout.NewMultiObserver(observers...)))
	if err != nil {
		return err
	}

	appCfg := ui.Config{
		Store:         store,
		Registry:      registry,
		Breakpoints:   cfg.GridBreakpoints(),
		CellWidthPx:   cfg.CellWidthPx,
		RowHeight:     cfg.RowHeight,
		ConfirmRemove: cfg.ConfirmRemove,
		Logger:        logger,
	}
	if srv != nil {
		srv.LayoutReplaced(store.List())
		if err := srv.Start(); err != nil {
			return fmt.Errorf("status server: %w", err)
		}
		defer stopServer(srv)
		appCfg.OnFrame = srv.PublishFrame
	}

	app, err := ui.NewApp(appCfg)
	if err != nil {
		return err
	}
	logger.Info("dashboard started", zap.Int("modules", store.Len()))

	p := tea.NewProgram(app.AsTeaModel(), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func stopServer(srv *server.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		logger.Warn("status server shutdown", zap.Error(err))
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "studio: %v\n", err)
		os.Exit(1)
	}
}
