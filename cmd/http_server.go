package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/spf13/cobra"

	"github.com/smartworld/smartdesk/internal"
	"github.com/smartworld/smartdesk/internal/alert"
	"github.com/smartworld/smartdesk/internal/attendance"
	"github.com/smartworld/smartdesk/internal/auth"
	"github.com/smartworld/smartdesk/internal/directory"
	"github.com/smartworld/smartdesk/internal/hierarchy"
	"github.com/smartworld/smartdesk/internal/policy"
	"github.com/smartworld/smartdesk/internal/portal"
	"github.com/smartworld/smartdesk/internal/room"
	"github.com/smartworld/smartdesk/internal/spreadsheet"
	"github.com/smartworld/smartdesk/internal/transport"
	"github.com/smartworld/smartdesk/internal/transport/rest"
	"github.com/smartworld/smartdesk/pkg/logger"
)

var watchRoster bool

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Load the roster and serve the portal API`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

func init() {
	httpServerCmd.Flags().BoolVar(&watchRoster, "watch", false, "reload the roster when the spreadsheet file changes")
}

type Dependencies struct {
	Config *internal.Config
	App    *app
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	watcher, err := startWatcher(ctx, deps)
	if err != nil {
		deps.Logger.Error("roster watcher not started", "error", err)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
	case err := <-serverErrChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			deps.Logger.Error("Server failed", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		deps.Logger.Error("Server shutdown error", "error", err)
	}
	stop()
	if watcher != nil {
		watcher.Stop()
	}
	deps.App.Close(shutdownCtx, deps.Logger)

	deps.Logger.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	initLogger(config)
	lg := logger.LoggerWrapper()

	ctx := context.Background()
	a, err := buildApp(ctx, config, lg)
	if err != nil {
		return nil, err
	}

	if err := a.Portal.Init(ctx); err != nil {
		a.Close(ctx, lg)
		return nil, fmt.Errorf("failed to restore portal state: %w", err)
	}
	// a bad roster leaves an empty directory; an admin can refresh later
	if err := a.Portal.Load(ctx); err != nil {
		lg.Error("initial roster load failed", "error", err)
	}

	return &Dependencies{
		Config: config,
		App:    a,
		Router: chi.NewRouter(),
		Logger: lg,
	}, nil
}

func setupRoutes(deps *Dependencies) {
	cfg := deps.Config
	lg := deps.Logger
	p := deps.App.Portal
	base := transport.NewBaseHandler(lg)

	tokens := auth.NewJWTTokenGenerator(
		cfg.Security.JWTAccessSecret,
		cfg.Security.JWTRefreshSecret,
		cfg.Security.AccessTokenDuration,
		cfg.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(tokens, cfg.Security.AdminPasswordHash, lg)

	rest.RegisterAllRoutes(deps.Router, deps.App.DB.DB, cfg, rest.Handlers{
		Auth:       auth.NewHandler(base, authService),
		RBAC:       auth.NewRBACAuthorization(lg),
		Directory:  directory.NewHandler(base, p.Directory),
		Hierarchy:  hierarchy.NewHandler(base, p.Hierarchy, p.Lookup),
		Rooms:      room.NewHandler(base, p.Rooms),
		Alerts:     alert.NewHandler(base, p.Alerts),
		Attendance: attendance.NewHandler(base, p.Attendance),
		Policies:   policy.NewHandler(base, p.Policies),
		Portal:     portal.NewHandler(base, p),
	}, lg)
}

// startWatcher reloads the portal whenever the roster file changes. It is a
// no-op for the Google Sheets source.
func startWatcher(ctx context.Context, deps *Dependencies) (*spreadsheet.Watcher, error) {
	data := deps.Config.Data
	if !(watchRoster || data.Watch) || data.Sheets.SpreadsheetID != "" || data.RosterPath == "" {
		return nil, nil
	}

	w, err := spreadsheet.NewWatcher(data.RosterPath, data.WatchDebounce, func(ctx context.Context) {
		stats, err := deps.App.Portal.Reload(ctx)
		if err != nil {
			deps.Logger.Error("roster reload after file change failed", "error", err)
			return
		}
		deps.Logger.Info("roster reloaded after file change", "employees", stats.Employees)
	}, deps.Logger)
	if err != nil {
		return nil, err
	}
	if err := w.Start(ctx); err != nil {
		w.Stop()
		return nil, err
	}
	return w, nil
}
