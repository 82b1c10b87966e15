package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/spf13/cobra"

	"task-api/internal/api"
	"task-api/internal/config"
	"task-api/internal/server"
)

func (r *RootCommand) newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Long: `Run the HTTP server. Pending migrations are applied before the listener
accepts connections. SIGINT or SIGTERM starts a graceful shutdown bounded by
the shutdown timeout.`,
		Args: cobra.NoArgs,
		RunE: r.runServe,
	}
}

func (r *RootCommand) runServe(cmd *cobra.Command, args []string) error {
	ln, err := net.Listen("tcp", r.config.Server.Address)
	if err != nil {
		return r.errorHandler.Handle("listen", err)
	}

	if err := Serve(cmd.Context(), ln, r.config, r.logger); err != nil {
		return r.errorHandler.Handle("serve", err)
	}
	return nil
}

// Serve opens the repository and serves HTTP on ln until ctx is cancelled,
// then shuts down gracefully. ln is closed on return.
func Serve(ctx context.Context, ln net.Listener, cfg *config.Config, logger *slog.Logger) error {
	repo, err := config.CreateRepository(ctx, cfg)
	if err != nil {
		ln.Close()
		return err
	}
	defer repo.Close()

	handler := server.New(api.New(repo, logger), logger, server.Options{
		ExposeStorageErrors: cfg.Server.ExposeStorageErrors,
	})
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	logger.Info("listening",
		"address", ln.Addr().String(),
		"dialect", string(repo.Dialect()),
		"max_connections", cfg.Database.MaxConnections)

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
