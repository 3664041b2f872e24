package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rodrigoanasco/nwHacks/backend/routes"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func NewServeCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}
}

func runServe(cmd *cobra.Command, opts *RootOptions) error {
	env, err := loadEnvironment(opts, true)
	if err != nil {
		return err
	}
	defer env.Close()

	app := routes.NewApp(env.cfg, env.logger)
	routes.SetupRoutes(app, env.db, env.cfg, env.logger)

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		env.logger.Info("server starting",
			zap.String("port", env.cfg.ServerPort),
			zap.String("db_driver", env.cfg.DBDriver),
			zap.String("converter_url", env.cfg.ConverterURL))
		errCh <- app.Listen(":" + env.cfg.ServerPort)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	env.logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	return app.ShutdownWithContext(shutdownCtx)
}
