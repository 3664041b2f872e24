package cli

import (
	"fmt"

	"github.com/rodrigoanasco/nwHacks/backend/config"
	"github.com/rodrigoanasco/nwHacks/backend/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RootOptions глобальные флаги для всех команд.
type RootOptions struct {
	Verbose bool
}

// NewRootCommand создает корневую команду. Без подкоманды запускает сервер.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "practice",
		Short:         "Practice exercise progress service",
		Long:          "Tracks per-user progress through the exercise catalog and relays exercises to the rendering worker.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewResetCommand(opts))
	cmd.AddCommand(NewTokenCommand(opts))

	return cmd
}

// environment содержит конфигурацию и общие зависимости команд.
type environment struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
}

func loadEnvironment(opts *RootOptions, withDB bool) (*environment, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	level := cfg.LogLevel
	if opts.Verbose {
		level = "debug"
	}
	logger, err := utils.InitLogger(utils.LoggerConfig{Format: cfg.LogFormat, Level: level})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	env := &environment{cfg: cfg, logger: logger}
	if !withDB {
		return env, nil
	}

	db, err := utils.InitDB(cfg)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	env.db = db
	return env, nil
}

func (e *environment) Close() {
	if e.db != nil {
		if sqlDB, err := e.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	_ = e.logger.Sync()
}
