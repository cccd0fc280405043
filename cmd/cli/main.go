package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/maintenance-tracker/cmd/cli/commands"
	"github.com/jakechorley/maintenance-tracker/internal/config"
	"github.com/jakechorley/maintenance-tracker/pkg/core/services"
	"github.com/jakechorley/maintenance-tracker/pkg/metrics"
	"github.com/jakechorley/maintenance-tracker/pkg/postgres"
	"github.com/jakechorley/maintenance-tracker/pkg/utils/logging"
)

var (
	env      string
	app      = &commands.AppContext{}
	database *postgres.DB
	recorder *metrics.Recorder
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Maintenance Tracker CLI - Assign workers to repair requests",
		Long:  `A CLI tool for validating and recording worker assignments, with emergency overrides.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp(commands.NeedsDatabase(cmd))
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			shutdown()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.ValidateAssignmentCmd(app))
	rootCmd.AddCommand(commands.AssignWorkerCmd(app))
	rootCmd.AddCommand(commands.ListAssignmentsCmd(app))
	rootCmd.AddCommand(commands.NormalizeSpecializationCmd(app))
	rootCmd.AddCommand(commands.InferSpecializationCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		shutdown()
		os.Exit(1)
	}
}

// initApp sets up logger, config and the assignment engine, and the database when withDatabase is set
func initApp(withDatabase bool) error {
	var err error
	app.Ctx = context.Background()

	app.Logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	app.Logger.Info("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully",
		zap.Int("max_assignments_per_worker_per_unit", app.Cfg.MaxAssignmentsPerWorkerPerUnit),
		zap.String("unit_cap_scope", app.Cfg.UnitCapScope),
		zap.Int("standing_assignments", len(app.Cfg.StandingAssignments)))

	recorder = metrics.NewRecorder()
	app.Engine, err = services.NewEngine(app.Cfg, recorder)
	if err != nil {
		return fmt.Errorf("failed to build assignment engine: %w", err)
	}

	if !withDatabase {
		app.Logger.Debug("Skipping database connection")
		return nil
	}

	app.Logger.Info("Connecting to database")
	database, err = postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	app.Logger.Info("Running migrations")
	if err := database.RunMigrations(app.Ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	app.Database = database
	app.Logger.Info("Database initialized successfully")

	return nil
}

// shutdown flushes metrics and logs and closes the database. Safe to call more than once.
func shutdown() {
	if recorder != nil && app.Cfg != nil && app.Cfg.MetricsFile != "" {
		if err := recorder.WriteTextfile(app.Cfg.MetricsFile); err != nil && app.Logger != nil {
			app.Logger.Warn("Failed to write metrics", zap.Error(err))
		}
		recorder = nil
	}
	if database != nil {
		database.Close()
		database = nil
	}
	if app.Logger != nil {
		app.Logger.Sync()
	}
}
