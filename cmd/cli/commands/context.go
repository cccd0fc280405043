package commands

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/maintenance-tracker/internal/config"
	"github.com/jakechorley/maintenance-tracker/pkg/core/services"
	"github.com/jakechorley/maintenance-tracker/pkg/db"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Engine   *services.Engine
	Database db.Database
	Logger   *zap.Logger
	Ctx      context.Context
}

// skipDatabase marks a command that runs on config alone
const skipDatabase = "skipDatabase"

// NeedsDatabase reports whether cmd needs a database connection before it runs
func NeedsDatabase(cmd *cobra.Command) bool {
	return cmd.Annotations[skipDatabase] != "true"
}
