package cmd

import (
	"fmt"

	"github.com/frahmantamala/interview-dashboard/db"
	"github.com/frahmantamala/interview-dashboard/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	migrateCmd = &cobra.Command{
		RunE:  runMigration,
		Use:   "migrate",
		Short: "to run the embedded db migrations for the session storage table",
	}
	migrateRollback bool
)

func init() {
	migrateCmd.Flags().BoolVarP(&migrateRollback, "rollback", "r", false, "to rollback the latest version of sql migration")
}

func runMigration(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(configDir)
	if err != nil {
		return err
	}
	lg := logger.LoggerWrapper()

	gdb, err := initDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	defer sqlDB.Close()

	if err := db.Migrate(ctx, sqlDB, cfg.Database.Driver, migrateRollback); err != nil {
		return err
	}

	version, err := db.Version(ctx, sqlDB, cfg.Database.Driver)
	if err != nil {
		return err
	}
	lg.Info("migrations applied", "driver", cfg.Database.Driver, "version", version, "rollback", migrateRollback)
	return nil
}
