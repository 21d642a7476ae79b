package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/promptlab/internal/adapters/turso"
	"github.com/emiliopalmerini/promptlab/internal/config"
	"github.com/emiliopalmerini/promptlab/internal/migrate"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [version]",
	Short: "Run database migrations",
	Long: `Run database migrations.

Without arguments, runs all pending migrations (up).
With a version number, migrates to that specific version (up or down as needed).

Examples:
  promptlab migrate      # Run all pending migrations
  promptlab migrate 1    # Migrate to version 1
  promptlab migrate 0    # Rollback all migrations`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMigrateCmd,
}

func runMigrateCmd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	appCfg, err := config.LoadApp()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := turso.NewDB(appCfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := migrate.EnsureTable(ctx, db); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	current, dirty, err := migrate.CurrentVersion(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to get current version: %w", err)
	}
	if dirty {
		return fmt.Errorf("database is in dirty state at version %d, manual intervention required", current)
	}
	fmt.Printf("Current version: %d\n", current)

	target := current
	if len(args) == 0 {
		all, err := migrate.Load()
		if err != nil {
			return fmt.Errorf("failed to load migrations: %w", err)
		}
		if len(all) > 0 {
			target = all[len(all)-1].Version
		}
	} else {
		target, err = strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid version number: %s", args[0])
		}
	}

	if target == current {
		fmt.Println("No migrations to run")
		return nil
	}

	applied, err := migrate.To(ctx, db, target)
	if err != nil {
		return err
	}
	fmt.Printf("Migrated to version %d (%d migrations applied)\n", target, applied)
	return nil
}
