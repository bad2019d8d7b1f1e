package cli

import (
	"context"
	"fmt"
	"log"

	"shopadmin/internal/database"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create tables or indexes for the configured store",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := context.Background()
		pool, err := database.Open(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() {
			if err := pool.Close(ctx); err != nil {
				log.Printf("Error closing database: %v", err)
			}
		}()

		if err := pool.Migrate(ctx); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		log.Printf("Migrated %s store", cfg.DBDriver)
		return nil
	},
}
