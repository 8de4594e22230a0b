package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openjuris/lexbank/internal/schema"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Long: `Create the content tables and their foreign key constraints,
bringing an existing schema up to date where possible.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}

		log.Info("migrating schema", "database", cfg.Database.Database)
		if err := schema.NewRegistry().Setup(cfg.Database.GormDSN()); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}

		log.Info("schema up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
