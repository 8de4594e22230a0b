package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openjuris/lexbank/internal/service"
	"github.com/openjuris/lexbank/internal/store"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load sample legal content",
	Long: `Insert a small sample data set: a branch with a section, a
legislation, a law with an article and clause, a knowledge entry, a news
item and a library item. Rows that already exist are left alone.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}

		db, err := store.NewDB(cfg.Database.DSN(), cfg.Database.MaxConns)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		seeder := service.NewSeeder(
			store.NewBranchStore(db),
			store.NewSectionStore(db),
			store.NewLegislationStore(db),
			store.NewLawStore(db),
			store.NewArticleStore(db),
			store.NewClauseStore(db),
			store.NewKnowledgeStore(db),
			store.NewNewsStore(db),
			store.NewLibraryStore(db),
			log,
		)

		if _, err := seeder.Seed(cmd.Context()); err != nil {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
