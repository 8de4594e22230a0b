package cmd

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/openjuris/lexbank/internal/handlers"
	"github.com/openjuris/lexbank/internal/service"
	"github.com/openjuris/lexbank/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the lexbank API server",
	Long:  `Start the JSON API server for the legal content database.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = servePort
		}

		db, err := store.NewDB(cfg.Database.DSN(), cfg.Database.MaxConns)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		legislationStore := store.NewLegislationStore(db)
		lawStore := store.NewLawStore(db)

		deps := handlers.Deps{
			Branches:    store.NewBranchStore(db),
			Sections:    store.NewSectionStore(db),
			Legislation: legislationStore,
			Laws:        lawStore,
			Articles:    store.NewArticleStore(db),
			Clauses:     store.NewClauseStore(db),
			Knowledge:   store.NewKnowledgeStore(db),
			News:        store.NewNewsStore(db),
			Library:     store.NewLibraryStore(db),
			Resolver:    service.NewRefResolver(legislationStore, lawStore),
			Stats:       service.NewStatsService(db),
		}

		app := fiber.New(fiber.Config{
			AppName:      "lexbank",
			ErrorHandler: handlers.ErrorHandler,
		})
		app.Use(requestid.New(requestid.Config{
			Generator: uuid.NewString,
		}))
		app.Use(fiberlogger.New())
		app.Use(recover.New())

		handlers.Register(app, deps)

		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		log.Info("starting server", "addr", addr)
		if err := app.Listen(addr); err != nil {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "port to listen on")
}
