// Package cmd wires the lexbank commands: serve, migrate and seed.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/openjuris/lexbank/internal/config"
	"github.com/openjuris/lexbank/internal/logger"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "lexbank",
	Short: "Legal content management service",
	Long: `lexbank manages a relational body of legal content: branches and
sections, legislation with amendment chains, laws broken into articles
and clauses, a knowledge bank, news and a document library. It serves
the content over a JSON API.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default ./lexbank.yaml)")
}

// setup loads the configuration and builds the logger.
func setup() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, logger.New(cfg.Log), nil
}
