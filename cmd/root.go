package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/recall-cli/recall/internal/card"
	"github.com/recall-cli/recall/internal/config"
	"github.com/recall-cli/recall/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "recall",
	Short: "Spaced-repetition flashcard trainer",
	Long:  "Recall — terminal flashcard trainer that schedules cards by day streaks: answer a card correctly on enough distinct days and it leaves the rotation.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, "")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides RECALL_DB env var)")
	rootCmd.PersistentFlags().String("cards", "", "Path to the card deck directory (overrides RECALL_CARDS env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config.json (overrides RECALL_CONFIG env var)")

	rootCmd.AddCommand(studyCmd)
	rootCmd.AddCommand(themesCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves the config path from --config flag, RECALL_CONFIG
// env var, or ./config.json, and loads it.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultPath()
	}
	return config.Load(path)
}

// resolveCardsDir returns the deck directory using --cards (highest
// priority), then RECALL_CARDS, then the configured CARDS_DIR.
func resolveCardsDir(cmd *cobra.Command, cfg config.Config) string {
	if p, _ := cmd.Flags().GetString("cards"); p != "" {
		return p
	}
	if p := os.Getenv("RECALL_CARDS"); p != "" {
		return p
	}
	return cfg.CardsDir
}

// resolveDBPath returns the database path using --db (highest priority),
// then the configured DATA_FILE, then RECALL_DB / the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DataFile != "" {
		return cfg.DataFile, store.EnsureDir(cfg.DataFile)
	}
	return store.DefaultDBPath()
}

// openEnv loads the config, the card decks, and the store. The caller
// owns closing the returned store.
func openEnv(cmd *cobra.Command) (config.Config, *card.Catalog, *store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return config.Config{}, nil, nil, err
	}

	catalog, err := card.LoadDir(resolveCardsDir(cmd, cfg))
	if err != nil {
		return config.Config{}, nil, nil, fmt.Errorf("load cards: %w", err)
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return config.Config{}, nil, nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return config.Config{}, nil, nil, fmt.Errorf("open store: %w", err)
	}

	return cfg, catalog, st, nil
}
