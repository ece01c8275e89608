package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/piepengu/mathdrill/internal/adapt"
	"github.com/piepengu/mathdrill/internal/aigen"
	"github.com/piepengu/mathdrill/internal/engine"
	"github.com/piepengu/mathdrill/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "mathdrill",
	Short: "SAT math practice engine",
	Long:  "Mathdrill generates, grades, and adapts SAT-style math practice problems.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MATHDRILL_DB env var)")
	rootCmd.PersistentFlags().String("user", "default", "Learner identifier")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(gradeCmd)
	rootCmd.AddCommand(aiCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(skillsCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using the --db flag first,
// then MATHDRILL_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// newLogger builds the process logger. Logs go to stderr so command
// output stays machine-readable.
func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// openEngine opens the store and wires the engine. The AI source is
// attached only when a provider is configured.
func openEngine(cmd *cobra.Command) (*engine.Engine, func(), error) {
	log := newLogger(cmd)

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	opts := engine.Options{
		Adapt: adapt.DefaultConfig(),
		Log:   log,
	}

	cfg := aigen.ConfigFromEnv()
	if cfg.Validate() != nil {
		if discovered, ok := aigen.DiscoverConfig(); ok {
			cfg = discovered
		}
	}
	if cfg.Validate() == nil {
		provider, err := aigen.NewProvider(cmd.Context(), cfg, log)
		if err != nil {
			log.Warn("ai provider unavailable", "error", err)
		} else {
			opts.Source = aigen.NewSource(provider, cfg)
		}
	}

	return engine.New(st, opts), func() { st.Close() }, nil
}

func userID(cmd *cobra.Command) string {
	u, _ := cmd.Flags().GetString("user")
	if u == "" {
		return "default"
	}
	return u
}
