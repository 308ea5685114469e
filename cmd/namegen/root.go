package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/CTAG07/namegen/pkg/store"
	"github.com/spf13/cobra"
)

// cli holds the global flags and the state every subcommand shares.
type cli struct {
	configPath string
	dbPath     string
	logLevel   string

	config *Config
	logger *slog.Logger
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "namegen",
		Short: "Train character models on word lists and generate new names",
		Long: `namegen learns the shape of words from a list and invents new ones that
sound like they belong to it.

Two engines are available:
  markov   character n-gram model with backoff to shorter contexts
  cluster  chain over vowel and consonant clusters

Models are stored in a SQLite database and can be combined in text
templates, served over HTTP, or exported as JSON.

Examples:
  namegen train elves elves.txt --engine markov --order 3
  namegen generate elves -n 10 --min 5 --max 9 --start ar
  namegen generate elves --second dwarves --separator " of "
  namegen render fantasy.tmpl -n 5
  namegen serve`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd.ErrOrStderr())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "namegen.yaml", "configuration file (.yaml, .yml or .json)")
	flags.StringVar(&c.dbPath, "db", "", "model database, overrides the configuration")
	flags.StringVar(&c.logLevel, "log-level", "", "debug, info, warn or error, overrides the configuration")

	root.AddCommand(
		c.newTrainCmd(),
		c.newGenerateCmd(),
		c.newModelsCmd(),
		c.newRenderCmd(),
		c.newServeCmd(),
		newVersionCmd(),
	)
	return root
}

// setup loads the configuration and applies the global flags on top of it.
func (c *cli) setup(logOutput io.Writer) error {
	config, err := LoadConfig(c.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if c.dbPath != "" {
		config.Server.DatabasePath = c.dbPath
	}
	if c.logLevel != "" {
		config.Server.LogLevel = c.logLevel
	}
	c.config = config
	c.logger = newLogger(logOutput, config.Server.LogLevel)
	return nil
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel}))
}

// openStore opens the model database, creating it and its schema if needed.
// The returned function closes both the store and the database.
func (c *cli) openStore() (*store.Store, func(), error) {
	dataSource := c.config.Server.DatabasePath
	file, _, _ := strings.Cut(dataSource, "?")
	if dir := filepath.Dir(file); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := initDB(dataSource)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err = store.SetupSchema(db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to setup schema: %w", err)
	}
	st, err := store.New(db)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to prepare store: %w", err)
	}
	st.SetLogger(c.logger)

	return st, func() {
		st.Close()
		if err := db.Close(); err != nil {
			c.logger.Error("Failed to close database", "error", err)
		}
	}, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		// Needs no configuration.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "namegen %s (commit %s, built %s)\n", Version, Commit, BuildDate)
		},
	}
}
