// Command calc is the calculator CLI: a line REPL, a keypad TUI and one-shot
// evaluation.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"nickandperla.net/calc/internal/config"
	"nickandperla.net/calc/pkg/calc"
)

var (
	// Global flags
	verbose    bool
	configPath string
	dbPath     string
	modeFlag   string

	// Loaded in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "calc",
	Short: "calc - a calculator with basic and scientific modes",
	Long: `calc evaluates arithmetic with a fixed set of functions and constants.

Shorthand: a^b is pow(a,b), n! is factorial(n) and 3root(x) is root(3,x).

Run without arguments to start the line REPL.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = config.DefaultPath()
		}
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("db") {
			cfg.History.DatabasePath = dbPath
		}
		if cmd.Flags().Changed("mode") {
			cfg.Mode = modeFlag
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		// Initialize logger
		level, err := cfg.LogLevel()
		if err != nil {
			return err
		}
		zcfg := zap.NewProductionConfig()
		zcfg.Level = zap.NewAtomicLevelAt(level)
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runREPLCmd(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: user config dir/calc/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite history database (default: history is not saved)")
	rootCmd.PersistentFlags().StringVar(&modeFlag, "mode", "", "Keypad mode: basic or scientific")

	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(rewriteCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(functionsCmd)
}

// newSession opens a session configured from cfg.
func newSession() (*calc.Session, error) {
	opts := []calc.Option{
		calc.WithLogger(logger),
		calc.WithHistoryLimit(cfg.History.Limit),
	}
	if cfg.History.DatabasePath != "" {
		opts = append(opts, calc.WithSQLiteStore(cfg.History.DatabasePath))
	}
	if cfg.Mode != "" {
		mode, ok := calc.ParseMode(cfg.Mode)
		if !ok {
			return nil, fmt.Errorf("unknown mode %q", cfg.Mode)
		}
		opts = append(opts, calc.WithMode(mode))
	}
	return calc.New(opts...)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
