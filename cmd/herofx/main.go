package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nanobrick/herofx"
)

var (
	// Global flags
	verbose    bool
	configPath string
	watch      bool
	scriptPath string
	logFile    string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "herofx",
	Short: "Animated 3D hero scene",
	Long: `herofx renders the animated hero scene: a fibered brick, orbiting
rings, a particle cloud, a double helix and a molecule, steered by the
pointer.

Run it in a desktop window, in a truecolor terminal, or headless to a PNG.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The terminal renderer owns stdout and stderr.
		if cmd.Name() == "term" && logFile == "" {
			logger = zap.NewNop()
			return nil
		}
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		if logFile != "" {
			config.OutputPaths = []string{logFile}
			config.ErrorOutputPaths = []string{logFile}
		}
		var err error
		logger, err = config.Build()
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
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (default: built-in)")
	rootCmd.PersistentFlags().BoolVar(&watch, "watch", false, "Reload the config file when it changes")
	rootCmd.PersistentFlags().StringVar(&scriptPath, "script", "", "JSON test script to drive the scene")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file instead of stderr")

	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(termCmd)
	rootCmd.AddCommand(headlessCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// animatorOptions resolves the global flags into animator options.
func animatorOptions(ctx context.Context) ([]herofx.Option, error) {
	cfg := herofx.DefaultConfig()
	if configPath != "" {
		var err error
		cfg, err = herofx.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		logger.Info("loaded config", zap.String("path", configPath))
	}
	opts := []herofx.Option{herofx.WithConfig(cfg)}
	if verbose {
		opts = append(opts, herofx.WithDebug(true))
	}
	if watch {
		if configPath == "" {
			return nil, fmt.Errorf("--watch requires --config")
		}
		reloads, err := herofx.WatchConfig(ctx, configPath, logger)
		if err != nil {
			return nil, err
		}
		opts = append(opts, herofx.WithConfigReloads(reloads))
	}
	return opts, nil
}

// loadScript reads the --script file, if any.
func loadScript() (*herofx.TestRunner, error) {
	if scriptPath == "" {
		return nil, nil
	}
	data, err := os.ReadFile(scriptPath)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return herofx.LoadTestScript(data)
}
