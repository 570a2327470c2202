package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sajumatch/internal/config"
	"sajumatch/internal/logging"
)

var (
	// Global flags
	verbose      bool
	configPath   string
	outputFormat string

	// Loaded in PersistentPreRunE
	cfg = config.DefaultConfig()

	// Logger
	logger = zap.NewNop()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "sajumatch",
	Short: "Four Pillars and personality-type compatibility",
	Long: `sajumatch derives the Four Pillars (year, month, day and hour stem/branch
pairs) of a birth moment and scores how well two people fit together by
combining their personality type codes with their pillars.

Rooms collect participants so that every pair can be compared at once.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if outputFormat != "" {
			loaded.Output.Format = outputFormat
		}
		if err := loaded.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		cfg = loaded

		// Initialize logger
		logger, err = cfg.Logging.ZapConfig(verbose).Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		if err := logging.Initialize(logger, cfg.Logging.Categories); err != nil {
			return err
		}
		logging.Boot("%s %s: %s", cfg.Name, cfg.Version, cmd.CommandPath())
		logger.Debug("config loaded",
			zap.String("path", configPath),
			zap.String("rooms_backend", cfg.Rooms.Backend),
			zap.String("rooms_dir", cfg.Rooms.Dir))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		syncLogs()
	},
}

// syncLogs flushes buffered log entries. Cobra skips PersistentPostRun when
// RunE fails, so main calls it again after Execute.
func syncLogs() {
	_ = logging.Sync()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Config file")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "Output format: text or json (default from config)")

	// Add commands to root
	rootCmd.AddCommand(pillarsCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(outlookCmd)
	rootCmd.AddCommand(roomCmd)
}

func main() {
	err := rootCmd.Execute()
	syncLogs()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
