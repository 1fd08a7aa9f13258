package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"loan-calculator/config"
	"loan-calculator/logging"
)

var (
	cfg      config.Config
	logger   *zap.Logger
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "loan-calculator",
	Short: "Short-term loan calculator",
	Long: `loan-calculator quotes and submits short-term loans.

The last chosen amount and period are remembered between runs in the
configured store (sqlite file, redis or memory).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		var err error
		logger, err = logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error); overrides LOG_LEVEL")
	rootCmd.AddCommand(serveCmd, quoteCmd, submitCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
