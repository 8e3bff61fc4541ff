package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/relocator/relocator/pkg/config"
	"github.com/relocator/relocator/pkg/utils"
)

var (
	// Global flags
	verbose    bool
	configPath string
	logFormat  string

	logger utils.Logger
	cfg    *config.Config
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "relocator",
	Short: "Plan and execute filesystem relocations across storage roots",
	Long: `relocator scans a set of storage roots, searches for a sequence of
file moves that balances each subdirectory onto a single root and empties
any scratchpad roots, and optionally executes that plan.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logLevel := utils.LevelInfo
		if verbose {
			logLevel = utils.LevelDebug
		}
		logger = utils.NewDefaultLogger(logLevel, os.Stdout)

		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if logFormat != "" {
			loaded.Log.Format = logFormat
		}
		cfg = loaded

		return nil
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a config file (defaults per pkg/config)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Override log format: text or json")
}

// GetLogger returns the configured logger.
func GetLogger() utils.Logger {
	return logger
}

// BinName returns the base name of the current executable.
func BinName() string {
	return filepath.Base(os.Args[0])
}
