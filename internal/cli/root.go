package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fjglira/GoE2E-StepResolver/internal/config"
)

var (
	cfgFile string
	verbose bool
	log     = logrus.New()

	// logFile is the open logging.file of the running command, if any.
	logFile *os.File
)

// rootCmd is the base command for stepresolver.
var rootCmd = &cobra.Command{
	Use:   "stepresolver",
	Short: "Resolve action groups of declarative acceptance-test descriptions",
	Long: `stepresolver loads data entities, pages, sections and action groups
from YAML description files (or YAML blocks embedded in Markdown) and resolves
every {{...}} placeholder of an action group's steps into concrete values.

Everything is driven by a YAML configuration file (stepresolver.yaml).`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetOutput(os.Stderr)
		log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
		log.SetLevel(logrus.InfoLevel)
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		closeLogFile()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "stepresolver.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// Execute runs the root command.
func Execute() error {
	defer closeLogFile()
	return rootCmd.Execute()
}

// loadConfig reads and validates the config file and applies its logging
// settings. A missing file at the default path falls back to defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		if cmd.Flags().Changed("config") || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		log.Debugf("No config file at %s, using defaults", cfgFile)
		cfg = config.DefaultConfig()
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if !verbose && cfg.Logging.Level != "" {
		level, err := logrus.ParseLevel(cfg.Logging.Level)
		if err == nil {
			log.SetLevel(level)
		}
	}
	if cfg.Logging.File != "" {
		if err := openLogFile(cfg.Logging.File); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// openLogFile tees log output into path. A file opened by an earlier call is
// closed first.
func openLogFile(path string) error {
	closeLogFile()
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	logFile = f
	log.SetOutput(io.MultiWriter(os.Stderr, f))
	return nil
}

func closeLogFile() {
	if logFile == nil {
		return
	}
	log.SetOutput(os.Stderr)
	if err := logFile.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
	}
	logFile = nil
}
