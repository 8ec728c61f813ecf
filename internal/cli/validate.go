package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fjglira/GoE2E-StepResolver/internal/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the stepresolver.yaml configuration file",
	Long: `Loads the configuration file, checks input directories, include patterns,
Markdown tags, loader parallelism and logging settings, and prints where
descriptions will be read from. Description files themselves are not loaded;
use "list" for that.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Configuration file %q is valid.\n", cfgFile)
		fmt.Fprintf(out, "  descriptions: %s (%s)\n",
			strings.Join(cfg.Input.Directories, ", "), strings.Join(cfg.Input.Include, ", "))
		fmt.Fprintf(out, "  markdown tags: %s\n", strings.Join(cfg.Markdown.Tags, ", "))
		if cfg.Environment.File != "" {
			fmt.Fprintf(out, "  environment: %s\n", cfg.Environment.File)
		}
		log.Debugf("Loaded config: %+v", cfg)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
