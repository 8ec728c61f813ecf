package cli

import (
	"github.com/spf13/cobra"

	"github.com/fjglira/GoE2E-StepResolver/internal/loader"
	"github.com/fjglira/GoE2E-StepResolver/internal/parser"
	"github.com/fjglira/GoE2E-StepResolver/internal/scanner"
)

// loadProject wires all components and loads the configured descriptions.
func loadProject(cmd *cobra.Command) (*loader.Project, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	recursive := true
	if cfg.Input.Recursive != nil {
		recursive = *cfg.Input.Recursive
	}

	log.Debugf("Scanning directories: %v", cfg.Input.Directories)
	l := loader.NewLoader(
		scanner.NewScanner(recursive),
		parser.NewDefaultRegistry(cfg.Markdown.Tags),
		log,
	)
	return l.Load(cmd.Context(), cfg)
}
