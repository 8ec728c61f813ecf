package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fjglira/GoE2E-StepResolver/internal/actiongroup"
	"github.com/fjglira/GoE2E-StepResolver/internal/domain"
)

var (
	resolveArgs   map[string]string
	resolvePrefix string
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <action-group>",
	Short: "Resolve an action group and print its steps",
	Long: `Binds --arg values against the action group's argument schema, resolves
every placeholder of its steps and prints the resolved steps as YAML, keyed by
merge key (--prefix followed by the step key).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadProject(cmd)
		if err != nil {
			return err
		}

		var callerArgs map[string]string
		if cmd.Flags().Changed("arg") {
			callerArgs = resolveArgs
		}

		steps, err := p.Resolve(args[0], callerArgs, resolvePrefix)
		if err != nil {
			return err
		}
		log.Debugf("Resolved %d step(s) of %s", steps.Len(), args[0])

		out, err := yaml.Marshal(toOutput(steps))
		if err != nil {
			return fmt.Errorf("failed to encode steps: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	resolveCmd.Flags().StringToStringVarP(&resolveArgs, "arg", "a", nil, "argument binding name=value (repeatable)")
	resolveCmd.Flags().StringVarP(&resolvePrefix, "prefix", "p", "", "merge key prefix")
	rootCmd.AddCommand(resolveCmd)
}

type stepOutput struct {
	MergeKey   string                 `yaml:"mergeKey"`
	Type       string                 `yaml:"type"`
	Attributes domain.AttributeRecord `yaml:"attributes"`
}

func toOutput(steps *actiongroup.StepList) []stepOutput {
	out := make([]stepOutput, 0, steps.Len())
	for _, s := range steps.Steps() {
		attrs := make(domain.AttributeRecord, 0)
		for _, a := range s.Attributes().All() {
			attrs = append(attrs, domain.KeyValue{Key: a.Name, Value: a.Value})
		}
		out = append(out, stepOutput{MergeKey: s.StepKey(), Type: s.Type(), Attributes: attrs})
	}
	return out
}
