package cli

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List loaded entities, operations, pages, sections and action groups",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadProject(cmd)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		defer w.Flush()

		entities := p.Entities.GetAllObjects()
		for _, name := range sortedKeys(entities) {
			e := entities[name]
			fmt.Fprintf(w, "entity\t%s\t%s\t%s\n", name, e.Type(), strings.Join(e.FieldKeys(), ","))
		}

		operations := p.Operations.GetAllObjects()
		for _, key := range sortedKeys(operations) {
			op := operations[key]
			fmt.Fprintf(w, "operation\t%s\t%s %s\t%s/%s\n", op.Name(), op.Method(), op.URL(), op.Operation(), op.DataType())
		}

		pages := p.Pages.GetAllObjects()
		for _, name := range sortedKeys(pages) {
			pg := pages[name]
			fmt.Fprintf(w, "page\t%s\t%s\t%s\n", name, pg.URLPath(), strings.Join(pg.SectionNames(), ","))
		}

		sections := p.Sections.GetAllObjects()
		for _, name := range sortedKeys(sections) {
			fmt.Fprintf(w, "section\t%s\t%s\t\n", name, strings.Join(sections[name].ElementNames(), ","))
		}

		for _, name := range p.ActionGroupNames() {
			g, _ := p.ActionGroup(name)
			var argNames []string
			for _, a := range g.Arguments() {
				argNames = append(argNames, a.Name)
			}
			fmt.Fprintf(w, "actionGroup\t%s\t%d step(s)\t%s\n", name, len(g.Steps()), strings.Join(argNames, ","))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
