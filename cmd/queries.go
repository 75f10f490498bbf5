package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/gqlcheck/gqlcheck/internal/schema"
	"github.com/gqlcheck/gqlcheck/internal/ui"
)

var queriesJSON bool

var queriesCmd = &cobra.Command{
	Use:   "queries",
	Short: "List the root-type fields declared in the schema",
	Long: `Parses the schema directory and lists every field on the configured root
type, with its arguments in declaration order. Arguments typed as custom
scalars are treated as opaque and omitted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sch, err := schema.Parse(schemaDir(), cfg.RootType)
		if err != nil {
			return err
		}

		if queriesJSON {
			return prettyPrint(sch.Queries)
		}

		for _, w := range sch.Warnings {
			fmt.Printf("%s %s\n", ui.Warning.Render("!"), w)
		}

		if len(sch.Queries) == 0 {
			fmt.Println(ui.Muted.Render(fmt.Sprintf("No %s fields found in %s", cfg.RootType, schemaDir())))
			return nil
		}

		for _, q := range sch.Queries {
			fmt.Printf("%s%s\n", ui.Query.Render(q.Name), ui.Muted.Render(formatArguments(q.Arguments)))
		}

		if scalars := sch.ScalarNames(); len(scalars) > 0 {
			fmt.Println()
			fmt.Println(ui.Muted.Render("custom scalars: " + strings.Join(scalars, ", ")))
		}

		return nil
	},
}

// formatArguments renders arguments SDL-style, with the non-null marker
// restored for display.
func formatArguments(args []schema.Argument) string {
	if len(args) == 0 {
		return ""
	}
	parts := make([]string, len(args))
	for i, arg := range args {
		typ := arg.ValueType
		if !arg.Nullable {
			typ += "!"
		}
		parts[i] = fmt.Sprintf("%s: %s", arg.Name, typ)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func init() {
	queriesCmd.Flags().BoolVar(&queriesJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(queriesCmd)
}
