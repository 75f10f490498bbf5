package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/gqlcheck/gqlcheck/internal/kotlin"
	"github.com/gqlcheck/gqlcheck/internal/ui"
)

var resolversJSON bool

var resolversCmd = &cobra.Command{
	Use:   "resolvers",
	Short: "List the resolver bindings found in the source tree",
	Long: `Parses the Kotlin source tree and lists every @SchemaMapping binding for
the configured root type. Duplicate bindings for the same field keep the
first one found, in lexical file order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := kotlin.Parse(sourceDir(), cfg.RootType)
		if err != nil {
			return err
		}

		if resolversJSON {
			return prettyPrint(src.Bindings)
		}

		for _, w := range src.Warnings {
			fmt.Printf("%s %s\n", ui.Warning.Render("!"), w)
		}

		if len(src.Bindings) == 0 {
			fmt.Println(ui.Muted.Render(fmt.Sprintf("No %s resolvers found in %s", cfg.RootType, sourceDir())))
			return nil
		}

		for _, b := range src.Bindings {
			fmt.Printf("%s %s %s\n",
				ui.Query.Render(b.Field),
				ui.Muted.Render("->"),
				fmt.Sprintf("fun %s", b.Function))
		}

		return nil
	},
}

func init() {
	resolversCmd.Flags().BoolVar(&resolversJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(resolversCmd)
}
