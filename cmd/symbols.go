package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/gqlcheck/gqlcheck/internal/kotlin"
	"github.com/gqlcheck/gqlcheck/internal/ui"
)

var symbolsJSON bool

var symbolsCmd = &cobra.Command{
	Use:   "symbols",
	Short: "Dump the class symbols extracted from the source tree",
	Long: `Parses the Kotlin source tree and dumps the per-file package, class, and
primary-constructor field metadata the extractor collects. Useful for
inspecting what gqlcheck sees in a source tree.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := kotlin.Parse(sourceDir(), cfg.RootType)
		if err != nil {
			return err
		}

		if symbolsJSON {
			return prettyPrint(src.Files)
		}

		for _, w := range src.Warnings {
			fmt.Printf("%s %s\n", ui.Warning.Render("!"), w)
		}

		for _, file := range src.Files {
			fmt.Println(ui.Bold.Render(file.Path))
			if file.Package != "" {
				fmt.Printf("  package %s\n", file.Package)
			}
			for _, class := range file.Classes {
				fmt.Printf("  %s\n", ui.Primary.Render(class.Name))
				for _, field := range class.Fields {
					fmt.Printf("    %s %s\n", field.Name, ui.Muted.Render(field.Type))
				}
			}
		}

		return nil
	},
}

func init() {
	symbolsCmd.Flags().BoolVar(&symbolsJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(symbolsCmd)
}
