package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/gqlcheck/gqlcheck/internal/coverage"
	"github.com/gqlcheck/gqlcheck/internal/gitinfo"
	"github.com/gqlcheck/gqlcheck/internal/kotlin"
	"github.com/gqlcheck/gqlcheck/internal/schema"
	"github.com/gqlcheck/gqlcheck/internal/ui"
	"github.com/gqlcheck/gqlcheck/internal/watch"
)

var (
	checkJSON  bool
	checkWatch bool
)

type checkReport struct {
	Success   bool                `json:"success"`
	RootType  string              `json:"root_type"`
	Revision  string              `json:"revision,omitempty"`
	Queries   []schema.Query      `json:"queries"`
	Resolvers []kotlin.Binding    `json:"resolvers"`
	Missing   []coverage.Mismatch `json:"missing"`
	Warnings  []string            `json:"warnings,omitempty"`
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify that every root-type field has a resolver",
	Long: `Parses the schema directory and the Kotlin source tree, then reports
every root-type field that has no @SchemaMapping resolver bound to it.

Resolvers bound to fields that don't exist in the schema are ignored;
the schema is the source of truth.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if checkWatch {
			return runWatch()
		}

		report, err := runCheck()
		if err != nil {
			return err
		}

		if checkJSON {
			data, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding report: %w", err)
			}
			fmt.Println(string(data))
		} else {
			renderCheck(report)
		}

		// Exit with error code if coverage is incomplete
		if !report.Success {
			os.Exit(1)
		}

		return nil
	},
}

// runCheck executes the pipeline once: schema extraction, source symbol
// extraction, coverage match. The first fatal error aborts before matching.
func runCheck() (*checkReport, error) {
	sch, err := schema.Parse(schemaDir(), cfg.RootType)
	if err != nil {
		return nil, err
	}

	src, err := kotlin.Parse(sourceDir(), cfg.RootType)
	if err != nil {
		return nil, err
	}

	missing := coverage.Match(sch.Queries, src.FieldSet())

	warnings := make([]string, 0, len(sch.Warnings)+len(src.Warnings))
	warnings = append(warnings, sch.Warnings...)
	warnings = append(warnings, src.Warnings...)

	report := &checkReport{
		Success:   len(missing) == 0,
		RootType:  cfg.RootType,
		Queries:   sch.Queries,
		Resolvers: src.Bindings,
		Missing:   missing,
		Warnings:  warnings,
	}
	if rev, ok := gitinfo.Describe(projectDir); ok {
		report.Revision = rev.String()
	}
	return report, nil
}

func renderCheck(report *checkReport) {
	if report.Revision != "" {
		fmt.Println(ui.Muted.Render(fmt.Sprintf("checking %s", report.Revision)))
		fmt.Println()
	}

	fmt.Println(ui.Bold.Render("Schema"))
	fmt.Printf("  %s\n", ui.Path.Render(schemaDir()))
	fmt.Printf("  %s %d %s %s\n", ui.Success.Render("✓"), len(report.Queries), report.RootType, plural("field", len(report.Queries)))

	fmt.Println()
	fmt.Println(ui.Bold.Render("Resolvers"))
	fmt.Printf("  %s\n", ui.Path.Render(sourceDir()))
	fmt.Printf("  %s %d @SchemaMapping %s\n", ui.Success.Render("✓"), len(report.Resolvers), plural("binding", len(report.Resolvers)))

	for _, w := range report.Warnings {
		fmt.Printf("  %s %s\n", ui.Warning.Render("!"), w)
	}

	fmt.Println()
	fmt.Println(ui.Bold.Render("Coverage"))
	if len(report.Missing) == 0 {
		fmt.Printf("  %s every %s field has a resolver\n", ui.Success.Render("✓"), report.RootType)
	} else {
		for _, m := range report.Missing {
			fmt.Printf("  %s %s has no resolver\n", ui.Danger.Render("✗"), ui.Query.Render(m.Query))
		}
	}

	fmt.Println()
	if report.Success {
		fmt.Println(ui.Success.Render("All checks passed"))
	} else {
		fmt.Println(ui.Danger.Render(fmt.Sprintf("%d missing %s", len(report.Missing), plural("resolver", len(report.Missing)))))
	}
}

// runWatch re-runs the check whenever a schema or Kotlin file changes.
// Watch mode never exits non-zero on mismatches; it reports and keeps
// watching until interrupted.
func runWatch() error {
	run := func() {
		report, err := runCheck()
		if err != nil {
			fmt.Printf("%s %v\n", ui.Danger.Render("✗"), err)
			return
		}
		renderCheck(report)
	}

	run()

	watcher, err := watch.Start(
		[]string{schemaDir(), sourceDir()},
		[]string{".graphql", ".graphqls", ".kt"},
		func() {
			fmt.Println()
			fmt.Println(ui.Muted.Render("--- change detected ---"))
			fmt.Println()
			run()
		},
	)
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Stop()

	fmt.Println()
	fmt.Println(ui.Muted.Render("Watching for changes (ctrl-c to stop)..."))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	return nil
}

func plural(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func init() {
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Output as JSON")
	checkCmd.Flags().BoolVar(&checkWatch, "watch", false, "Re-run on schema or source changes")
	rootCmd.AddCommand(checkCmd)
}
