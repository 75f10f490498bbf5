package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"
	"github.com/gqlcheck/gqlcheck/internal/config"
)

var cfg *config.Config
var projectDir string

var (
	projectFlag    string
	schemaPathFlag string
	sourcePathFlag string
	rootTypeFlag   string
)

var rootCmd = &cobra.Command{
	Use:   "gqlcheck",
	Short: "Check GraphQL resolver coverage for Kotlin source trees",
	Long: `gqlcheck verifies that every field on a GraphQL root type has a matching
resolver in a Kotlin source tree. Resolvers are discovered through
@SchemaMapping annotations, Spring GraphQL style.

The schema and source locations default to the Gradle layout
(src/main/resources/graphql, src/main/kotlin) and can be set in a
gqlcheck.toml at the project root or overridden with flags.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		root := projectFlag
		if root == "" {
			root = "."
		}

		abs, err := filepath.Abs(root)
		if err != nil {
			return fmt.Errorf("resolving project path: %w", err)
		}
		if info, statErr := os.Stat(abs); statErr != nil || !info.IsDir() {
			return fmt.Errorf("project path does not exist or is not a directory: %s", root)
		}
		projectDir = abs

		cfg, err = config.Load(projectDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		// Flags win over gqlcheck.toml
		if schemaPathFlag != "" {
			cfg.SchemaPath = schemaPathFlag
		}
		if sourcePathFlag != "" {
			cfg.SourcePath = sourcePathFlag
		}
		if rootTypeFlag != "" {
			cfg.RootType = rootTypeFlag
		}

		return nil
	},
}

// schemaDir returns the absolute schema directory for the current project.
func schemaDir() string {
	return filepath.Join(projectDir, cfg.SchemaPath)
}

// sourceDir returns the absolute source directory for the current project.
func sourceDir() string {
	return filepath.Join(projectDir, cfg.SourcePath)
}

// prettyPrint outputs the value as JSON with colors and indentation.
func prettyPrint(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	fmt.Println(string(pretty.Color(pretty.Pretty(data), nil)))
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&projectFlag, "project", "p", "", "Project directory (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&schemaPathFlag, "schema-path", "", "Schema directory, relative to the project (overrides gqlcheck.toml)")
	rootCmd.PersistentFlags().StringVar(&sourcePathFlag, "source-path", "", "Kotlin source directory, relative to the project (overrides gqlcheck.toml)")
	rootCmd.PersistentFlags().StringVar(&rootTypeFlag, "root-type", "", "Root type to check coverage for (overrides gqlcheck.toml)")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
