package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.SchemaPath != "src/main/resources/graphql" {
		t.Errorf("SchemaPath = %q, want src/main/resources/graphql", cfg.SchemaPath)
	}
	if cfg.SourcePath != "src/main/kotlin" {
		t.Errorf("SourcePath = %q, want src/main/kotlin", cfg.SourcePath)
	}
	if cfg.RootType != "Query" {
		t.Errorf("RootType = %q, want Query", cfg.RootType)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.RootType != "Query" {
		t.Errorf("RootType = %q, want default Query", cfg.RootType)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	content := `
schema_path = "graphql"
root_type = "Mutation"
`
	if err := os.WriteFile(filepath.Join(dir, ConfigFile), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.SchemaPath != "graphql" {
		t.Errorf("SchemaPath = %q, want graphql", cfg.SchemaPath)
	}
	if cfg.RootType != "Mutation" {
		t.Errorf("RootType = %q, want Mutation", cfg.RootType)
	}
	// Unset keys fall back to defaults
	if cfg.SourcePath != "src/main/kotlin" {
		t.Errorf("SourcePath = %q, want default src/main/kotlin", cfg.SourcePath)
	}
}

func TestLoadInvalidToml(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFile), []byte("schema_path = ["), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(dir); err == nil {
		t.Error("Load() = nil error, want toml error")
	}
}
