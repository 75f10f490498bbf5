package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/gqlcheck/gqlcheck/internal/config"
)

// setupProject builds a project tree using the default layout and points the
// command globals at it.
func setupProject(t *testing.T, schemaSDL, kotlinSource string) {
	t.Helper()

	dir := t.TempDir()
	write := func(rel, content string) {
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("src/main/resources/graphql/schema.graphqls", schemaSDL)
	write("src/main/kotlin/com/example/app/EmployeeController.kt", kotlinSource)

	prevCfg, prevDir := cfg, projectDir
	t.Cleanup(func() { cfg, projectDir = prevCfg, prevDir })
	cfg = config.Default()
	projectDir = dir
}

const fixtureSchema = `
type Query {
  employee(id: ID!): Employee
  searchEmployee(name: String!, age: Int): [Employee]
}

type Employee {
  id: ID!
  name: String!
}

scalar Date
`

const fixtureController = `package com.example.app

import org.springframework.graphql.data.method.annotation.SchemaMapping
import org.springframework.stereotype.Controller

@Controller
class EmployeeController(val repository: EmployeeRepository) {
    @SchemaMapping(typeName = "Query", field = "employee")
    fun employee(id: String): Employee = repository.find(id)
}
`

func TestRunCheckMissingResolver(t *testing.T) {
	setupProject(t, fixtureSchema, fixtureController)

	report, err := runCheck()
	if err != nil {
		t.Fatalf("runCheck() error = %v", err)
	}

	if report.Success {
		t.Error("Success = true, want false with a missing resolver")
	}
	if len(report.Missing) != 1 || report.Missing[0].Query != "searchEmployee" {
		t.Errorf("Missing = %+v, want [searchEmployee]", report.Missing)
	}
	if len(report.Queries) != 2 {
		t.Errorf("Queries = %+v, want employee and searchEmployee", report.Queries)
	}
	if len(report.Resolvers) != 1 || report.Resolvers[0].Field != "employee" {
		t.Errorf("Resolvers = %+v, want employee binding", report.Resolvers)
	}
}

func TestRunCheckFullCoverage(t *testing.T) {
	setupProject(t, fixtureSchema, fixtureController+`
@SchemaMapping(typeName = "Query", field = "searchEmployee")
fun searchEmployee(name: String): List<Employee> = listOf()
`)

	report, err := runCheck()
	if err != nil {
		t.Fatalf("runCheck() error = %v", err)
	}

	if !report.Success {
		t.Errorf("Success = false, Missing = %+v, want full coverage", report.Missing)
	}
}

func TestCheckReportJSON(t *testing.T) {
	setupProject(t, fixtureSchema, fixtureController)

	report, err := runCheck()
	if err != nil {
		t.Fatalf("runCheck() error = %v", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		t.Fatalf("MarshalIndent() error = %v", err)
	}

	var decoded struct {
		Success bool `json:"success"`
		Missing []struct {
			Query string `json:"query"`
		} `json:"missing"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded.Success {
		t.Error("success = true, want false")
	}
	if len(decoded.Missing) != 1 || decoded.Missing[0].Query != "searchEmployee" {
		t.Errorf("missing = %+v, want [searchEmployee]", decoded.Missing)
	}
}

func TestRunCheckFatalSchemaError(t *testing.T) {
	setupProject(t, `type Query {{{`, fixtureController)

	if _, err := runCheck(); err == nil {
		t.Error("runCheck() = nil error, want schema parse error")
	}
}
