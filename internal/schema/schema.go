// Package schema extracts root-type queries and custom scalar declarations
// from a directory of GraphQL SDL files.
package schema

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

var (
	ErrInvalidDir    = errors.New("schema path does not exist or is not a directory")
	ErrNoSchemaFiles = errors.New("no schema files found")
)

// Argument is a single argument of a root-type field. ValueType is the
// declared type with non-null markers stripped; Nullable reflects whether
// the declared type carried a non-null marker.
type Argument struct {
	Name      string `json:"name"`
	ValueType string `json:"value_type"`
	Nullable  bool   `json:"nullable"`
}

// Query is a field on the configured root type, in declaration order.
type Query struct {
	Name      string     `json:"name"`
	Arguments []Argument `json:"arguments"`
}

// Schema is the immutable result of parsing a schema directory.
type Schema struct {
	RootType      string
	Queries       []Query
	CustomScalars map[string]struct{}
	Warnings      []string
}

// QueryNames returns the query names in declaration order.
func (s *Schema) QueryNames() []string {
	names := make([]string, len(s.Queries))
	for i, q := range s.Queries {
		names[i] = q.Name
	}
	return names
}

// ScalarNames returns the declared custom scalars, sorted.
func (s *Schema) ScalarNames() []string {
	names := make([]string, 0, len(s.CustomScalars))
	for name := range s.CustomScalars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parse reads every .graphql/.graphqls file under dir and builds the query
// list for rootType along with the set of custom scalars declared anywhere
// in the corpus. Arguments whose base type is a custom scalar are dropped
// from the final query list.
//
// A syntax error in any file fails the whole parse; unreadable directory
// entries are recorded as warnings and skipped.
func Parse(dir, rootType string) (*Schema, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDir, dir)
	}

	var warnings []string
	files, warnings := listFiles(dir, warnings)
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoSchemaFiles, dir)
	}

	scalars := make(map[string]struct{})
	var queries []Query
	declaredIn := make(map[string]string) // field name -> file that declared it first

	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}

		doc, err := parser.ParseSchema(&ast.Source{Name: path, Input: string(data)})
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}

		for _, def := range doc.Definitions {
			if def.Kind == ast.Scalar {
				scalars[def.Name] = struct{}{}
			}
		}

		// Root-type fields come from plain declarations and from
		// "extend type" blocks; multi-file schemas use both.
		for _, def := range rootTypeDefinitions(doc, rootType) {
			for _, field := range def.Fields {
				if first, ok := declaredIn[field.Name]; ok {
					warnings = append(warnings, fmt.Sprintf(
						"duplicate %s field %q in %s (first declared in %s)",
						rootType, field.Name, path, first))
					continue
				}
				declaredIn[field.Name] = path
				queries = append(queries, Query{
					Name:      field.Name,
					Arguments: extractArguments(field),
				})
			}
		}
	}

	// Custom-scalar-typed arguments are opaque: drop them once the full
	// corpus has been read, so scalars declared in later files still apply.
	for i := range queries {
		queries[i].Arguments = dropScalarArguments(queries[i].Arguments, scalars)
	}

	return &Schema{
		RootType:      rootType,
		Queries:       queries,
		CustomScalars: scalars,
		Warnings:      warnings,
	}, nil
}

// listFiles collects schema file paths under dir. filepath.WalkDir visits
// entries in lexical order, which keeps first-wins tie-breaks reproducible.
func listFiles(dir string, warnings []string) ([]string, []string) {
	var files []string
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("skipping %s: %v", path, err))
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(d.Name(), ".graphql") || strings.HasSuffix(d.Name(), ".graphqls") {
			files = append(files, path)
		}
		return nil
	})
	return files, warnings
}

func rootTypeDefinitions(doc *ast.SchemaDocument, rootType string) []*ast.Definition {
	var defs []*ast.Definition
	for _, def := range doc.Definitions {
		if def.Kind == ast.Object && def.Name == rootType {
			defs = append(defs, def)
		}
	}
	for _, def := range doc.Extensions {
		if def.Kind == ast.Object && def.Name == rootType {
			defs = append(defs, def)
		}
	}
	return defs
}

func extractArguments(field *ast.FieldDefinition) []Argument {
	var args []Argument
	for _, arg := range field.Arguments {
		declared := arg.Type.String()
		args = append(args, Argument{
			Name:      arg.Name,
			ValueType: strings.ReplaceAll(declared, "!", ""),
			Nullable:  !arg.Type.NonNull,
		})
	}
	return args
}

func dropScalarArguments(args []Argument, scalars map[string]struct{}) []Argument {
	var kept []Argument
	for _, arg := range args {
		if _, ok := scalars[arg.ValueType]; ok {
			continue
		}
		kept = append(kept, arg)
	}
	return kept
}
