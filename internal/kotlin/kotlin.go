// Package kotlin extracts class symbols and resolver bindings from a Kotlin
// source tree using tree-sitter.
package kotlin

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	tree_sitter_kotlin "github.com/tree-sitter-grammars/tree-sitter-kotlin/bindings/go"
	sitter "github.com/tree-sitter/go-tree-sitter"
)

var (
	ErrInvalidDir = errors.New("source path does not exist or is not a directory")
	ErrParse      = errors.New("kotlin syntax error")
)

// schemaMappingAnnotation is the annotation that binds a function to a
// schema field, Spring-GraphQL style:
//
//	@SchemaMapping(typeName = "Query", field = "employee")
const schemaMappingAnnotation = "SchemaMapping"

// Field is a primary-constructor parameter of a class.
type Field struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Class is a class declaration. Name is qualified with the declaring
// file's package.
type Class struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

// SourceFile holds the symbols extracted from one parsed file.
type SourceFile struct {
	Path    string  `json:"path"`
	Package string  `json:"package"`
	Classes []Class `json:"classes"`
}

// Binding ties a schema field on RootType to a resolver function.
// Function is the Kotlin function name, kept for diagnostics.
type Binding struct {
	RootType string `json:"root_type"`
	Field    string `json:"field"`
	Function string `json:"function"`
}

// Result is the immutable output of parsing a source tree. Classes is keyed
// by qualified name; when the same qualified name appears twice, the first
// declaration in traversal order wins. Bindings holds at most one entry per
// field name, first match wins.
type Result struct {
	Files    []SourceFile
	Classes  map[string]Class
	Bindings []Binding
	Warnings []string
}

// FieldSet returns the bound field names as a set, for coverage matching.
func (r *Result) FieldSet() map[string]struct{} {
	fields := make(map[string]struct{}, len(r.Bindings))
	for _, b := range r.Bindings {
		fields[b.Field] = struct{}{}
	}
	return fields
}

// symbolQuery selects the declarations we care about; the interesting
// structure (constructor parameters, annotations, function names) is read
// by walking each captured node's subtree.
const symbolQuery = `
(package_header (qualified_identifier) @package)
(class_declaration) @class
(function_declaration) @function
`

// Parse walks dir for .kt files and extracts per-file symbols plus the
// resolver bindings declared for rootType. Read and parse failures are
// fatal; unreadable directory entries are recorded as warnings and skipped.
func Parse(dir, rootType string) (*Result, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDir, dir)
	}

	var warnings []string
	var files []string
	// Lexical traversal order makes the first-wins tie-breaks below
	// reproducible across file systems.
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("skipping %s: %v", path, err))
			return nil
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".kt") {
			files = append(files, path)
		}
		return nil
	})

	parser := sitter.NewParser()
	defer parser.Close()

	lang := sitter.NewLanguage(tree_sitter_kotlin.Language())
	if err := parser.SetLanguage(lang); err != nil {
		return nil, fmt.Errorf("loading kotlin grammar: %w", err)
	}

	query, qerr := sitter.NewQuery(lang, symbolQuery)
	if qerr != nil {
		return nil, fmt.Errorf("compiling symbol query: %v", qerr)
	}
	defer query.Close()

	result := &Result{Classes: make(map[string]Class)}
	bound := make(map[string]struct{})

	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}

		tree := parser.Parse(data, nil)
		if tree == nil {
			return nil, fmt.Errorf("%w: %s", ErrParse, path)
		}
		root := tree.RootNode()
		if root.HasError() {
			tree.Close()
			return nil, fmt.Errorf("%w: %s", ErrParse, path)
		}

		file := SourceFile{Path: relPath(dir, path)}

		cursor := sitter.NewQueryCursor()
		matches := cursor.Matches(query, root, data)
		for match := matches.Next(); match != nil; match = matches.Next() {
			for _, capture := range match.Captures {
				node := &capture.Node
				switch query.CaptureNames()[capture.Index] {
				case "package":
					// A second package header would be malformed
					// Kotlin; last one wins.
					file.Package = node.Utf8Text(data)
				case "class":
					class := classSymbol(node, file.Package, data)
					if class.Name == "" {
						continue
					}
					file.Classes = append(file.Classes, class)
					if _, seen := result.Classes[class.Name]; !seen {
						result.Classes[class.Name] = class
					}
				case "function":
					binding, ok := resolverBinding(node, rootType, data)
					if !ok {
						continue
					}
					if _, seen := bound[binding.Field]; seen {
						continue
					}
					bound[binding.Field] = struct{}{}
					result.Bindings = append(result.Bindings, binding)
				}
			}
		}
		cursor.Close()
		tree.Close()

		result.Files = append(result.Files, file)
	}

	result.Warnings = warnings
	return result, nil
}

// classSymbol reads a class_declaration node: the simple name comes from its
// name field, fields from the class_parameters of the primary constructor.
func classSymbol(node *sitter.Node, pkg string, src []byte) Class {
	var class Class
	if name := node.ChildByFieldName("name"); name != nil {
		simple := name.Utf8Text(src)
		if pkg != "" {
			simple = pkg + "." + simple
		}
		class.Name = simple
	}
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child.Kind() != "primary_constructor" {
			continue
		}
		for j := uint(0); j < child.NamedChildCount(); j++ {
			params := child.NamedChild(j)
			if params.Kind() != "class_parameters" {
				continue
			}
			for k := uint(0); k < params.NamedChildCount(); k++ {
				param := params.NamedChild(k)
				if param.Kind() != "class_parameter" {
					continue
				}
				if field, ok := parseParameter(param.Utf8Text(src)); ok {
					class.Fields = append(class.Fields, field)
				}
			}
		}
	}
	return class
}

// parseParameter splits a "val name: Type" parameter into name and type,
// trimming the mutability keyword.
func parseParameter(text string) (Field, bool) {
	name, typ, ok := strings.Cut(text, ":")
	if !ok {
		return Field{}, false
	}
	name = strings.TrimSpace(name)
	name = strings.TrimPrefix(name, "val ")
	name = strings.TrimPrefix(name, "var ")
	return Field{
		Name: strings.TrimSpace(name),
		Type: strings.TrimSpace(typ),
	}, true
}

// resolverBinding checks a function_declaration for a SchemaMapping
// annotation targeting rootType.
func resolverBinding(node *sitter.Node, rootType string, src []byte) (Binding, bool) {
	for _, ann := range annotations(node, src) {
		if ann.Name != schemaMappingAnnotation {
			continue
		}
		if ann.Args["typeName"] != rootType {
			continue
		}
		field := ann.Args["field"]
		if field == "" {
			continue
		}
		return Binding{
			RootType: rootType,
			Field:    field,
			Function: functionName(node, src),
		}, true
	}
	return Binding{}, false
}

// functionName returns the declared name of a function_declaration.
func functionName(node *sitter.Node, src []byte) string {
	if name := node.ChildByFieldName("name"); name != nil {
		return name.Utf8Text(src)
	}
	return ""
}

func relPath(dir, path string) string {
	if rel, err := filepath.Rel(dir, path); err == nil {
		return rel
	}
	return path
}
