package kotlin

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Annotation is one annotation attached to a declaration, with its named
// arguments decoded. Positional arguments are ignored.
type Annotation struct {
	Name string
	Args map[string]string
}

// annotations reads the metadata attached to a declaration node from its
// modifiers subtree. Reading the structure directly instead of scanning the
// declaration text keeps the result stable across formatting variations
// (line breaks, spacing, argument order).
func annotations(node *sitter.Node, src []byte) []Annotation {
	var anns []Annotation
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child.Kind() != "modifiers" {
			continue
		}
		for j := uint(0); j < child.NamedChildCount(); j++ {
			mod := child.NamedChild(j)
			if mod.Kind() != "annotation" {
				continue
			}
			if ann, ok := decodeAnnotation(mod, src); ok {
				anns = append(anns, ann)
			}
		}
	}
	return anns
}

// decodeAnnotation handles both bare annotations (@Controller) and
// annotations with arguments (@SchemaMapping(...)), which the grammar nests
// inside a constructor_invocation.
func decodeAnnotation(node *sitter.Node, src []byte) (Annotation, bool) {
	ann := Annotation{Args: map[string]string{}}
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		switch child.Kind() {
		case "user_type":
			ann.Name = child.Utf8Text(src)
		case "constructor_invocation":
			for j := uint(0); j < child.NamedChildCount(); j++ {
				inner := child.NamedChild(j)
				switch inner.Kind() {
				case "user_type":
					ann.Name = inner.Utf8Text(src)
				case "value_arguments":
					decodeArguments(inner, src, ann.Args)
				}
			}
		}
	}
	return ann, ann.Name != ""
}

// decodeArguments fills args from named value_argument nodes
// (key = "value").
func decodeArguments(node *sitter.Node, src []byte, args map[string]string) {
	for i := uint(0); i < node.NamedChildCount(); i++ {
		arg := node.NamedChild(i)
		if arg.Kind() != "value_argument" {
			continue
		}
		if arg.NamedChildCount() < 2 {
			continue
		}
		key := arg.NamedChild(0)
		value := arg.NamedChild(arg.NamedChildCount() - 1)
		if key.Kind() != "identifier" {
			continue
		}
		args[key.Utf8Text(src)] = unquote(value.Utf8Text(src))
	}
}

func unquote(text string) string {
	return strings.Trim(text, `"`)
}
