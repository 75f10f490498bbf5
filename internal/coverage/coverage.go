// Package coverage matches schema queries against resolver bindings.
package coverage

import "github.com/gqlcheck/gqlcheck/internal/schema"

// Mismatch is a schema query with no bound resolver.
type Mismatch struct {
	Query string `json:"query"`
}

// Match reports every query whose name is absent from the resolved field
// set, preserving schema declaration order. Resolvers bound to field names
// that don't exist in the schema are never reported; the schema is the
// source of truth. An empty result means full coverage.
func Match(queries []schema.Query, resolved map[string]struct{}) []Mismatch {
	var missing []Mismatch
	for _, q := range queries {
		if _, ok := resolved[q.Name]; !ok {
			missing = append(missing, Mismatch{Query: q.Name})
		}
	}
	return missing
}
