package pipeline

import "github.com/marczieee/featurepipe/pkg/data"

// Schema describes the structure of a table.
type Schema struct {
	FeatureNames []string
	Types        []string // "numeric", "text" or "time"
}

func SchemaOf(t *data.Table) Schema {
	s := Schema{}
	for _, c := range t.Columns() {
		s.FeatureNames = append(s.FeatureNames, c.Name)
		s.Types = append(s.Types, c.Kind.String())
	}
	return s
}

// Added lists the columns of s missing from prev, in s order.
func (s Schema) Added(prev Schema) []string {
	old := make(map[string]bool, len(prev.FeatureNames))
	for _, n := range prev.FeatureNames {
		old[n] = true
	}
	var added []string
	for _, n := range s.FeatureNames {
		if !old[n] {
			added = append(added, n)
		}
	}
	return added
}
