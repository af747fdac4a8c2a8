package dataprep

import (
	"strings"

	"github.com/marczieee/featurepipe/pkg/data"
)

// ColumnPredicate decides whether a column takes part in a stage.
type ColumnPredicate func(c *data.Column) bool

// OfKind matches columns of kind k.
func OfKind(k data.Kind) ColumnPredicate {
	return func(c *data.Column) bool { return c.Kind == k }
}

// NameContains matches names containing any of subs, ignoring case.
func NameContains(subs ...string) ColumnPredicate {
	return func(c *data.Column) bool {
		name := strings.ToLower(c.Name)
		for _, s := range subs {
			if strings.Contains(name, strings.ToLower(s)) {
				return true
			}
		}
		return false
	}
}

// NameHasSuffix matches names ending in any of suffixes.
func NameHasSuffix(suffixes ...string) ColumnPredicate {
	return func(c *data.Column) bool {
		for _, s := range suffixes {
			if strings.HasSuffix(c.Name, s) {
				return true
			}
		}
		return false
	}
}

// NameHasPrefix matches names starting with any of prefixes.
func NameHasPrefix(prefixes ...string) ColumnPredicate {
	return func(c *data.Column) bool {
		for _, p := range prefixes {
			if strings.HasPrefix(c.Name, p) {
				return true
			}
		}
		return false
	}
}

// NameIn matches any of the given exact names.
func NameIn(names ...string) ColumnPredicate {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return func(c *data.Column) bool {
		_, ok := set[c.Name]
		return ok
	}
}

func Not(p ColumnPredicate) ColumnPredicate {
	return func(c *data.Column) bool { return !p(c) }
}

func AllOf(ps ...ColumnPredicate) ColumnPredicate {
	return func(c *data.Column) bool {
		for _, p := range ps {
			if !p(c) {
				return false
			}
		}
		return true
	}
}

// Select returns the columns of t matching p, in table order.
func Select(t *data.Table, p ColumnPredicate) []*data.Column {
	var out []*data.Column
	for _, c := range t.Columns() {
		if p(c) {
			out = append(out, c)
		}
	}
	return out
}

func columnNames(cols []*data.Column) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}
