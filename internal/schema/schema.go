// Package schema accumulates the union of metric names seen across runs and
// derives the final column order from it.
package schema

import "sort"

// IdentifierColumns are the leading columns filled from the run directory
// name. The mode label lives under "Reads Per Write" for compatibility with
// tables produced by earlier tooling.
var IdentifierColumns = []string{"Protocol", "Reads Per Write", "RPW", "Cores"}

// NameSet is the grow-only set of dynamic metric names. It is not safe for
// concurrent use; the pipeline observes runs from a single goroutine.
type NameSet struct {
	fixed map[string]bool
	names map[string]struct{}
}

// NewNameSet returns an empty set that ignores the given fixed metric columns
// and the identifier columns.
func NewNameSet(fixedColumns []string) *NameSet {
	fixed := make(map[string]bool, len(fixedColumns)+len(IdentifierColumns))
	for _, c := range IdentifierColumns {
		fixed[c] = true
	}
	for _, c := range fixedColumns {
		fixed[c] = true
	}
	return &NameSet{fixed: fixed, names: make(map[string]struct{})}
}

// Observe adds every non-fixed key of metrics to the set.
func (s *NameSet) Observe(metrics map[string]string) {
	for k := range metrics {
		if s.fixed[k] {
			continue
		}
		s.names[k] = struct{}{}
	}
}

func (s *NameSet) Contains(name string) bool {
	_, ok := s.names[name]
	return ok
}

func (s *NameSet) Len() int { return len(s.names) }

// Sorted returns the names in lexicographic order.
func (s *NameSet) Sorted() []string {
	out := make([]string, 0, len(s.names))
	for k := range s.names {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Columns returns identifier columns, then fixed metric columns, then the
// sorted dynamic names.
func Columns(fixedColumns []string, names *NameSet) []string {
	dynamic := names.Sorted()
	cols := make([]string, 0, len(IdentifierColumns)+len(fixedColumns)+len(dynamic))
	cols = append(cols, IdentifierColumns...)
	cols = append(cols, fixedColumns...)
	return append(cols, dynamic...)
}
