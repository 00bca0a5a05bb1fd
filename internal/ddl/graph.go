package ddl

import (
	"sort"

	"github.com/flext/flext-db-oracle/internal/schema"
)

// SortByDependencies orders tables so that every table appears after
// the tables its foreign keys reference. Kahn's algorithm with an
// alphabetical tie-break keeps the output deterministic. Tables caught
// in a reference cycle come back in the second slice, sorted by name.
//
// Foreign keys pointing outside the given set and self-references do
// not count as dependencies.
func SortByDependencies(tables []schema.Table) (ordered, cyclic []schema.Table) {
	byName := make(map[string]*schema.Table, len(tables))
	for i := range tables {
		byName[tables[i].Name] = &tables[i]
	}

	// dependents[parent] = children whose FKs reference parent
	dependents := make(map[string][]string)
	inDegree := make(map[string]int, len(tables))
	for _, t := range tables {
		inDegree[t.Name] = 0
	}
	for _, t := range tables {
		seen := make(map[string]bool)
		for _, fk := range t.ForeignKeys() {
			ref := fk.ReferencedTable
			if ref == t.Name || seen[ref] {
				continue
			}
			if _, inSet := byName[ref]; !inSet {
				continue
			}
			seen[ref] = true
			inDegree[t.Name]++
			dependents[ref] = append(dependents[ref], t.Name)
		}
	}

	var ready []string
	for name, deg := range inDegree {
		if deg == 0 {
			ready = append(ready, name)
		}
	}
	sort.Strings(ready)

	placed := make(map[string]bool, len(tables))
	for len(ready) > 0 {
		name := ready[0]
		ready = ready[1:]
		placed[name] = true
		ordered = append(ordered, *byName[name])

		added := false
		for _, child := range dependents[name] {
			inDegree[child]--
			if inDegree[child] == 0 {
				ready = append(ready, child)
				added = true
			}
		}
		if added {
			sort.Strings(ready)
		}
	}

	if len(ordered) < len(tables) {
		var names []string
		for name := range inDegree {
			if !placed[name] {
				names = append(names, name)
			}
		}
		sort.Strings(names)
		for _, name := range names {
			cyclic = append(cyclic, *byName[name])
		}
	}

	return ordered, cyclic
}
