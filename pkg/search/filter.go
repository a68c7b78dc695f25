package search

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/notjagan/pokeguide/pkg/model"
)

var folder = cases.Fold()

func fold(s string) string {
	return folder.String(s)
}

// match compiles a query into a case-folded substring predicate on the
// localized name. A blank query matches nothing.
func match(query string) func(Entry) bool {
	q := fold(strings.TrimSpace(query))
	if q == "" {
		return func(Entry) bool { return false }
	}
	return func(e Entry) bool {
		return strings.Contains(fold(e.Name), q)
	}
}

func filter(entries []Entry, keep func(Entry) bool) []Entry {
	out := make([]Entry, 0)
	for _, e := range entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// FilterByQuery filters every category, keeping the original order.
func FilterByQuery(idx *Index, query string) Index {
	keep := match(query)
	return Index{
		Pokemon:   filter(idx.Pokemon, keep),
		Moves:     filter(idx.Moves, keep),
		Abilities: filter(idx.Abilities, keep),
		Items:     filter(idx.Items, keep),
	}
}

func FilterPokemonByQuery(idx *Index, query string) []Entry {
	return filter(idx.Pokemon, match(query))
}

func FilterMovesByQuery(idx *Index, query string) []Entry {
	return filter(idx.Moves, match(query))
}

func FilterAbilitiesByQuery(idx *Index, query string) []Entry {
	return filter(idx.Abilities, match(query))
}

func FilterItemsByQuery(idx *Index, query string) []Entry {
	return filter(idx.Items, match(query))
}

// Filter applies a query to an arbitrary entry list.
func Filter(entries []Entry, query string) []Entry {
	return filter(entries, match(query))
}

// Category returns the entries of one kind.
func (idx *Index) Category(kind model.Kind) []Entry {
	return *idx.category(kind)
}
