package resolver

import (
	"context"

	"github.com/notjagan/pokeguide/pkg/model"
)

// available reports whether an entity exists in a context: it must not be
// newer than the context's generation, and variant forms must be carried by
// one of the context's games.
func available(e Entity, vc model.VersionContext, versions []string) bool {
	if e.Generation > vc.Generation {
		return false
	}
	if e.Kind == model.KindPokemon {
		if match, ok := model.MatchVariant(e.Identifier); ok {
			return match.Variant.SupportedIn(versions)
		}
	}
	return true
}

// List enumerates a kind for a context from the reference tables alone.
func (r *Resolver) List(ctx context.Context, kind model.Kind, vc model.VersionContext, lang model.LocalizationCode) ([]Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vc = r.tables.Normalize(vc)
	versions := r.tables.VersionsIn(vc)

	entries := r.tables.List(kind)
	list := make([]Entity, 0, len(entries))
	for _, e := range entries {
		summary := r.summary(e, lang, nil)
		if !available(summary, vc, versions) {
			continue
		}
		list = append(list, summary)
	}
	return list, nil
}
