package resolver

import (
	"strings"

	"github.com/notjagan/pokeguide/pkg/model"
	"github.com/notjagan/pokeguide/pkg/pokeapi"
)

func effectText(entries []pokeapi.Effect, lang model.LocalizationCode) string {
	for _, code := range model.FallbackChain(lang) {
		for _, e := range entries {
			if model.LocalizationCode(e.Language.Name) != code {
				continue
			}
			if e.ShortEffect != "" {
				return clean(e.ShortEffect)
			}
			return clean(e.Effect)
		}
	}
	return ""
}

// flavorText prefers the context's version group and otherwise takes the
// newest entry in the best available language.
func flavorText(entries []pokeapi.FlavorText, vc model.VersionContext, lang model.LocalizationCode) string {
	for _, code := range model.FallbackChain(lang) {
		var latest string
		for _, e := range entries {
			if model.LocalizationCode(e.Language.Name) != code {
				continue
			}
			text := e.FlavorText
			if text == "" {
				text = e.Text
			}
			if vc.VersionGroup != "" && e.VersionGroup.Name == vc.VersionGroup {
				return clean(text)
			}
			latest = text
		}
		if latest != "" {
			return clean(latest)
		}
	}
	return ""
}

var whitespace = strings.NewReplacer("\n", " ", "\f", " ", "\u00ad", "")

func clean(s string) string {
	return strings.Join(strings.Fields(whitespace.Replace(s)), " ")
}
