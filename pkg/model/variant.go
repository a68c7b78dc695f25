package model

import (
	"fmt"
	"slices"
	"strings"
)

// Variant describes a regional or battle form. The same table drives
// listing filters and display names.
type Variant struct {
	Tag      string
	Suffixes []string
	// Formats holds a per-language fmt pattern applied to the base name.
	Formats  Names
	Versions []string
}

var Variants = []Variant{
	{
		Tag:      "mega",
		Suffixes: []string{"-mega"},
		Formats:  Names{LocalizationCodeEnglish: "Mega %s", LocalizationCodeKorean: "메가%s"},
		Versions: []string{"x", "y", "omega-ruby", "alpha-sapphire", "sun", "moon", "ultra-sun", "ultra-moon", "lets-go-pikachu", "lets-go-eevee"},
	},
	{
		Tag:      "gmax",
		Suffixes: []string{"-gmax"},
		Formats:  Names{LocalizationCodeEnglish: "Gigantamax %s", LocalizationCodeKorean: "거다이맥스 %s"},
		Versions: []string{"sword", "shield"},
	},
	{
		Tag:      "alola",
		Suffixes: []string{"-alola"},
		Formats:  Names{LocalizationCodeEnglish: "Alolan %s", LocalizationCodeKorean: "알로라 %s"},
		Versions: []string{"sun", "moon", "ultra-sun", "ultra-moon", "lets-go-pikachu", "lets-go-eevee", "sword", "shield", "scarlet", "violet"},
	},
	{
		Tag:      "galar",
		Suffixes: []string{"-galar"},
		Formats:  Names{LocalizationCodeEnglish: "Galarian %s", LocalizationCodeKorean: "가라르 %s"},
		Versions: []string{"sword", "shield", "scarlet", "violet"},
	},
	{
		Tag:      "hisui",
		Suffixes: []string{"-hisui"},
		Formats:  Names{LocalizationCodeEnglish: "Hisuian %s", LocalizationCodeKorean: "히스이 %s"},
		Versions: []string{"legends-arceus", "scarlet", "violet"},
	},
	{
		Tag:      "paldea",
		Suffixes: []string{"-paldea"},
		Formats:  Names{LocalizationCodeEnglish: "Paldean %s", LocalizationCodeKorean: "팔데아 %s"},
		Versions: []string{"scarlet", "violet"},
	},
}

// FormMatch is the result of splitting an identifier on a variant suffix.
// "charizard-mega-x" yields base "charizard" and extra "x".
type FormMatch struct {
	Variant *Variant
	Base    string
	Extra   string
}

// MatchVariant finds the variant whose suffix appears in identifier, either
// at the end or followed by another hyphenated segment.
func MatchVariant(identifier string) (FormMatch, bool) {
	for i := range Variants {
		v := &Variants[i]
		for _, suffix := range v.Suffixes {
			if strings.HasSuffix(identifier, suffix) {
				return FormMatch{Variant: v, Base: strings.TrimSuffix(identifier, suffix)}, true
			}
			if idx := strings.Index(identifier, suffix+"-"); idx > 0 {
				return FormMatch{
					Variant: v,
					Base:    identifier[:idx],
					Extra:   identifier[idx+len(suffix)+1:],
				}, true
			}
		}
	}
	return FormMatch{}, false
}

// SupportedIn reports whether any of the given game versions carries the
// variant.
func (v *Variant) SupportedIn(versions []string) bool {
	for _, ver := range versions {
		if slices.Contains(v.Versions, ver) {
			return true
		}
	}
	return false
}

// DisplayName decorates a localized base name, e.g. "Alolan Raichu".
func (m FormMatch) DisplayName(base string, code LocalizationCode) string {
	format := m.Variant.Formats.Localize(code, "%s")
	name := fmt.Sprintf(format, base)
	if m.Extra != "" {
		name += " " + strings.ToUpper(IdentifierName(m.Extra))
	}
	return name
}
