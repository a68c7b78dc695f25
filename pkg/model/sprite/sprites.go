package sprite

type Sprites struct {
	FrontDefault     Sprite `json:"front_default"`
	FrontShiny       Sprite `json:"front_shiny"`
	FrontFemale      Sprite `json:"front_female"`
	FrontShinyFemale Sprite `json:"front_shiny_female"`
	BackDefault      Sprite `json:"back_default"`
	BackShiny        Sprite `json:"back_shiny"`
	BackFemale       Sprite `json:"back_female"`
	BackShinyFemale  Sprite `json:"back_shiny_female"`
}

// PokemonSprites mirrors the sprite block of a creature payload. Versions
// is keyed by generation identifier, then version group identifier.
type PokemonSprites struct {
	Sprites
	Other    map[string]Sprites            `json:"other"`
	Versions map[string]map[string]Sprites `json:"versions"`
}

const officialArtwork = "official-artwork"

// Artwork prefers the official artwork over the default front sprite.
func (ps PokemonSprites) Artwork() Sprite {
	return ps.Other[officialArtwork].FrontDefault.Or(ps.FrontDefault)
}

// ForVersion returns the in-game sprite of a specific release, falling back
// to the artwork when that release has none.
func (ps PokemonSprites) ForVersion(generation, versionGroup string) Sprite {
	if groups, ok := ps.Versions[generation]; ok {
		if s, ok := groups[versionGroup]; ok && !s.FrontDefault.Empty() {
			return s.FrontDefault
		}
	}
	return ps.Artwork()
}
