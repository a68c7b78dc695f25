package pokeapi

import (
	"github.com/notjagan/pokeguide/pkg/model"
	"github.com/notjagan/pokeguide/pkg/model/sprite"
)

// Name is one entry of a payload's localized "names" list.
type Name struct {
	Name     string              `json:"name"`
	Language model.NamedResource `json:"language"`
}

// Names folds a names list into model.Names.
func Names(names []Name) model.Names {
	out := make(model.Names, len(names))
	for _, n := range names {
		out[model.LocalizationCode(n.Language.Name)] = n.Name
	}
	return out
}

type Effect struct {
	Effect      string              `json:"effect"`
	ShortEffect string              `json:"short_effect"`
	Language    model.NamedResource `json:"language"`
}

type FlavorText struct {
	FlavorText   string              `json:"flavor_text"`
	Text         string              `json:"text"`
	Language     model.NamedResource `json:"language"`
	VersionGroup model.NamedResource `json:"version_group"`
}

type PokemonType struct {
	Slot int                 `json:"slot"`
	Type model.NamedResource `json:"type"`
}

type PastType struct {
	Generation model.NamedResource `json:"generation"`
	Types      []PokemonType       `json:"types"`
}

type PokemonAbility struct {
	Slot     int                 `json:"slot"`
	IsHidden bool                `json:"is_hidden"`
	Ability  model.NamedResource `json:"ability"`
}

type Stat struct {
	BaseStat int                 `json:"base_stat"`
	Effort   int                 `json:"effort"`
	Stat     model.NamedResource `json:"stat"`
}

type MoveLearnDetail struct {
	LevelLearnedAt  int                 `json:"level_learned_at"`
	MoveLearnMethod model.NamedResource `json:"move_learn_method"`
	VersionGroup    model.NamedResource `json:"version_group"`
}

type PokemonMove struct {
	Move                model.NamedResource `json:"move"`
	VersionGroupDetails []MoveLearnDetail   `json:"version_group_details"`
}

type VersionRarity struct {
	Rarity  int                 `json:"rarity"`
	Version model.NamedResource `json:"version"`
}

type HeldItem struct {
	Item           model.NamedResource `json:"item"`
	VersionDetails []VersionRarity     `json:"version_details"`
}

type Pokemon struct {
	ID             int                   `json:"id"`
	Name           string                `json:"name"`
	Height         int                   `json:"height"`
	Weight         int                   `json:"weight"`
	BaseExperience int                   `json:"base_experience"`
	IsDefault      bool                  `json:"is_default"`
	Species        model.NamedResource   `json:"species"`
	Types          []PokemonType         `json:"types"`
	PastTypes      []PastType            `json:"past_types"`
	Abilities      []PokemonAbility      `json:"abilities"`
	Stats          []Stat                `json:"stats"`
	Moves          []PokemonMove         `json:"moves"`
	HeldItems      []HeldItem            `json:"held_items"`
	Sprites        sprite.PokemonSprites `json:"sprites"`
}

// PastMoveValues are the values a move had before VersionGroup.
type PastMoveValues struct {
	Accuracy     *int                 `json:"accuracy"`
	Power        *int                 `json:"power"`
	PP           *int                 `json:"pp"`
	Type         *model.NamedResource `json:"type"`
	VersionGroup model.NamedResource  `json:"version_group"`
}

type APIResource struct {
	URL string `json:"url"`
}

type MoveMachine struct {
	Machine      APIResource         `json:"machine"`
	VersionGroup model.NamedResource `json:"version_group"`
}

type Move struct {
	ID                int                 `json:"id"`
	Name              string              `json:"name"`
	Accuracy          *int                `json:"accuracy"`
	Power             *int                `json:"power"`
	PP                *int                `json:"pp"`
	Priority          int                 `json:"priority"`
	Type              model.NamedResource `json:"type"`
	DamageClass       model.NamedResource `json:"damage_class"`
	Generation        model.NamedResource `json:"generation"`
	Names             []Name              `json:"names"`
	EffectEntries     []Effect            `json:"effect_entries"`
	FlavorTextEntries []FlavorText        `json:"flavor_text_entries"`
	PastValues        []PastMoveValues    `json:"past_values"`
	Machines          []MoveMachine       `json:"machines"`
}

type AbilityPokemon struct {
	IsHidden bool                `json:"is_hidden"`
	Slot     int                 `json:"slot"`
	Pokemon  model.NamedResource `json:"pokemon"`
}

type Ability struct {
	ID                int                 `json:"id"`
	Name              string              `json:"name"`
	IsMainSeries      bool                `json:"is_main_series"`
	Generation        model.NamedResource `json:"generation"`
	Names             []Name              `json:"names"`
	EffectEntries     []Effect            `json:"effect_entries"`
	FlavorTextEntries []FlavorText        `json:"flavor_text_entries"`
	Pokemon           []AbilityPokemon    `json:"pokemon"`
}

type ItemHolder struct {
	Pokemon        model.NamedResource `json:"pokemon"`
	VersionDetails []VersionRarity     `json:"version_details"`
}

type Item struct {
	ID                int                 `json:"id"`
	Name              string              `json:"name"`
	Cost              int                 `json:"cost"`
	Category          model.NamedResource `json:"category"`
	Names             []Name              `json:"names"`
	EffectEntries     []Effect            `json:"effect_entries"`
	FlavorTextEntries []FlavorText        `json:"flavor_text_entries"`
	HeldByPokemon     []ItemHolder        `json:"held_by_pokemon"`
	Sprites           struct {
		Default sprite.Sprite `json:"default"`
	} `json:"sprites"`
}

type EncounterDetail struct {
	MinLevel        int                   `json:"min_level"`
	MaxLevel        int                   `json:"max_level"`
	Chance          int                   `json:"chance"`
	Method          model.NamedResource   `json:"method"`
	ConditionValues []model.NamedResource `json:"condition_values"`
}

type VersionEncounterDetail struct {
	MaxChance        int                 `json:"max_chance"`
	Version          model.NamedResource `json:"version"`
	EncounterDetails []EncounterDetail   `json:"encounter_details"`
}

// LocationAreaEncounter is one element of /pokemon/{id}/encounters.
type LocationAreaEncounter struct {
	LocationArea   model.NamedResource      `json:"location_area"`
	VersionDetails []VersionEncounterDetail `json:"version_details"`
}
