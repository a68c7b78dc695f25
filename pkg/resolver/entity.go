package resolver

import (
	"github.com/notjagan/pokeguide/pkg/model"
	"github.com/notjagan/pokeguide/pkg/model/sprite"
	"github.com/notjagan/pokeguide/pkg/typechart"
)

// Entity is the summary every resolved value carries.
type Entity struct {
	Kind       model.Kind `json:"kind"`
	ID         int        `json:"id"`
	Identifier string     `json:"identifier"`
	Name       string     `json:"name"`
	Generation int        `json:"generation,omitempty"`
}

func (e Entity) Summary() Entity {
	return e
}

// Resolved is any value returned by Resolve.
type Resolved interface {
	Summary() Entity
}

type AbilitySlot struct {
	Entity
	Hidden bool `json:"hidden"`
	Slot   int  `json:"slot"`
}

type Stat struct {
	Identifier string `json:"identifier"`
	Base       int    `json:"base"`
}

type LearnableMove struct {
	Entity
	Type         typechart.Type        `json:"type"`
	Method       model.LearnMethodName `json:"method"`
	Level        int                   `json:"level,omitempty"`
	Machine      string                `json:"machine,omitempty"`
	VersionGroup string                `json:"version_group"`
}

type HeldItem struct {
	Entity
	Rarity  int    `json:"rarity"`
	Version string `json:"version"`
}

type Pokemon struct {
	Entity
	Species   string            `json:"species"`
	Variant   string            `json:"variant,omitempty"`
	Height    int               `json:"height"`
	Weight    int               `json:"weight"`
	Types     []typechart.Type  `json:"types"`
	TypeNames []string          `json:"type_names"`
	Abilities []AbilitySlot     `json:"abilities"`
	Stats     []Stat            `json:"stats"`
	Moves     []LearnableMove   `json:"moves"`
	HeldItems []HeldItem        `json:"held_items"`
	Sprite    sprite.Sprite     `json:"sprite"`
	Artwork   sprite.Sprite     `json:"artwork"`
	Chart     typechart.ChartID `json:"chart"`
	Defense   typechart.Profile `json:"defense"`
}

type Move struct {
	Entity
	Type        typechart.Type    `json:"type"`
	TypeName    string            `json:"type_name"`
	DamageClass string            `json:"damage_class"`
	Power       *int              `json:"power"`
	PP          *int              `json:"pp"`
	Accuracy    *int              `json:"accuracy"`
	Priority    int               `json:"priority"`
	Effect      string            `json:"effect,omitempty"`
	FlavorText  string            `json:"flavor_text,omitempty"`
	Machine     string            `json:"machine,omitempty"`
	Chart       typechart.ChartID `json:"chart"`
	Coverage    typechart.Profile `json:"coverage"`
}

type AbilityHolder struct {
	Entity
	Hidden bool `json:"hidden"`
}

type Ability struct {
	Entity
	Effect     string          `json:"effect,omitempty"`
	FlavorText string          `json:"flavor_text,omitempty"`
	Pokemon    []AbilityHolder `json:"pokemon"`
}

type ItemHolder struct {
	Entity
	Rarity  int    `json:"rarity"`
	Version string `json:"version"`
}

type Item struct {
	Entity
	Cost       int           `json:"cost"`
	Category   string        `json:"category"`
	Effect     string        `json:"effect,omitempty"`
	FlavorText string        `json:"flavor_text,omitempty"`
	Sprite     sprite.Sprite `json:"sprite"`
	HeldBy     []ItemHolder  `json:"held_by"`
}

type Encounter struct {
	Location  string   `json:"location"`
	Version   string   `json:"version"`
	MaxChance int      `json:"max_chance"`
	MinLevel  int      `json:"min_level"`
	MaxLevel  int      `json:"max_level"`
	Methods   []string `json:"methods"`
}
