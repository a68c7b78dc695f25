package reftable

type Language struct {
	ID         int    `csv:"id"`
	ISO639     string `csv:"iso639"`
	Identifier string `csv:"identifier"`
}

type Generation struct {
	ID         int    `csv:"id"`
	Identifier string `csv:"identifier"`
}

type VersionGroup struct {
	ID           int    `csv:"id"`
	Identifier   string `csv:"identifier"`
	GenerationID int    `csv:"generation_id"`
	Order        int    `csv:"order"`
}

type Version struct {
	ID             int    `csv:"id"`
	VersionGroupID int    `csv:"version_group_id"`
	Identifier     string `csv:"identifier"`
}

type Type struct {
	ID           int    `csv:"id"`
	Identifier   string `csv:"identifier"`
	GenerationID int    `csv:"generation_id"`
}

type Pokemon struct {
	ID         int    `csv:"id"`
	Identifier string `csv:"identifier"`
	SpeciesID  int    `csv:"species_id"`
	IsDefault  bool   `csv:"is_default"`
}

type Species struct {
	ID           int    `csv:"id"`
	Identifier   string `csv:"identifier"`
	GenerationID int    `csv:"generation_id"`
}

type Move struct {
	ID            int    `csv:"id"`
	Identifier    string `csv:"identifier"`
	GenerationID  int    `csv:"generation_id"`
	TypeID        int    `csv:"type_id"`
	Power         *int   `csv:"power"`
	PP            *int   `csv:"pp"`
	Accuracy      *int   `csv:"accuracy"`
	DamageClassID int    `csv:"damage_class_id"`
}

type Ability struct {
	ID           int    `csv:"id"`
	Identifier   string `csv:"identifier"`
	GenerationID int    `csv:"generation_id"`
	IsMainSeries bool   `csv:"is_main_series"`
}

type Item struct {
	ID         int    `csv:"id"`
	Identifier string `csv:"identifier"`
	CategoryID *int   `csv:"category_id"`
	Cost       *int   `csv:"cost"`
}

type Machine struct {
	Number         int `csv:"machine_number"`
	VersionGroupID int `csv:"version_group_id"`
	ItemID         int `csv:"item_id"`
	MoveID         int `csv:"move_id"`
}

type PokemonType struct {
	PokemonID int `csv:"pokemon_id"`
	TypeID    int `csv:"type_id"`
	Slot      int `csv:"slot"`
}

type PokemonAbility struct {
	PokemonID int  `csv:"pokemon_id"`
	AbilityID int  `csv:"ability_id"`
	IsHidden  bool `csv:"is_hidden"`
	Slot      int  `csv:"slot"`
}

// localizedName is shared by every *_names table; the owner column name is
// supplied per table.
type localizedName struct {
	OwnerID    int    `csv:"owner"`
	LanguageID int    `csv:"local_language_id"`
	Name       string `csv:"name"`
}
