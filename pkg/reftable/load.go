package reftable

import (
	"fmt"

	"github.com/notjagan/pokeguide/pkg/model"
)

// Table names, one flat file each.
const (
	TableLanguages           = "languages"
	TableGenerations         = "generations"
	TableVersionGroups       = "version_groups"
	TableVersions            = "versions"
	TableTypes               = "types"
	TableTypeNames           = "type_names"
	TablePokemon             = "pokemon"
	TablePokemonSpecies      = "pokemon_species"
	TablePokemonSpeciesNames = "pokemon_species_names"
	TablePokemonTypes        = "pokemon_types"
	TablePokemonAbilities    = "pokemon_abilities"
	TableMoves               = "moves"
	TableMoveNames           = "move_names"
	TableAbilities           = "abilities"
	TableAbilityNames        = "ability_names"
	TableItems               = "items"
	TableItemNames           = "item_names"
	TableMachines            = "machines"
)

var AllTables = []string{
	TableLanguages, TableGenerations, TableVersionGroups, TableVersions,
	TableTypes, TableTypeNames,
	TablePokemon, TablePokemonSpecies, TablePokemonSpeciesNames, TablePokemonTypes, TablePokemonAbilities,
	TableMoves, TableMoveNames,
	TableAbilities, TableAbilityNames,
	TableItems, TableItemNames,
	TableMachines,
}

func readTable[T any](src Source, table string, aliases map[string]string) ([]T, error) {
	r, err := src.Open(table)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	rows, err := decodeRows[T](r, aliases)
	if err != nil {
		return nil, fmt.Errorf("error while decoding table %q: %w", table, err)
	}
	return rows, nil
}

func readNames(src Source, table string, owner string) ([]localizedName, error) {
	return readTable[localizedName](src, table, map[string]string{"owner": owner})
}

// load reads and joins every table. Any failure discards the partial result.
func load(src Source) (*Tables, error) {
	t := newTables()

	languages, err := readTable[Language](src, TableLanguages, nil)
	if err != nil {
		return nil, err
	}
	for _, l := range languages {
		t.languages[l.ID] = model.LocalizationCode(l.ISO639)
	}

	generations, err := readTable[Generation](src, TableGenerations, nil)
	if err != nil {
		return nil, err
	}
	for _, g := range generations {
		t.generations[g.ID] = g
	}

	groups, err := readTable[VersionGroup](src, TableVersionGroups, nil)
	if err != nil {
		return nil, err
	}
	for _, vg := range groups {
		t.versionGroups[vg.ID] = vg
		t.versionGroupsByName[vg.Identifier] = vg
	}

	versions, err := readTable[Version](src, TableVersions, nil)
	if err != nil {
		return nil, err
	}
	for _, v := range versions {
		t.versions[v.ID] = v
		t.versionsByName[v.Identifier] = v
	}

	types, err := readTable[Type](src, TableTypes, nil)
	if err != nil {
		return nil, err
	}
	for _, typ := range types {
		t.types[typ.ID] = typ
		t.typesByName[typ.Identifier] = typ
	}

	typeNames, err := readNames(src, TableTypeNames, "type_id")
	if err != nil {
		return nil, err
	}
	for _, row := range typeNames {
		t.addName(t.typeNames, row)
	}

	species, err := readTable[Species](src, TablePokemonSpecies, nil)
	if err != nil {
		return nil, err
	}
	for _, s := range species {
		t.species[s.ID] = s
	}

	pokemon, err := readTable[Pokemon](src, TablePokemon, nil)
	if err != nil {
		return nil, err
	}
	for _, p := range pokemon {
		t.pokemon[p.ID] = p
		t.addEntry(Entry{
			Kind:         model.KindPokemon,
			ID:           p.ID,
			Identifier:   p.Identifier,
			GenerationID: t.species[p.SpeciesID].GenerationID,
		})
	}

	speciesNames, err := readNames(src, TablePokemonSpeciesNames, "pokemon_species_id")
	if err != nil {
		return nil, err
	}
	for _, row := range speciesNames {
		t.addName(t.names[model.KindPokemon], row)
	}

	pokemonTypes, err := readTable[PokemonType](src, TablePokemonTypes, nil)
	if err != nil {
		return nil, err
	}
	for _, row := range pokemonTypes {
		t.pokemonTypes[row.PokemonID] = append(t.pokemonTypes[row.PokemonID], row)
	}

	pokemonAbilities, err := readTable[PokemonAbility](src, TablePokemonAbilities, nil)
	if err != nil {
		return nil, err
	}
	for _, row := range pokemonAbilities {
		t.pokemonAbilities[row.PokemonID] = append(t.pokemonAbilities[row.PokemonID], row)
	}

	moves, err := readTable[Move](src, TableMoves, nil)
	if err != nil {
		return nil, err
	}
	for _, m := range moves {
		t.moves[m.ID] = m
		t.addEntry(Entry{Kind: model.KindMove, ID: m.ID, Identifier: m.Identifier, GenerationID: m.GenerationID})
	}

	moveNames, err := readNames(src, TableMoveNames, "move_id")
	if err != nil {
		return nil, err
	}
	for _, row := range moveNames {
		t.addName(t.names[model.KindMove], row)
	}

	abilities, err := readTable[Ability](src, TableAbilities, nil)
	if err != nil {
		return nil, err
	}
	for _, a := range abilities {
		if !a.IsMainSeries {
			continue
		}
		t.ability[a.ID] = a
		t.addEntry(Entry{Kind: model.KindAbility, ID: a.ID, Identifier: a.Identifier, GenerationID: a.GenerationID})
	}

	abilityNames, err := readNames(src, TableAbilityNames, "ability_id")
	if err != nil {
		return nil, err
	}
	for _, row := range abilityNames {
		t.addName(t.names[model.KindAbility], row)
	}

	items, err := readTable[Item](src, TableItems, nil)
	if err != nil {
		return nil, err
	}
	for _, i := range items {
		t.items[i.ID] = i
		t.addEntry(Entry{Kind: model.KindItem, ID: i.ID, Identifier: i.Identifier})
	}

	itemNames, err := readNames(src, TableItemNames, "item_id")
	if err != nil {
		return nil, err
	}
	for _, row := range itemNames {
		t.addName(t.names[model.KindItem], row)
	}

	machines, err := readTable[Machine](src, TableMachines, nil)
	if err != nil {
		return nil, err
	}
	for _, m := range machines {
		t.machines[machineKey{versionGroupID: m.VersionGroupID, moveID: m.MoveID}] = m
	}

	t.finish()
	return t, nil
}
