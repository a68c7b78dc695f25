package reftable

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/notjagan/pokeguide/pkg/model"
)

// Entry is the kind-independent view of an entity row.
type Entry struct {
	Kind         model.Kind `json:"kind"`
	ID           int        `json:"id"`
	Identifier   string     `json:"identifier"`
	GenerationID int        `json:"generation_id,omitempty"`
	// Names is set only for inline references missing from the tables.
	Names model.Names `json:"-"`
}

type machineKey struct {
	versionGroupID int
	moveID         int
}

// Tables is the joined, immutable view of every reference table. It is only
// ever handed out fully built.
type Tables struct {
	languages map[int]model.LocalizationCode

	generations         map[int]Generation
	versionGroups       map[int]VersionGroup
	versionGroupsByName map[string]VersionGroup
	versions            map[int]Version
	versionsByName      map[string]Version

	types       map[int]Type
	typesByName map[string]Type
	typeNames   map[int]model.Names

	pokemon map[int]Pokemon
	species map[int]Species
	moves   map[int]Move
	ability map[int]Ability
	items   map[int]Item

	entries map[model.Kind]map[int]Entry
	byName  map[model.Kind]map[string]int
	order   map[model.Kind][]int
	names   map[model.Kind]map[int]model.Names

	pokemonTypes     map[int][]PokemonType
	pokemonAbilities map[int][]PokemonAbility
	machines         map[machineKey]Machine
}

func newTables() *Tables {
	t := &Tables{
		languages:           make(map[int]model.LocalizationCode),
		generations:         make(map[int]Generation),
		versionGroups:       make(map[int]VersionGroup),
		versionGroupsByName: make(map[string]VersionGroup),
		versions:            make(map[int]Version),
		versionsByName:      make(map[string]Version),
		types:               make(map[int]Type),
		typesByName:         make(map[string]Type),
		typeNames:           make(map[int]model.Names),
		pokemon:             make(map[int]Pokemon),
		species:             make(map[int]Species),
		moves:               make(map[int]Move),
		ability:             make(map[int]Ability),
		items:               make(map[int]Item),
		entries:             make(map[model.Kind]map[int]Entry),
		byName:              make(map[model.Kind]map[string]int),
		order:               make(map[model.Kind][]int),
		names:               make(map[model.Kind]map[int]model.Names),
		pokemonTypes:        make(map[int][]PokemonType),
		pokemonAbilities:    make(map[int][]PokemonAbility),
		machines:            make(map[machineKey]Machine),
	}
	for _, kind := range model.KindValues() {
		t.entries[kind] = make(map[int]Entry)
		t.byName[kind] = make(map[string]int)
		t.names[kind] = make(map[int]model.Names)
	}
	return t
}

func (t *Tables) addEntry(e Entry) {
	t.entries[e.Kind][e.ID] = e
	t.byName[e.Kind][e.Identifier] = e.ID
	t.order[e.Kind] = append(t.order[e.Kind], e.ID)
}

func (t *Tables) addName(names map[int]model.Names, row localizedName) {
	code, ok := t.languages[row.LanguageID]
	if !ok || row.Name == "" {
		return
	}
	if names[row.OwnerID] == nil {
		names[row.OwnerID] = make(model.Names)
	}
	names[row.OwnerID][code] = row.Name
}

// finish sorts the ordered indexes once every row is in place.
func (t *Tables) finish() {
	for _, ids := range t.order {
		slices.Sort(ids)
	}
	for id := range t.pokemonTypes {
		slices.SortFunc(t.pokemonTypes[id], func(a, b PokemonType) int { return cmp.Compare(a.Slot, b.Slot) })
	}
	for id := range t.pokemonAbilities {
		slices.SortFunc(t.pokemonAbilities[id], func(a, b PokemonAbility) int { return cmp.Compare(a.Slot, b.Slot) })
	}
}

func (t *Tables) Entry(kind model.Kind, id int) (Entry, bool) {
	e, ok := t.entries[kind][id]
	return e, ok
}

func (t *Tables) Lookup(kind model.Kind, identifier string) (Entry, bool) {
	id, ok := t.byName[kind][identifier]
	if !ok {
		return Entry{}, false
	}
	return t.Entry(kind, id)
}

// List returns every entry of a kind in ID order.
func (t *Tables) List(kind model.Kind) []Entry {
	ids := t.order[kind]
	entries := make([]Entry, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, t.entries[kind][id])
	}
	return entries
}

// Resolve maps a reference of any form onto a known entry.
func (t *Tables) Resolve(kind model.Kind, ref model.Ref) (Entry, error) {
	switch r := ref.(type) {
	case model.ByID:
		return t.resolveByID(kind, r)
	case model.ByIdentifier:
		return t.resolveByIdentifier(kind, r)
	case model.ByInline:
		return t.resolveInline(kind, r)
	default:
		return Entry{}, fmt.Errorf("unsupported reference %T: %w", ref, model.ErrNotFound)
	}
}

func (t *Tables) resolveByID(kind model.Kind, id model.ByID) (Entry, error) {
	e, ok := t.Entry(kind, int(id))
	if !ok {
		return Entry{}, fmt.Errorf("no %s with id %d: %w", kind, id, model.ErrNotFound)
	}
	return e, nil
}

func (t *Tables) resolveByIdentifier(kind model.Kind, identifier model.ByIdentifier) (Entry, error) {
	e, ok := t.Lookup(kind, string(identifier))
	if !ok {
		return Entry{}, fmt.Errorf("no %s named %q: %w", kind, identifier, model.ErrNotFound)
	}
	return e, nil
}

// resolveInline prefers the table row and otherwise trusts what the caller
// already knows about the entity.
func (t *Tables) resolveInline(kind model.Kind, inline model.ByInline) (Entry, error) {
	if e, ok := t.Entry(kind, inline.ID); ok {
		return e, nil
	}
	if e, ok := t.Lookup(kind, inline.Identifier); ok {
		return e, nil
	}
	if inline.ID == 0 || inline.Identifier == "" {
		return Entry{}, fmt.Errorf("incomplete inline %s reference: %w", kind, model.ErrNotFound)
	}
	return Entry{Kind: kind, ID: inline.ID, Identifier: inline.Identifier, Names: inline.Names}, nil
}

// Names returns the localized names of an entity. Creatures share the names
// of their species.
func (t *Tables) Names(kind model.Kind, id int) model.Names {
	if kind == model.KindPokemon {
		p, ok := t.pokemon[id]
		if !ok {
			return nil
		}
		return t.names[kind][p.SpeciesID]
	}
	return t.names[kind][id]
}

// DisplayName localizes an entity name. Variant creature forms are rendered
// from their species name, e.g. "Alolan Raichu".
func (t *Tables) DisplayName(kind model.Kind, id int, lang model.LocalizationCode) string {
	e, ok := t.Entry(kind, id)
	if !ok {
		return ""
	}
	names := t.Names(kind, id)
	if kind == model.KindPokemon {
		if match, ok := model.MatchVariant(e.Identifier); ok {
			return match.DisplayName(names.Localize(lang, match.Base), lang)
		}
	}
	return names.Localize(lang, e.Identifier)
}

func (t *Tables) TypeIdentifier(id int) (string, bool) {
	typ, ok := t.types[id]
	return typ.Identifier, ok
}

func (t *Tables) TypeName(identifier string, lang model.LocalizationCode) string {
	typ, ok := t.typesByName[identifier]
	if !ok {
		return model.IdentifierName(identifier)
	}
	return t.typeNames[typ.ID].Localize(lang, identifier)
}

// TypeIdentifiers lists the type vocabulary in ID order.
func (t *Tables) TypeIdentifiers() []string {
	return t.TypesIn(0)
}

// TypesIn lists the types that exist in a generation, in ID order. Zero
// means every generation.
func (t *Tables) TypesIn(generation int) []string {
	ids := make([]int, 0, len(t.types))
	for id, row := range t.types {
		if generation > 0 && row.GenerationID > generation {
			continue
		}
		ids = append(ids, id)
	}
	slices.Sort(ids)

	identifiers := make([]string, 0, len(ids))
	for _, id := range ids {
		identifiers = append(identifiers, t.types[id].Identifier)
	}
	return identifiers
}

// PokemonTypes returns a creature's type identifiers ordered by slot.
func (t *Tables) PokemonTypes(id int) []string {
	rows := t.pokemonTypes[id]
	types := make([]string, 0, len(rows))
	for _, row := range rows {
		if identifier, ok := t.TypeIdentifier(row.TypeID); ok {
			types = append(types, identifier)
		}
	}
	return types
}

// PokemonAbilities returns a creature's ability rows ordered by slot.
func (t *Tables) PokemonAbilities(id int) []PokemonAbility {
	return t.pokemonAbilities[id]
}

func (t *Tables) Pokemon(id int) (Pokemon, bool) {
	p, ok := t.pokemon[id]
	return p, ok
}

func (t *Tables) Move(id int) (Move, bool) {
	m, ok := t.moves[id]
	return m, ok
}

func (t *Tables) Item(id int) (Item, bool) {
	i, ok := t.items[id]
	return i, ok
}

// Machine returns the machine teaching a move in a version group.
func (t *Tables) Machine(versionGroupID int, moveID int) (Machine, Item, bool) {
	m, ok := t.machines[machineKey{versionGroupID: versionGroupID, moveID: moveID}]
	if !ok {
		return Machine{}, Item{}, false
	}
	item, ok := t.items[m.ItemID]
	return m, item, ok
}

func (t *Tables) VersionGroup(identifier string) (VersionGroup, bool) {
	vg, ok := t.versionGroupsByName[identifier]
	return vg, ok
}

func (t *Tables) VersionGroupByID(id int) (VersionGroup, bool) {
	vg, ok := t.versionGroups[id]
	return vg, ok
}

func (t *Tables) Version(identifier string) (Version, bool) {
	v, ok := t.versionsByName[identifier]
	return v, ok
}

// Versions lists every game in ID order.
func (t *Tables) Versions() []Version {
	versions := make([]Version, 0, len(t.versions))
	for _, v := range t.versions {
		versions = append(versions, v)
	}
	slices.SortFunc(versions, func(a, b Version) int { return cmp.Compare(a.ID, b.ID) })
	return versions
}

// VersionGroupsIn lists a generation's version groups in release order.
func (t *Tables) VersionGroupsIn(generation int) []VersionGroup {
	var groups []VersionGroup
	for _, vg := range t.versionGroups {
		if vg.GenerationID == generation {
			groups = append(groups, vg)
		}
	}
	slices.SortFunc(groups, func(a, b VersionGroup) int { return cmp.Compare(a.Order, b.Order) })
	return groups
}

// LatestGeneration is the highest generation known to the tables.
func (t *Tables) LatestGeneration() int {
	latest := 0
	for id := range t.generations {
		latest = max(latest, id)
	}
	return latest
}

// Normalize fills the coarser levels of a version context. Unknown games and
// version groups are dropped so that resolution degrades to the coarsest
// level that is known. An empty context becomes the latest generation.
func (t *Tables) Normalize(vc model.VersionContext) model.VersionContext {
	if vc.Game != "" {
		if v, ok := t.versionsByName[vc.Game]; ok {
			vg := t.versionGroups[v.VersionGroupID]
			return model.VersionContext{Generation: vg.GenerationID, VersionGroup: vg.Identifier, Game: v.Identifier}
		}
		vc.Game = ""
	}
	if vc.VersionGroup != "" {
		if vg, ok := t.versionGroupsByName[vc.VersionGroup]; ok {
			return model.VersionContext{Generation: vg.GenerationID, VersionGroup: vg.Identifier}
		}
		vc.VersionGroup = ""
	}
	if _, ok := t.generations[vc.Generation]; !ok {
		vc.Generation = t.LatestGeneration()
	}
	return vc
}

// VersionsIn lists the game identifiers covered by a context, in ID order.
func (t *Tables) VersionsIn(vc model.VersionContext) []string {
	vc = t.Normalize(vc)
	if vc.Game != "" {
		return []string{vc.Game}
	}

	groups := make(map[int]bool)
	if vc.VersionGroup != "" {
		groups[t.versionGroupsByName[vc.VersionGroup].ID] = true
	} else {
		for _, vg := range t.VersionGroupsIn(vc.Generation) {
			groups[vg.ID] = true
		}
	}

	var versions []Version
	for _, v := range t.versions {
		if groups[v.VersionGroupID] {
			versions = append(versions, v)
		}
	}
	slices.SortFunc(versions, func(a, b Version) int { return cmp.Compare(a.ID, b.ID) })

	identifiers := make([]string, 0, len(versions))
	for _, v := range versions {
		identifiers = append(identifiers, v.Identifier)
	}
	return identifiers
}

// GenerationOfVersionGroup returns 0 for unknown groups.
func (t *Tables) GenerationOfVersionGroup(identifier string) int {
	return t.versionGroupsByName[identifier].GenerationID
}

// GenerationOfVersion returns 0 for unknown games.
func (t *Tables) GenerationOfVersion(identifier string) int {
	v, ok := t.versionsByName[identifier]
	if !ok {
		return 0
	}
	return t.versionGroups[v.VersionGroupID].GenerationID
}
