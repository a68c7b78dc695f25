package quiz

import (
	"errors"
	"math/rand/v2"
	"slices"

	"github.com/notjagan/pokeguide/pkg/model"
	"github.com/notjagan/pokeguide/pkg/reftable"
	"github.com/notjagan/pokeguide/pkg/typechart"
)

var ErrEmptyDeck = errors.New("no types available to draw from")

// Deck is the reference data questions are drawn from. *reftable.Tables
// satisfies it.
type Deck interface {
	LatestGeneration() int
	TypesIn(generation int) []string
	List(kind model.Kind) []reftable.Entry
	PokemonTypes(id int) []string
	TypeName(identifier string, lang model.LocalizationCode) string
	DisplayName(kind model.Kind, id int, lang model.LocalizationCode) string
}

// Defender is either a bare type or a creature with its types.
type Defender struct {
	PokemonID int              `json:"pokemonId,omitempty"`
	Name      string           `json:"name"`
	Types     []typechart.Type `json:"types"`
	TypeNames []string         `json:"typeNames"`
}

// Question is one drawn matchup. Choices are the buckets that can occur for
// the defender: quarter and quadruple only appear for dual types.
type Question struct {
	Number     int                `json:"number"`
	Attack     typechart.Type     `json:"attack"`
	AttackName string             `json:"attackName"`
	Defender   Defender           `json:"defender"`
	Chart      typechart.ChartID  `json:"chart"`
	Choices    []typechart.Bucket `json:"choices"`
}

func (q Question) clone() Question {
	q.Defender.Types = slices.Clone(q.Defender.Types)
	q.Defender.TypeNames = slices.Clone(q.Defender.TypeNames)
	q.Choices = slices.Clone(q.Choices)
	return q
}

var (
	singleChoices = []typechart.Bucket{typechart.BucketImmune, typechart.BucketHalf, typechart.BucketNeutral, typechart.BucketDouble}
	dualChoices   = typechart.BucketValues()
)

type drawer struct {
	deck       Deck
	rng        *rand.Rand
	generation int
	lang       model.LocalizationCode
	pokemon    bool
}

func (d *drawer) types() []typechart.Type {
	identifiers := d.deck.TypesIn(d.generation)
	types := make([]typechart.Type, 0, len(identifiers))
	for _, identifier := range identifiers {
		if t := typechart.Type(identifier); t.Valid() {
			types = append(types, t)
		}
	}
	return types
}

// candidates lists base-form creatures of the generation whose types all
// exist in it.
func (d *drawer) candidates(vocabulary []typechart.Type) []reftable.Entry {
	var out []reftable.Entry
	for _, e := range d.deck.List(model.KindPokemon) {
		if e.GenerationID > d.generation {
			continue
		}
		if _, ok := model.MatchVariant(e.Identifier); ok {
			continue
		}
		types := d.deck.PokemonTypes(e.ID)
		if len(types) == 0 {
			continue
		}
		if !slices.ContainsFunc(types, func(t string) bool { return !slices.Contains(vocabulary, typechart.Type(t)) }) {
			out = append(out, e)
		}
	}
	return out
}

func (d *drawer) typeDefender(attack typechart.Type, vocabulary []typechart.Type) Defender {
	pool := vocabulary
	if len(vocabulary) > 1 {
		pool = slices.DeleteFunc(slices.Clone(vocabulary), func(t typechart.Type) bool { return t == attack })
	}
	t := pool[d.rng.IntN(len(pool))]
	name := d.deck.TypeName(string(t), d.lang)
	return Defender{Name: name, Types: []typechart.Type{t}, TypeNames: []string{name}}
}

func (d *drawer) pokemonDefender(attack typechart.Type, pool []reftable.Entry) Defender {
	avoiding := slices.DeleteFunc(slices.Clone(pool), func(e reftable.Entry) bool {
		return slices.Contains(d.deck.PokemonTypes(e.ID), string(attack))
	})
	if len(avoiding) > 0 {
		pool = avoiding
	}

	e := pool[d.rng.IntN(len(pool))]
	def := Defender{PokemonID: e.ID, Name: d.deck.DisplayName(model.KindPokemon, e.ID, d.lang)}
	for _, identifier := range d.deck.PokemonTypes(e.ID) {
		def.Types = append(def.Types, typechart.Type(identifier))
		def.TypeNames = append(def.TypeNames, d.deck.TypeName(identifier, d.lang))
	}
	return def
}

// draw produces a question and its answer bucket.
func (d *drawer) draw(number int) (Question, typechart.Bucket, error) {
	vocabulary := d.types()
	if len(vocabulary) == 0 {
		return Question{}, 0, ErrEmptyDeck
	}

	attack := vocabulary[d.rng.IntN(len(vocabulary))]

	var pool []reftable.Entry
	if d.pokemon {
		pool = d.candidates(vocabulary)
	}

	var defender Defender
	if len(pool) > 0 && d.rng.IntN(2) == 0 {
		defender = d.pokemonDefender(attack, pool)
	} else {
		defender = d.typeDefender(attack, vocabulary)
	}

	chart := typechart.ChartForGeneration(d.generation)
	answer := typechart.BucketOf(typechart.AttackMultiplier(chart, attack, defender.Types...))

	choices := singleChoices
	if len(defender.Types) > 1 {
		choices = dualChoices
	}

	q := Question{
		Number:     number,
		Attack:     attack,
		AttackName: d.deck.TypeName(string(attack), d.lang),
		Defender:   defender,
		Chart:      chart.ID(),
		Choices:    slices.Clone(choices),
	}
	return q, answer, nil
}
