package typechart

import (
	"errors"
	"fmt"
)

// ChartID names one of the historical type-interaction rule sets.
type ChartID string

const (
	Gen1     ChartID = "gen1"
	Gen2to5  ChartID = "gen2-5"
	Gen6Plus ChartID = "gen6plus"
)

var ErrUnknownChart = errors.New("unknown type chart")

type relation uint8

const (
	relHalf relation = 1 << iota
	relDouble
	relNoDamage
)

// DamageRelations lists the outgoing edges of one attacking type, in the
// shape of the upstream API's damage_relations block.
type DamageRelations struct {
	DoubleDamageTo []Type
	HalfDamageTo   []Type
	NoDamageTo     []Type
}

// Chart is an immutable directed relation graph between attacking and
// defending types. Missing edges mean a neutral multiplier.
type Chart struct {
	id    ChartID
	types []Type
	rel   [numTypes][numTypes]relation
}

// New builds a chart from per-attacker relations. The attacking types form
// the chart's vocabulary; unknown types are ignored.
func New(id ChartID, relations map[Type]DamageRelations) *Chart {
	c := &Chart{id: id}
	for _, t := range Types {
		if _, ok := relations[t]; ok {
			c.types = append(c.types, t)
		}
	}
	for attack, dr := range relations {
		a, ok := typeIndex[attack]
		if !ok {
			continue
		}
		c.mark(a, dr.DoubleDamageTo, relDouble)
		c.mark(a, dr.HalfDamageTo, relHalf)
		c.mark(a, dr.NoDamageTo, relNoDamage)
	}
	return c
}

func (c *Chart) mark(a int, defenders []Type, r relation) {
	for _, d := range defenders {
		if i, ok := typeIndex[d]; ok {
			c.rel[a][i] |= r
		}
	}
}

func (c *Chart) ID() ChartID {
	return c.id
}

// Types lists the types that exist under the chart, in vocabulary order.
func (c *Chart) Types() []Type {
	return c.types
}

// Multiplier is the single-defender damage factor. No damage takes
// precedence over double, which takes precedence over half.
func (c *Chart) Multiplier(attack, defend Type) float64 {
	a, ok := typeIndex[attack]
	if !ok {
		return 1
	}
	d, ok := typeIndex[defend]
	if !ok {
		return 1
	}

	r := c.rel[a][d]
	switch {
	case r&relNoDamage != 0:
		return 0
	case r&relDouble != 0:
		return 2
	case r&relHalf != 0:
		return 0.5
	default:
		return 1
	}
}

var charts = map[ChartID]*Chart{
	Gen1:     New(Gen1, gen1Relations),
	Gen2to5:  New(Gen2to5, gen2to5Relations),
	Gen6Plus: New(Gen6Plus, gen6PlusRelations),
}

// Get returns one of the built-in charts.
func Get(id ChartID) (*Chart, error) {
	c, ok := charts[id]
	if !ok {
		return nil, fmt.Errorf("chart %q: %w", id, ErrUnknownChart)
	}
	return c, nil
}

// ChartIDForGeneration picks the rule set in force in a generation. Zero or
// unknown generations use the latest chart.
func ChartIDForGeneration(gen int) ChartID {
	switch {
	case gen == 1:
		return Gen1
	case gen >= 2 && gen <= 5:
		return Gen2to5
	default:
		return Gen6Plus
	}
}

func ChartForGeneration(gen int) *Chart {
	return charts[ChartIDForGeneration(gen)]
}
