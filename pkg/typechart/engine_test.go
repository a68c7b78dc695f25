package typechart_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notjagan/pokeguide/pkg/typechart"
)

func chart(t *testing.T, id typechart.ChartID) *typechart.Chart {
	t.Helper()
	c, err := typechart.Get(id)
	require.NoError(t, err)
	return c
}

func TestAttackMultiplierScenarios(t *testing.T) {
	c := chart(t, typechart.Gen6Plus)

	tests := []struct {
		name      string
		attack    typechart.Type
		defenders []typechart.Type
		want      float64
	}{
		{"water_vs_fire", typechart.Water, []typechart.Type{typechart.Fire}, 2},
		{"water_vs_fire_rock", typechart.Water, []typechart.Type{typechart.Fire, typechart.Rock}, 4},
		{"electric_vs_ground", typechart.Electric, []typechart.Type{typechart.Ground, typechart.Water}, 0},
		{"grass_vs_fire_flying", typechart.Grass, []typechart.Type{typechart.Fire, typechart.Flying}, 0.25},
		{"normal_vs_normal", typechart.Normal, []typechart.Type{typechart.Normal}, 1},
		{"no_defenders", typechart.Fire, nil, 1},
		{"unknown_attacker", typechart.Type("shadow"), []typechart.Type{typechart.Fire}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, typechart.AttackMultiplier(c, tt.attack, tt.defenders...))
		})
	}
}

func TestAttackMultiplierIsProductAndOrderFree(t *testing.T) {
	for _, id := range []typechart.ChartID{typechart.Gen1, typechart.Gen2to5, typechart.Gen6Plus} {
		c := chart(t, id)
		for _, attack := range typechart.Types {
			for _, d1 := range typechart.Types {
				for _, d2 := range typechart.Types {
					product := c.Multiplier(attack, d1) * c.Multiplier(attack, d2)
					assert.Equal(t, product, typechart.AttackMultiplier(c, attack, d1, d2))
					assert.Equal(t,
						typechart.AttackMultiplier(c, attack, d1, d2),
						typechart.AttackMultiplier(c, attack, d2, d1),
					)
				}
			}
		}
	}
}

func TestHistoricalCharts(t *testing.T) {
	gen1 := chart(t, typechart.Gen1)
	gen2 := chart(t, typechart.Gen2to5)
	gen6 := chart(t, typechart.Gen6Plus)

	assert.Equal(t, 0.0, gen1.Multiplier(typechart.Ghost, typechart.Psychic))
	assert.Equal(t, 2.0, gen2.Multiplier(typechart.Ghost, typechart.Psychic))

	assert.Equal(t, 2.0, gen1.Multiplier(typechart.Bug, typechart.Poison))
	assert.Equal(t, 0.5, gen2.Multiplier(typechart.Bug, typechart.Poison))
	assert.Equal(t, 2.0, gen1.Multiplier(typechart.Poison, typechart.Bug))

	assert.Equal(t, 1.0, gen1.Multiplier(typechart.Ice, typechart.Fire))
	assert.Equal(t, 0.5, gen6.Multiplier(typechart.Ice, typechart.Fire))

	assert.Equal(t, 0.5, gen2.Multiplier(typechart.Ghost, typechart.Steel))
	assert.Equal(t, 1.0, gen6.Multiplier(typechart.Ghost, typechart.Steel))

	assert.Equal(t, 1.0, gen2.Multiplier(typechart.Dragon, typechart.Fairy))
	assert.Equal(t, 0.0, gen6.Multiplier(typechart.Dragon, typechart.Fairy))
}

func TestNoDamageTakesPrecedence(t *testing.T) {
	c := typechart.New("custom", map[typechart.Type]typechart.DamageRelations{
		typechart.Fire: {
			DoubleDamageTo: []typechart.Type{typechart.Grass},
			HalfDamageTo:   []typechart.Type{typechart.Grass, typechart.Water},
			NoDamageTo:     []typechart.Type{typechart.Grass},
		},
	})

	assert.Equal(t, 0.0, c.Multiplier(typechart.Fire, typechart.Grass))
	assert.Equal(t, 0.5, c.Multiplier(typechart.Fire, typechart.Water))
	assert.Equal(t, 1.0, c.Multiplier(typechart.Water, typechart.Fire))
}

func TestDefenseProfile(t *testing.T) {
	c := chart(t, typechart.Gen6Plus)

	p := typechart.DefenseProfile(c, typechart.Fire, typechart.Rock)
	assert.Equal(t, []typechart.Type{typechart.Ground, typechart.Water}, p.Quadruple)
	assert.Contains(t, p.Double, typechart.Fighting)
	assert.Contains(t, p.Double, typechart.Rock)
	assert.Contains(t, p.Quarter, typechart.Fire)
	assert.Empty(t, p.Immune)

	total := 0
	for _, b := range typechart.BucketValues() {
		total += len(p.In(b))
	}
	assert.Equal(t, len(typechart.Types), total)

	ghost := typechart.DefenseProfile(c, typechart.Ghost)
	assert.Equal(t, []typechart.Type{typechart.Normal, typechart.Fighting}, ghost.Immune)
}

func TestAttackProfile(t *testing.T) {
	p := typechart.AttackProfile(chart(t, typechart.Gen6Plus), typechart.Electric)
	assert.Equal(t, []typechart.Type{typechart.Ground}, p.Immune)
	assert.Equal(t, []typechart.Type{typechart.Flying, typechart.Water}, p.Double)
	assert.Equal(t, []typechart.Type{typechart.Grass, typechart.Electric, typechart.Dragon}, p.Half)
}

func TestProfilesUseChartVocabulary(t *testing.T) {
	gen1 := chart(t, typechart.Gen1)
	later := []typechart.Type{typechart.Dark, typechart.Steel, typechart.Fairy}

	defense := typechart.DefenseProfile(gen1, typechart.Normal)
	attack := typechart.AttackProfile(gen1, typechart.Fighting)
	for _, p := range []typechart.Profile{defense, attack} {
		total := 0
		for _, b := range typechart.BucketValues() {
			total += len(p.In(b))
			for _, typ := range later {
				assert.NotContains(t, p.In(b), typ)
			}
		}
		assert.Equal(t, 15, total)
	}

	assert.Len(t, chart(t, typechart.Gen2to5).Types(), 17)
	assert.NotContains(t, chart(t, typechart.Gen2to5).Types(), typechart.Fairy)
	assert.Equal(t, typechart.Types, chart(t, typechart.Gen6Plus).Types())
}

func TestBucketOf(t *testing.T) {
	tests := []struct {
		m    float64
		want typechart.Bucket
	}{
		{0, typechart.BucketImmune},
		{0.25, typechart.BucketQuarter},
		{0.5, typechart.BucketHalf},
		{1, typechart.BucketNeutral},
		{2, typechart.BucketDouble},
		{4, typechart.BucketQuadruple},
		{8, typechart.BucketQuadruple},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, typechart.BucketOf(tt.m), "multiplier %v", tt.m)
		if tt.m <= 4 {
			assert.Equal(t, tt.m, typechart.BucketOf(tt.m).Multiplier())
		}
	}
}

func TestChartSelection(t *testing.T) {
	assert.Equal(t, typechart.Gen1, typechart.ChartIDForGeneration(1))
	assert.Equal(t, typechart.Gen2to5, typechart.ChartIDForGeneration(5))
	assert.Equal(t, typechart.Gen6Plus, typechart.ChartIDForGeneration(6))
	assert.Equal(t, typechart.Gen6Plus, typechart.ChartIDForGeneration(0))

	_, err := typechart.Get("gen42")
	assert.ErrorIs(t, err, typechart.ErrUnknownChart)
}
