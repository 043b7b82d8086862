package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestChoiceYAML(t *testing.T) {
	src := `
text: Try the TSA PreCheck line
icon: "⚡"
cost: 12
effects:
  energy: -5
  stress: -5
  add_item: snacks
result: Regular line it is.
role_results:
  executive: Executive privilege!
flavor:
  chance: 0.6
  success: You're in!
  failure: Back of the line.
next: tsa_checkpoint
`
	var c Choice
	require.NoError(t, yaml.Unmarshal([]byte(src), &c))

	require.NotNil(t, c.Cost)
	assert.Equal(t, 12, *c.Cost)
	assert.Equal(t, Delta{Energy: -5, Stress: -5, AddItem: "snacks"}, c.Effects)
	assert.Equal(t, "Executive privilege!", c.RoleResults[RoleExecutive])
	require.NotNil(t, c.Flavor)
	assert.InDelta(t, 0.6, c.Flavor.Chance, 1e-9)
	assert.Equal(t, SceneTSACheckpoint, c.Next)
	assert.False(t, c.Disabled)
}

func TestApplyClamps(t *testing.T) {
	base := Stats{Energy: 50, Stress: 50, Money: 10, Knowledge: 3, Connections: 1}

	tests := []struct {
		name  string
		delta Delta
		want  Stats
	}{
		{"energy floor", Delta{Energy: -80}, Stats{Energy: 0, Stress: 50, Money: 10, Knowledge: 3, Connections: 1}},
		{"energy ceiling", Delta{Energy: 80}, Stats{Energy: 100, Stress: 50, Money: 10, Knowledge: 3, Connections: 1}},
		{"stress ceiling", Delta{Stress: 90}, Stats{Energy: 50, Stress: 100, Money: 10, Knowledge: 3, Connections: 1}},
		{"stress floor", Delta{Stress: -90}, Stats{Energy: 50, Stress: 0, Money: 10, Knowledge: 3, Connections: 1}},
		{"money floor", Delta{Money: -35}, Stats{Energy: 50, Stress: 50, Money: 0, Knowledge: 3, Connections: 1}},
		{"unbounded money", Delta{Money: 1000}, Stats{Energy: 50, Stress: 50, Money: 1010, Knowledge: 3, Connections: 1}},
		{"knowledge and connections floor", Delta{Knowledge: -9, Connections: -9}, Stats{Energy: 50, Stress: 50, Money: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := base.Apply(tt.delta)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyBoundsHoldForAnyDelta(t *testing.T) {
	s := Stats{Energy: 100, Stress: 0, Money: 150}
	for _, d := range []int{-1000, -101, -100, -1, 0, 1, 99, 100, 101, 1000} {
		got := s.Apply(Delta{Energy: d, Stress: d, Money: d, Knowledge: d, Connections: d})
		assert.GreaterOrEqual(t, got.Energy, 0)
		assert.LessOrEqual(t, got.Energy, 100)
		assert.GreaterOrEqual(t, got.Stress, 0)
		assert.LessOrEqual(t, got.Stress, 100)
		assert.GreaterOrEqual(t, got.Money, 0)
		assert.GreaterOrEqual(t, got.Knowledge, 0)
		assert.GreaterOrEqual(t, got.Connections, 0)
	}
}

func TestApplyZeroDeltaIsNoop(t *testing.T) {
	s := Stats{Energy: 42, Stress: 17, Money: 5, Knowledge: 8, Connections: 2, Items: []string{"laptop", "phone"}}
	assert.True(t, Delta{}.IsZero())
	assert.Equal(t, s, s.Apply(Delta{}))
}

func TestApplyItems(t *testing.T) {
	s := Stats{Items: []string{"laptop", "snacks", "phone", "snacks"}}

	added := s.Apply(Delta{AddItem: "souvenir"})
	assert.Equal(t, []string{"laptop", "snacks", "phone", "snacks", "souvenir"}, added.Items)

	removed := s.Apply(Delta{RemoveItem: "snacks"})
	assert.Equal(t, []string{"laptop", "phone", "snacks"}, removed.Items)

	missing := s.Apply(Delta{RemoveItem: "passport"})
	assert.Equal(t, s.Items, missing.Items)

	assert.True(t, s.HasItem("phone"))
	assert.True(t, removed.HasItem("snacks"), "only the first copy is removed")
	assert.False(t, missing.HasItem("passport"))

	// The receiver keeps its own slice.
	assert.Equal(t, []string{"laptop", "snacks", "phone", "snacks"}, s.Items)
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("  Researcher ")
	require.NoError(t, err)
	assert.Equal(t, RoleResearcher, r)

	_, err = ParseRole("intern")
	assert.Error(t, err)

	assert.Equal(t, 1.0, RoleDeveloper.Multiplier())
	assert.Equal(t, 1.5, RoleResearcher.Multiplier())
	assert.Equal(t, 0.8, RoleExecutive.Multiplier())
}

func TestParseSceneID(t *testing.T) {
	id, err := ParseSceneID("food_court")
	require.NoError(t, err)
	assert.Equal(t, SceneFoodCourt, id)
	assert.Equal(t, 5, id.Position())

	v, err := ParseSceneID("victory")
	require.NoError(t, err)
	assert.Equal(t, Victory, v)
	assert.False(t, v.Valid())

	_, err = ParseSceneID("baggage_carousel")
	assert.Error(t, err)
	assert.Len(t, Trail, 16)
}
