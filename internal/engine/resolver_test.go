package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tatianab/edge-trail/internal/content"
	"github.com/tatianab/edge-trail/internal/models"
)

var devStats = models.Stats{Energy: 100, Stress: 0, Money: 120, Knowledge: 10, Items: []string{"laptop", "phone", "charger"}}

func TestResolveContinue(t *testing.T) {
	tbl := content.MustLoad()
	s := playing(models.SceneAirportDropoff, models.RoleDeveloper, devStats)

	next, out := Resolve(tbl, quietRules(), s, 1, rand.New(rand.NewSource(1)))

	assert.Equal(t, OutcomeContinue, out.Kind)
	assert.Equal(t, models.SceneAirportEntrance, out.Scene)
	assert.Equal(t, models.SceneAirportEntrance, next.Scene)
	assert.Equal(t, "You compose yourself. Panic leads to mistakes.", next.Message)
	assert.Equal(t, 95, next.Stats.Energy)
	assert.Equal(t, 0, next.Stats.Stress)
	assert.True(t, next.Visited.Has(models.SceneAirportDropoff))

	// The input session is untouched.
	assert.Equal(t, models.SceneAirportDropoff, s.Scene)
	assert.Equal(t, 100, s.Stats.Energy)
	assert.Empty(t, s.Visited)
}

func TestResolveIgnored(t *testing.T) {
	tbl := content.MustLoad()
	rng := rand.New(rand.NewSource(1))
	base := playing(models.SceneEveApproach, models.RoleDeveloper, devStats)

	notStarted := base
	notStarted.State = StateNotStarted
	finished := base
	finished.State = StateGameOver
	ringing := base
	ringing.Call = &Call{Phase: CallRinging, Chosen: -1}

	tests := []struct {
		name  string
		s     Session
		index int
	}{
		{"negative index", base, -1},
		{"index past end", base, 3},
		{"not started", notStarted, 0},
		{"game over", finished, 0},
		{"call active", ringing, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, out := Resolve(tbl, quietRules(), tt.s, tt.index, rng)
			assert.Equal(t, OutcomeIgnored, out.Kind)
			assert.Equal(t, tt.s, next)
		})
	}
}

func TestResolveIgnoresDisabledChoice(t *testing.T) {
	tbl := content.MustLoad(content.WithSelector(models.SceneTransportChoice, func(_ content.SceneContext, s models.Scene) models.Scene {
		choices := append([]models.Choice(nil), s.Choices...)
		choices[0].Disabled = true
		s.Choices = choices
		return s
	}))
	s := playing(models.SceneTransportChoice, models.RoleDeveloper, devStats)

	_, out := Resolve(tbl, quietRules(), s, 0, rand.New(rand.NewSource(1)))
	assert.Equal(t, OutcomeIgnored, out.Kind)

	_, out = Resolve(tbl, quietRules(), s, 1, rand.New(rand.NewSource(1)))
	assert.Equal(t, OutcomeContinue, out.Kind)
}

func TestResolveExhaustion(t *testing.T) {
	tbl := content.MustLoad()
	st := devStats
	st.Energy = 30
	st.Stress = 95
	s := playing(models.SceneGateRush, models.RoleDeveloper, st)

	// Sprinting costs 30 energy and adds 20 stress; exhaustion wins.
	next, out := Resolve(tbl, quietRules(), s, 0, rand.New(rand.NewSource(1)))

	require.Equal(t, OutcomeGameOver, out.Kind)
	assert.Equal(t, StateGameOver, next.State)
	assert.Equal(t, models.EndingExhaustion, next.Ending.Reason)
	assert.Equal(t, "You collapsed from exhaustion! Your EDGE AI journey ends here...", next.Ending.Message)
	assert.Equal(t, models.SceneGateRush, next.Scene, "game over overrides the transition")
	assert.False(t, next.Visited.Has(models.SceneGateRush))
}

func TestResolveStress(t *testing.T) {
	tbl := content.MustLoad()
	st := devStats
	st.Stress = 80
	s := playing(models.SceneTSACheckpoint, models.RoleDeveloper, st)

	// A nervous joke adds 25 stress.
	next, out := Resolve(tbl, quietRules(), s, 2, rand.New(rand.NewSource(1)))

	require.Equal(t, OutcomeGameOver, out.Kind)
	assert.Equal(t, models.EndingStress, out.Ending.Reason)
	assert.Equal(t, "Overwhelmed by stress, you gave up and went home...", next.Ending.Message)
	assert.Equal(t, 100, next.Stats.Stress)
}

func TestResolveRoleResult(t *testing.T) {
	tbl := content.MustLoad()
	rng := rand.New(rand.NewSource(1))

	exec, _ := Resolve(tbl, quietRules(), playing(models.SceneSecurityLine, models.RoleExecutive, devStats), 1, rng)
	assert.Equal(t, "Executive privilege! PreCheck whisks you through.", exec.Message)

	dev, _ := Resolve(tbl, quietRules(), playing(models.SceneSecurityLine, models.RoleDeveloper, devStats), 1, rng)
	assert.Equal(t, "Sorry, your profile doesn't have PreCheck. Regular line it is.", dev.Message)
	assert.Equal(t, exec.Stats, dev.Stats)
}

func TestResolveFlavorOnlyChangesMessage(t *testing.T) {
	tbl := content.MustLoad()
	s := playing(models.SceneLuggageDilemma, models.RoleDeveloper, devStats)
	flavor := tbl.Lookup(models.SceneLuggageDilemma).Choices[0].Flavor
	require.NotNil(t, flavor)

	messages := make(map[string]int)
	var stats []models.Stats
	for seed := int64(1); seed <= 200; seed++ {
		next, out := Resolve(tbl, quietRules(), s, 0, rand.New(rand.NewSource(seed)))
		require.Equal(t, OutcomeContinue, out.Kind)
		messages[next.Message]++
		stats = append(stats, next.Stats)
	}

	assert.Len(t, messages, 2)
	assert.Greater(t, messages[flavor.Success], messages[flavor.Failure], "success is the likelier roll")
	for _, st := range stats {
		assert.Equal(t, stats[0], st)
	}

	// The same seed always rolls the same text.
	a, _ := Resolve(tbl, quietRules(), s, 0, rand.New(rand.NewSource(99)))
	b, _ := Resolve(tbl, quietRules(), s, 0, rand.New(rand.NewSource(99)))
	assert.Equal(t, a.Message, b.Message)
}

func TestResolveInjectsEvent(t *testing.T) {
	tbl := content.MustLoad()
	rules := quietRules()
	rules.EventChance = 1
	s := playing(models.SceneAirportEntrance, models.RoleDeveloper, devStats)

	next, out := Resolve(tbl, rules, s, 1, rand.New(rand.NewSource(3)))
	require.NotNil(t, out.Event)
	require.NotNil(t, next.Event)
	assert.Equal(t, 1, next.EventSeq)
	assert.Equal(t, devStats.Apply(models.Delta{Energy: -5}).Apply(out.Event.Effects), next.Stats)

	// No second event while one is on screen.
	after, out := Resolve(tbl, rules, next, 0, rand.New(rand.NewSource(3)))
	assert.Nil(t, out.Event)
	assert.Equal(t, next.Event, after.Event)
	assert.Equal(t, 1, after.EventSeq)
}

func TestResolveChecksTerminalAfterEvent(t *testing.T) {
	tbl := content.MustLoad()
	rules := quietRules()
	rules.EventChance = 1
	st := devStats
	st.Stress = 95
	s := playing(models.SceneAirportEntrance, models.RoleDeveloper, st)

	endedByEvent := 0
	for seed := int64(1); seed <= 300; seed++ {
		// Heading to check-in only costs energy, so any game over comes from the event.
		next, out := Resolve(tbl, rules, s, 1, rand.New(rand.NewSource(seed)))
		require.NotNil(t, out.Event)
		if next.Stats.Stress >= models.MaxStress {
			assert.Equal(t, OutcomeGameOver, out.Kind, out.Event.Text)
			assert.Equal(t, models.EndingStress, next.Ending.Reason)
			endedByEvent++
		} else {
			assert.Equal(t, OutcomeContinue, out.Kind, out.Event.Text)
		}
	}
	assert.Greater(t, endedByEvent, 0)
}

func TestResolveInterception(t *testing.T) {
	tbl := content.MustLoad()
	s := playing(models.SceneAirportDropoff, models.RoleDeveloper, devStats)
	s.Interception = Interception{Armed: true, Target: models.SceneAirportEntrance}

	// Sprinting skips the target, so nothing happens.
	next, out := Resolve(tbl, quietRules(), s, 0, rand.New(rand.NewSource(1)))
	assert.Equal(t, OutcomeContinue, out.Kind)
	assert.False(t, next.Interception.Fired)

	next, out = Resolve(tbl, quietRules(), s, 1, rand.New(rand.NewSource(1)))
	require.Equal(t, OutcomeIntercepted, out.Kind)
	assert.Equal(t, models.SceneAirportEntrance, out.Scene)
	assert.Equal(t, models.SceneAirportDropoff, next.Scene, "the call holds the player in place")
	assert.Equal(t, StatePlaying, next.State)
	assert.True(t, next.Interception.Fired)
	require.NotNil(t, next.Call)
	assert.Equal(t, CallRinging, next.Call.Phase)
	assert.Equal(t, 95, next.Stats.Energy, "the choice's effects still apply")

	// Once fired the latch never diverts again.
	s.Interception.Fired = true
	_, out = Resolve(tbl, quietRules(), s, 1, rand.New(rand.NewSource(1)))
	assert.Equal(t, OutcomeContinue, out.Kind)
}

func TestResolveVictory(t *testing.T) {
	tbl := content.MustLoad()
	s := playing(models.SceneEveEntrance, models.RoleResearcher, devStats)

	next, out := Resolve(tbl, quietRules(), s, 0, rand.New(rand.NewSource(1)))

	require.Equal(t, OutcomeVictory, out.Kind)
	assert.Equal(t, StateVictory, next.State)
	assert.Equal(t, Score(next.Stats, models.RoleResearcher), out.Score)
	assert.Equal(t, out.Score, next.Score)
	assert.True(t, next.Visited.Has(models.SceneEveEntrance))
}

func TestResolveUnknownSceneFallsBack(t *testing.T) {
	tbl := content.MustLoad()
	s := playing("baggage_carousel", models.RoleDeveloper, devStats)

	next, out := Resolve(tbl, quietRules(), s, 1, rand.New(rand.NewSource(1)))
	assert.Equal(t, OutcomeContinue, out.Kind)
	assert.Equal(t, models.SceneAirportEntrance, next.Scene)
	assert.True(t, next.Visited.Has(models.SceneAirportDropoff))
}
