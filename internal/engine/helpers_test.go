package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tatianab/edge-trail/internal/content"
	"github.com/tatianab/edge-trail/internal/models"
	"github.com/tatianab/edge-trail/internal/telemetry"
)

// quietRules turns off both random systems.
func quietRules() Rules {
	r := DefaultRules()
	r.EventChance = 0
	r.InterceptChance = 0
	return r
}

func newTestEngine(t *testing.T, rules Rules, opts ...Option) *Engine {
	t.Helper()
	tbl, err := content.Load()
	require.NoError(t, err)
	base := []Option{
		WithRules(rules),
		WithSeed(7),
		WithTracer(telemetry.NoopTracer()),
		WithClock(func() time.Time { return time.Date(2026, time.January, 14, 0, 0, 0, 0, time.UTC) }),
	}
	return NewEngine(tbl, append(base, opts...)...)
}

func startedController(t *testing.T, eng *Engine, role models.Role) *Controller {
	t.Helper()
	c := eng.NewController()
	require.NoError(t, c.Start(context.Background(), "Ada", role))
	return c
}

// safestChoice picks the choice with the best energy minus stress effect.
func safestChoice(tbl *content.Table, id models.SceneID) int {
	best, bestScore := 0, -1<<31
	for i, ch := range tbl.Lookup(id).Choices {
		if ch.Disabled {
			continue
		}
		if score := ch.Effects.Energy - ch.Effects.Stress; score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

// playing returns a session sitting on scene with the given stats.
func playing(scene models.SceneID, role models.Role, st models.Stats) Session {
	return Session{
		ID:         "test",
		PlayerName: "Ada",
		Role:       role,
		State:      StatePlaying,
		Scene:      scene,
		Stats:      st,
		Visited:    VisitedSet{},
		Epoch:      1,
	}
}
