// Command simulate_game plays many headless sessions and prints how they end.
// Timers fire immediately. The gemini policy lets a Gemini model play; it
// needs GEMINI_API_KEY.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"

	"go.uber.org/zap"

	"github.com/tatianab/edge-trail/internal/config"
	"github.com/tatianab/edge-trail/internal/content"
	"github.com/tatianab/edge-trail/internal/engine"
	"github.com/tatianab/edge-trail/internal/logger"
	"github.com/tatianab/edge-trail/internal/models"
	"github.com/tatianab/edge-trail/internal/player"
)

// maxSteps caps a run in case a policy keeps picking stay choices.
const maxSteps = 200

// policy picks an index among what the snapshot offers: scene choices, or
// call answers while the phone call is up.
type policy func(ctx context.Context, snap engine.Snapshot, rng *rand.Rand) int

func randomPolicy(_ context.Context, snap engine.Snapshot, rng *rand.Rand) int {
	if snap.Call != nil {
		return rng.Intn(len(snap.Call.Options))
	}
	return rng.Intn(len(snap.Scene.Choices))
}

func safePolicy(tbl *content.Table) policy {
	return func(ctx context.Context, snap engine.Snapshot, rng *rand.Rand) int {
		if snap.Call != nil {
			return randomPolicy(ctx, snap, rng)
		}
		best, bestScore := 0, -1<<31
		for i, ch := range tbl.Lookup(snap.Scene.ID).Choices {
			if ch.Disabled {
				continue
			}
			if score := ch.Effects.Energy - ch.Effects.Stress; score > bestScore {
				best, bestScore = i, score
			}
		}
		return best
	}
}

// geminiPolicy asks the model and falls back to a random pick when the reply
// is unusable.
func geminiPolicy(g *player.Gemini, log *zap.Logger) policy {
	return func(ctx context.Context, snap engine.Snapshot, rng *rand.Rand) int {
		idx, err := g.Choose(ctx, snap)
		if err != nil {
			log.Warn("Gemini choice failed, picking at random", zap.Error(err))
			return randomPolicy(ctx, snap, rng)
		}
		return idx
	}
}

type tally struct {
	runs    int
	won     int
	endings map[models.EndingReason]int
	score   int
	stuck   int
}

func main() {
	n := flag.Int("n", 1000, "number of sessions")
	seed := flag.Int64("seed", 1, "random seed")
	policyName := flag.String("policy", "random", "choice policy: random, safe or gemini")
	roleName := flag.String("role", "developer", "starting role")
	flag.Parse()

	ctx := context.Background()

	role, err := models.ParseRole(*roleName)
	if err != nil {
		log.Fatalf("Invalid role: %v", err)
	}
	tbl, err := content.Load()
	if err != nil {
		log.Fatalf("Failed to load trail: %v", err)
	}

	var pick policy
	switch *policyName {
	case "random":
		pick = randomPolicy
	case "safe":
		pick = safePolicy(tbl)
	case "gemini":
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		zlog, err := logger.New(logger.Config{Level: cfg.LogLevel, Encoding: "console", OutputPath: cfg.LogFile})
		if err != nil {
			log.Fatalf("Failed to create logger: %v", err)
		}
		defer zlog.Sync()

		g, err := player.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, zlog)
		if err != nil {
			log.Fatalf("Failed to create Gemini player: %v", err)
		}
		defer g.Close()
		pick = geminiPolicy(g, zlog)
	default:
		log.Fatalf("Unknown policy %q", *policyName)
	}

	eng := engine.NewEngine(tbl, engine.WithSeed(*seed))
	rng := rand.New(rand.NewSource(*seed))

	t := tally{endings: map[models.EndingReason]int{}}
	for i := 0; i < *n; i++ {
		c := eng.NewController()
		if err := c.Start(ctx, fmt.Sprintf("Sim%d", i), role); err != nil {
			log.Fatalf("Failed to start session: %v", err)
		}
		play(ctx, c, pick, rng, &t)
	}

	fmt.Printf("Sessions: %d (%s policy, %s)\n", t.runs, *policyName, role)
	fmt.Printf("Victory:      %6.2f%%\n", pct(t.won, t.runs))
	for _, r := range []models.EndingReason{models.EndingExhaustion, models.EndingStress, models.EndingIntercepted} {
		fmt.Printf("%-13s %6.2f%%\n", string(r)+":", pct(t.endings[r], t.runs))
	}
	if t.stuck > 0 {
		fmt.Printf("Unfinished:   %d\n", t.stuck)
	}
	if t.won > 0 {
		fmt.Printf("Mean score:   %.1f\n", float64(t.score)/float64(t.won))
	}
}

func play(ctx context.Context, c *engine.Controller, pick policy, rng *rand.Rand, t *tally) {
	t.runs++
	for step := 0; step < maxSteps; step++ {
		snap := c.Snapshot()
		switch snap.State {
		case engine.StateVictory:
			t.won++
			t.score += snap.Score
			return
		case engine.StateGameOver:
			t.endings[snap.Ending.Reason]++
			return
		}

		var timers []engine.Timer
		if snap.Call != nil {
			if snap.Call.Phase != engine.CallChoices {
				t.stuck++
				return
			}
			timers = c.Answer(ctx, pick(ctx, snap, rng))
		} else {
			_, timers = c.Choose(ctx, pick(ctx, snap, rng))
		}
		drain(ctx, c, timers)
	}
	t.stuck++
}

// drain fires timers in order until none remain.
func drain(ctx context.Context, c *engine.Controller, timers []engine.Timer) {
	for len(timers) > 0 {
		t := timers[0]
		timers = append(timers[1:], c.Fire(ctx, t)...)
	}
}

func pct(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}
