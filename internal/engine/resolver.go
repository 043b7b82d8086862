package engine

import (
	"math/rand"

	"github.com/tatianab/edge-trail/internal/content"
	"github.com/tatianab/edge-trail/internal/models"
)

// OutcomeKind tags what a resolved choice did to the session.
type OutcomeKind int

const (
	OutcomeIgnored     OutcomeKind = iota // nothing changed
	OutcomeStay                           // effects applied, same scene
	OutcomeContinue                       // moved to Outcome.Scene
	OutcomeIntercepted                    // the phone is ringing instead
	OutcomeGameOver
	OutcomeVictory
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeStay:
		return "stay"
	case OutcomeContinue:
		return "continue"
	case OutcomeIntercepted:
		return "intercepted"
	case OutcomeGameOver:
		return "game_over"
	case OutcomeVictory:
		return "victory"
	default:
		return "unknown"
	}
}

func (k OutcomeKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Outcome reports the result of one choice.
type Outcome struct {
	Kind    OutcomeKind
	Scene   models.SceneID // adopted scene, or the scene the call intercepted
	Message string
	Event   *models.Event // random event injected by this choice
	Ending  *Ending
	Score   int
}

// Resolve applies choice index of the session's current scene and returns the
// new session. The input session is never modified. rng drives the flavor
// roll and the random event.
func Resolve(tbl *content.Table, rules Rules, s Session, index int, rng *rand.Rand) (Session, Outcome) {
	if s.State != StatePlaying || s.CallActive() {
		return s, Outcome{Kind: OutcomeIgnored}
	}
	scene := tbl.Render(s.Scene, sceneContext(s))
	if index < 0 || index >= len(scene.Choices) {
		return s, Outcome{Kind: OutcomeIgnored}
	}
	choice := scene.Choices[index]
	if choice.Disabled {
		return s, Outcome{Kind: OutcomeIgnored}
	}

	next := s.Clone()
	next.Stats = next.Stats.Apply(choice.Effects)
	next.Message = resultText(choice, s.Role, rng)

	out := Outcome{Message: next.Message}
	out.Event = injectEvent(tbl, rules, &next, rng)

	if end := terminal(tbl, next.Stats); end != nil {
		next.State = StateGameOver
		next.Ending = end
		out.Kind = OutcomeGameOver
		out.Ending = end
		return next, out
	}

	next.Visited.Add(scene.ID)

	switch {
	case choice.Next == models.Victory:
		next.State = StateVictory
		next.Score = Score(next.Stats, next.Role)
		out.Kind = OutcomeVictory
		out.Score = next.Score
	case choice.Next == "":
		next.Scene = scene.ID
		out.Kind = OutcomeStay
		out.Scene = scene.ID
	case intercepts(next.Interception, choice.Next):
		next.Interception.Fired = true
		next.Call = &Call{Phase: CallRinging, Chosen: -1, Target: choice.Next}
		next.Scene = scene.ID
		out.Kind = OutcomeIntercepted
		out.Scene = choice.Next
	default:
		next.Scene = choice.Next
		out.Kind = OutcomeContinue
		out.Scene = choice.Next
	}
	return next, out
}

// resultText picks the message for a choice: a flavor roll, then a role
// specific line, then the plain result.
func resultText(c models.Choice, role models.Role, rng *rand.Rand) string {
	if c.Flavor != nil {
		if rng.Float64() < c.Flavor.Chance {
			return c.Flavor.Success
		}
		return c.Flavor.Failure
	}
	if text, ok := c.RoleResults[role]; ok {
		return text
	}
	return c.Result
}

// terminal returns the game-over ending for stats, exhaustion first.
func terminal(tbl *content.Table, st models.Stats) *Ending {
	var reason models.EndingReason
	switch {
	case st.Energy <= models.MinStat:
		reason = models.EndingExhaustion
	case st.Stress >= models.MaxStress:
		reason = models.EndingStress
	default:
		return nil
	}
	return &Ending{Reason: reason, Message: tbl.Ending(reason).Message}
}

func sceneContext(s Session) content.SceneContext {
	return content.SceneContext{
		PlayerName: s.PlayerName,
		Role:       s.Role,
		Stats:      s.Stats,
		Visited:    s.Visited.Ordered(),
	}
}
