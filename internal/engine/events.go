package engine

import (
	"math/rand"

	"github.com/tatianab/edge-trail/internal/content"
	"github.com/tatianab/edge-trail/internal/models"
)

// injectEvent may show a random event and apply its nudge to s. Nothing
// happens while another event is still on screen.
func injectEvent(tbl *content.Table, rules Rules, s *Session, rng *rand.Rand) *models.Event {
	if s.Event != nil {
		return nil
	}
	events := tbl.Events()
	if len(events) == 0 || rng.Float64() >= rules.EventChance {
		return nil
	}
	ev := events[rng.Intn(len(events))]
	s.Stats = s.Stats.Apply(ev.Effects)
	s.Event = &ev
	s.EventSeq++
	return &ev
}

// clearEvent hides the event banner if seq still names the event on screen.
func clearEvent(s *Session, seq int) bool {
	if s.Event == nil || s.EventSeq != seq {
		return false
	}
	s.Event = nil
	return true
}
