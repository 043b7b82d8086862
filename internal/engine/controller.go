package engine

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/tatianab/edge-trail/internal/models"
)

// Controller owns one session. It is not safe for concurrent use; hosts
// serialize input and timer fires.
type Controller struct {
	eng *Engine
	rng *rand.Rand
	log *zap.Logger
	s   Session
}

// ID returns the session id.
func (c *Controller) ID() string { return c.s.ID }

// Session returns a deep copy of the current session.
func (c *Controller) Session() Session { return c.s.Clone() }

// Start begins a playthrough for the named player.
func (c *Controller) Start(ctx context.Context, name string, role models.Role) error {
	_, span := c.eng.tracer.Start(ctx, "trail.start")
	defer span.End()

	name = strings.TrimSpace(name)
	if n := utf8.RuneCountInString(name); n == 0 || n > MaxNameLength {
		span.RecordError(ErrInvalidName)
		return fmt.Errorf("start %q: %w", name, ErrInvalidName)
	}
	r, err := models.ParseRole(string(role))
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("start: %w: %v", ErrUnknownRole, err)
	}

	c.begin(name, r)
	span.SetAttributes(
		attribute.String("session.id", c.s.ID),
		attribute.String("player.role", string(r)),
		attribute.Bool("interception.armed", c.s.Interception.Armed),
	)
	return nil
}

// Restart replays with the same name and role. Stats, visited scenes and the
// interception arming are rolled fresh, and pending timers go stale.
func (c *Controller) Restart(ctx context.Context) error {
	_, span := c.eng.tracer.Start(ctx, "trail.restart")
	defer span.End()

	if c.s.PlayerName == "" {
		return ErrNotStarted
	}
	c.begin(c.s.PlayerName, c.s.Role)
	span.SetAttributes(attribute.String("session.id", c.s.ID))
	return nil
}

// Reset returns to the title screen. Pending timers go stale.
func (c *Controller) Reset() {
	c.s = Session{
		ID:      c.s.ID,
		Visited: VisitedSet{},
		Epoch:   c.s.Epoch + 1,
	}
	c.log.Debug("Session reset")
}

func (c *Controller) begin(name string, role models.Role) {
	tbl := c.eng.table
	c.s = Session{
		ID:           c.s.ID,
		PlayerName:   name,
		Role:         role,
		State:        StatePlaying,
		Scene:        tbl.Start(),
		Stats:        tbl.Profile(role).Stats.Clone(),
		Visited:      VisitedSet{},
		Interception: arm(c.eng.rules, c.rng),
		Epoch:        c.s.Epoch + 1,
	}

	c.eng.metrics.SessionStarted(string(role))
	if c.s.Interception.Armed {
		c.eng.metrics.InterceptionArmed()
	}
	c.log.Info("Session started",
		zap.String("player", name),
		zap.String("role", string(role)),
		zap.Bool("armed", c.s.Interception.Armed),
		zap.String("target", string(c.s.Interception.Target)),
		zap.Int("epoch", c.s.Epoch),
	)
}

// Choose resolves choice index on the current scene and returns the timers
// the host must schedule.
func (c *Controller) Choose(ctx context.Context, index int) (Outcome, []Timer) {
	_, span := c.eng.tracer.Start(ctx, "trail.choose", trace.WithAttributes(
		attribute.String("session.id", c.s.ID),
		attribute.String("scene.id", string(c.s.Scene)),
		attribute.Int("choice.index", index),
	))
	defer span.End()

	from := c.s.Scene
	next, out := Resolve(c.eng.table, c.eng.rules, c.s, index, c.rng)
	span.SetAttributes(attribute.String("outcome", out.Kind.String()))
	c.eng.metrics.ChoiceResolved(out.Kind.String())

	if out.Kind == OutcomeIgnored {
		c.log.Warn("Choice ignored",
			zap.String("state", c.s.State.String()),
			zap.String("scene", string(from)),
			zap.Int("index", index),
			zap.Bool("call_active", c.s.CallActive()),
		)
		return out, nil
	}
	c.s = next

	c.log.Debug("Choice resolved",
		zap.String("scene", string(from)),
		zap.Int("index", index),
		zap.String("outcome", out.Kind.String()),
		zap.String("next", string(out.Scene)),
		zap.Int("energy", c.s.Stats.Energy),
		zap.Int("stress", c.s.Stats.Stress),
	)

	var timers []Timer
	if out.Event != nil {
		c.eng.metrics.RandomEvent()
		timers = append(timers, Timer{Kind: TimerEventClear, Delay: c.eng.rules.EventDisplay, Epoch: c.s.Epoch, Seq: c.s.EventSeq})
	}

	switch out.Kind {
	case OutcomeIntercepted:
		c.log.Info("Phone call intercepted transition", zap.String("target", string(out.Scene)))
		timers = append(timers, c.ringTimer())
	case OutcomeGameOver:
		c.ended()
	case OutcomeVictory:
		c.eng.metrics.Won(out.Score)
		c.log.Info("Session won", zap.Int("score", out.Score))
	}
	return out, timers
}

// Answer picks one of the call options once they are on screen.
func (c *Controller) Answer(ctx context.Context, index int) []Timer {
	_, span := c.eng.tracer.Start(ctx, "trail.answer", trace.WithAttributes(
		attribute.String("session.id", c.s.ID),
		attribute.Int("option.index", index),
	))
	defer span.End()

	call := c.s.Call
	if call == nil || call.Phase != CallChoices || index < 0 || index >= len(c.eng.table.CallOptions()) {
		c.log.Warn("Call answer ignored", zap.Int("index", index))
		return nil
	}
	call.Phase = CallResolved
	call.Chosen = index
	c.log.Debug("Call answered", zap.Int("index", index))
	return []Timer{{Kind: TimerCallDeath, Delay: c.eng.rules.DeathDelay, Epoch: c.s.Epoch}}
}

// Fire applies a timer the host scheduled earlier and returns any follow-up
// timers. Stale timers are no-ops.
func (c *Controller) Fire(ctx context.Context, t Timer) []Timer {
	_, span := c.eng.tracer.Start(ctx, "trail.timer", trace.WithAttributes(
		attribute.String("session.id", c.s.ID),
		attribute.String("timer.kind", t.Kind.String()),
	))
	defer span.End()

	if t.Epoch != c.s.Epoch {
		span.SetAttributes(attribute.Bool("timer.stale", true))
		return nil
	}

	switch t.Kind {
	case TimerEventClear:
		clearEvent(&c.s, t.Seq)
	case TimerRing:
		if c.s.Call == nil || c.s.Call.Phase != CallRinging {
			return nil
		}
		if ring(c.s.Call, c.eng.rules.RingThreshold) {
			return []Timer{c.ringTimer()}
		}
	case TimerCallDeath:
		call := c.s.Call
		if call == nil || call.Phase != CallResolved || c.s.State != StatePlaying {
			return nil
		}
		c.s.State = StateGameOver
		c.s.Ending = &Ending{
			Reason:  models.EndingIntercepted,
			Message: c.eng.table.CallOptions()[call.Chosen].Ending,
		}
		c.ended()
	}
	return nil
}

func (c *Controller) ringTimer() Timer {
	return Timer{Kind: TimerRing, Delay: c.eng.rules.RingInterval, Epoch: c.s.Epoch}
}

func (c *Controller) ended() {
	c.eng.metrics.Ended(string(c.s.Ending.Reason))
	c.log.Info("Session ended",
		zap.String("reason", string(c.s.Ending.Reason)),
		zap.String("scene", string(c.s.Scene)),
		zap.Int("visited", len(c.s.Visited)),
	)
}
