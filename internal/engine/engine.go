// Package engine runs trail sessions: it resolves choices, injects random
// events, stages the phone call interception and hands timers back to the host.
package engine

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/tatianab/edge-trail/internal/content"
	"github.com/tatianab/edge-trail/internal/metrics"
	"github.com/tatianab/edge-trail/internal/models"
	"github.com/tatianab/edge-trail/internal/telemetry"
)

// Rules are the tunable odds and delays of a session.
type Rules struct {
	EventChance     float64       // chance of a random event per resolved choice
	InterceptChance float64       // chance a session arms the phone call
	EventDisplay    time.Duration // how long a random event stays on screen
	RingInterval    time.Duration
	RingThreshold   int // rings before the call options appear
	DeathDelay      time.Duration
}

// DefaultRules returns the stock odds and timings.
func DefaultRules() Rules {
	return Rules{
		EventChance:     0.15,
		InterceptChance: 0.33,
		EventDisplay:    3 * time.Second,
		RingInterval:    900 * time.Millisecond,
		RingThreshold:   3,
		DeathDelay:      4 * time.Second,
	}
}

// Interceptable lists the scenes the phone call may hijack a transition into:
// every scene except the first and the venue entrance.
var Interceptable = models.Trail[1 : len(models.Trail)-1]

// Engine creates controllers that share content, rules and instrumentation.
type Engine struct {
	table   *content.Table
	rules   Rules
	log     *zap.Logger
	tracer  trace.Tracer
	metrics *metrics.Metrics
	clock   func() time.Time

	mu    sync.Mutex
	seeds *rand.Rand
}

// Option configures an Engine.
type Option func(*Engine)

func WithRules(r Rules) Option { return func(e *Engine) { e.rules = r } }

func WithLogger(l *zap.Logger) Option { return func(e *Engine) { e.log = l } }

func WithTracer(t trace.Tracer) Option { return func(e *Engine) { e.tracer = t } }

func WithMetrics(m *metrics.Metrics) Option { return func(e *Engine) { e.metrics = m } }

func WithClock(now func() time.Time) Option { return func(e *Engine) { e.clock = now } }

// WithSeed makes every controller's randomness derive from seed. Zero means
// seed from the wall clock.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		e.seeds = rand.New(rand.NewSource(seed))
	}
}

// NewEngine builds an engine over a loaded content table.
func NewEngine(tbl *content.Table, opts ...Option) *Engine {
	e := &Engine{
		table:  tbl,
		rules:  DefaultRules(),
		log:    zap.NewNop(),
		tracer: telemetry.Tracer("engine"),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.seeds == nil {
		e.seeds = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return e
}

// Table returns the content the engine plays.
func (e *Engine) Table() *content.Table { return e.table }

// Rules returns the engine's odds and timings.
func (e *Engine) Rules() Rules { return e.rules }

// NewController returns a controller for a fresh, not yet started session
// with its own random source.
func (e *Engine) NewController() *Controller {
	e.mu.Lock()
	seed := e.seeds.Int63()
	e.mu.Unlock()

	id := uuid.NewString()
	return &Controller{
		eng: e,
		rng: rand.New(rand.NewSource(seed)),
		log: e.log.With(zap.String("session_id", id)),
		s:   Session{ID: id, Visited: VisitedSet{}},
	}
}
