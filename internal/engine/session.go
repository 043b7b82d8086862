package engine

import (
	"github.com/tatianab/edge-trail/internal/models"
)

// MaxNameLength is the longest player name accepted, in runes.
const MaxNameLength = 20

// GameState is the lifecycle stage of a session.
type GameState int

const (
	StateNotStarted GameState = iota
	StatePlaying
	StateGameOver
	StateVictory
)

// String returns the state name.
func (s GameState) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "game_over"
	case StateVictory:
		return "victory"
	default:
		return "unknown"
	}
}

func (s GameState) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// VisitedSet records scenes the player has resolved a choice on. It only grows
// until the session restarts.
type VisitedSet map[models.SceneID]struct{}

func (v VisitedSet) Add(id models.SceneID) { v[id] = struct{}{} }

func (v VisitedSet) Has(id models.SceneID) bool {
	_, ok := v[id]
	return ok
}

// Ordered returns the visited scenes in trail order.
func (v VisitedSet) Ordered() []models.SceneID {
	out := make([]models.SceneID, 0, len(v))
	for _, id := range models.Trail {
		if v.Has(id) {
			out = append(out, id)
		}
	}
	return out
}

func (v VisitedSet) clone() VisitedSet {
	out := make(VisitedSet, len(v))
	for id := range v {
		out[id] = struct{}{}
	}
	return out
}

// Interception is the per-session arming of the phone call.
type Interception struct {
	Armed  bool
	Target models.SceneID
	Fired  bool // one-shot latch
}

// CallPhase is the stage of an active phone call.
type CallPhase int

const (
	CallRinging CallPhase = iota
	CallChoices
	CallResolved
)

func (p CallPhase) String() string {
	switch p {
	case CallRinging:
		return "ringing"
	case CallChoices:
		return "choices"
	case CallResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

func (p CallPhase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// Call is an interception in progress.
type Call struct {
	Phase  CallPhase
	Rings  int
	Chosen int // option index once resolved, -1 before
	Target models.SceneID
}

// Ending says how a game over came about.
type Ending struct {
	Reason  models.EndingReason
	Message string
}

// Session is the full state of one playthrough.
type Session struct {
	ID           string
	PlayerName   string
	Role         models.Role
	State        GameState
	Scene        models.SceneID
	Stats        models.Stats
	Visited      VisitedSet
	Message      string
	Event        *models.Event
	EventSeq     int
	Interception Interception
	Call         *Call
	Ending       *Ending
	Score        int
	Epoch        int // bumped on start and reset, invalidating pending timers
}

// Clone returns a deep copy of s.
func (s Session) Clone() Session {
	out := s
	out.Stats = s.Stats.Clone()
	out.Visited = s.Visited.clone()
	if s.Event != nil {
		ev := *s.Event
		out.Event = &ev
	}
	if s.Call != nil {
		call := *s.Call
		out.Call = &call
	}
	if s.Ending != nil {
		end := *s.Ending
		out.Ending = &end
	}
	return out
}

// CallActive reports whether a phone call currently blocks the trail.
func (s Session) CallActive() bool { return s.Call != nil }
