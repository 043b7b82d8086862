package engine

import "time"

// TimerKind names the delayed transitions a session can schedule.
type TimerKind int

const (
	TimerEventClear TimerKind = iota // hide the random event banner
	TimerRing                        // advance the ringing phone
	TimerCallDeath                   // end the session after a call answer
)

func (k TimerKind) String() string {
	switch k {
	case TimerEventClear:
		return "event_clear"
	case TimerRing:
		return "ring"
	case TimerCallDeath:
		return "call_death"
	default:
		return "unknown"
	}
}

// Timer is a request from the engine to call Controller.Fire after Delay.
// Hosts schedule it however they like; a timer from an older epoch, or one
// whose phase has passed, does nothing when fired.
type Timer struct {
	Kind  TimerKind
	Delay time.Duration
	Epoch int
	Seq   int
}
