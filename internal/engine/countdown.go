package engine

import (
	"fmt"
	"time"
)

// ConferenceStart is when EDGE AI San Diego 2026 opens its doors.
var ConferenceStart = time.Date(2026, time.March, 24, 5, 26, 0, 0, time.UTC)

// Remaining is a countdown broken into display units.
type Remaining struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// Countdown returns the time left until ConferenceStart, or zero once it has passed.
func Countdown(now time.Time) Remaining {
	d := ConferenceStart.Sub(now)
	if d <= 0 {
		return Remaining{}
	}
	total := int(d / time.Second)
	return Remaining{
		Days:    total / 86400,
		Hours:   total % 86400 / 3600,
		Minutes: total % 3600 / 60,
		Seconds: total % 60,
	}
}

func (r Remaining) IsZero() bool { return r == Remaining{} }

func (r Remaining) String() string {
	return fmt.Sprintf("%dd %02dh %02dm %02ds", r.Days, r.Hours, r.Minutes, r.Seconds)
}
