package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tatianab/edge-trail/internal/models"
)

func TestScore(t *testing.T) {
	st := models.Stats{Energy: 80, Stress: 10, Money: 50, Knowledge: 15, Connections: 3, Items: []string{"a", "b"}}

	tests := []struct {
		role models.Role
		want int
	}{
		{models.RoleResearcher, 2955},
		{models.RoleDeveloper, 1970},
		{models.RoleExecutive, 1576},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.want, Score(st, tt.role))
		})
	}
}

func TestScoreRoundsHalfUp(t *testing.T) {
	var st models.Stats
	assert.Equal(t, 1500, Score(st, models.RoleResearcher))

	st.Energy = 1 // 1005 * 1.5 = 1507.5
	assert.Equal(t, 1508, Score(st, models.RoleResearcher))
}

func TestCountdown(t *testing.T) {
	start := time.Date(2026, time.January, 14, 0, 0, 0, 0, time.UTC)
	r := Countdown(start)
	assert.Equal(t, Remaining{Days: 69, Hours: 5, Minutes: 26, Seconds: 0}, r)
	assert.Equal(t, "69d 05h 26m 00s", r.String())

	assert.True(t, Countdown(ConferenceStart).IsZero())
	assert.True(t, Countdown(ConferenceStart.Add(time.Hour)).IsZero())
}
