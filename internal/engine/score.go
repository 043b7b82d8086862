package engine

import (
	"math"

	"github.com/tatianab/edge-trail/internal/models"
)

// Score is the victory score for final stats, rounded half up.
func Score(s models.Stats, role models.Role) int {
	raw := 1000 +
		s.Energy*5 -
		s.Stress*3 +
		s.Money*2 +
		s.Knowledge*20 +
		s.Connections*50 +
		len(s.Items)*25
	return int(math.Floor(float64(raw)*role.Multiplier() + 0.5))
}
