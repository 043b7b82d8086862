package engine

import (
	"math/rand"

	"github.com/tatianab/edge-trail/internal/models"
)

// arm rolls whether this session will get the phone call and where.
func arm(rules Rules, rng *rand.Rand) Interception {
	if rng.Float64() >= rules.InterceptChance {
		return Interception{}
	}
	return Interception{
		Armed:  true,
		Target: Interceptable[rng.Intn(len(Interceptable))],
	}
}

func intercepts(in Interception, next models.SceneID) bool {
	return in.Armed && !in.Fired && in.Target == next
}

// ring advances a ringing call. It reports whether another ring is due.
func ring(c *Call, threshold int) bool {
	if c.Rings >= threshold {
		c.Phase = CallChoices
		return false
	}
	c.Rings++
	return true
}
