package models

// Stat bounds. Money, knowledge and connections have no upper bound.
const (
	MinStat   = 0
	MaxEnergy = 100
	MaxStress = 100
)

// Stats is the player's numeric state plus inventory.
type Stats struct {
	Energy      int      `yaml:"energy" json:"energy"`
	Stress      int      `yaml:"stress" json:"stress"`
	Money       int      `yaml:"money" json:"money"`
	Knowledge   int      `yaml:"knowledge" json:"knowledge"`
	Connections int      `yaml:"connections" json:"connections"`
	Items       []string `yaml:"items" json:"items"`
}

// Clone returns a copy that shares no memory with s.
func (s Stats) Clone() Stats {
	out := s
	if s.Items != nil {
		out.Items = append([]string(nil), s.Items...)
	}
	return out
}

// Apply returns s with d applied. Numeric fields are added then clamped,
// then AddItem is appended and RemoveItem drops the first matching entry.
// The receiver is never modified.
func (s Stats) Apply(d Delta) Stats {
	out := s.Clone()
	out.Energy = clamp(out.Energy+d.Energy, MinStat, MaxEnergy)
	out.Stress = clamp(out.Stress+d.Stress, MinStat, MaxStress)
	out.Money = floor(out.Money + d.Money)
	out.Knowledge = floor(out.Knowledge + d.Knowledge)
	out.Connections = floor(out.Connections + d.Connections)

	if d.AddItem != "" {
		out.Items = append(out.Items, d.AddItem)
	}
	if d.RemoveItem != "" {
		for i, item := range out.Items {
			if item == d.RemoveItem {
				out.Items = append(out.Items[:i], out.Items[i+1:]...)
				break
			}
		}
	}
	return out
}

// HasItem reports whether the inventory holds at least one item with this name.
func (s Stats) HasItem(name string) bool {
	for _, item := range s.Items {
		if item == name {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func floor(v int) int {
	if v < MinStat {
		return MinStat
	}
	return v
}
