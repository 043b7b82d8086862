package models

import "fmt"

// SceneID identifies one node of the trail.
type SceneID string

const (
	SceneAirportDropoff  SceneID = "airport_dropoff"
	SceneAirportEntrance SceneID = "airport_entrance"
	SceneLuggageDilemma  SceneID = "luggage_dilemma"
	SceneSecurityLine    SceneID = "security_line"
	SceneTSACheckpoint   SceneID = "tsa_checkpoint"
	SceneFoodCourt       SceneID = "food_court"
	SceneGateRush        SceneID = "gate_rush"
	SceneBoarding        SceneID = "boarding"
	ScenePlaneSeat       SceneID = "plane_seat"
	ScenePlaneEvents     SceneID = "plane_events"
	ScenePlaneLanding    SceneID = "plane_landing"
	SceneSanArrival      SceneID = "san_arrival"
	SceneTransportChoice SceneID = "transport_choice"
	SceneDowntownJourney SceneID = "downtown_journey"
	SceneEveApproach     SceneID = "eve_approach"
	SceneEveEntrance     SceneID = "eve_entrance"

	// Victory is the terminal marker a choice routes to when the trail is done.
	// It is not a real scene.
	Victory SceneID = "victory"
)

// Trail lists every scene in the order the story visits them.
var Trail = []SceneID{
	SceneAirportDropoff,
	SceneAirportEntrance,
	SceneLuggageDilemma,
	SceneSecurityLine,
	SceneTSACheckpoint,
	SceneFoodCourt,
	SceneGateRush,
	SceneBoarding,
	ScenePlaneSeat,
	ScenePlaneEvents,
	ScenePlaneLanding,
	SceneSanArrival,
	SceneTransportChoice,
	SceneDowntownJourney,
	SceneEveApproach,
	SceneEveEntrance,
}

// FirstScene is where every session begins.
const FirstScene = SceneAirportDropoff

// Position returns the index of id in Trail, or -1 for unknown ids and Victory.
func (id SceneID) Position() int {
	for i, s := range Trail {
		if s == id {
			return i
		}
	}
	return -1
}

// Valid reports whether id is one of the trail scenes.
func (id SceneID) Valid() bool {
	return id.Position() >= 0
}

// ParseSceneID converts a raw string to a SceneID, accepting the Victory marker.
func ParseSceneID(s string) (SceneID, error) {
	id := SceneID(s)
	if id == Victory || id.Valid() {
		return id, nil
	}
	return "", fmt.Errorf("unknown scene %q", s)
}

// Delta is a set of signed stat changes carried by a choice or a random event.
type Delta struct {
	Energy      int    `yaml:"energy,omitempty" json:"energy,omitempty"`
	Stress      int    `yaml:"stress,omitempty" json:"stress,omitempty"`
	Money       int    `yaml:"money,omitempty" json:"money,omitempty"`
	Knowledge   int    `yaml:"knowledge,omitempty" json:"knowledge,omitempty"`
	Connections int    `yaml:"connections,omitempty" json:"connections,omitempty"`
	AddItem     string `yaml:"add_item,omitempty" json:"addItem,omitempty"`
	RemoveItem  string `yaml:"remove_item,omitempty" json:"removeItem,omitempty"`
}

// IsZero reports whether the delta changes nothing.
func (d Delta) IsZero() bool {
	return d == Delta{}
}

// Flavor picks between two result texts with a single roll. It never changes stats.
type Flavor struct {
	Chance  float64 `yaml:"chance"` // probability of the success text
	Success string  `yaml:"success"`
	Failure string  `yaml:"failure"`
}

// Choice is one selectable option inside a scene.
type Choice struct {
	Text        string          `yaml:"text"`
	Icon        string          `yaml:"icon"`
	Cost        *int            `yaml:"cost,omitempty"` // display hint; the real deduction is Effects.Money
	Disabled    bool            `yaml:"disabled,omitempty"`
	Effects     Delta           `yaml:"effects,omitempty"`
	Result      string          `yaml:"result,omitempty"`
	RoleResults map[Role]string `yaml:"role_results,omitempty"` // overrides Result for a role
	Flavor      *Flavor         `yaml:"flavor,omitempty"`
	Next        SceneID         `yaml:"next,omitempty"` // empty means stay on the current scene
}

// Scene is one node of the trail as the player sees it.
type Scene struct {
	ID          SceneID  `yaml:"id"`
	Title       string   `yaml:"title"`
	Icon        string   `yaml:"icon"`
	Description string   `yaml:"description"` // may contain {playerName}
	Choices     []Choice `yaml:"choices"`
}

// Event is a random flavor event that nudges stats on top of a choice.
type Event struct {
	Text    string `yaml:"text"`
	Effects Delta  `yaml:"effects"`
}

// CallOption is one of the answers offered during the phone call interception.
type CallOption struct {
	Text   string `yaml:"text"`
	Icon   string `yaml:"icon"`
	Ending string `yaml:"ending"` // game-over message for this answer
}

// EndingReason says why a session ended without reaching the venue.
type EndingReason string

const (
	EndingExhaustion  EndingReason = "exhaustion"
	EndingStress      EndingReason = "stress"
	EndingIntercepted EndingReason = "intercepted"
)

// EndingText is the framing shown on a game-over screen.
type EndingText struct {
	Title    string `yaml:"title"`
	Icon     string `yaml:"icon"`
	Message  string `yaml:"message,omitempty"` // fixed message; intercepted endings take it from the call option
	Epigraph string `yaml:"epigraph"`
}
