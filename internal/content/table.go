package content

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tatianab/edge-trail/internal/models"
	"gopkg.in/yaml.v3"
)

// Content counts every trail must satisfy.
const (
	MinChoices  = 1
	MaxChoices  = 4
	EventCount  = 6
	OptionCount = 4
)

// PlayerNameToken is replaced by the player's name when a scene is rendered.
const PlayerNameToken = "{playerName}"

// VictoryText frames the victory screen.
type VictoryText struct {
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
	Blurb    string `yaml:"blurb"`
}

// CallScript is the fixed script of the phone call interception.
type CallScript struct {
	Caller      string              `yaml:"caller"`
	CallerTitle string              `yaml:"caller_title"`
	Prompt      string              `yaml:"prompt"`
	Options     []models.CallOption `yaml:"options"`
}

type document struct {
	Start    models.SceneID                            `yaml:"start"`
	Profiles []models.Profile                          `yaml:"profiles"`
	Endings  map[models.EndingReason]models.EndingText `yaml:"endings"`
	Victory  VictoryText                               `yaml:"victory"`
	Events   []models.Event                            `yaml:"events"`
	Call     CallScript                                `yaml:"call"`
	Scenes   []models.Scene                            `yaml:"scenes"`
}

// SceneContext is what a selector may look at when it adjusts a scene.
type SceneContext struct {
	PlayerName string
	Role       models.Role
	Stats      models.Stats
	Visited    []models.SceneID
}

// Selector rewrites a scene for the current player. It must not mutate the
// scene's slices in place.
type Selector func(SceneContext, models.Scene) models.Scene

// Option configures a Table at load time.
type Option func(*Table)

// WithSelector registers a selector for one scene id.
func WithSelector(id models.SceneID, sel Selector) Option {
	return func(t *Table) {
		t.selectors[id] = sel
	}
}

// Table is the validated, read-only trail content.
type Table struct {
	start     models.SceneID
	scenes    map[models.SceneID]models.Scene
	profiles  map[models.Role]models.Profile
	endings   map[models.EndingReason]models.EndingText
	victory   VictoryText
	events    []models.Event
	call      CallScript
	selectors map[models.SceneID]Selector
}

// Load parses the embedded trail.
func Load(opts ...Option) (*Table, error) {
	return Parse(trailYAML, opts...)
}

// MustLoad parses the embedded trail, panicking on error.
func MustLoad(opts ...Option) *Table {
	t, err := Load(opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// Parse decodes and validates a trail document.
func Parse(data []byte, opts ...Option) (*Table, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse trail: %w", err)
	}
	if err := validate(&doc); err != nil {
		return nil, fmt.Errorf("invalid trail: %w", err)
	}

	t := &Table{
		start:     doc.Start,
		scenes:    make(map[models.SceneID]models.Scene, len(doc.Scenes)),
		profiles:  make(map[models.Role]models.Profile, len(doc.Profiles)),
		endings:   doc.Endings,
		victory:   doc.Victory,
		events:    doc.Events,
		call:      doc.Call,
		selectors: make(map[models.SceneID]Selector),
	}
	for _, s := range doc.Scenes {
		t.scenes[s.ID] = s
	}
	for _, p := range doc.Profiles {
		t.profiles[p.Role] = p
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

func validate(doc *document) error {
	var errs []error

	if doc.Start != models.FirstScene {
		errs = append(errs, fmt.Errorf("start is %q, want %q", doc.Start, models.FirstScene))
	}

	seen := make(map[models.SceneID]bool, len(doc.Scenes))
	for _, s := range doc.Scenes {
		if !s.ID.Valid() {
			errs = append(errs, fmt.Errorf("unknown scene id %q", s.ID))
			continue
		}
		if seen[s.ID] {
			errs = append(errs, fmt.Errorf("scene %q defined twice", s.ID))
		}
		seen[s.ID] = true

		if n := len(s.Choices); n < MinChoices || n > MaxChoices {
			errs = append(errs, fmt.Errorf("scene %q has %d choices", s.ID, n))
		}
		for i, c := range s.Choices {
			if c.Next != "" && c.Next != models.Victory && !c.Next.Valid() {
				errs = append(errs, fmt.Errorf("scene %q choice %d: unknown next %q", s.ID, i, c.Next))
			}
			if c.Flavor != nil && (c.Flavor.Chance < 0 || c.Flavor.Chance > 1) {
				errs = append(errs, fmt.Errorf("scene %q choice %d: flavor chance %v out of range", s.ID, i, c.Flavor.Chance))
			}
			for r := range c.RoleResults {
				if _, err := models.ParseRole(string(r)); err != nil {
					errs = append(errs, fmt.Errorf("scene %q choice %d: %w", s.ID, i, err))
				}
			}
		}
	}
	for _, id := range models.Trail {
		if !seen[id] {
			errs = append(errs, fmt.Errorf("scene %q missing", id))
		}
	}

	if len(doc.Events) != EventCount {
		errs = append(errs, fmt.Errorf("got %d events, want %d", len(doc.Events), EventCount))
	}
	if len(doc.Call.Options) != OptionCount {
		errs = append(errs, fmt.Errorf("got %d call options, want %d", len(doc.Call.Options), OptionCount))
	}
	for i, o := range doc.Call.Options {
		if o.Ending == "" {
			errs = append(errs, fmt.Errorf("call option %d has no ending", i))
		}
	}

	roles := make(map[models.Role]bool)
	for _, p := range doc.Profiles {
		roles[p.Role] = true
	}
	for _, r := range models.Roles {
		if !roles[r] {
			errs = append(errs, fmt.Errorf("profile for role %q missing", r))
		}
	}

	for _, reason := range []models.EndingReason{models.EndingExhaustion, models.EndingStress, models.EndingIntercepted} {
		if _, ok := doc.Endings[reason]; !ok {
			errs = append(errs, fmt.Errorf("ending %q missing", reason))
		}
	}

	return errors.Join(errs...)
}

// Lookup returns the scene for id. Unknown ids fall back to the first scene.
func (t *Table) Lookup(id models.SceneID) models.Scene {
	if s, ok := t.scenes[id]; ok {
		return s
	}
	return t.scenes[t.start]
}

// Render looks up a scene, runs its selector if one is registered and fills in
// the player's name.
func (t *Table) Render(id models.SceneID, ctx SceneContext) models.Scene {
	s := t.Lookup(id)
	if sel, ok := t.selectors[s.ID]; ok {
		s = sel(ctx, s)
	}
	s.Description = strings.ReplaceAll(s.Description, PlayerNameToken, ctx.PlayerName)
	return s
}

// Start is the scene every session begins on.
func (t *Table) Start() models.SceneID { return t.start }

// Events returns the random event pool.
func (t *Table) Events() []models.Event { return t.events }

// Call returns the phone call script.
func (t *Table) Call() CallScript { return t.call }

// CallOptions returns the answers offered during the call.
func (t *Table) CallOptions() []models.CallOption { return t.call.Options }

// Ending returns the framing text for a game-over reason.
func (t *Table) Ending(reason models.EndingReason) models.EndingText {
	return t.endings[reason]
}

// Victory returns the victory screen text.
func (t *Table) Victory() VictoryText { return t.victory }

// Profile returns the profile for a role. Unknown roles get the developer profile.
func (t *Table) Profile(role models.Role) models.Profile {
	if p, ok := t.profiles[role]; ok {
		return p
	}
	return t.profiles[models.RoleDeveloper]
}

// Profiles returns the role profiles in the order they are offered.
func (t *Table) Profiles() []models.Profile {
	out := make([]models.Profile, 0, len(models.Roles))
	for _, r := range models.Roles {
		out = append(out, t.profiles[r])
	}
	return out
}
