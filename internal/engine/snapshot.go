package engine

import (
	"github.com/tatianab/edge-trail/internal/content"
	"github.com/tatianab/edge-trail/internal/models"
)

// ChoiceView is a choice as a player sees it.
type ChoiceView struct {
	Index    int    `json:"index"`
	Text     string `json:"text"`
	Icon     string `json:"icon"`
	Cost     *int   `json:"cost,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`
}

// SceneView is the rendered current scene.
type SceneView struct {
	ID          models.SceneID `json:"id"`
	Title       string         `json:"title"`
	Icon        string         `json:"icon"`
	Description string         `json:"description"`
	Position    int            `json:"position"` // 1-based step on the trail
	Choices     []ChoiceView   `json:"choices"`
}

// CallOptionView is one answer offered during the call.
type CallOptionView struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
	Icon  string `json:"icon"`
}

// CallView is the phone call overlay.
type CallView struct {
	Caller      string           `json:"caller"`
	CallerTitle string           `json:"callerTitle"`
	Prompt      string           `json:"prompt"`
	Phase       CallPhase        `json:"phase"`
	Rings       int              `json:"rings"`
	Options     []CallOptionView `json:"options,omitempty"` // empty while ringing
	Chosen      int              `json:"chosen"`
	Ending      string           `json:"ending,omitempty"` // narrative of the chosen answer
}

// EndingView frames a game-over screen.
type EndingView struct {
	Reason   models.EndingReason `json:"reason"`
	Title    string              `json:"title"`
	Icon     string              `json:"icon"`
	Message  string              `json:"message"`
	Epigraph string              `json:"epigraph"`
}

// Snapshot is an immutable picture of a session for rendering. It shares no
// memory with the controller.
type Snapshot struct {
	ID         string               `json:"id"`
	PlayerName string               `json:"playerName"`
	Role       models.Role          `json:"role"`
	State      GameState            `json:"state"`
	Scene      *SceneView           `json:"scene,omitempty"`
	Stats      models.Stats         `json:"stats"`
	Visited    []models.SceneID     `json:"visited"`
	Message    string               `json:"message,omitempty"`
	Event      string               `json:"event,omitempty"`
	Call       *CallView            `json:"call,omitempty"`
	Ending     *EndingView          `json:"ending,omitempty"`
	Victory    *content.VictoryText `json:"victory,omitempty"`
	Score      int                  `json:"score,omitempty"`
	Countdown  Remaining            `json:"countdown"`
}

// Snapshot renders the current session.
func (c *Controller) Snapshot() Snapshot {
	s := c.s.Clone()
	tbl := c.eng.table

	snap := Snapshot{
		ID:         s.ID,
		PlayerName: s.PlayerName,
		Role:       s.Role,
		State:      s.State,
		Stats:      s.Stats,
		Visited:    s.Visited.Ordered(),
		Message:    s.Message,
		Score:      s.Score,
		Countdown:  Countdown(c.eng.clock()),
	}
	if s.Event != nil {
		snap.Event = s.Event.Text
	}
	if s.State == StateNotStarted {
		return snap
	}

	scene := tbl.Render(s.Scene, sceneContext(s))
	view := &SceneView{
		ID:          scene.ID,
		Title:       scene.Title,
		Icon:        scene.Icon,
		Description: scene.Description,
		Position:    scene.ID.Position() + 1,
		Choices:     make([]ChoiceView, len(scene.Choices)),
	}
	for i, ch := range scene.Choices {
		cv := ChoiceView{Index: i, Text: ch.Text, Icon: ch.Icon, Disabled: ch.Disabled}
		if ch.Cost != nil {
			cost := *ch.Cost
			cv.Cost = &cost
		}
		view.Choices[i] = cv
	}
	snap.Scene = view

	if s.Call != nil {
		script := tbl.Call()
		call := &CallView{
			Caller:      script.Caller,
			CallerTitle: script.CallerTitle,
			Prompt:      script.Prompt,
			Phase:       s.Call.Phase,
			Rings:       s.Call.Rings,
			Chosen:      s.Call.Chosen,
		}
		if s.Call.Phase != CallRinging {
			for i, o := range script.Options {
				call.Options = append(call.Options, CallOptionView{Index: i, Text: o.Text, Icon: o.Icon})
			}
		}
		if s.Call.Phase == CallResolved {
			call.Ending = script.Options[s.Call.Chosen].Ending
		}
		snap.Call = call
	}

	switch s.State {
	case StateGameOver:
		text := tbl.Ending(s.Ending.Reason)
		snap.Ending = &EndingView{
			Reason:   s.Ending.Reason,
			Title:    text.Title,
			Icon:     text.Icon,
			Message:  s.Ending.Message,
			Epigraph: text.Epigraph,
		}
	case StateVictory:
		v := tbl.Victory()
		snap.Victory = &v
	}
	return snap
}
