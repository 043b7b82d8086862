package server

import (
	"bytes"
	"html"

	"github.com/yuin/goldmark"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/tatianab/edge-trail/internal/engine"
	"github.com/tatianab/edge-trail/internal/models"
)

type renderer struct {
	md goldmark.Markdown
}

func newRenderer() *renderer {
	return &renderer{
		md: goldmark.New(goldmark.WithRendererOptions(goldmarkhtml.WithHardWraps())),
	}
}

// HTML renders scene prose. Raw HTML in the source is escaped by goldmark's
// default renderer.
func (r *renderer) HTML(s string) string {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(s), &buf); err != nil {
		return "<p>" + html.EscapeString(s) + "</p>"
	}
	return buf.String()
}

type outcomeView struct {
	Kind    engine.OutcomeKind `json:"kind"`
	Scene   models.SceneID     `json:"scene,omitempty"`
	Message string             `json:"message,omitempty"`
	Event   string             `json:"event,omitempty"`
	Score   int                `json:"score,omitempty"`
}

type snapshotResponse struct {
	engine.Snapshot
	DescriptionHTML string       `json:"descriptionHtml,omitempty"`
	Outcome         *outcomeView `json:"outcome,omitempty"`
}

func (r *renderer) response(snap engine.Snapshot, out *engine.Outcome) snapshotResponse {
	resp := snapshotResponse{Snapshot: snap}
	if snap.Scene != nil {
		resp.DescriptionHTML = r.HTML(snap.Scene.Description)
	}
	if out != nil {
		v := &outcomeView{Kind: out.Kind, Scene: out.Scene, Message: out.Message, Score: out.Score}
		if out.Event != nil {
			v.Event = out.Event.Text
		}
		resp.Outcome = v
	}
	return resp
}
