// Package player drives sessions with a Gemini model standing in for a human.
package player

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"text/template"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/tatianab/edge-trail/internal/engine"
)

//go:embed prompts/choose.txt
var choosePrompt string

var chooseTmpl = template.Must(template.New("choose").
	Funcs(template.FuncMap{"join": strings.Join}).
	Parse(choosePrompt))

// ErrNoOptions is returned when the snapshot offers nothing to pick.
var ErrNoOptions = errors.New("no options to choose from")

// Gemini asks a Gemini model which option to take.
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
	log    *zap.Logger
}

// NewGemini connects to the Gemini API with apiKey.
func NewGemini(ctx context.Context, apiKey, modelName string, log *zap.Logger) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: API key is empty")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.7)
	return &Gemini{client: client, model: model, log: log}, nil
}

func (g *Gemini) Close() error {
	return g.client.Close()
}

// Choose returns the 0-based index of the scene choice, or of the call answer
// while the phone call offers options.
func (g *Gemini) Choose(ctx context.Context, snap engine.Snapshot) (int, error) {
	prompt, n, err := Prompt(snap)
	if err != nil {
		return 0, err
	}

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return 0, err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return 0, fmt.Errorf("no content returned from Gemini")
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return 0, fmt.Errorf("unexpected response type from Gemini")
	}

	idx, err := ParseIndex(string(text), n)
	if err != nil {
		return 0, err
	}
	g.log.Debug("Gemini picked",
		zap.String("session_id", snap.ID),
		zap.Int("index", idx),
		zap.String("reply", strings.TrimSpace(string(text))),
	)
	return idx, nil
}

type optionLine struct {
	Number   int
	Text     string
	Disabled bool
}

// Prompt renders the decision the snapshot is waiting on and returns how many
// options it lists.
func Prompt(snap engine.Snapshot) (string, int, error) {
	data := struct {
		engine.Snapshot
		Options []optionLine
	}{Snapshot: snap}

	switch {
	case snap.Call != nil:
		for _, o := range snap.Call.Options {
			data.Options = append(data.Options, optionLine{Number: o.Index + 1, Text: o.Text})
		}
	case snap.Scene != nil:
		for _, ch := range snap.Scene.Choices {
			data.Options = append(data.Options, optionLine{Number: ch.Index + 1, Text: ch.Text, Disabled: ch.Disabled})
		}
	}
	if len(data.Options) == 0 {
		return "", 0, ErrNoOptions
	}

	var buf bytes.Buffer
	if err := chooseTmpl.Execute(&buf, data); err != nil {
		return "", 0, err
	}
	return buf.String(), len(data.Options), nil
}

var firstNumber = regexp.MustCompile(`\d+`)

// ParseIndex reads the first number in a model reply as a 1-based option
// and converts it to a 0-based index below n.
func ParseIndex(reply string, n int) (int, error) {
	m := firstNumber.FindString(reply)
	if m == "" {
		return 0, fmt.Errorf("no option number in reply %q", reply)
	}
	v, err := strconv.Atoi(m)
	if err != nil {
		return 0, err
	}
	if v < 1 || v > n {
		return 0, fmt.Errorf("option %d out of range 1-%d", v, n)
	}
	return v - 1, nil
}
