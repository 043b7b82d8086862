package tui

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/tatianab/edge-trail/internal/config"
	"github.com/tatianab/edge-trail/internal/content"
	"github.com/tatianab/edge-trail/internal/engine"
	"github.com/tatianab/edge-trail/internal/logger"
	"github.com/tatianab/edge-trail/internal/models"
)

type screen int

const (
	screenTitle screen = iota
	screenName
	screenRole
	screenGame // everything after the role pick is driven by the snapshot
)

type model struct {
	screen    screen
	ctrl      *engine.Controller
	table     *content.Table
	log       *zap.Logger
	snap      engine.Snapshot
	textInput textinput.Model
	viewport  viewport.Model
	name      string
	err       error
	width     int
	height    int
	now       time.Time
}

// timerMsg carries an engine timer back after its delay.
type timerMsg struct {
	timer engine.Timer
}

type tickMsg time.Time

func NewModel(eng *engine.Engine, log *zap.Logger) model {
	ti := textinput.New()
	ti.Placeholder = "Your name"
	ti.CharLimit = engine.MaxNameLength
	ti.Width = 30

	ctrl := eng.NewController()
	return model{
		screen:    screenTitle,
		ctrl:      ctrl,
		table:     eng.Table(),
		log:       log,
		snap:      ctrl.Snapshot(),
		textInput: ti,
		viewport:  viewport.New(80, 20),
		now:       time.Now(),
	}
}

func (m model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// schedule turns engine timers into bubbletea commands.
func schedule(timers []engine.Timer) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(timers))
	for _, t := range timers {
		t := t
		cmds = append(cmds, tea.Tick(t.Delay, func(time.Time) tea.Msg { return timerMsg{timer: t} }))
	}
	return tea.Batch(cmds...)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	ctx := context.Background()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = int(float64(msg.Width) * 0.68)
		m.viewport.Height = msg.Height - 6
		m.refresh()
		return m, nil

	case tickMsg:
		m.now = time.Time(msg)
		return m, tick()

	case timerMsg:
		next := m.ctrl.Fire(ctx, msg.timer)
		m.refresh()
		return m, schedule(next)

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		}
		return m.handleKey(ctx, msg)
	}

	if m.screen == screenName {
		m.textInput, cmd = m.textInput.Update(msg)
	}
	return m, cmd
}

func (m model) handleKey(ctx context.Context, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	key := msg.String()

	switch m.screen {
	case screenTitle:
		switch key {
		case "enter", " ":
			m.screen = screenName
			m.textInput.Focus()
			return m, textinput.Blink
		case "q":
			return m, tea.Quit
		}

	case screenName:
		if msg.Type == tea.KeyEnter {
			m.name = m.textInput.Value()
			if !validName(m.name) {
				m.err = engine.ErrInvalidName
				return m, nil
			}
			m.err = nil
			m.textInput.Blur()
			m.screen = screenRole
			return m, nil
		}
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd

	case screenRole:
		if i, ok := digit(key); ok && i < len(models.Roles) {
			if err := m.ctrl.Start(ctx, m.name, models.Roles[i]); err != nil {
				m.log.Warn("Start rejected", zap.Error(err))
				m.err = err
				return m, nil
			}
			m.err = nil
			m.screen = screenGame
			m.refresh()
			m.viewport.GotoTop()
			return m, nil
		}
		if key == "b" {
			m.screen = screenName
			m.textInput.Focus()
			return m, textinput.Blink
		}

	case screenGame:
		return m.handleGameKey(ctx, msg)
	}
	return m, nil
}

func (m model) handleGameKey(ctx context.Context, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch m.snap.State {
	case engine.StatePlaying:
		i, ok := digit(key)
		if !ok {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		var timers []engine.Timer
		if m.snap.Call != nil {
			timers = m.ctrl.Answer(ctx, i)
			m.refresh()
		} else {
			var out engine.Outcome
			out, timers = m.ctrl.Choose(ctx, i)
			m.refresh()
			if out.Kind == engine.OutcomeContinue {
				m.viewport.GotoTop()
			}
		}
		return m, schedule(timers)

	case engine.StateGameOver, engine.StateVictory:
		switch key {
		case "r":
			if err := m.ctrl.Restart(ctx); err != nil {
				m.log.Error("Restart failed", zap.Error(err))
				m.err = err
				return m, nil
			}
			m.refresh()
			m.viewport.GotoTop()
		case "n":
			m.ctrl.Reset()
			m.refresh()
			m.textInput.Reset()
			m.textInput.Focus()
			m.screen = screenName
			return m, textinput.Blink
		case "q":
			return m, tea.Quit
		}
	}
	return m, nil
}

// refresh takes a new snapshot and re-renders the scene panel.
func (m *model) refresh() {
	m.snap = m.ctrl.Snapshot()
	if m.screen == screenGame {
		m.viewport.SetContent(m.renderMain())
	}
}

func validName(name string) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	return n > 0 && n <= engine.MaxNameLength
}

// digit maps "1".."9" to a zero-based index.
func digit(key string) (int, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return 0, false
	}
	return int(key[0] - '1'), true
}

// Run plays the trail in the terminal until the player quits.
func Run(eng *engine.Engine, log *zap.Logger) error {
	p := tea.NewProgram(NewModel(eng, log), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Start loads configuration, logs to a file and runs the game.
func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	logFile := cfg.LogFile
	if logFile == "" {
		logFile = "trail.log"
	}
	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Encoding: cfg.LogEncoding, OutputPath: logFile})
	if err != nil {
		return err
	}
	defer log.Sync()

	tbl, err := content.Load()
	if err != nil {
		return fmt.Errorf("loading trail: %w", err)
	}
	eng := engine.NewEngine(tbl,
		engine.WithRules(cfg.Rules()),
		engine.WithSeed(cfg.Seed),
		engine.WithLogger(log),
	)
	return Run(eng, log)
}
