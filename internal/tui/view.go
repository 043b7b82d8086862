package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tatianab/edge-trail/internal/engine"
	"github.com/tatianab/edge-trail/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00E7AD")).
			Bold(true)

	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFE01")).
			Bold(true).
			Underline(true)

	textStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0"))

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#42FFFE")).
			Italic(true)

	eventStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#004E53")).
			Background(lipgloss.Color("#FFFE01")).
			Bold(true).
			Padding(0, 1)

	choiceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE"))

	disabledStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555555")).
			Strikethrough(true)

	dangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E74C3C")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E74C3C"))

	statsStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))
)

func (m model) View() string {
	var s string

	switch m.screen {
	case screenTitle:
		s = lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("🛤️  THE EDGE AI TRAIL"),
			textStyle.Render("The road to EDGE AI San Diego 2026"),
			"",
			textStyle.Render("Survive the airport, the flight and downtown traffic to reach EVE."),
			textStyle.Render("Keep your energy up and your stress down."),
			"",
			helpStyle.Render("Press Enter to begin, q to quit."),
		)

	case screenName:
		s = lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Who is making the trip?"),
			"",
			m.textInput.View(),
			m.renderError(),
			helpStyle.Render("Enter to continue, Esc to quit."),
		)

	case screenRole:
		s = m.renderRoles()

	case screenGame:
		side := m.renderStats()
		s = lipgloss.JoinHorizontal(lipgloss.Top, m.viewport.View(), side)
		s = lipgloss.JoinVertical(lipgloss.Left, s, "", m.renderHelp())
	}

	return "\n" + s + "\n\n" + m.renderCountdown() + "\n"
}

func (m model) renderError() string {
	if m.err == nil {
		return ""
	}
	return errorStyle.Render(m.err.Error())
}

func (m model) renderRoles() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Choose your role, %s", strings.TrimSpace(m.name))))
	b.WriteString("\n\n")
	for i, p := range m.table.Profiles() {
		fmt.Fprintf(&b, "%s %s %s\n", choiceStyle.Render(fmt.Sprintf("[%d]", i+1)), p.Icon, headingStyle.Render(p.Title))
		fmt.Fprintf(&b, "    %s\n\n", textStyle.Render(p.Blurb))
	}
	b.WriteString(m.renderError())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("1-3 to pick, b to go back."))
	return b.String()
}

// renderMain draws the left panel: the scene, the call or an ending.
func (m model) renderMain() string {
	width := m.viewport.Width
	snap := m.snap
	wrap := textStyle.Width(width)

	switch snap.State {
	case engine.StateGameOver:
		return m.renderGameOver(width)
	case engine.StateVictory:
		return m.renderVictory(width)
	}
	if snap.Scene == nil {
		return ""
	}
	if snap.Call != nil {
		return m.renderCall(width)
	}

	var b strings.Builder
	sc := snap.Scene
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s %s", sc.Icon, sc.Title)))
	b.WriteString(helpStyle.Render(fmt.Sprintf("  step %d/%d", sc.Position, len(models.Trail))))
	b.WriteString("\n\n")
	b.WriteString(wrap.Render(sc.Description))
	b.WriteString("\n\n")
	if snap.Message != "" {
		b.WriteString(messageStyle.Width(width).Render("» " + snap.Message))
		b.WriteString("\n\n")
	}
	if snap.Event != "" {
		b.WriteString(eventStyle.Render(snap.Event))
		b.WriteString("\n\n")
	}
	for _, c := range sc.Choices {
		line := fmt.Sprintf("[%d] %s %s", c.Index+1, c.Icon, c.Text)
		if c.Cost != nil {
			line += fmt.Sprintf(" ($%d)", *c.Cost)
		}
		if c.Disabled {
			b.WriteString(disabledStyle.Width(width).Render(line))
		} else {
			b.WriteString(choiceStyle.Width(width).Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m model) renderCall(width int) string {
	call := m.snap.Call
	var b strings.Builder

	switch call.Phase {
	case engine.CallRinging:
		dots := strings.Repeat("● ", call.Rings) + strings.Repeat("○ ", 3-min(call.Rings, 3))
		b.WriteString(dangerStyle.Render("📞 Incoming Call..."))
		b.WriteString("\n\n")
		b.WriteString(headingStyle.Render(call.Caller))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(call.CallerTitle))
		b.WriteString("\n\n")
		b.WriteString(dots)
	case engine.CallChoices:
		b.WriteString(dangerStyle.Render(fmt.Sprintf("📞 %s is calling...", call.Caller)))
		b.WriteString("\n\n")
		b.WriteString(textStyle.Width(width).Render(call.Prompt))
		b.WriteString("\n\n")
		for _, o := range call.Options {
			b.WriteString(choiceStyle.Width(width).Render(fmt.Sprintf("[%d] %s %s", o.Index+1, o.Icon, o.Text)))
			b.WriteString("\n")
		}
	case engine.CallResolved:
		b.WriteString(dangerStyle.Render("📞 ..."))
		b.WriteString("\n\n")
		b.WriteString(textStyle.Width(width).Render(call.Ending))
	}
	return b.String()
}

func (m model) renderGameOver(width int) string {
	end := m.snap.Ending
	return lipgloss.JoinVertical(lipgloss.Left,
		dangerStyle.Render(fmt.Sprintf("%s %s", end.Icon, end.Title)),
		"",
		textStyle.Width(width).Render(end.Message),
		"",
		helpStyle.Width(width).Render(end.Epigraph),
	)
}

func (m model) renderVictory(width int) string {
	v := m.snap.Victory
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("🏆 "+v.Title),
		headingStyle.Render(v.Subtitle),
		"",
		textStyle.Width(width).Render(v.Blurb),
		"",
		titleStyle.Render(fmt.Sprintf("Final score: %d", m.snap.Score)),
	)
}

// renderStats draws the right-hand stats panel.
func (m model) renderStats() string {
	st := m.snap.Stats
	var b strings.Builder

	b.WriteString(headingStyle.Render("TRAVELER"))
	fmt.Fprintf(&b, "\n%s (%s)\n\n", m.snap.PlayerName, m.snap.Role)

	b.WriteString(headingStyle.Render("STATS"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Energy  %s %3d\n", bar(st.Energy, models.MaxEnergy, 10), st.Energy)
	fmt.Fprintf(&b, "Stress  %s %3d\n", bar(st.Stress, models.MaxStress, 10), st.Stress)
	fmt.Fprintf(&b, "Money       $%d\n", st.Money)
	fmt.Fprintf(&b, "Knowledge   %d\n", st.Knowledge)
	fmt.Fprintf(&b, "Connections %d\n\n", st.Connections)

	b.WriteString(headingStyle.Render("INVENTORY"))
	b.WriteString("\n")
	if len(st.Items) == 0 {
		b.WriteString("(empty)\n")
	}
	for _, item := range st.Items {
		b.WriteString("- " + item + "\n")
	}

	width := max(m.width-m.viewport.Width-4, 20)
	return statsStyle.Width(width).Height(m.viewport.Height).Render(b.String())
}

func (m model) renderHelp() string {
	switch m.snap.State {
	case engine.StateGameOver, engine.StateVictory:
		return helpStyle.Render("r: play again as the same traveler  n: new traveler  q: quit")
	}
	if m.snap.Call != nil && m.snap.Call.Phase != engine.CallChoices {
		return helpStyle.Render("...")
	}
	return helpStyle.Render("1-4: choose  ↑/↓: scroll  esc: quit")
}

func (m model) renderCountdown() string {
	r := engine.Countdown(m.now)
	if r.IsZero() {
		return helpStyle.Render("EDGE AI San Diego 2026 is underway!")
	}
	return helpStyle.Render("EDGE AI San Diego 2026 starts in " + r.String())
}

func bar(v, maxV, width int) string {
	filled := v * width / maxV
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}
