package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jkleczar/wypadek/internal/chat"
	"github.com/jkleczar/wypadek/internal/render"
	"github.com/jkleczar/wypadek/internal/report"
	"github.com/jkleczar/wypadek/internal/wizard"
)

var (
	botStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("36"))
	userStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Italic(true)
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type turnMsg struct {
	turn chat.Turn
	err  error
}

type savedMsg struct {
	id  string
	err error
}

type chatModel struct {
	engine  *chat.Engine
	session *wizard.Session

	input    textinput.Model
	viewport viewport.Model

	transcript  []string
	suggestions []string
	status      string
	busy        bool
	preview     bool
	previewBody string
	ready       bool
}

func newChatModel(engine *chat.Engine, session *wizard.Session) *chatModel {
	input := textinput.New()
	input.Placeholder = "Napisz odpowiedź..."
	input.Focus()
	input.CharLimit = 500

	m := &chatModel{
		engine:  engine,
		session: session,
		input:   input,
	}
	greet := engine.Greet()
	m.appendBot(greet.Message)
	m.suggestions = greet.Suggestions
	return m
}

func (m *chatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := msg.Height - 6
		if height < 3 {
			height = 3
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			if m.preview {
				m.preview = false
				return m, nil
			}
			return m, tea.Quit
		case "enter":
			return m.submit()
		case "ctrl+s":
			return m, m.save()
		case "ctrl+d":
			m.togglePreview()
			return m, nil
		}

	case turnMsg:
		m.busy = false
		if msg.err != nil {
			m.status = errorStyle.Render("Błąd: " + msg.err.Error() + " (spróbuj ponownie)")
			return m, nil
		}
		m.appendBot(msg.turn.Message)
		m.suggestions = msg.turn.Suggestions
		if msg.turn.OfferDocument {
			m.status = statusStyle.Render("Dokument gotowy: ctrl+d podgląd, ctrl+s zapis")
		}
		m.refresh()
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.status = errorStyle.Render("Zapis nieudany: " + msg.err.Error())
		} else {
			m.status = statusStyle.Render("Zapisano, id: " + msg.id)
		}
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *chatModel) submit() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}
	m.input.SetValue("")
	m.suggestions = nil
	m.status = ""
	m.transcript = append(m.transcript, userStyle.Render("Ty: ")+text)
	m.busy = true
	m.refresh()

	engine := m.engine
	return m, func() tea.Msg {
		turn, err := engine.Send(context.Background(), text)
		return turnMsg{turn: turn, err: err}
	}
}

func (m *chatModel) save() tea.Cmd {
	session := m.session
	return func() tea.Msg {
		id, err := session.Save(context.Background())
		return savedMsg{id: id, err: err}
	}
}

func (m *chatModel) togglePreview() {
	if m.preview {
		m.preview = false
		return
	}
	rec := m.engine.Record()
	report.Analyze(rec).WriteBack(rec)
	body, err := glamour.Render(render.Markdown(rec), "dark")
	if err != nil {
		body = render.Text(rec)
	}
	m.previewBody = body
	m.preview = true
}

func (m *chatModel) appendBot(message string) {
	m.transcript = append(m.transcript, botStyle.Render("Asystent: ")+message)
}

func (m *chatModel) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(strings.Join(m.transcript, "\n\n"))
	m.viewport.GotoBottom()
}

func (m *chatModel) View() string {
	if m.preview {
		return m.previewBody + "\n" + statusStyle.Render("esc: powrót do rozmowy")
	}

	var b strings.Builder
	header := fmt.Sprintf("Zgłoszenie wypadku — wypełnione %d%%", report.Progress(m.engine.Record()))
	b.WriteString(statusStyle.Render(header) + "\n")
	if m.ready {
		b.WriteString(m.viewport.View() + "\n")
	} else {
		b.WriteString(strings.Join(m.transcript, "\n\n") + "\n")
	}
	if len(m.suggestions) > 0 {
		b.WriteString(suggestionStyle.Render("Podpowiedzi: "+strings.Join(m.suggestions, " | ")) + "\n")
	}
	if m.busy {
		b.WriteString(statusStyle.Render("Asystent pisze...") + "\n")
	}
	if m.status != "" {
		b.WriteString(m.status + "\n")
	}
	b.WriteString(m.input.View())
	return b.String()
}
