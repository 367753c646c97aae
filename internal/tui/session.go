package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/trknhr/ghostchat/internal/logger"
	"github.com/trknhr/ghostchat/internal/model"
	"github.com/trknhr/ghostchat/internal/model/ngram"
	"github.com/trknhr/ghostchat/internal/store"
)

type SessionConfig struct {
	Name string
	// Events is the build channel returned by model.GenerateModel.
	Events <-chan model.ModelInitEvent
	// NewAnswerer is called once the models are ready.
	NewAnswerer func(*ngram.Collection) Answerer
	Transcripts store.TranscriptStore
}

type tuiModel struct {
	cfg      SessionConfig
	input    textinput.Model
	viewport viewport.Model
	lines    []string
	answerer Answerer
	progress model.ModelInitEvent
	err      error
	waiting  bool
	width    int
	height   int
}

func NewSession(cfg SessionConfig) *tuiModel {
	input := textinput.New()
	input.Placeholder = "Type a message (type exit to leave)"
	input.Focus()

	vp := viewport.New(80, 20)

	return &tuiModel{
		cfg:      cfg,
		input:    input,
		viewport: vp,
	}
}

type modelEventMsg struct {
	event model.ModelInitEvent
	ok    bool
}

type answerMsg struct {
	input string
	reply string
}

func waitForModelEvent(ch <-chan model.ModelInitEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		return modelEventMsg{event: ev, ok: ok}
	}
}

func answerCmd(answerer Answerer, transcripts store.TranscriptStore, input string) tea.Cmd {
	return func() tea.Msg {
		reply := answerer.Answer(input)
		saveExchange(context.Background(), transcripts, input, reply)
		return answerMsg{input: input, reply: reply}
	}
}

func (m *tuiModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForModelEvent(m.cfg.Events))
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-5, 1)
		m.refresh()

	case modelEventMsg:
		if !msg.ok {
			return m, nil
		}
		m.progress = msg.event
		switch msg.event.Status {
		case model.ModelReady:
			logger.Debug("[%s] model ready", msg.event.Name)
			m.answerer = m.cfg.NewAnswerer(msg.event.Models)
			return m, nil
		case model.ModelError:
			m.err = msg.event.Err
			return m, tea.Quit
		}
		return m, waitForModelEvent(m.cfg.Events)

	case answerMsg:
		m.waiting = false
		m.lines = append(m.lines, botStyle.Render(m.cfg.Name+": "+msg.reply))
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			text := strings.TrimSpace(m.input.Value())
			if isExit(text) {
				return m, tea.Quit
			}
			if text == "" || m.answerer == nil || m.waiting {
				return m, nil
			}
			m.input.Reset()
			m.waiting = true
			m.lines = append(m.lines, userStyle.Render("You: "+text))
			m.refresh()
			return m, answerCmd(m.answerer, m.cfg.Transcripts, text)

		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *tuiModel) refresh() {
	m.viewport.SetContent(lipgloss.NewStyle().Width(m.viewport.Width).Render(strings.Join(m.lines, "\n")))
	m.viewport.GotoBottom()
}

func (m *tuiModel) View() string {
	var b strings.Builder
	b.WriteString(m.cfg.Name + "\n\n")
	if m.answerer == nil {
		b.WriteString(ProgressBar(m.progress.Step, m.progress.Total) + "\n")
		return b.String()
	}
	b.WriteString(m.viewport.View() + "\n")
	if m.waiting {
		b.WriteString(botStyle.Render(m.cfg.Name+" is typing...") + "\n")
	} else {
		b.WriteString("\n")
	}
	b.WriteString(m.input.View() + "\n")
	b.WriteString("(exit or Ctrl+C to quit)")
	return b.String()
}

// Err returns the model build failure that ended the session, if any.
func (m *tuiModel) Err() error {
	return m.err
}
