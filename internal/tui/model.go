package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cvassist/internal/domain"
)

// Asker is the TUI-facing subset of the query pipeline.
type Asker interface {
	Answer(ctx context.Context, question string, history []domain.Turn) (domain.Answer, error)
}

// answerMsg carries a finished pipeline round back into Update.
type answerMsg struct {
	question string
	answer   domain.Answer
	err      error
}

// Model is the Bubble Tea model for the chat application.
type Model struct {
	asker       Asker
	input       textinput.Model
	viewport    viewport.Model
	history     []domain.Turn
	lastMatches []domain.RetrievalMatch
	showSources bool
	status      string
	thinking    bool
	ready       bool
}

// New creates a chat model over the given query pipeline.
func New(asker Asker) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about the indexed CVs and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		asker:    asker,
		input:    ti,
		viewport: vp,
		status:   "Ready. Tab toggles sources, Ctrl+C quits.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, ch := chatBoxStyle.GetFrameSize()
		_, qh := inputBoxStyle.GetFrameSize()
		reserved := 1 + 1 + qh + 1 // header, status, input frame, spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-ch)
		m.viewport.SetContent(m.renderTranscript())
		return m, nil
	case answerMsg:
		m.thinking = false
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
			m.viewport.SetContent(m.renderTranscript())
			return m, nil
		}
		m.history = append(m.history,
			domain.Turn{Role: domain.RoleUser, Content: msg.question},
			domain.Turn{Role: domain.RoleAssistant, Content: msg.answer.Text},
		)
		m.lastMatches = msg.answer.Matches
		if msg.answer.Grounded() {
			m.status = fmt.Sprintf("Answered from %d chunk(s).", len(msg.answer.Matches))
		} else {
			m.status = "No relevant CV content found."
		}
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q == "" || m.thinking {
				return m, nil
			}
			m.input.Reset()
			m.thinking = true
			m.status = "Thinking..."
			return m, m.ask(q)
		case "tab":
			m.showSources = !m.showSources
			m.viewport.SetContent(m.renderTranscript())
			return m, nil
		case "up", "down", "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// ask runs one pipeline round off the update loop. Earlier turns ride
// along so follow-up questions keep their context.
func (m Model) ask(question string) tea.Cmd {
	history := m.history
	return func() tea.Msg {
		answer, err := m.asker.Answer(context.Background(), question, history)
		return answerMsg{question: question, answer: answer, err: err}
	}
}

// View renders the chat layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("CV Assist")
	chat := chatBoxStyle.Render(m.viewport.View())
	input := inputBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + chat + "\n" + input + "\n" + status
}

func (m Model) renderTranscript() string {
	if len(m.history) == 0 {
		return "No questions yet. Ask something like \"who knows Python?\"."
	}
	var b strings.Builder
	for _, turn := range m.history {
		switch turn.Role {
		case domain.RoleUser:
			b.WriteString(userStyle.Render("You: ") + turn.Content + "\n")
		default:
			b.WriteString(assistantStyle.Render("Assistant: ") + turn.Content + "\n")
		}
		b.WriteString("\n")
	}
	if m.showSources && len(m.lastMatches) > 0 {
		b.WriteString(sourceStyle.Render(m.renderSources()))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderSources() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Sources (%d chunks):\n", len(m.lastMatches)))
	for i, match := range m.lastMatches {
		b.WriteString(fmt.Sprintf("  [%d] %s  chunk %d/%d  score %.3f\n",
			i+1, match.Payload.Candidate, match.Payload.Index+1, match.Payload.TotalChunks, match.Score))
	}
	return b.String()
}

var (
	chatBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	userStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	assistantStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	sourceStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
