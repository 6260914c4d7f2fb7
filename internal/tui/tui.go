// Package tui renders the coordinator's state snapshot in the terminal and
// translates keystrokes into UI intents. It holds no session state of its
// own: every keypress becomes an intent dispatched to the coordinator, and
// every frame renders the latest snapshot.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"voice-assistant-client/internal/models"
	"voice-assistant-client/internal/session"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	localStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	remoteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("213")).
			Bold(true)

	pendingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)

	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("212")).
			Padding(1, 2)

	fieldStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// StateMsg carries a fresh coordinator snapshot into the program.
type StateMsg session.State

// ScrollMsg asks the transcript view to jump to the bottom. Sent when the
// coordinator emits a scroll effect.
type ScrollMsg struct{}

// Model is the bubbletea model for the voice session view.
type Model struct {
	dispatch func(session.Input)
	updates  <-chan session.State

	state    session.State
	viewport viewport.Model
	width    int
	height   int
	sized    bool
}

// New builds the presentation model over a coordinator.
func New(coord *session.Coordinator) Model {
	return newModel(coord.Dispatch, coord.Updates(), coord.Snapshot())
}

func newModel(dispatch func(session.Input), updates <-chan session.State, initial session.State) Model {
	return Model{
		dispatch: dispatch,
		updates:  updates,
		state:    initial,
		viewport: viewport.New(80, 20),
	}
}

// Init starts listening for coordinator snapshots.
func (m Model) Init() tea.Cmd {
	return m.waitForState()
}

func (m Model) waitForState() tea.Cmd {
	return func() tea.Msg {
		s, ok := <-m.updates
		if !ok {
			return nil
		}
		return StateMsg(s)
	}
}

// Update handles one message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.sized = true
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-4, 1)
		m.viewport.SetContent(m.renderTranscript())
		return m, nil

	case StateMsg:
		m.state = session.State(msg)
		m.viewport.SetContent(m.renderTranscript())
		return m, m.waitForState()

	case ScrollMsg:
		m.viewport.GotoBottom()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "esc":
		if m.state.ModalOpen {
			m.dispatch(session.CloseModal{})
		}
		return m, nil

	case "left":
		// Inert unless the modal is open with at least 2 records
		if m.state.ModalOpen && m.state.Results.Len() > 1 {
			m.dispatch(session.NavigateTo{Index: m.state.Results.Cursor - 1})
		}
		return m, nil

	case "right":
		if m.state.ModalOpen && m.state.Results.Len() > 1 {
			m.dispatch(session.NavigateTo{Index: m.state.Results.Cursor + 1})
		}
		return m, nil

	case "p":
		if m.state.Results.Len() > 0 {
			m.dispatch(session.OpenModal{})
		}
		return m, nil

	case "d":
		m.dispatch(session.DismissConnectionBanner{})
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders one frame from the current snapshot.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Voice Assistant"))
	b.WriteString("  ")
	b.WriteString(m.renderStatus())
	b.WriteString("\n\n")

	if m.state.ModalOpen {
		b.WriteString(m.renderModal())
	} else {
		b.WriteString(m.viewport.View())
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.helpLine()))
	return b.String()
}

func (m Model) renderStatus() string {
	switch m.state.Connection {
	case session.StatusConnecting:
		return statusStyle.Render("connecting…")
	case session.StatusReady:
		return statusStyle.Render("live")
	case session.StatusTimedOut:
		if m.state.BannerDismissed {
			return statusStyle.Render("offline")
		}
		return bannerStyle.Render("connection timed out — press d to dismiss")
	default:
		return ""
	}
}

func (m Model) renderTranscript() string {
	if len(m.state.Transcript) == 0 {
		return pendingStyle.Render("Say something to get started.")
	}

	var b strings.Builder
	for i, entry := range m.state.Transcript {
		if i > 0 {
			b.WriteString("\n")
		}
		label := remoteStyle.Render("assistant")
		if entry.Speaker == models.SpeakerLocal {
			label = localStyle.Render("you")
		}
		text := entry.Text
		if !entry.Final {
			text = pendingStyle.Render(text + "…")
		}
		b.WriteString(fmt.Sprintf("%s  %s", label, text))
	}
	return b.String()
}

func (m Model) renderModal() string {
	rec, ok := m.state.Results.Current()
	if !ok {
		return modalStyle.Render("No providers to show.")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(rec.FullName))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s\n", fieldStyle.Render("Specialty:"), rec.Specialty))
	b.WriteString(fmt.Sprintf("%s %s, %s, %s %s\n",
		fieldStyle.Render("Address:"), rec.Address.Street, rec.Address.City, rec.Address.State, rec.Address.Zip))
	b.WriteString(fmt.Sprintf("%s %s   %s %s\n", fieldStyle.Render("Phone:"), rec.Phone, fieldStyle.Render("Email:"), rec.Email))
	b.WriteString(fmt.Sprintf("%s %d yrs   %s %.1f\n",
		fieldStyle.Render("Experience:"), rec.YearsExperience, fieldStyle.Render("Rating:"), rec.Rating))
	b.WriteString(fmt.Sprintf("%s %s   %s %s\n",
		fieldStyle.Render("Board certified:"), yesNo(rec.BoardCertified),
		fieldStyle.Render("New patients:"), yesNo(rec.AcceptingNewPatients)))
	if len(rec.Languages) > 0 {
		b.WriteString(fmt.Sprintf("%s %s\n", fieldStyle.Render("Languages:"), strings.Join(rec.Languages, ", ")))
	}
	if len(rec.InsuranceAccepted) > 0 {
		b.WriteString(fmt.Sprintf("%s %s\n", fieldStyle.Render("Insurance:"), strings.Join(rec.InsuranceAccepted, ", ")))
	}
	b.WriteString(fmt.Sprintf("%s %s\n", fieldStyle.Render("License:"), rec.LicenseNumber))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(fmt.Sprintf("%d of %d", m.state.Results.Cursor+1, m.state.Results.Len())))

	return modalStyle.Render(b.String())
}

func (m Model) helpLine() string {
	if m.state.ModalOpen {
		return "←/→ browse • esc close • q quit"
	}
	if m.state.Results.Len() > 0 {
		return "p providers • q quit"
	}
	return "q quit"
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
