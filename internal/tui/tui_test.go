package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"voice-assistant-client/internal/models"
	"voice-assistant-client/internal/session"
)

func testState(modalOpen bool, n int) session.State {
	s := session.NewState()
	for i := 0; i < n; i++ {
		s.Results.Records = append(s.Results.Records, models.ProviderRecord{
			ID:       string(rune('a' + i)),
			FullName: "Dr. " + string(rune('A'+i)),
		})
	}
	if n > 0 {
		s.Results.Cursor = 0
	}
	s.ModalOpen = modalOpen
	return s
}

func recordingModel(initial session.State) (Model, *[]session.Input) {
	var dispatched []session.Input
	m := newModel(func(in session.Input) {
		dispatched = append(dispatched, in)
	}, nil, initial)
	return m, &dispatched
}

func key(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestEscClosesModal(t *testing.T) {
	m, dispatched := recordingModel(testState(true, 2))

	m.Update(key("esc"))

	if len(*dispatched) != 1 {
		t.Fatalf("expected 1 intent, got %d", len(*dispatched))
	}
	if _, ok := (*dispatched)[0].(session.CloseModal); !ok {
		t.Errorf("expected CloseModal, got %T", (*dispatched)[0])
	}
}

func TestEscWithoutModalIsInert(t *testing.T) {
	m, dispatched := recordingModel(testState(false, 2))

	m.Update(key("esc"))

	if len(*dispatched) != 0 {
		t.Errorf("expected no intents, got %v", *dispatched)
	}
}

func TestArrowsNavigateByOne(t *testing.T) {
	state := testState(true, 3)
	state.Results.Cursor = 1
	m, dispatched := recordingModel(state)

	m.Update(key("left"))
	m.Update(key("right"))

	if len(*dispatched) != 2 {
		t.Fatalf("expected 2 intents, got %d", len(*dispatched))
	}
	if nav, ok := (*dispatched)[0].(session.NavigateTo); !ok || nav.Index != 0 {
		t.Errorf("left should navigate to 0, got %#v", (*dispatched)[0])
	}
	if nav, ok := (*dispatched)[1].(session.NavigateTo); !ok || nav.Index != 2 {
		t.Errorf("right should navigate to 2, got %#v", (*dispatched)[1])
	}
}

func TestArrowsInertWithSingleRecord(t *testing.T) {
	m, dispatched := recordingModel(testState(true, 1))

	m.Update(key("left"))
	m.Update(key("right"))

	if len(*dispatched) != 0 {
		t.Errorf("arrows must be inert for a single record, got %v", *dispatched)
	}
}

func TestArrowsInertWhenModalClosed(t *testing.T) {
	m, dispatched := recordingModel(testState(false, 3))

	m.Update(key("left"))
	m.Update(key("right"))

	if len(*dispatched) != 0 {
		t.Errorf("arrows must be inert without the modal, got %v", *dispatched)
	}
}

func TestOpenModalKeyRequiresRecords(t *testing.T) {
	m, dispatched := recordingModel(testState(false, 0))
	m.Update(key("p"))
	if len(*dispatched) != 0 {
		t.Errorf("p with no records must be inert, got %v", *dispatched)
	}

	m, dispatched = recordingModel(testState(false, 2))
	m.Update(key("p"))
	if len(*dispatched) != 1 {
		t.Fatalf("expected 1 intent, got %d", len(*dispatched))
	}
	if _, ok := (*dispatched)[0].(session.OpenModal); !ok {
		t.Errorf("expected OpenModal, got %T", (*dispatched)[0])
	}
}

func TestDismissBannerKey(t *testing.T) {
	m, dispatched := recordingModel(testState(false, 0))
	m.Update(key("d"))

	if len(*dispatched) != 1 {
		t.Fatalf("expected 1 intent, got %d", len(*dispatched))
	}
	if _, ok := (*dispatched)[0].(session.DismissConnectionBanner); !ok {
		t.Errorf("expected DismissConnectionBanner, got %T", (*dispatched)[0])
	}
}

func TestViewShowsModalPagination(t *testing.T) {
	state := testState(true, 2)
	state.Results.Cursor = 1
	m, _ := recordingModel(state)

	view := m.View()
	if !strings.Contains(view, "Dr. B") {
		t.Errorf("expected current record name in view:\n%s", view)
	}
	if !strings.Contains(view, "2 of 2") {
		t.Errorf("expected pagination indicator in view:\n%s", view)
	}
}

func TestViewShowsTimeoutBanner(t *testing.T) {
	state := testState(false, 0)
	state.Connection = session.StatusTimedOut
	m, _ := recordingModel(state)

	if !strings.Contains(m.View(), "timed out") {
		t.Error("expected timeout banner in view")
	}

	state.BannerDismissed = true
	m, _ = recordingModel(state)
	if strings.Contains(m.View(), "timed out") {
		t.Error("dismissed banner must not render")
	}
}

func TestStateMsgRefreshesSnapshot(t *testing.T) {
	m, _ := recordingModel(testState(false, 0))

	next := testState(true, 1)
	updated, _ := m.Update(StateMsg(next))

	got := updated.(Model)
	if !got.state.ModalOpen {
		t.Error("expected snapshot replaced by StateMsg")
	}
	if !strings.Contains(got.View(), "Dr. A") {
		t.Error("expected new record rendered after StateMsg")
	}
}
