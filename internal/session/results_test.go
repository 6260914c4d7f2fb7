package session

import (
	"testing"

	"voice-assistant-client/internal/models"
)

func records(n int) []models.ProviderRecord {
	out := make([]models.ProviderRecord, n)
	for i := range out {
		out[i] = models.ProviderRecord{ID: string(rune('a' + i))}
	}
	return out
}

func TestNewResultSet_Empty(t *testing.T) {
	s := newResultSet(nil)
	if s.Cursor != NoCursor {
		t.Errorf("expected NoCursor for empty set, got %d", s.Cursor)
	}
	if _, ok := s.Current(); ok {
		t.Error("Current must report absence for empty set")
	}
}

func TestNewResultSet_CursorStartsAtZero(t *testing.T) {
	s := newResultSet(records(3))
	if s.Cursor != 0 {
		t.Errorf("expected cursor 0, got %d", s.Cursor)
	}
	if s.Len() != 3 {
		t.Errorf("expected 3 records, got %d", s.Len())
	}
}

func TestNavigate_Clamps(t *testing.T) {
	s := newResultSet(records(3))

	tests := []struct {
		index int
		want  int
	}{
		{-5, 0},
		{-1, 0},
		{0, 0},
		{1, 1},
		{2, 2},
		{3, 2},
		{99, 2},
	}

	for _, tt := range tests {
		got := navigate(s, tt.index)
		if got.Cursor != tt.want {
			t.Errorf("navigate(%d): cursor = %d, want %d", tt.index, got.Cursor, tt.want)
		}
	}
}

func TestNavigate_EmptySetIsInert(t *testing.T) {
	s := newResultSet(nil)
	got := navigate(s, 5)
	if got.Cursor != NoCursor {
		t.Errorf("expected NoCursor, got %d", got.Cursor)
	}
}

func TestCurrent_FollowsCursor(t *testing.T) {
	s := newResultSet(records(2))
	s = navigate(s, 1)

	rec, ok := s.Current()
	if !ok {
		t.Fatal("expected a current record")
	}
	if rec.ID != "b" {
		t.Errorf("expected record b, got %s", rec.ID)
	}
}
