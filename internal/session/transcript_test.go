package session

import (
	"testing"

	"voice-assistant-client/internal/models"
)

func delta(id, text string, final bool) models.TranscriptEntry {
	return models.TranscriptEntry{MessageID: id, Speaker: models.SpeakerLocal, Text: text, Final: final}
}

func TestApplyDelta_AppendsNewIds(t *testing.T) {
	var entries []models.TranscriptEntry

	entries, appended := applyDelta(entries, delta("m1", "hello", false))
	if !appended {
		t.Error("expected append for new id")
	}
	entries, appended = applyDelta(entries, delta("m2", "world", false))
	if !appended {
		t.Error("expected append for second new id")
	}

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].MessageID != "m1" || entries[1].MessageID != "m2" {
		t.Errorf("arrival order not preserved: %v", entries)
	}
}

func TestApplyDelta_ReplacesInPlace(t *testing.T) {
	var entries []models.TranscriptEntry
	entries, _ = applyDelta(entries, delta("m1", "Hel", false))
	entries, _ = applyDelta(entries, delta("m2", "other", false))

	entries, appended := applyDelta(entries, delta("m1", "Hello", true))
	if appended {
		t.Error("revision must not report an append")
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries after revision, got %d", len(entries))
	}
	if entries[0].Text != "Hello" || !entries[0].Final {
		t.Errorf("expected m1 replaced in slot 0, got %+v", entries[0])
	}
	if entries[1].MessageID != "m2" {
		t.Errorf("m2 moved: %+v", entries[1])
	}
}

func TestApplyDelta_FinalStillReplaceable(t *testing.T) {
	// Out-of-order final-then-correction: the latest delta for an id always
	// wins, even after a final.
	var entries []models.TranscriptEntry
	entries, _ = applyDelta(entries, delta("m1", "Helo", true))
	entries, _ = applyDelta(entries, delta("m1", "Hello", true))

	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Text != "Hello" {
		t.Errorf("expected corrected text, got %q", entries[0].Text)
	}
}

func TestApplyDelta_DistinctIdCountMatchesEntries(t *testing.T) {
	ids := []string{"a", "b", "a", "c", "b", "a"}
	var entries []models.TranscriptEntry
	for i, id := range ids {
		entries, _ = applyDelta(entries, delta(id, id, i%2 == 0))
	}

	if len(entries) != 3 {
		t.Fatalf("expected 3 entries for 3 distinct ids, got %d", len(entries))
	}
	// Positions fixed at first appearance
	want := []string{"a", "b", "c"}
	for i, id := range want {
		if entries[i].MessageID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, entries[i].MessageID)
		}
	}
}

func TestApplyDelta_DoesNotMutateInput(t *testing.T) {
	var entries []models.TranscriptEntry
	entries, _ = applyDelta(entries, delta("m1", "old", false))

	before := entries[0].Text
	revised, _ := applyDelta(entries, delta("m1", "new", true))

	if entries[0].Text != before {
		t.Error("input slice was mutated by replacement")
	}
	if revised[0].Text != "new" {
		t.Errorf("revision missing from output: %+v", revised[0])
	}
}
