package session

import "voice-assistant-client/internal/models"

// applyDelta merges one transcript delta into the ordered transcript.
//
// A delta with a new message id is appended, preserving arrival order. A
// delta with a known id replaces that entry in its existing slot, so an
// utterance's position is fixed at first appearance no matter how many
// revisions follow. Final entries stay replaceable by same-id deltas
// (handles out-of-order final-then-correction); entries are never deleted.
//
// The input slice is not mutated; replacement copies before writing so
// previously observed snapshots stay stable.
func applyDelta(entries []models.TranscriptEntry, e models.TranscriptEntry) ([]models.TranscriptEntry, bool) {
	for i := range entries {
		if entries[i].MessageID == e.MessageID {
			next := make([]models.TranscriptEntry, len(entries))
			copy(next, entries)
			next[i] = e
			return next, false
		}
	}
	return append(entries[:len(entries):len(entries)], e), true
}
