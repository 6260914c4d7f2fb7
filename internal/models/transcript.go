package models

// Speaker identifies which side of the conversation produced an utterance.
type Speaker string

const (
	// SpeakerLocal - the human user on this client.
	SpeakerLocal Speaker = "local"
	// SpeakerRemote - the remote voice agent.
	SpeakerRemote Speaker = "remote"
)

// TranscriptEntry is one utterance in the conversation transcript.
// Entries are unique by MessageID; a later revision with the same id
// replaces the entry in place, so position is fixed at first appearance.
type TranscriptEntry struct {
	MessageID string  `json:"messageId"`
	Speaker   Speaker `json:"speaker"`
	Text      string  `json:"text"`
	Final     bool    `json:"final"`
}
