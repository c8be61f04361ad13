package conversation

import "time"

// Source identifies how an utterance reached the assistant.
type Source string

const (
	SourceVoice Source = "voice"
	SourceText  Source = "text"
)

// Utterance is one user input unit for a single turn. Transient: created per
// request and discarded after processing.
type Utterance struct {
	Text       string    `json:"text"`
	Source     Source    `json:"source"`
	ReceivedAt time.Time `json:"receivedAt"`
}
