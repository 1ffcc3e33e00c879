package domain

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one immutable turn of a transcript.
type ChatMessage struct {
	ID        string
	Role      Role
	Text      string
	Audio     *AudioRef
	Citations []Citation
	CreatedAt time.Time
}

type AudioRef struct {
	URL     string
	Caption string
}

type Citation struct {
	URI   string
	Title string
}

// HasContent reports whether an assistant reply carries anything worth showing.
func (m *ChatMessage) HasContent() bool {
	return m.Text != "" || m.Audio != nil || len(m.Citations) > 0
}
