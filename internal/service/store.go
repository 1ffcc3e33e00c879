package service

import "github.com/set-night/endoally/internal/domain"

// MessageStore is the append-only transcript of one widget. It is only touched
// by the owning Controller, which serializes access.
type MessageStore struct {
	messages []domain.ChatMessage
}

func NewMessageStore() *MessageStore {
	return &MessageStore{}
}

func (s *MessageStore) Append(msg domain.ChatMessage) {
	s.messages = append(s.messages, msg)
}

// All returns a copy of the transcript in append order.
func (s *MessageStore) All() []domain.ChatMessage {
	out := make([]domain.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *MessageStore) Len() int {
	return len(s.messages)
}

func (s *MessageStore) Reset() {
	s.messages = nil
}
