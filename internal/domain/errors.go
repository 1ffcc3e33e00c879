package domain

import "errors"

var (
	ErrBlankInput     = errors.New("blank input")
	ErrBusy           = errors.New("a request is already in flight")
	ErrNoSession      = errors.New("no active session")
	ErrInitialization = errors.New("chat session initialization failed")
	ErrTurnFailed     = errors.New("chat turn failed")
	ErrProfileInvalid = errors.New("invalid assistant profile")
)

// User-facing texts. They never include error details.
const (
	InitFailureBanner = "Failed to initialize the chat session. Please refresh the page and try again."
	TurnFailureBanner = "There was an error communicating with the chatbot. Please try again."
	ApologyText       = "I'm sorry, I encountered an error. Please try again."
)
