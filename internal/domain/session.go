package domain

// Phase is the lifecycle position of a chat widget.
type Phase int

const (
	PhaseUninitialized Phase = iota
	PhaseInitializing
	PhaseIdle
	PhaseSending
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseInitializing:
		return "initializing"
	case PhaseIdle:
		return "idle"
	case PhaseSending:
		return "sending"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// SessionState is a snapshot of one widget's session.
type SessionState struct {
	Phase        Phase
	ThinkingMode bool
	HasSession   bool
	LastError    string
}

// Loading is true while a remote call is outstanding.
func (s SessionState) Loading() bool {
	return s.Phase.InFlight()
}

// InFlight is true while a remote call is outstanding.
func (p Phase) InFlight() bool {
	return p == PhaseInitializing || p == PhaseSending
}
