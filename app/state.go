package app

// State represents the current application state.
type State int

const (
	StateConnecting State = iota // Waiting for backend health check
	StateReady                   // Dashboard loaded and interactive
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}
