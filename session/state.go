// SPDX-License-Identifier: EPL-2.0

package session

// State is the lifecycle position of a Session.
type State int

const (
	Idle State = iota
	Configured
	Running
	Stopped
	Aborted
	Errored
	Closed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Configured:
		return "configured"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	case Aborted:
		return "aborted"
	case Errored:
		return "errored"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// Terminal reports whether a pipeline has finished in this state.
func (s State) Terminal() bool {
	return s == Stopped || s == Aborted || s == Errored
}
