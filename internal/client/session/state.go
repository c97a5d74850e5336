package session

import "github.com/dmitrijs2005/gobarber/internal/client/models"

type State int

const (
	Uninitialized State = iota
	Loading
	Anonymous
	Authenticated
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Anonymous:
		return "anonymous"
	case Authenticated:
		return "authenticated"
	default:
		return "uninitialized"
	}
}

// Snapshot is an immutable view of the store handed to readers and
// subscribers.
type Snapshot struct {
	State   State
	Session models.Session
}
