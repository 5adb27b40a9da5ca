package booking

import "fmt"

type Status string

const (
	StatusWaiting    Status = "waiting"
	StatusReady      Status = "ready"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
	StatusCancelled  Status = "cancelled"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusWaiting, StatusReady, StatusInProgress, StatusDone, StatusCancelled:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown booking status: %s", s)
	}
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}

// IsActive reports whether the booking counts against mechanic capacity.
// Waiting bookings never do.
func (s Status) IsActive() bool {
	return s == StatusReady || s == StatusInProgress
}

func (s Status) IsTerminal() bool {
	return s == StatusDone || s == StatusCancelled
}

var allowedTransitions = map[Status]map[Status]bool{
	// Waiting leaves only through the promotion scan (which re-checks
	// capacity and parts) or cancellation. A direct move to ready would
	// skip both checks.
	StatusWaiting:    {StatusCancelled: true},
	StatusReady:      {StatusInProgress: true, StatusDone: true, StatusCancelled: true},
	StatusInProgress: {StatusDone: true, StatusCancelled: true},
	StatusDone:       {}, // terminal, reachable back only via undo
	StatusCancelled:  {}, // terminal, reachable back only via undo
}

func CanTransition(from, to Status) bool {
	m, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	return m[to]
}
