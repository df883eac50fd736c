package appointment

import (
	"errors"
	"fmt"
)

type Status string

const (
	Pending   Status = "pending"
	Confirmed Status = "confirmed"
	Completed Status = "completed"
	Cancelled Status = "cancelled"
)

var ErrInvalidTransition = errors.New("invalid appointment transition")

var transitions = map[Status][]Status{
	Pending:   {Confirmed, Cancelled},
	Confirmed: {Completed, Cancelled},
}

// Terminal states accept no further transition.
func (s Status) Terminal() bool {
	return s == Completed || s == Cancelled
}

func (s Status) Valid() bool {
	switch s {
	case Pending, Confirmed, Completed, Cancelled:
		return true
	}
	return false
}

func ParseStatus(s string) (Status, error) {
	if st := Status(s); st.Valid() {
		return st, nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Sources lists the states from which to is reachable, for compare-and-set updates.
func Sources(to Status) []string {
	var out []string
	for _, from := range []Status{Pending, Confirmed, Completed, Cancelled} {
		if CanTransition(from, to) {
			out = append(out, string(from))
		}
	}
	return out
}
