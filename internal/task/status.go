// Package task implements the task lifecycle: the status enum, the actions
// that move a task between statuses, and the transition rules. Apply is pure
// apart from mutating the passed task; persistence and point payouts live in
// the store layer.
package task

import (
	"errors"
	"fmt"

	"github.com/mkondo/kajiboard/internal/model"
)

// Task statuses.
const (
	StatusOpen       = "open"
	StatusAssigned   = "assigned"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusApproved   = "approved"
	StatusCancelled  = "cancelled"
)

// Actions a user can take on a task.
const (
	ActionClaim    = "claim"
	ActionStart    = "start"
	ActionComplete = "complete"
	ActionApprove  = "approve"
	ActionCancel   = "cancel"
)

// ErrInvalidAction is returned when an action is not allowed from the task's
// current status.
var ErrInvalidAction = errors.New("action not allowed from current status")

var statuses = map[string]bool{
	StatusOpen:       true,
	StatusAssigned:   true,
	StatusInProgress: true,
	StatusCompleted:  true,
	StatusApproved:   true,
	StatusCancelled:  true,
}

var actions = map[string]bool{
	ActionClaim:    true,
	ActionStart:    true,
	ActionComplete: true,
	ActionApprove:  true,
	ActionCancel:   true,
}

// ValidStatus reports whether s is a known task status.
func ValidStatus(s string) bool { return statuses[s] }

// ValidAction reports whether a is a known task action.
func ValidAction(a string) bool { return actions[a] }

// Terminal reports whether a task in status s can never change again.
func Terminal(s string) bool {
	return s == StatusApproved || s == StatusCancelled
}

// Apply mutates t according to action, taken by actorID. actualPoints, when
// non-nil, overrides the proposed points on complete and approve. The caller
// persists the task afterwards; approve payouts are handled separately so they
// can be made idempotent at the ledger.
func Apply(t *model.Task, action string, actorID int64, actualPoints *int) error {
	if !ValidAction(action) {
		return fmt.Errorf("unknown action %q", action)
	}

	switch action {
	case ActionClaim:
		if t.Status != StatusOpen {
			return ErrInvalidAction
		}
		t.AssigneeID = &actorID
		t.Status = StatusAssigned

	case ActionStart:
		if t.Status != StatusOpen && t.Status != StatusAssigned {
			return ErrInvalidAction
		}
		if t.AssigneeID == nil {
			t.AssigneeID = &actorID
		}
		t.Status = StatusInProgress

	case ActionComplete:
		if t.Status != StatusAssigned && t.Status != StatusInProgress {
			return ErrInvalidAction
		}
		if t.AssigneeID == nil {
			t.AssigneeID = &actorID
		}
		if actualPoints != nil {
			v := *actualPoints
			t.ActualPoints = &v
		} else {
			v := t.ProposedPoints
			t.ActualPoints = &v
		}
		t.Status = StatusCompleted

	case ActionApprove:
		if t.Status != StatusCompleted {
			return ErrInvalidAction
		}
		if actualPoints != nil {
			v := *actualPoints
			t.ActualPoints = &v
		} else if t.ActualPoints == nil {
			v := t.ProposedPoints
			t.ActualPoints = &v
		}
		t.Status = StatusApproved

	case ActionCancel:
		if Terminal(t.Status) {
			return ErrInvalidAction
		}
		t.Status = StatusCancelled
	}

	return nil
}

// AvailableActions lists the actions allowed from the given status, in the
// order they appear in the UI.
func AvailableActions(status string) []string {
	var out []string
	for _, a := range []string{ActionClaim, ActionStart, ActionComplete, ActionApprove, ActionCancel} {
		probe := model.Task{Status: status}
		if err := Apply(&probe, a, 0, nil); err == nil {
			out = append(out, a)
		}
	}
	return out
}
