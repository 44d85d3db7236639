package task

import (
	"errors"
	"testing"

	"github.com/mkondo/kajiboard/internal/model"
)

func TestApplyTransitions(t *testing.T) {
	tests := []struct {
		name       string
		status     string
		action     string
		wantStatus string
		wantErr    bool
	}{
		{"claim open", StatusOpen, ActionClaim, StatusAssigned, false},
		{"claim assigned", StatusAssigned, ActionClaim, "", true},
		{"claim completed", StatusCompleted, ActionClaim, "", true},
		{"start open", StatusOpen, ActionStart, StatusInProgress, false},
		{"start assigned", StatusAssigned, ActionStart, StatusInProgress, false},
		{"start in_progress", StatusInProgress, ActionStart, "", true},
		{"complete assigned", StatusAssigned, ActionComplete, StatusCompleted, false},
		{"complete in_progress", StatusInProgress, ActionComplete, StatusCompleted, false},
		{"complete open", StatusOpen, ActionComplete, "", true},
		{"approve completed", StatusCompleted, ActionApprove, StatusApproved, false},
		{"approve open", StatusOpen, ActionApprove, "", true},
		{"approve approved", StatusApproved, ActionApprove, "", true},
		{"cancel open", StatusOpen, ActionCancel, StatusCancelled, false},
		{"cancel in_progress", StatusInProgress, ActionCancel, StatusCancelled, false},
		{"cancel approved", StatusApproved, ActionCancel, "", true},
		{"cancel cancelled", StatusCancelled, ActionCancel, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk := &model.Task{Status: tt.status, ProposedPoints: 3}
			err := Apply(tk, tt.action, 42, nil)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAction) {
					t.Fatalf("Apply() err = %v, want ErrInvalidAction", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Apply() err = %v", err)
			}
			if tk.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", tk.Status, tt.wantStatus)
			}
		})
	}
}

func TestApplyClaimSetsAssignee(t *testing.T) {
	tk := &model.Task{Status: StatusOpen}
	if err := Apply(tk, ActionClaim, 7, nil); err != nil {
		t.Fatalf("Apply() err = %v", err)
	}
	if tk.AssigneeID == nil || *tk.AssigneeID != 7 {
		t.Errorf("assignee = %v, want 7", tk.AssigneeID)
	}
}

func TestApplyStartKeepsExistingAssignee(t *testing.T) {
	existing := int64(3)
	tk := &model.Task{Status: StatusAssigned, AssigneeID: &existing}
	if err := Apply(tk, ActionStart, 9, nil); err != nil {
		t.Fatalf("Apply() err = %v", err)
	}
	if *tk.AssigneeID != 3 {
		t.Errorf("assignee = %d, want 3", *tk.AssigneeID)
	}
}

func TestApplyCompletePoints(t *testing.T) {
	t.Run("defaults to proposed", func(t *testing.T) {
		tk := &model.Task{Status: StatusInProgress, ProposedPoints: 5}
		if err := Apply(tk, ActionComplete, 1, nil); err != nil {
			t.Fatalf("Apply() err = %v", err)
		}
		if tk.ActualPoints == nil || *tk.ActualPoints != 5 {
			t.Errorf("actual = %v, want 5", tk.ActualPoints)
		}
	})

	t.Run("override wins", func(t *testing.T) {
		override := 8
		tk := &model.Task{Status: StatusInProgress, ProposedPoints: 5}
		if err := Apply(tk, ActionComplete, 1, &override); err != nil {
			t.Fatalf("Apply() err = %v", err)
		}
		if *tk.ActualPoints != 8 {
			t.Errorf("actual = %d, want 8", *tk.ActualPoints)
		}
	})
}

func TestApplyApprovePoints(t *testing.T) {
	t.Run("keeps existing actual", func(t *testing.T) {
		actual := 4
		tk := &model.Task{Status: StatusCompleted, ProposedPoints: 2, ActualPoints: &actual}
		if err := Apply(tk, ActionApprove, 1, nil); err != nil {
			t.Fatalf("Apply() err = %v", err)
		}
		if *tk.ActualPoints != 4 {
			t.Errorf("actual = %d, want 4", *tk.ActualPoints)
		}
	})

	t.Run("falls back to proposed", func(t *testing.T) {
		tk := &model.Task{Status: StatusCompleted, ProposedPoints: 2}
		if err := Apply(tk, ActionApprove, 1, nil); err != nil {
			t.Fatalf("Apply() err = %v", err)
		}
		if tk.ActualPoints == nil || *tk.ActualPoints != 2 {
			t.Errorf("actual = %v, want 2", tk.ActualPoints)
		}
	})
}

func TestAvailableActions(t *testing.T) {
	got := AvailableActions(StatusOpen)
	want := []string{ActionClaim, ActionStart, ActionCancel}
	if len(got) != len(want) {
		t.Fatalf("AvailableActions(open) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("AvailableActions(open)[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if acts := AvailableActions(StatusApproved); acts != nil {
		t.Errorf("AvailableActions(approved) = %v, want none", acts)
	}
}
