package recurring

import (
	"testing"
	"time"
)

func TestAdvance(t *testing.T) {
	tests := []struct {
		frequency string
		from      string
		want      string
	}{
		{Daily, "2026-03-01", "2026-03-02"},
		{Weekly, "2026-03-01", "2026-03-08"},
		{Monthly, "2026-03-01", "2026-03-31"},
		{Monthly, "2026-01-15", "2026-02-14"},
		{Daily, "2026-12-31", "2027-01-01"},
	}

	for _, tt := range tests {
		got, err := Advance(tt.frequency, tt.from)
		if err != nil {
			t.Fatalf("Advance(%s, %s) err = %v", tt.frequency, tt.from, err)
		}
		if got != tt.want {
			t.Errorf("Advance(%s, %s) = %s, want %s", tt.frequency, tt.from, got, tt.want)
		}
	}
}

func TestAdvanceRejectsUnknownFrequency(t *testing.T) {
	if _, err := Advance("fortnightly", "2026-03-01"); err == nil {
		t.Error("Advance() with unknown frequency should error")
	}
}

func TestAdvanceRejectsBadDate(t *testing.T) {
	if _, err := Advance(Daily, "03/01/2026"); err == nil {
		t.Error("Advance() with malformed date should error")
	}
}

func TestDueDate(t *testing.T) {
	today := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
	if got := DueDate(today, 0); got != "2026-03-01" {
		t.Errorf("DueDate(+0) = %s, want 2026-03-01", got)
	}
	if got := DueDate(today, 3); got != "2026-03-04" {
		t.Errorf("DueDate(+3) = %s, want 2026-03-04", got)
	}
}
