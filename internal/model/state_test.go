package model

import (
	"encoding/json"
	"testing"
)

// TestSessionStateString tests the String method of SessionState.
func TestSessionStateString(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		state    SessionState
		expected string
		terminal bool
	}{
		{StateIdle, "idle", false},
		{StateSubmitting, "submitting", false},
		{StatePolling, "polling", false},
		{StateCompleted, "completed", true},
		{StateFailed, "failed", true},
		{SessionState(99), "unknown", false},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			t.Parallel()
			if tc.state.String() != tc.expected {
				t.Errorf("got %q, expected %q", tc.state.String(), tc.expected)
			}
			if tc.state.Terminal() != tc.terminal {
				t.Errorf("Terminal() = %v, expected %v", tc.state.Terminal(), tc.terminal)
			}
		})
	}
}

// TestSessionStateJSON tests the text encoding used in JSON reports.
func TestSessionStateJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(struct {
		State SessionState `json:"state"`
	}{StateCompleted})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `{"state":"completed"}` {
		t.Errorf("unexpected JSON %s", data)
	}

	var decoded struct {
		State SessionState `json:"state"`
	}
	if err := json.Unmarshal([]byte(`{"state":"failed"}`), &decoded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded.State != StateFailed {
		t.Errorf("expected failed, got %v", decoded.State)
	}

	if err := json.Unmarshal([]byte(`{"state":"bogus"}`), &decoded); err == nil {
		t.Error("expected error for unknown state")
	}
}

// TestLevel tests notification level names and icons.
func TestLevel(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		level Level
		name  string
		icon  string
	}{
		{LevelInfo, "info", "ℹ️"},
		{LevelSuccess, "success", "✅"},
		{LevelWarning, "warning", "⚠️"},
		{LevelError, "error", "❌"},
		{Level(42), "unknown", "ℹ️"},
	}

	for _, tc := range testCases {
		if tc.level.String() != tc.name {
			t.Errorf("String() = %q, expected %q", tc.level.String(), tc.name)
		}
		if tc.level.Icon() != tc.icon {
			t.Errorf("Icon() for %s = %q, expected %q", tc.name, tc.level.Icon(), tc.icon)
		}
	}
}
