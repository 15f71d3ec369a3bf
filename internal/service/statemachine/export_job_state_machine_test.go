package statemachine

import (
	"errors"
	"testing"
)

func TestAllowedTransitions(t *testing.T) {
	sm := NewExportJobStateMachine()

	allowed := []JobTransition{
		{JobStatusPending, JobStatusProcessing},
		{JobStatusProcessing, JobStatusCompleted},
		{JobStatusProcessing, JobStatusFailed},
		{JobStatusPending, JobStatusFailed},
	}
	for _, tr := range allowed {
		if !sm.CanTransition(tr.From, tr.To) {
			t.Fatalf("expected %s -> %s to be allowed", tr.From, tr.To)
		}
	}
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	sm := NewExportJobStateMachine()

	all := []JobStatus{JobStatusPending, JobStatusProcessing, JobStatusCompleted, JobStatusFailed}
	for _, from := range []JobStatus{JobStatusCompleted, JobStatusFailed} {
		for _, to := range all {
			if sm.CanTransition(from, to) {
				t.Fatalf("terminal state %s must not transition to %s", from, to)
			}
		}
	}
}

func TestSelfTransitionRejected(t *testing.T) {
	sm := NewExportJobStateMachine()
	if sm.CanTransition(JobStatusProcessing, JobStatusProcessing) {
		t.Fatalf("self transition must be rejected")
	}
}

func TestValidateTransitionError(t *testing.T) {
	sm := NewExportJobStateMachine()

	err := sm.ValidateTransition(JobStatusCompleted, JobStatusProcessing)
	if err == nil {
		t.Fatalf("expected error")
	}
	var invalid *InvalidStateTransitionError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidStateTransitionError, got %T", err)
	}
}

func TestIsTerminal(t *testing.T) {
	if !IsTerminal(JobStatusCompleted) || !IsTerminal(JobStatusFailed) {
		t.Fatalf("completed/failed must be terminal")
	}
	if IsTerminal(JobStatusPending) || IsTerminal(JobStatusProcessing) {
		t.Fatalf("pending/processing must not be terminal")
	}
}
