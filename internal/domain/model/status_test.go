package model

import "testing"

func TestProcessStatusForwardOrder(t *testing.T) {
	want := []ProcessStatus{
		ProcessStatusPreinitialized,
		ProcessStatusInitialized,
		ProcessStatusConfirmed,
		ProcessStatusPaid,
		ProcessStatusInTransit,
		ProcessStatusPickupMeet,
		ProcessStatusFinalized,
	}

	current := ProcessStatusPreinitialized
	for i := 1; i < len(want); i++ {
		next, ok := current.Next()
		if !ok {
			t.Fatalf("expected %s to have a next status", current)
		}
		if next != want[i] {
			t.Fatalf("expected %s after %s, got %s", want[i], current, next)
		}
		current = next
	}
}

func TestProcessStatusNextTotality(t *testing.T) {
	for _, status := range ProcessStatuses() {
		next, ok := status.Next()
		if status.Terminal() {
			if ok {
				t.Fatalf("terminal status %s must not advance, got %s", status, next)
			}
			continue
		}
		if !ok {
			t.Fatalf("non-terminal status %s must have a next status", status)
		}
		if !next.Valid() {
			t.Fatalf("%s advances to unknown status %s", status, next)
		}
		if next == ProcessStatusCancelled {
			t.Fatalf("forward table must never produce CANCELLED, got it from %s", status)
		}
	}
}

func TestProcessStatusUnknownHasNoNext(t *testing.T) {
	if next, ok := ProcessStatus("BOGUS").Next(); ok {
		t.Fatalf("unknown status must degrade to no next state, got %s", next)
	}
}

func TestProcessStatusCancellable(t *testing.T) {
	tests := []struct {
		status ProcessStatus
		want   bool
	}{
		{ProcessStatusPreinitialized, true},
		{ProcessStatusConfirmed, true},
		{ProcessStatusPickupMeet, true},
		{ProcessStatusFinalized, false},
		{ProcessStatusCancelled, false},
		{ProcessStatus("BOGUS"), false},
	}
	for _, tt := range tests {
		if got := tt.status.Cancellable(); got != tt.want {
			t.Fatalf("Cancellable(%s) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestSponsorshipStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to SponsorshipStatus
		want     bool
	}{
		{SponsorshipStatusInitialized, SponsorshipStatusAccepted, true},
		{SponsorshipStatusInitialized, SponsorshipStatusRejected, true},
		{SponsorshipStatusInitialized, SponsorshipStatusPaid, false},
		{SponsorshipStatusAccepted, SponsorshipStatusPaid, true},
		{SponsorshipStatusPaid, SponsorshipStatusDelivered, true},
		{SponsorshipStatusDelivered, SponsorshipStatusConfirmed, true},
		{SponsorshipStatusDelivered, SponsorshipStatusPaid, true},
		{SponsorshipStatusConfirmed, SponsorshipStatusCancelled, false},
		{SponsorshipStatusRejected, SponsorshipStatusAccepted, false},
	}
	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Fatalf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestSponsorshipStatusTerminal(t *testing.T) {
	for _, s := range []SponsorshipStatus{SponsorshipStatusConfirmed, SponsorshipStatusRejected, SponsorshipStatusCancelled} {
		if !s.Terminal() {
			t.Fatalf("expected %s to be terminal", s)
		}
		if len(sponsorshipTransitions[s]) != 0 {
			t.Fatalf("terminal status %s must have no outgoing transitions", s)
		}
	}
}
