package appointment

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/salon-de-belleza/internal/models"
)

func TestNextTransition(t *testing.T) {
	t.Parallel()

	yes, no := true, false

	tests := []struct {
		name      string
		previous  *bool
		confirmed bool
		want      Transition
	}{
		{"new pending", nil, false, TransitionNone},
		{"new confirmed", nil, true, TransitionSync},
		{"pending to confirmed", &no, true, TransitionSync},
		{"confirmed stays confirmed", &yes, true, TransitionSync},
		{"confirmed to pending", &yes, false, TransitionRemove},
		{"pending stays pending", &no, false, TransitionNone},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := NextTransition(tc.previous, tc.confirmed); got != tc.want {
				t.Fatalf("NextTransition = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestStatusOf(t *testing.T) {
	t.Parallel()

	if StatusOf(true) != StatusConfirmed || StatusOf(false) != StatusPending {
		t.Fatalf("unexpected status mapping")
	}
}

func TestValidateContact(t *testing.T) {
	t.Parallel()

	for _, phone := range []string{"", "   ", "\t"} {
		if err := ValidateContact(&models.Appointment{ClientPhone: phone}); err == nil {
			t.Fatalf("phone %q must be rejected", phone)
		}
	}
	if err := ValidateContact(&models.Appointment{ClientPhone: "+54 11 5555-0000"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeriveEndTime(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

	ap := &models.Appointment{StartTime: start}
	DeriveEndTime(ap, 90)
	if want := start.Add(90 * time.Minute); !ap.EndTime.Equal(want) {
		t.Fatalf("end = %s, want %s", ap.EndTime, want)
	}

	explicit := start.Add(30 * time.Minute)
	ap = &models.Appointment{StartTime: start, EndTime: explicit}
	DeriveEndTime(ap, 90)
	if !ap.EndTime.Equal(explicit) {
		t.Fatalf("explicit end must be kept, got %s", ap.EndTime)
	}
}

func TestSetConfirmed(t *testing.T) {
	t.Parallel()

	ap := &models.Appointment{}
	if !SetConfirmed(ap, true) || !ap.Confirmed {
		t.Fatalf("expected change to confirmed")
	}
	if SetConfirmed(ap, true) {
		t.Fatalf("setting the same value must report no change")
	}
}
