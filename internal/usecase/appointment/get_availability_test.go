package appointment_test

import (
	"context"
	"testing"
	"time"

	domain "github.com/BruksfildServices01/salon-de-belleza/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-de-belleza/internal/httperr"
	"github.com/BruksfildServices01/salon-de-belleza/internal/models"
	usecase "github.com/BruksfildServices01/salon-de-belleza/internal/usecase/appointment"
)

func TestGetAvailabilitySkipsTakenSlots(t *testing.T) {
	t.Parallel()

	f := newAdminFixture()
	ctx := context.Background()
	svc := f.repo.AddService(models.Service{Name: "Corte de Pelo", DurationMin: 60})

	if _, err := f.save.Execute(ctx, usecase.SaveAppointmentInput{
		ServiceID:   svc.ID,
		ClientName:  "Ana",
		ClientPhone: "1155550000",
		StartTime:   at(10, 30),
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	uc := usecase.NewGetAvailability(f.repo, domain.DefaultSlotConfig())
	slots, err := uc.Execute(ctx, domain.AvailabilityInput{
		ServiceID: svc.ID,
		Date:      time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 10:00 e 11:00 se sobrepõem a 10:30-11:30
	want := []string{"09:00", "12:00", "13:00", "14:00", "15:00", "16:00", "17:00"}
	if len(slots) != len(want) {
		t.Fatalf("slots = %+v, want starts %v", slots, want)
	}
	for i, s := range slots {
		if s.Start != want[i] {
			t.Fatalf("slot %d start = %s, want %s", i, s.Start, want[i])
		}
	}
	if slots[0].End != "10:00" {
		t.Fatalf("first slot end = %s, want 10:00", slots[0].End)
	}
}

func TestGetAvailabilityUnknownService(t *testing.T) {
	t.Parallel()

	f := newAdminFixture()
	uc := usecase.NewGetAvailability(f.repo, domain.DefaultSlotConfig())

	_, err := uc.Execute(context.Background(), domain.AvailabilityInput{ServiceID: 42, Date: at(0, 0)})
	if !httperr.IsBusiness(err, "invalid_service") {
		t.Fatalf("expected invalid_service, got %v", err)
	}
}
