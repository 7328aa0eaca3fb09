package appointment_test

import (
	"context"
	"testing"

	"github.com/BruksfildServices01/salon-de-belleza/internal/models"
	usecase "github.com/BruksfildServices01/salon-de-belleza/internal/usecase/appointment"
)

func TestSetConfirmationBulk(t *testing.T) {
	t.Parallel()

	f := newAdminFixture()
	ctx := context.Background()
	svc := f.repo.AddService(models.Service{Name: "Corte de Pelo", DurationMin: 60})

	var ids []uint
	for i, hour := range []int{9, 10, 11} {
		ap, err := f.save.Execute(ctx, usecase.SaveAppointmentInput{
			ServiceID:   svc.ID,
			ClientName:  "Cliente",
			ClientPhone: "1155550000",
			StartTime:   at(hour, 0),
			Confirmed:   i == 0,
		})
		if err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
		ids = append(ids, ap.ID)
	}

	// o primeiro já estava confirmado; 999 não existe
	n, err := f.confirm.Execute(ctx, append(ids, 999), true, nil)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if n != 2 {
		t.Fatalf("updated = %d, want 2", n)
	}
	if got := len(f.repo.BookingRecords()); got != 3 {
		t.Fatalf("booking records = %d, want 3", got)
	}

	n, err = f.confirm.Execute(ctx, ids[:2], false, nil)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if n != 2 {
		t.Fatalf("updated = %d, want 2", n)
	}

	records := f.repo.BookingRecords()
	if len(records) != 1 || *records[0].AppointmentID != ids[2] {
		t.Fatalf("only the third appointment should keep a record: %+v", records)
	}

	for _, ap := range f.repo.Appointments() {
		want := ap.ID == ids[2]
		if ap.Confirmed != want {
			t.Fatalf("appointment %d confirmed = %v, want %v", ap.ID, ap.Confirmed, want)
		}
	}
}

func TestSetConfirmationLinksRecordToOwnService(t *testing.T) {
	t.Parallel()

	f := newAdminFixture()
	ctx := context.Background()
	svc := f.repo.AddService(models.Service{Name: "Manicura y uñas esculpidas", DurationMin: 60})

	ap, err := f.save.Execute(ctx, usecase.SaveAppointmentInput{
		ServiceID:   svc.ID,
		ClientName:  "Sol",
		ClientPhone: "1155550000",
		StartTime:   at(15, 0),
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := f.confirm.Execute(ctx, []uint{ap.ID}, true, nil); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	records := f.repo.BookingRecords()
	if len(records) != 1 {
		t.Fatalf("booking records = %d, want 1", len(records))
	}
	if *records[0].ServiceID != svc.ID {
		t.Fatalf("exact name match should win, got service %d", *records[0].ServiceID)
	}
}

func TestSetConfirmationToggleRebuildsEquivalentRecord(t *testing.T) {
	t.Parallel()

	f := newAdminFixture()
	ctx := context.Background()
	svc := f.repo.AddService(models.Service{Name: "Corte de Pelo", DurationMin: 60})

	ap, err := f.save.Execute(ctx, usecase.SaveAppointmentInput{
		ServiceID:   svc.ID,
		ClientName:  "Marta",
		ClientPhone: "1155550000",
		StartTime:   at(10, 0),
		Confirmed:   true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	before := f.repo.BookingRecords()
	if len(before) != 1 {
		t.Fatalf("booking records = %d, want 1", len(before))
	}
	first := before[0]

	if n, err := f.confirm.Execute(ctx, []uint{ap.ID}, false, nil); err != nil || n != 1 {
		t.Fatalf("cancel: n=%d err=%v", n, err)
	}
	if n := len(f.repo.BookingRecords()); n != 0 {
		t.Fatalf("booking records after cancel = %d, want 0", n)
	}

	if n, err := f.confirm.Execute(ctx, []uint{ap.ID}, true, nil); err != nil || n != 1 {
		t.Fatalf("re-confirm: n=%d err=%v", n, err)
	}

	after := f.repo.BookingRecords()
	if len(after) != 1 {
		t.Fatalf("booking records after re-confirm = %d, want 1", len(after))
	}
	rec := after[0]

	if rec.ServiceID == nil || *rec.ServiceID != *first.ServiceID {
		t.Fatalf("service = %v, want %d", rec.ServiceID, *first.ServiceID)
	}
	if rec.AppointmentID == nil || *rec.AppointmentID != ap.ID {
		t.Fatalf("appointment link = %v, want %d", rec.AppointmentID, ap.ID)
	}
	if rec.ClientName != first.ClientName || !rec.ScheduledAt.Equal(first.ScheduledAt) {
		t.Fatalf("record = %+v, want same contents as %+v", rec, first)
	}

	for _, stored := range f.repo.Appointments() {
		if stored.ID != ap.ID {
			continue
		}
		if !stored.Confirmed || !stored.EndTime.Equal(at(11, 0)) {
			t.Fatalf("appointment = confirmed %v end %v, want confirmed until 11:00", stored.Confirmed, stored.EndTime)
		}
	}
}
