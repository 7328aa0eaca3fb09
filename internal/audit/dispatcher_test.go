package audit

import (
	"context"
	"errors"
	"sync"
	"testing"
)

type recordingSink struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (s *recordingSink) Log(ctx context.Context, ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return s.err
}

func (s *recordingSink) actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, ev.Action)
	}
	return out
}

func TestDispatcherDeliversInOrder(t *testing.T) {
	t.Parallel()

	sink := &recordingSink{}
	d := NewDispatcher(sink, nil)

	d.Dispatch(Event{Action: "appointment_requested"})
	d.Dispatch(Event{Action: "appointment_confirmed"})
	d.Close()

	got := sink.actions()
	if len(got) != 2 || got[0] != "appointment_requested" || got[1] != "appointment_confirmed" {
		t.Fatalf("unexpected events: %v", got)
	}
}

func TestDispatcherSurvivesSinkErrors(t *testing.T) {
	t.Parallel()

	sink := &recordingSink{err: errors.New("db down")}
	d := NewDispatcher(sink, nil)

	d.Dispatch(Event{Action: "service_created"})
	d.Close()

	if len(sink.actions()) != 1 {
		t.Fatalf("expected the failing event to reach the sink once")
	}
}

func TestNilDispatcherIsNoop(t *testing.T) {
	t.Parallel()

	var d *Dispatcher
	d.Dispatch(Event{Action: "ignored"})
	d.Close()
}

func TestCloseIsIdempotent(t *testing.T) {
	t.Parallel()

	d := NewDispatcher(&recordingSink{}, nil)
	d.Close()
	d.Close()
}

func TestDispatchAfterCloseIsDropped(t *testing.T) {
	t.Parallel()

	sink := &recordingSink{}
	d := NewDispatcher(sink, nil)
	d.Dispatch(Event{Action: "staff_login"})
	d.Close()

	d.Dispatch(Event{Action: "late_request"})

	if got := sink.actions(); len(got) != 1 || got[0] != "staff_login" {
		t.Fatalf("unexpected events: %v", got)
	}
}

func TestConcurrentDispatchAndClose(t *testing.T) {
	t.Parallel()

	d := NewDispatcher(&recordingSink{}, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				d.Dispatch(Event{Action: "appointment_requested"})
			}
		}()
	}

	d.Close()
	wg.Wait()
}
