package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/goleak"
)

func TestExpiryMonitor_Check(t *testing.T) {
	clock := newFakeClock()
	svc := loggedIn(t, &stubAPI{}, &stubStore{}, clock)
	m := NewExpiryMonitor(svc, time.Minute, zerolog.Nop())

	if m.Check() {
		t.Fatal("fresh session must survive")
	}
	clock.Advance(24 * time.Hour)
	if !m.Check() {
		t.Fatal("expected expiry after the window")
	}
	if svc.Current() != nil {
		t.Fatal("expected anonymous")
	}
}

func TestExpiryMonitor_HandleUnauthorized(t *testing.T) {
	svc := loggedIn(t, &stubAPI{}, &stubStore{}, newFakeClock())
	events, cancel := svc.Subscribe()
	defer cancel()
	m := NewExpiryMonitor(svc, 0, zerolog.Nop())

	m.HandleUnauthorized()
	ev := <-events
	if ev.Kind != EventExpired || ev.Reason != ReasonUnauthorized {
		t.Fatalf("unexpected event %+v", ev)
	}

	// Anonymous: nothing happens.
	m.HandleUnauthorized()
	select {
	case ev := <-events:
		t.Fatalf("unexpected second event %+v", ev)
	default:
	}
}

func TestExpiryMonitor_RunExpiresAndStops(t *testing.T) {
	defer goleak.VerifyNone(t)

	clock := newFakeClock()
	svc := loggedIn(t, &stubAPI{}, &stubStore{}, clock)
	events, cancelSub := svc.Subscribe()
	defer cancelSub()

	m := NewExpiryMonitor(svc, 5*time.Millisecond, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	clock.Advance(25 * time.Hour)
	select {
	case ev := <-events:
		if ev.Kind != EventExpired || ev.Reason != ReasonWindow {
			t.Fatalf("unexpected event %+v", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("monitor did not expire the session")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("monitor did not stop")
	}
}
