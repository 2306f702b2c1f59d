package service

import (
	"sync"

	"github.com/startupscout/showcase/internal/core/domain"
)

// SessionEventKind names a session lifecycle change.
type SessionEventKind string

const (
	EventLogin   SessionEventKind = "login"
	EventLogout  SessionEventKind = "logout"
	EventExpired SessionEventKind = "expired"
	EventUpdated SessionEventKind = "updated"
)

// Expiry reasons.
const (
	ReasonWindow       = "window"
	ReasonUnauthorized = "unauthorized"
)

// SessionEvent is published by the SessionService on every identity change.
type SessionEvent struct {
	Kind    SessionEventKind
	Session *domain.Session // nil after logout and expiry
	Reason  string
	// LoginRequired is set on expiry when the configured policy sends the user
	// back to the login entry point instead of downgrading silently.
	LoginRequired bool
}

const subscriberBuffer = 16

// subject fans session events out to channel subscribers and synchronous observers.
type subject struct {
	mu        sync.Mutex
	next      int
	channels  map[int]chan SessionEvent
	observers map[int]func(SessionEvent)
}

func newSubject() *subject {
	return &subject{
		channels:  make(map[int]chan SessionEvent),
		observers: make(map[int]func(SessionEvent)),
	}
}

func (s *subject) subscribe() (<-chan SessionEvent, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next
	s.next++
	ch := make(chan SessionEvent, subscriberBuffer)
	s.channels[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.channels, id)
			close(ch)
		})
	}
}

func (s *subject) observe(fn func(SessionEvent)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next
	s.next++
	s.observers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}
}

// publish runs observers in registration order, then offers the event to each
// channel. A subscriber whose buffer is full misses the event; it can still
// read the current state from the store.
func (s *subject) publish(ev SessionEvent) (dropped int) {
	s.mu.Lock()
	observers := make([]func(SessionEvent), 0, len(s.observers))
	for id := 0; id < s.next; id++ {
		if fn, ok := s.observers[id]; ok {
			observers = append(observers, fn)
		}
	}
	for _, ch := range s.channels {
		select {
		case ch <- ev:
		default:
			dropped++
		}
	}
	s.mu.Unlock()

	for _, fn := range observers {
		fn(ev)
	}
	return dropped
}
