package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// DefaultCheckInterval is how often the proactive check runs.
const DefaultCheckInterval = 5 * time.Minute

// ExpiryMonitor ends sessions that outlive their window. It watches the clock
// on a ticker and reacts to 401 answers reported by the API client.
type ExpiryMonitor struct {
	sessions *SessionService
	interval time.Duration
	log      zerolog.Logger
}

// NewExpiryMonitor returns a monitor for sessions. If interval <= 0,
// DefaultCheckInterval is used.
func NewExpiryMonitor(sessions *SessionService, interval time.Duration, log zerolog.Logger) *ExpiryMonitor {
	if interval <= 0 {
		interval = DefaultCheckInterval
	}
	return &ExpiryMonitor{sessions: sessions, interval: interval, log: log}
}

// Run checks the session age every interval until ctx is cancelled.
func (m *ExpiryMonitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Check()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Check()
		}
	}
}

// Check expires the session if its window has elapsed.
func (m *ExpiryMonitor) Check() bool {
	if m.sessions.ExpireIfStale() {
		m.log.Debug().Msg("validity window elapsed")
		return true
	}
	return false
}

// HandleUnauthorized is the API client's UnauthorizedHandler. Anonymous
// clients have nothing to expire.
func (m *ExpiryMonitor) HandleUnauthorized() {
	if m.sessions.Expire(ReasonUnauthorized) {
		m.log.Debug().Msg("backend rejected the credential")
	}
}
