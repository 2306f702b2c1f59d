package service

import (
	"sync"
	"time"

	"github.com/startupscout/showcase/internal/core/domain"
)

// ProfileNoticeTTL is how long profile errors stay visible.
const ProfileNoticeTTL = 5 * time.Second

// Notice is the error banner shared by a component and its front end. It holds
// at most one error; setting a new one replaces the old.
type Notice struct {
	mu        sync.Mutex
	err       error
	autoClear time.Duration
	timer     *time.Timer
	gen       uint64
}

// NewNotice returns a Notice. When autoClear is positive every error is
// dropped that long after it was set.
func NewNotice(autoClear time.Duration) *Notice {
	return &Notice{autoClear: autoClear}
}

// Set replaces the current error. A nil err clears it.
func (n *Notice) Set(err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.gen++
	n.err = err
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	if err == nil || n.autoClear <= 0 {
		return
	}
	gen := n.gen
	n.timer = time.AfterFunc(n.autoClear, func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if n.gen == gen {
			n.err = nil
			n.timer = nil
		}
	})
}

// Clear drops the current error.
func (n *Notice) Clear() { n.Set(nil) }

// Err returns the current error or nil.
func (n *Notice) Err() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.err
}

// Message returns the banner text, "" when there is nothing to show.
func (n *Notice) Message() string {
	return domain.Message(n.Err())
}

// Stop cancels a pending auto-clear.
func (n *Notice) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
}
