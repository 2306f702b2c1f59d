package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/startupscout/showcase/internal/core/domain"
	"github.com/startupscout/showcase/internal/core/ports"
	"github.com/startupscout/showcase/internal/pkg/metrics"
)

// SessionSource is the part of the SessionService other components read.
type SessionSource interface {
	Current() *domain.Session
	Observe(fn func(SessionEvent)) func()
}

// VoteSnapshot is what a front end renders for one project's like button.
type VoteSnapshot struct {
	ProjectID string
	State     domain.VoteState
	Count     int
	Err       string
}

// Liked reports whether the button should render as liked.
func (v VoteSnapshot) Liked() bool { return v.State.Liked() }

// Pending reports whether a request is in flight.
func (v VoteSnapshot) Pending() bool { return v.State == domain.VotePending }

type voteKey struct {
	userID    string
	projectID string
}

type voteEntry struct {
	state domain.VoteState
	count int
	err   string
}

// VoteService keeps the like state and displayed count of each project in
// step with the backend. Changes are applied optimistically and rolled back
// exactly when the backend refuses them.
type VoteService struct {
	api      ports.VoteAPI
	sessions SessionSource
	log      zerolog.Logger

	mu      sync.Mutex
	entries map[voteKey]*voteEntry
	// gen increments on every reset so in-flight calls started under an
	// earlier identity do not write back.
	gen    uint64
	cancel func()
}

// NewVoteService returns a VoteService that forgets all state whenever the
// session identity changes.
func NewVoteService(api ports.VoteAPI, sessions SessionSource, log zerolog.Logger) *VoteService {
	v := &VoteService{
		api:      api,
		sessions: sessions,
		log:      log,
		entries:  make(map[voteKey]*voteEntry),
	}
	v.cancel = sessions.Observe(func(ev SessionEvent) {
		if ev.Kind != EventUpdated {
			v.Reset()
		}
	})
	return v
}

// Close detaches the service from session events.
func (v *VoteService) Close() {
	if v.cancel != nil {
		v.cancel()
	}
}

// Reset drops every entry.
func (v *VoteService) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.entries = make(map[voteKey]*voteEntry)
	v.gen++
}

func (v *VoteService) key(projectID string) (voteKey, bool) {
	sess := v.sessions.Current()
	if sess == nil {
		return voteKey{projectID: projectID}, false
	}
	return voteKey{userID: sess.User.ID, projectID: projectID}, true
}

// Load seeds the entry for projectID with count and learns whether the
// current user already liked it. Anonymous users are NotVoted without a call.
// An entry with a request in flight is left untouched.
func (v *VoteService) Load(ctx context.Context, projectID string, count int) (VoteSnapshot, error) {
	key, authed := v.key(projectID)

	v.mu.Lock()
	if e, ok := v.entries[key]; ok && e.state == domain.VotePending {
		snap := e.snapshot(projectID)
		v.mu.Unlock()
		return snap, nil
	}
	if !authed {
		e := &voteEntry{state: domain.VoteNotVoted, count: count}
		v.entries[key] = e
		snap := e.snapshot(projectID)
		v.mu.Unlock()
		return snap, nil
	}
	gen := v.gen
	v.mu.Unlock()

	votes, err := v.api.UserVotes(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.gen != gen {
		return VoteSnapshot{ProjectID: projectID, State: domain.VoteUnknown, Count: count}, nil
	}
	e, ok := v.entries[key]
	if ok && e.state == domain.VotePending {
		return e.snapshot(projectID), nil
	}
	if !ok {
		e = &voteEntry{state: domain.VoteUnknown}
		v.entries[key] = e
	}
	e.count = count
	e.err = ""
	if err != nil {
		v.log.Warn().Err(err).Str("project_id", projectID).Msg("could not load votes")
		e.state = domain.VoteNotVoted
		e.err = domain.Message(err)
		return e.snapshot(projectID), err
	}

	e.state = domain.VoteNotVoted
	for _, vote := range votes {
		if vote.ProjectID == projectID {
			e.state = domain.VoteVoted
			break
		}
	}
	return e.snapshot(projectID), nil
}

// Vote likes projectID.
func (v *VoteService) Vote(ctx context.Context, projectID string) (VoteSnapshot, error) {
	return v.apply(ctx, projectID, func(domain.VoteState) domain.VoteAction { return domain.ActionVote })
}

// RemoveVote withdraws the like on projectID.
func (v *VoteService) RemoveVote(ctx context.Context, projectID string) (VoteSnapshot, error) {
	return v.apply(ctx, projectID, func(domain.VoteState) domain.VoteAction { return domain.ActionUnvote })
}

// Toggle likes or unlikes projectID depending on its settled state.
func (v *VoteService) Toggle(ctx context.Context, projectID string) (VoteSnapshot, error) {
	return v.apply(ctx, projectID, func(s domain.VoteState) domain.VoteAction {
		if s.Liked() {
			return domain.ActionUnvote
		}
		return domain.ActionVote
	})
}

func (v *VoteService) apply(ctx context.Context, projectID string, choose func(domain.VoteState) domain.VoteAction) (VoteSnapshot, error) {
	key, authed := v.key(projectID)
	if !authed {
		return VoteSnapshot{ProjectID: projectID, State: domain.VoteNotVoted}, domain.ErrNotAuthenticated
	}

	v.mu.Lock()
	e, ok := v.entries[key]
	if !ok {
		// Never loaded: assume the opposite of what the caller asks so the
		// request is sent and the backend decides.
		e = &voteEntry{state: domain.VoteNotVoted}
		if choose(domain.VoteNotVoted) == domain.ActionUnvote {
			e.state = domain.VoteVoted
		}
		v.entries[key] = e
	}
	if e.state == domain.VotePending {
		snap := e.snapshot(projectID)
		v.mu.Unlock()
		metrics.VotesTotal.WithLabelValues(string(choose(domain.VoteNotVoted)), "ignored").Inc()
		return snap, domain.ErrVotePending
	}
	if e.state == domain.VoteUnknown {
		e.state = domain.VoteNotVoted
	}

	action := choose(e.state)
	if e.state == action.Target() {
		snap := e.snapshot(projectID)
		v.mu.Unlock()
		return snap, nil
	}

	prev := e.state
	e.state = domain.VotePending
	e.count += action.Delta()
	e.err = ""
	gen := v.gen
	v.mu.Unlock()

	var err error
	if action == domain.ActionVote {
		err = v.api.Vote(ctx, projectID)
	} else {
		err = v.api.RemoveVote(ctx, projectID)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.gen != gen {
		// Identity changed mid-flight; the entry belongs to nobody now.
		return VoteSnapshot{ProjectID: projectID, State: domain.VoteUnknown}, err
	}
	if err != nil {
		e.count -= action.Delta()
		e.state = prev
		e.err = domain.Message(err)
		metrics.VotesTotal.WithLabelValues(string(action), "failed").Inc()
		metrics.VoteRollbacksTotal.Inc()
		v.log.Warn().Err(err).Str("project_id", projectID).Str("action", string(action)).Msg("vote rolled back")
		return e.snapshot(projectID), err
	}
	e.state = action.Target()
	metrics.VotesTotal.WithLabelValues(string(action), "ok").Inc()
	return e.snapshot(projectID), nil
}

// Snapshot returns the current entry for projectID.
func (v *VoteService) Snapshot(projectID string) (VoteSnapshot, bool) {
	key, _ := v.key(projectID)
	v.mu.Lock()
	defer v.mu.Unlock()
	e, ok := v.entries[key]
	if !ok {
		return VoteSnapshot{ProjectID: projectID, State: domain.VoteUnknown}, false
	}
	return e.snapshot(projectID), true
}

// Reconcile adopts a count confirmed by the backend unless a request is in flight.
func (v *VoteService) Reconcile(projectID string, serverCount int) {
	key, _ := v.key(projectID)
	v.mu.Lock()
	defer v.mu.Unlock()
	if e, ok := v.entries[key]; ok && e.state != domain.VotePending {
		e.count = serverCount
	}
}

// ClearError dismisses the error shown on projectID.
func (v *VoteService) ClearError(projectID string) {
	key, _ := v.key(projectID)
	v.mu.Lock()
	defer v.mu.Unlock()
	if e, ok := v.entries[key]; ok {
		e.err = ""
	}
}

func (e *voteEntry) snapshot(projectID string) VoteSnapshot {
	return VoteSnapshot{ProjectID: projectID, State: e.state, Count: e.count, Err: e.err}
}
