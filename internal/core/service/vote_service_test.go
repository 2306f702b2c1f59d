package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/startupscout/showcase/internal/core/domain"
)

func newVoteSvc(t *testing.T, api *stubAPI) (*VoteService, *SessionService) {
	t.Helper()
	sessions := loggedIn(t, api, &stubStore{}, newFakeClock())
	v := NewVoteService(api, sessions, zerolog.Nop())
	t.Cleanup(v.Close)
	return v, sessions
}

// ---------------------------------------------------------------------------
// Load
// ---------------------------------------------------------------------------

func TestVoteLoad_Membership(t *testing.T) {
	api := &stubAPI{userVotes: func(context.Context) ([]domain.Vote, error) {
		return []domain.Vote{{ProjectID: "p1"}, {ProjectID: "p3"}}, nil
	}}
	v, _ := newVoteSvc(t, api)

	snap, err := v.Load(context.Background(), "p1", 10)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !snap.Liked() || snap.Count != 10 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	snap, _ = v.Load(context.Background(), "p2", 4)
	if snap.State != domain.VoteNotVoted || snap.Count != 4 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestVoteLoad_AnonymousMakesNoCall(t *testing.T) {
	api := &stubAPI{}
	sessions := newSessionSvc(api, &stubStore{}, newFakeClock())
	sessions.Bootstrap(context.Background())
	v := NewVoteService(api, sessions, zerolog.Nop())
	defer v.Close()

	snap, err := v.Load(context.Background(), "p1", 3)
	if err != nil || snap.State != domain.VoteNotVoted || snap.Count != 3 {
		t.Fatalf("unexpected %+v, %v", snap, err)
	}
	if api.count("user_votes") != 0 {
		t.Fatal("expected no request")
	}

	if _, err := v.Vote(context.Background(), "p1"); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected not authenticated, got %v", err)
	}
	if api.count("vote") != 0 {
		t.Fatal("expected no vote request")
	}
}

// ---------------------------------------------------------------------------
// Optimistic update and rollback
// ---------------------------------------------------------------------------

func TestVote_SuccessKeepsOptimisticCount(t *testing.T) {
	v, _ := newVoteSvc(t, &stubAPI{})
	if _, err := v.Load(context.Background(), "p1", 5); err != nil {
		t.Fatal(err)
	}

	snap, err := v.Vote(context.Background(), "p1")
	if err != nil {
		t.Fatalf("vote: %v", err)
	}
	if !snap.Liked() || snap.Count != 6 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}

	snap, err = v.Toggle(context.Background(), "p1")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if snap.State != domain.VoteNotVoted || snap.Count != 5 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestVote_RollbackIsSymmetric(t *testing.T) {
	tests := []struct {
		name    string
		liked   bool
		act     func(v *VoteService) (VoteSnapshot, error)
		initial domain.VoteState
	}{
		{"vote fails", false, func(v *VoteService) (VoteSnapshot, error) { return v.Vote(context.Background(), "p1") }, domain.VoteNotVoted},
		{"unvote fails", true, func(v *VoteService) (VoteSnapshot, error) { return v.RemoveVote(context.Background(), "p1") }, domain.VoteVoted},
		{"toggle fails", true, func(v *VoteService) (VoteSnapshot, error) { return v.Toggle(context.Background(), "p1") }, domain.VoteVoted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fail := domain.ServerError(400, "Already voted for this project")
			api := &stubAPI{
				vote:       func(context.Context, string) error { return fail },
				removeVote: func(context.Context, string) error { return fail },
				userVotes: func(context.Context) ([]domain.Vote, error) {
					if tt.liked {
						return []domain.Vote{{ProjectID: "p1"}}, nil
					}
					return nil, nil
				},
			}
			v, _ := newVoteSvc(t, api)
			if _, err := v.Load(context.Background(), "p1", 7); err != nil {
				t.Fatal(err)
			}

			snap, err := tt.act(v)
			if !errors.Is(err, fail) {
				t.Fatalf("expected the request error, got %v", err)
			}
			if snap.Count != 7 || snap.State != tt.initial {
				t.Fatalf("expected exact rollback, got %+v", snap)
			}
			if snap.Err != "Already voted for this project" {
				t.Fatalf("expected error recorded, got %q", snap.Err)
			}

			v.ClearError("p1")
			if s, _ := v.Snapshot("p1"); s.Err != "" {
				t.Fatal("expected error cleared")
			}
		})
	}
}

func TestVote_NotFoundRestoresCount(t *testing.T) {
	api := &stubAPI{vote: func(context.Context, string) error {
		return domain.ServerError(404, "project not found")
	}}
	v, _ := newVoteSvc(t, api)
	if _, err := v.Load(context.Background(), "p1", 3); err != nil {
		t.Fatal(err)
	}

	snap, err := v.Vote(context.Background(), "p1")
	if domain.Message(err) != "project not found" {
		t.Fatalf("expected server message, got %v", err)
	}
	if snap.Count != 3 || snap.Liked() || snap.Err != "project not found" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestVote_IgnoredWhilePending(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	api := &stubAPI{vote: func(context.Context, string) error {
		close(started)
		<-release
		return nil
	}}
	v, _ := newVoteSvc(t, api)
	if _, err := v.Load(context.Background(), "p1", 0); err != nil {
		t.Fatal(err)
	}

	done := make(chan VoteSnapshot)
	go func() {
		snap, _ := v.Vote(context.Background(), "p1")
		done <- snap
	}()
	<-started

	snap, err := v.Toggle(context.Background(), "p1")
	if !errors.Is(err, domain.ErrVotePending) {
		t.Fatalf("expected pending error, got %v", err)
	}
	if !snap.Pending() || snap.Count != 1 {
		t.Fatalf("second call must not change the count, got %+v", snap)
	}
	v.Reconcile("p1", 99)
	if s, _ := v.Snapshot("p1"); s.Count != 1 {
		t.Fatal("reconcile must not touch a pending entry")
	}

	close(release)
	select {
	case final := <-done:
		if !final.Liked() || final.Count != 1 {
			t.Fatalf("unexpected final snapshot %+v", final)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("vote did not finish")
	}
	if api.count("vote") != 1 {
		t.Fatalf("expected exactly one request, got %d", api.count("vote"))
	}
}

func TestVote_AlreadyInTargetStateIsNoop(t *testing.T) {
	api := &stubAPI{userVotes: func(context.Context) ([]domain.Vote, error) {
		return []domain.Vote{{ProjectID: "p1"}}, nil
	}}
	v, _ := newVoteSvc(t, api)
	if _, err := v.Load(context.Background(), "p1", 2); err != nil {
		t.Fatal(err)
	}
	snap, err := v.Vote(context.Background(), "p1")
	if err != nil || snap.Count != 2 {
		t.Fatalf("unexpected %+v, %v", snap, err)
	}
	if api.count("vote") != 0 {
		t.Fatal("expected no request")
	}
}

func TestVote_ReconcileAdoptsServerCount(t *testing.T) {
	v, _ := newVoteSvc(t, &stubAPI{})
	if _, err := v.Load(context.Background(), "p1", 3); err != nil {
		t.Fatal(err)
	}
	v.Reconcile("p1", 12)
	if s, _ := v.Snapshot("p1"); s.Count != 12 {
		t.Fatalf("expected reconciled count, got %+v", s)
	}
}

func TestVote_SessionChangeDropsState(t *testing.T) {
	api := &stubAPI{userVotes: func(context.Context) ([]domain.Vote, error) {
		return []domain.Vote{{ProjectID: "p1"}}, nil
	}}
	v, sessions := newVoteSvc(t, api)
	if _, err := v.Load(context.Background(), "p1", 4); err != nil {
		t.Fatal(err)
	}

	sessions.Logout(context.Background())
	if _, ok := v.Snapshot("p1"); ok {
		t.Fatal("expected entries dropped on logout")
	}

	if _, err := sessions.Login(context.Background(), "ana@example.com", "secret1"); err != nil {
		t.Fatal(err)
	}
	if _, ok := v.Snapshot("p1"); ok {
		t.Fatal("new identity must not see stale state")
	}
}

func TestVote_IdentityChangeMidFlightDiscardsResult(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	api := &stubAPI{vote: func(context.Context, string) error {
		close(started)
		<-release
		return errors.New("late failure")
	}}
	v, sessions := newVoteSvc(t, api)
	if _, err := v.Load(context.Background(), "p1", 1); err != nil {
		t.Fatal(err)
	}

	done := make(chan struct{})
	go func() {
		_, _ = v.Vote(context.Background(), "p1")
		close(done)
	}()
	<-started
	sessions.Expire(ReasonUnauthorized)
	close(release)
	<-done

	if _, ok := v.Snapshot("p1"); ok {
		t.Fatal("a result from a previous identity must not write back")
	}
}
