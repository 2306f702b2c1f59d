package queue

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"go.uber.org/goleak"

	"github.com/startupscout/showcase/internal/core/domain"
	"github.com/startupscout/showcase/internal/core/service"
)

// stubVoter records the order ops reach each project and fails projects in failOn.
type stubVoter struct {
	mu      sync.Mutex
	seen    map[string][]Op
	active  map[string]int
	overlap bool
	failOn  map[string]bool
}

func newStubVoter() *stubVoter {
	return &stubVoter{seen: map[string][]Op{}, active: map[string]int{}, failOn: map[string]bool{}}
}

func (s *stubVoter) do(id string, op Op) (service.VoteSnapshot, error) {
	s.mu.Lock()
	s.active[id]++
	if s.active[id] > 1 {
		s.overlap = true
	}
	s.seen[id] = append(s.seen[id], op)
	fail := s.failOn[id]
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.active[id]--
		s.mu.Unlock()
	}()
	if fail {
		return service.VoteSnapshot{ProjectID: id}, errors.New("rejected")
	}
	return service.VoteSnapshot{ProjectID: id, State: domain.VoteVoted}, nil
}

func (s *stubVoter) Vote(_ context.Context, id string) (service.VoteSnapshot, error) {
	return s.do(id, OpVote)
}

func (s *stubVoter) RemoveVote(_ context.Context, id string) (service.VoteSnapshot, error) {
	return s.do(id, OpUnvote)
}

func (s *stubVoter) Toggle(_ context.Context, id string) (service.VoteSnapshot, error) {
	return s.do(id, OpToggle)
}

func TestRun_PreservesPerProjectOrder(t *testing.T) {
	defer goleak.VerifyNone(t)

	voter := newStubVoter()
	var cmds []Command
	for i := 0; i < 20; i++ {
		cmds = append(cmds,
			Command{ProjectID: "alpha", Op: OpVote},
			Command{ProjectID: "alpha", Op: OpUnvote},
			Command{ProjectID: "beta", Op: OpToggle},
		)
	}

	results := Run(context.Background(), 3, voter, cmds, zerolog.Nop())

	if len(results) != len(cmds) {
		t.Fatalf("expected %d results, got %d", len(cmds), len(results))
	}
	for i, r := range results {
		if r.Seq != i || r.Command != cmds[i] {
			t.Fatalf("result %d out of order: %+v", i, r)
		}
		if r.Err != nil {
			t.Fatalf("unexpected error: %v", r.Err)
		}
	}
	if voter.overlap {
		t.Fatal("commands for one project ran concurrently")
	}
	alpha := voter.seen["alpha"]
	for i := 0; i < len(alpha); i += 2 {
		if alpha[i] != OpVote || alpha[i+1] != OpUnvote {
			t.Fatalf("alpha ops out of order at %d: %v", i, alpha)
		}
	}
}

func TestRun_ReportsFailuresAndUnknownOps(t *testing.T) {
	defer goleak.VerifyNone(t)

	voter := newStubVoter()
	voter.failOn["bad"] = true
	cmds := []Command{
		{ProjectID: "good", Op: OpVote},
		{ProjectID: "bad", Op: OpVote},
		{ProjectID: "good", Op: "downvote"},
	}

	results := Run(context.Background(), 0, voter, cmds, zerolog.Nop())

	if results[0].Err != nil {
		t.Fatalf("unexpected error: %v", results[0].Err)
	}
	if results[1].Err == nil {
		t.Fatal("expected failure for rejected project")
	}
	if domain.KindOf(results[2].Err) != domain.KindValidation {
		t.Fatalf("expected validation error for unknown op, got %v", results[2].Err)
	}
}

func TestRun_CancelledContextSkipsCommands(t *testing.T) {
	defer goleak.VerifyNone(t)

	voter := newStubVoter()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := Run(ctx, 2, voter, []Command{{ProjectID: "a", Op: OpVote}, {ProjectID: "b", Op: OpVote}}, zerolog.Nop())

	for _, r := range results {
		if !errors.Is(r.Err, domain.ErrNetwork) {
			t.Fatalf("expected cancelled commands, got %v", r.Err)
		}
	}
	if len(voter.seen) != 0 {
		t.Fatal("no command should reach the voter")
	}
}

func TestShardIndex_Deterministic(t *testing.T) {
	b := NewBatchVoter(5, newStubVoter(), zerolog.Nop())
	for _, id := range []string{"a", "project-42", ""} {
		first := b.shardIndex(id)
		if first < 0 || first >= 5 {
			t.Fatalf("index out of range: %d", first)
		}
		for i := 0; i < 10; i++ {
			if b.shardIndex(id) != first {
				t.Fatalf("shard for %q changed", id)
			}
		}
	}
}
