package queue

import (
	"context"
	"hash/fnv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/startupscout/showcase/internal/core/domain"
	"github.com/startupscout/showcase/internal/core/service"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// Op is what a Command does to a project's like.
type Op string

const (
	OpVote   Op = "vote"
	OpUnvote Op = "unvote"
	OpToggle Op = "toggle"
)

// Command is one queued vote operation.
type Command struct {
	ProjectID string
	Op        Op
}

// Result is the settled outcome of a Command.
type Result struct {
	Seq      int
	Command  Command
	Snapshot service.VoteSnapshot
	Err      error
}

// Voter is implemented by service.VoteService.
type Voter interface {
	Vote(ctx context.Context, projectID string) (service.VoteSnapshot, error)
	RemoveVote(ctx context.Context, projectID string) (service.VoteSnapshot, error)
	Toggle(ctx context.Context, projectID string) (service.VoteSnapshot, error)
}

type job struct {
	seq int
	cmd Command
}

// BatchVoter routes vote commands to a fixed set of workers using consistent
// hashing on the project id. Commands for one project run one after another
// in enqueue order, so a second toggle never hits a pending entry.
type BatchVoter struct {
	workers []chan job
	results chan Result
	voter   Voter
	log     zerolog.Logger
	wg      sync.WaitGroup
	seq     int
}

// NewBatchVoter creates a BatchVoter with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewBatchVoter(numWorkers int, voter Voter, log zerolog.Logger) *BatchVoter {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	b := &BatchVoter{
		workers: make([]chan job, numWorkers),
		results: make(chan Result, channelBuffer),
		voter:   voter,
		log:     log,
	}
	for i := range b.workers {
		b.workers[i] = make(chan job, channelBuffer)
	}
	return b
}

// Start launches all worker goroutines. Workers drain their queue until
// Close, and skip remaining commands once ctx is cancelled.
func (b *BatchVoter) Start(ctx context.Context) {
	for i, ch := range b.workers {
		b.wg.Add(1)
		go b.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a command to the worker responsible for its project and
// returns its sequence number. Not safe for concurrent use.
func (b *BatchVoter) Enqueue(cmd Command) int {
	seq := b.seq
	b.seq++
	b.workers[b.shardIndex(cmd.ProjectID)] <- job{seq: seq, cmd: cmd}
	return seq
}

// Results streams settled commands. It is closed after Close once every
// worker has finished.
func (b *BatchVoter) Results() <-chan Result {
	return b.results
}

// Close stops accepting commands and waits for the workers in the background.
func (b *BatchVoter) Close() {
	for _, ch := range b.workers {
		close(ch)
	}
	go func() {
		b.wg.Wait()
		close(b.results)
	}()
}

// Run executes cmds and returns their results in input order.
func Run(ctx context.Context, numWorkers int, voter Voter, cmds []Command, log zerolog.Logger) []Result {
	b := NewBatchVoter(numWorkers, voter, log)
	b.Start(ctx)

	out := make([]Result, len(cmds))
	done := make(chan struct{})
	go func() {
		for r := range b.Results() {
			out[r.Seq] = r
		}
		close(done)
	}()

	for _, cmd := range cmds {
		b.Enqueue(cmd)
	}
	b.Close()
	<-done
	return out
}

// shardIndex maps a project id deterministically to a worker index.
func (b *BatchVoter) shardIndex(projectID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(projectID))
	return int(h.Sum32() % uint32(len(b.workers)))
}

func (b *BatchVoter) runWorker(ctx context.Context, id int, ch <-chan job) {
	defer b.wg.Done()
	for j := range ch {
		res := Result{Seq: j.seq, Command: j.cmd}
		if err := ctx.Err(); err != nil {
			res.Err = domain.NetworkError("request cancelled")
		} else {
			res.Snapshot, res.Err = b.apply(ctx, j.cmd)
		}
		if res.Err != nil {
			b.log.Warn().Err(res.Err).
				Str("project_id", j.cmd.ProjectID).
				Str("op", string(j.cmd.Op)).
				Int("worker_id", id).
				Msg("vote command failed")
		}
		b.results <- res
	}
}

func (b *BatchVoter) apply(ctx context.Context, cmd Command) (service.VoteSnapshot, error) {
	switch cmd.Op {
	case OpVote:
		return b.voter.Vote(ctx, cmd.ProjectID)
	case OpUnvote:
		return b.voter.RemoveVote(ctx, cmd.ProjectID)
	case OpToggle:
		return b.voter.Toggle(ctx, cmd.ProjectID)
	default:
		return service.VoteSnapshot{ProjectID: cmd.ProjectID}, domain.ValidationFailed("op", "unknown vote operation "+string(cmd.Op))
	}
}
