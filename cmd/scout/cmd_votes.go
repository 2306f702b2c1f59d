package main

import (
	"github.com/spf13/cobra"

	"github.com/startupscout/showcase/internal/core/domain"
	"github.com/startupscout/showcase/internal/core/service"
	"github.com/startupscout/showcase/internal/infrastructure/queue"
	"github.com/startupscout/showcase/pkg/logger"
)

var voteWorkers int

var voteCmd = &cobra.Command{
	Use:   "vote <project-id>...",
	Short: "Like one or more projects",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVotes(cmd, args, queue.OpVote)
	},
}

var unvoteCmd = &cobra.Command{
	Use:   "unvote <project-id>...",
	Short: "Withdraw likes",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVotes(cmd, args, queue.OpUnvote)
	},
}

var toggleCmd = &cobra.Command{
	Use:   "toggle <project-id>...",
	Short: "Flip your like on each project",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVotes(cmd, args, queue.OpToggle)
	},
}

// runVotes loads the current like state of every project, then settles the
// operations through the batch voter. Failures are reported per project.
func runVotes(cmd *cobra.Command, ids []string, op queue.Op) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	if _, err := a.session(); err != nil {
		return err
	}

	votes := service.NewVoteService(a.client, a.sessions, logger.For("votes"))
	defer votes.Close()
	feed := service.NewProjectFeed(a.client, logger.For("projects"))
	defer feed.Close()

	cmds := make([]queue.Command, 0, len(ids))
	for _, id := range ids {
		// A failed lookup still queues the command; the vote call reports the error.
		if p, err := feed.Get(ctx, id); err == nil {
			if _, err := votes.Load(ctx, id, p.Upvotes); err != nil {
				log.Warn().Err(err).Str("project_id", id).Msg("could not load like state")
			}
		}
		cmds = append(cmds, queue.Command{ProjectID: id, Op: op})
	}

	results := queue.Run(ctx, voteWorkers, votes, cmds, logger.For("batch"))

	if jsonOutput {
		type line struct {
			ProjectID string `json:"project_id"`
			Liked     bool   `json:"liked"`
			Count     int    `json:"count"`
			Error     string `json:"error,omitempty"`
		}
		out := make([]line, len(results))
		for i, r := range results {
			out[i] = line{ProjectID: r.Command.ProjectID, Liked: r.Snapshot.Liked(), Count: r.Snapshot.Count, Error: domain.Message(r.Err)}
		}
		return printJSON(cmd.OutOrStdout(), out)
	}
	var failed error
	for _, r := range results {
		printVoteResult(cmd.OutOrStdout(), r.Command.ProjectID, r.Snapshot, r.Err)
		if r.Err != nil && failed == nil {
			failed = r.Err
		}
	}
	return failed
}

func init() {
	for _, c := range []*cobra.Command{voteCmd, unvoteCmd, toggleCmd} {
		c.Flags().IntVar(&voteWorkers, "workers", 4, "parallel vote workers")
	}
	rootCmd.AddCommand(voteCmd, unvoteCmd, toggleCmd)
}
