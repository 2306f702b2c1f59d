package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/startupscout/showcase/internal/core/service"
	"github.com/startupscout/showcase/pkg/logger"
)

var commentsCmd = &cobra.Command{
	Use:   "comments",
	Short: "Read and write project comments",
}

var commentsListCmd = &cobra.Command{
	Use:   "list <project-id>",
	Short: "List comments, newest first",
	Args:  cobra.ExactArgs(1),
	RunE:  runCommentsList,
}

var commentsAddCmd = &cobra.Command{
	Use:   "add <project-id> <text>...",
	Short: "Comment on a project",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runCommentsAdd,
}

var commentsEditCmd = &cobra.Command{
	Use:   "edit <project-id> <comment-id> <text>...",
	Short: "Edit one of your comments",
	Args:  cobra.MinimumNArgs(3),
	RunE:  runCommentsEdit,
}

var commentsDeleteCmd = &cobra.Command{
	Use:   "delete <project-id> <comment-id>",
	Short: "Delete one of your comments",
	Args:  cobra.ExactArgs(2),
	RunE:  runCommentsDelete,
}

// withCommentFeed runs fn against a loaded comment feed for projectID.
func withCommentFeed(cmd *cobra.Command, projectID string, fn func(*service.CommentFeed) error) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	feed := service.NewCommentFeed(a.client, a.sessions, projectID, logger.For("comments"))
	defer feed.Close()

	if _, err := feed.Fetch(cmd.Context()); err != nil {
		return err
	}
	return fn(feed)
}

func runCommentsList(cmd *cobra.Command, args []string) error {
	return withCommentFeed(cmd, args[0], func(feed *service.CommentFeed) error {
		return printComments(cmd.OutOrStdout(), feed.Comments())
	})
}

func runCommentsAdd(cmd *cobra.Command, args []string) error {
	return withCommentFeed(cmd, args[0], func(feed *service.CommentFeed) error {
		c, err := feed.Create(cmd.Context(), strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), c)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Comment %s posted\n", c.ID)
		return nil
	})
}

func runCommentsEdit(cmd *cobra.Command, args []string) error {
	return withCommentFeed(cmd, args[0], func(feed *service.CommentFeed) error {
		if err := feed.Update(cmd.Context(), args[1], strings.Join(args[2:], " ")); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Comment %s updated\n", args[1])
		return nil
	})
}

func runCommentsDelete(cmd *cobra.Command, args []string) error {
	return withCommentFeed(cmd, args[0], func(feed *service.CommentFeed) error {
		if err := feed.Delete(cmd.Context(), args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Comment %s deleted\n", args[1])
		return nil
	})
}

func init() {
	commentsCmd.AddCommand(commentsListCmd, commentsAddCmd, commentsEditCmd, commentsDeleteCmd)
	rootCmd.AddCommand(commentsCmd)
}
