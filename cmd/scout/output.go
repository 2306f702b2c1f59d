package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/startupscout/showcase/internal/core/domain"
	"github.com/startupscout/showcase/internal/core/service"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printProjects(w io.Writer, projects []domain.Project) error {
	if jsonOutput {
		return printJSON(w, projects)
	}
	if len(projects) == 0 {
		fmt.Fprintln(w, "No projects yet.")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tLIKES\tDESCRIPTION")
	for _, p := range projects {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", p.ID, p.Name, p.Upvotes, truncate(p.Description, 60))
	}
	return tw.Flush()
}

func printProject(w io.Writer, p *domain.Project) error {
	if jsonOutput {
		return printJSON(w, p)
	}
	fmt.Fprintf(w, "%s (%s)\n", p.Name, p.ID)
	fmt.Fprintf(w, "  likes:    %d\n", p.Upvotes)
	if len(p.Creators) > 0 {
		fmt.Fprintf(w, "  creators: %s\n", strings.Join(p.Creators, ", "))
	}
	if p.Website != "" {
		fmt.Fprintf(w, "  website:  %s\n", p.Website)
	}
	if p.TelegramContact != "" {
		fmt.Fprintf(w, "  telegram: %s\n", p.TelegramContact)
	}
	fmt.Fprintf(w, "\n%s\n", p.Description)
	if p.FullDescription != "" {
		fmt.Fprintf(w, "\n%s\n", p.FullDescription)
	}
	return nil
}

func printComments(w io.Writer, comments []domain.Comment) error {
	if jsonOutput {
		return printJSON(w, comments)
	}
	if len(comments) == 0 {
		fmt.Fprintln(w, "No comments yet.")
		return nil
	}
	for _, c := range comments {
		fmt.Fprintf(w, "[%s] %s %s\n  %s\n", c.ID, c.UserID, c.CreatedAt.Format("2006-01-02 15:04"), c.Content)
	}
	return nil
}

func printUser(w io.Writer, u *domain.User) error {
	if jsonOutput {
		return printJSON(w, u)
	}
	fmt.Fprintf(w, "%s <%s> (%s)\n", u.DisplayName(), u.Email, u.ID)
	if u.TelegramID != "" {
		fmt.Fprintf(w, "  telegram: %s\n", u.TelegramID)
	}
	if u.Avatar != "" {
		fmt.Fprintf(w, "  avatar:   %s\n", u.Avatar)
	}
	return nil
}

func printVoteResult(w io.Writer, projectID string, snap service.VoteSnapshot, err error) {
	switch {
	case err != nil:
		fmt.Fprintf(w, "%s: failed: %s (likes %d)\n", projectID, domain.Message(err), snap.Count)
	case snap.Liked():
		fmt.Fprintf(w, "%s: liked (likes %d)\n", projectID, snap.Count)
	default:
		fmt.Fprintf(w, "%s: not liked (likes %d)\n", projectID, snap.Count)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
