package apiclient

import (
	"context"
	"net/http"

	"github.com/startupscout/showcase/internal/core/domain"
)

// Vote likes a project.
func (c *Client) Vote(ctx context.Context, projectID string) error {
	return c.do(ctx, call{method: http.MethodPost, endpoint: routeProjectVote, path: projectVotePath(projectID)}, nil)
}

// RemoveVote withdraws a like.
func (c *Client) RemoveVote(ctx context.Context, projectID string) error {
	return c.do(ctx, call{method: http.MethodDelete, endpoint: routeProjectVote, path: projectVotePath(projectID)}, nil)
}

// UserVotes lists every like of the current user.
func (c *Client) UserVotes(ctx context.Context) ([]domain.Vote, error) {
	var env votesEnvelope
	if err := c.do(ctx, call{method: http.MethodGet, endpoint: pathVotes, path: pathVotes}, &env); err != nil {
		return nil, err
	}
	return orEmpty(env.Votes), nil
}
