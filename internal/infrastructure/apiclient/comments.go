package apiclient

import (
	"context"
	"net/http"

	"github.com/startupscout/showcase/internal/core/domain"
)

// ListComments returns the comments of a project, newest first.
func (c *Client) ListComments(ctx context.Context, projectID string) ([]domain.Comment, error) {
	var env commentsEnvelope
	cl := call{method: http.MethodGet, endpoint: routeProjectComments, path: projectCommentsPath(projectID)}
	if err := c.do(ctx, cl, &env); err != nil {
		return nil, err
	}
	return orEmpty(env.Comments), nil
}

// CreateComment posts a comment and returns the canonical copy.
func (c *Client) CreateComment(ctx context.Context, projectID, content string) (*domain.Comment, error) {
	var out domain.Comment
	cl := call{
		method:   http.MethodPost,
		endpoint: routeProjectComments,
		path:     projectCommentsPath(projectID),
		body:     domain.CommentRequest{Content: content},
	}
	if err := c.do(ctx, cl, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateComment replaces the content of a comment.
func (c *Client) UpdateComment(ctx context.Context, commentID, content string) error {
	return c.do(ctx, call{
		method:   http.MethodPut,
		endpoint: routeComment,
		path:     commentPath(commentID),
		body:     domain.CommentRequest{Content: content},
	}, nil)
}

// DeleteComment removes a comment.
func (c *Client) DeleteComment(ctx context.Context, commentID string) error {
	return c.do(ctx, call{method: http.MethodDelete, endpoint: routeComment, path: commentPath(commentID)}, nil)
}
