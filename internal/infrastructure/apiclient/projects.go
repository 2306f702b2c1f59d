package apiclient

import (
	"context"
	"net/http"

	"github.com/startupscout/showcase/internal/core/domain"
)

// ListProjects returns the projects of the active launch.
func (c *Client) ListProjects(ctx context.Context) ([]domain.Project, error) {
	var env projectsEnvelope
	if err := c.do(ctx, call{method: http.MethodGet, endpoint: pathProjects, path: pathProjects}, &env); err != nil {
		return nil, err
	}
	return orEmpty(env.Projects), nil
}

// GetProject returns a single project.
func (c *Client) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	var p domain.Project
	if err := c.do(ctx, call{method: http.MethodGet, endpoint: routeProject, path: projectPath(id)}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProject publishes a project and returns the canonical copy.
func (c *Client) CreateProject(ctx context.Context, req domain.ProjectCreateRequest) (*domain.Project, error) {
	var p domain.Project
	if err := c.do(ctx, call{method: http.MethodPost, endpoint: pathProjects, path: pathProjects, body: req}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UserProjects returns the projects published by userID.
func (c *Client) UserProjects(ctx context.Context, userID string) ([]domain.Project, error) {
	var env projectsEnvelope
	if err := c.do(ctx, call{method: http.MethodGet, endpoint: routeUserProjects, path: userProjectsPath(userID)}, &env); err != nil {
		return nil, err
	}
	return orEmpty(env.Projects), nil
}

// Stats returns site-wide counters.
func (c *Client) Stats(ctx context.Context) (*domain.Stats, error) {
	var env statsEnvelope
	if err := c.do(ctx, call{method: http.MethodGet, endpoint: pathStats, path: pathStats}, &env); err != nil {
		return nil, err
	}
	return &domain.Stats{UserCount: *env.UserCount, ProjectCount: *env.ProjectCount}, nil
}
