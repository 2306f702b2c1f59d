package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/startupscout/showcase/internal/core/domain"
	"github.com/startupscout/showcase/internal/core/ports"
)

// Overview is the landing page payload.
type Overview struct {
	Projects []domain.Project `json:"projects"`
	Stats    domain.Stats     `json:"stats"`
}

// ProjectFeed holds the project list of the active launch.
type ProjectFeed struct {
	api    ports.ProjectAPI
	log    zerolog.Logger
	notice *Notice
	scope  scope

	mu       sync.RWMutex
	projects []domain.Project
	inflight int
}

// NewProjectFeed returns an empty feed; call Fetch to load it.
func NewProjectFeed(api ports.ProjectAPI, log zerolog.Logger) *ProjectFeed {
	return &ProjectFeed{
		api:    api,
		log:    log,
		notice: NewNotice(0),
		scope:  newScope(),
	}
}

// Fetch replaces the list wholesale with the backend's.
func (f *ProjectFeed) Fetch(ctx context.Context) ([]domain.Project, error) {
	ctx, done := f.begin(ctx)
	defer done()

	projects, err := f.api.ListProjects(ctx)
	if err != nil {
		return nil, f.fail(err)
	}
	if f.scope.closed() {
		return projects, nil
	}
	f.mu.Lock()
	f.projects = projects
	f.mu.Unlock()
	f.notice.Clear()
	return cloneProjects(projects), nil
}

// Overview loads projects and site counters concurrently.
func (f *ProjectFeed) Overview(ctx context.Context) (*Overview, error) {
	ctx, done := f.begin(ctx)
	defer done()

	var out Overview
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		projects, err := f.api.ListProjects(gctx)
		out.Projects = projects
		return err
	})
	g.Go(func() error {
		stats, err := f.api.Stats(gctx)
		if stats != nil {
			out.Stats = *stats
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, f.fail(err)
	}
	if !f.scope.closed() {
		f.mu.Lock()
		f.projects = out.Projects
		f.mu.Unlock()
		f.notice.Clear()
	}
	out.Projects = cloneProjects(out.Projects)
	return &out, nil
}

// Get returns one project. A fresher copy replaces the listed one.
func (f *ProjectFeed) Get(ctx context.Context, id string) (*domain.Project, error) {
	ctx, done := f.begin(ctx)
	defer done()

	p, err := f.api.GetProject(ctx, id)
	if err != nil {
		return nil, f.fail(err)
	}
	if !f.scope.closed() {
		f.mu.Lock()
		for i := range f.projects {
			if f.projects[i].ID == p.ID {
				f.projects[i] = *p
				break
			}
		}
		f.mu.Unlock()
	}
	return p, nil
}

// Create publishes a project and puts the canonical copy at the top of the list.
func (f *ProjectFeed) Create(ctx context.Context, req domain.ProjectCreateRequest) (*domain.Project, error) {
	if err := validateForm(req); err != nil {
		f.notice.Set(err)
		return nil, err
	}
	ctx, done := f.begin(ctx)
	defer done()

	p, err := f.api.CreateProject(ctx, req)
	if err != nil {
		return nil, f.fail(err)
	}
	if !f.scope.closed() {
		f.mu.Lock()
		f.projects = append([]domain.Project{*p}, f.projects...)
		f.mu.Unlock()
		f.notice.Clear()
	}
	f.log.Info().Str("project_id", p.ID).Msg("project published")
	return p, nil
}

// ByUser returns the projects published by userID. The feed's list is not touched.
func (f *ProjectFeed) ByUser(ctx context.Context, userID string) ([]domain.Project, error) {
	if userID == "" {
		err := domain.ValidationFailed("user_id", "user id is required")
		f.notice.Set(err)
		return nil, err
	}
	ctx, done := f.begin(ctx)
	defer done()

	projects, err := f.api.UserProjects(ctx, userID)
	if err != nil {
		return nil, f.fail(err)
	}
	return projects, nil
}

// UpdateVotes sets the displayed upvotes of one project. The rating tracks upvotes.
func (f *ProjectFeed) UpdateVotes(id string, upvotes int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.projects {
		if f.projects[i].ID == id {
			f.projects[i].Upvotes = upvotes
			f.projects[i].Rating = upvotes
			return
		}
	}
}

// Projects returns a copy of the current list.
func (f *ProjectFeed) Projects() []domain.Project {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return cloneProjects(f.projects)
}

// Loading reports whether a request is in flight.
func (f *ProjectFeed) Loading() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.inflight > 0
}

// Notice exposes the feed's error banner.
func (f *ProjectFeed) Notice() *Notice { return f.notice }

// Close cancels in-flight requests. Later results are discarded.
func (f *ProjectFeed) Close() {
	f.scope.close()
	f.notice.Stop()
}

func (f *ProjectFeed) begin(ctx context.Context) (context.Context, func()) {
	ctx, cancel := f.scope.join(ctx)
	f.mu.Lock()
	f.inflight++
	f.mu.Unlock()
	return ctx, func() {
		cancel()
		f.mu.Lock()
		f.inflight--
		f.mu.Unlock()
	}
}

func (f *ProjectFeed) fail(err error) error {
	if !f.scope.closed() {
		f.notice.Set(err)
	}
	f.log.Debug().Err(err).Msg("project request failed")
	return err
}

func cloneProjects(in []domain.Project) []domain.Project {
	if in == nil {
		return nil
	}
	out := make([]domain.Project, len(in))
	copy(out, in)
	return out
}
