// Package backend is the in-memory reference implementation of the showcase
// backend. It serves local development and end-to-end tests of the client.
package backend

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/startupscout/showcase/internal/core/domain"
	"github.com/startupscout/showcase/internal/core/ports"
)

// Store bundles the in-memory repositories.
type Store struct {
	Users    *UserStore
	Projects *ProjectStore
	Comments *CommentStore
	Images   *ImageStore
}

// NewStore returns empty repositories with one active launch.
func NewStore() *Store {
	return &Store{
		Users:    NewUserStore(),
		Projects: NewProjectStore(time.Now().UTC()),
		Comments: NewCommentStore(),
		Images:   NewImageStore(),
	}
}

var (
	_ ports.UserRepository    = (*UserStore)(nil)
	_ ports.ProjectRepository = (*ProjectStore)(nil)
	_ ports.CommentRepository = (*CommentStore)(nil)
	_ ports.ImageRepository   = (*ImageStore)(nil)
)

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type UserStore struct {
	mu      sync.RWMutex
	byID    map[string]*domain.User
	byEmail map[string]string
}

func NewUserStore() *UserStore {
	return &UserStore{byID: map[string]*domain.User{}, byEmail: map[string]string{}}
}

func (s *UserStore) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u := *s.byID[id]
	return &u, nil
}

func (s *UserStore) FindByID(_ context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

// Create assigns an id when the user has none. Emails are unique, case-insensitively.
func (s *UserStore) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email := strings.ToLower(user.Email)
	if _, exists := s.byEmail[email]; exists {
		return nil, domain.ErrUserExists
	}
	u := *user
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	s.byID[u.ID] = &u
	s.byEmail[email] = u.ID
	out := u
	return &out, nil
}

func (s *UserStore) Update(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	u := *user
	s.byID[u.ID] = &u
	return nil
}

func (s *UserStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID), nil
}

// ---------------------------------------------------------------------------
// Projects and likes
// ---------------------------------------------------------------------------

type ProjectStore struct {
	mu       sync.RWMutex
	launch   domain.Launch
	projects map[string]*domain.Project
	order    []string
	votes    map[string]map[string]domain.Vote // projectID -> userID -> vote
}

// NewProjectStore seeds a launch active from now for thirty days.
func NewProjectStore(now time.Time) *ProjectStore {
	return &ProjectStore{
		launch: domain.Launch{
			ID:        uuid.NewString(),
			Name:      "Launch " + now.Format("2006-01"),
			StartDate: now,
			EndDate:   now.Add(30 * 24 * time.Hour),
			IsActive:  true,
		},
		projects: map[string]*domain.Project{},
		votes:    map[string]map[string]domain.Vote{},
	}
}

func (s *ProjectStore) ActiveLaunch(_ context.Context) (*domain.Launch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.launch.IsActive {
		return nil, domain.ErrNoActiveLaunch
	}
	l := s.launch
	return &l, nil
}

// List returns the launch's projects ordered by rating, newest first on ties.
func (s *ProjectStore) List(_ context.Context, launchID string) ([]domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Project, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		p := s.projects[s.order[i]]
		if launchID == "" || p.LaunchID == launchID {
			out = append(out, clone(p))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	return out, nil
}

func (s *ProjectStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.projects), nil
}

func (s *ProjectStore) FindByID(_ context.Context, id string) (*domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	out := clone(p)
	return &out, nil
}

func (s *ProjectStore) ListByUser(_ context.Context, userID string) ([]domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Project{}
	for i := len(s.order) - 1; i >= 0; i-- {
		if p := s.projects[s.order[i]]; p.UserID == userID {
			out = append(out, clone(p))
		}
	}
	return out, nil
}

func (s *ProjectStore) Create(_ context.Context, p *domain.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	stored := clone(p)
	s.projects[p.ID] = &stored
	s.order = append(s.order, p.ID)
	return nil
}

// AddVote records a like. Liking twice is a no-op.
func (s *ProjectStore) AddVote(_ context.Context, userID, projectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[projectID]
	if !ok {
		return domain.ErrProjectNotFound
	}
	byUser := s.votes[projectID]
	if byUser == nil {
		byUser = map[string]domain.Vote{}
		s.votes[projectID] = byUser
	}
	if _, exists := byUser[userID]; exists {
		return nil
	}
	byUser[userID] = domain.Vote{
		ID:        uuid.NewString(),
		UserID:    userID,
		ProjectID: projectID,
		LaunchID:  p.LaunchID,
		CreatedAt: time.Now().UTC(),
	}
	s.recount(p)
	return nil
}

// RemoveVote withdraws a like. Removing a missing like is a no-op.
func (s *ProjectStore) RemoveVote(_ context.Context, userID, projectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[projectID]
	if !ok {
		return domain.ErrProjectNotFound
	}
	if _, exists := s.votes[projectID][userID]; !exists {
		return nil
	}
	delete(s.votes[projectID], userID)
	s.recount(p)
	return nil
}

func (s *ProjectStore) VotesByUser(_ context.Context, userID string) ([]domain.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Vote{}
	for _, byUser := range s.votes {
		if v, ok := byUser[userID]; ok {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// recount keeps upvotes and rating equal to the number of likes. Caller holds mu.
func (s *ProjectStore) recount(p *domain.Project) {
	p.Upvotes = len(s.votes[p.ID])
	p.Rating = p.Upvotes
	p.UpdatedAt = time.Now().UTC()
}

func clone(p *domain.Project) domain.Project {
	out := *p
	out.Images = append([]string(nil), p.Images...)
	out.Creators = append([]string(nil), p.Creators...)
	if p.Logo != nil {
		logo := *p.Logo
		out.Logo = &logo
	}
	return out
}

// ---------------------------------------------------------------------------
// Comments
// ---------------------------------------------------------------------------

type CommentStore struct {
	mu       sync.RWMutex
	comments map[string]*domain.Comment
	order    []string
}

func NewCommentStore() *CommentStore {
	return &CommentStore{comments: map[string]*domain.Comment{}}
}

// ListByProject returns comments newest first.
func (s *CommentStore) ListByProject(_ context.Context, projectID string) ([]domain.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Comment{}
	for i := len(s.order) - 1; i >= 0; i-- {
		c, ok := s.comments[s.order[i]]
		if ok && c.ProjectID == projectID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *CommentStore) FindByID(_ context.Context, id string) (*domain.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.comments[id]
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	out := *c
	return &out, nil
}

func (s *CommentStore) Create(_ context.Context, c *domain.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	stored := *c
	s.comments[c.ID] = &stored
	s.order = append(s.order, c.ID)
	return nil
}

func (s *CommentStore) Update(_ context.Context, id, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.comments[id]
	if !ok {
		return domain.ErrCommentNotFound
	}
	c.Content = content
	c.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *CommentStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comments[id]; !ok {
		return domain.ErrCommentNotFound
	}
	delete(s.comments, id)
	return nil
}

// ---------------------------------------------------------------------------
// Images
// ---------------------------------------------------------------------------

type ImageStore struct {
	mu     sync.RWMutex
	images map[string][]byte
}

func NewImageStore() *ImageStore {
	return &ImageStore{images: map[string][]byte{}}
}

func (s *ImageStore) Put(_ context.Context, name string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images[name] = data
	return nil
}

func (s *ImageStore) Open(_ context.Context, name string) (io.ReadSeeker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.images[name]
	if !ok {
		return nil, domain.ErrImageNotFound
	}
	return bytes.NewReader(data), nil
}
