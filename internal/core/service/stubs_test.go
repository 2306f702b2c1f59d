package service

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/startupscout/showcase/internal/core/domain"
	"github.com/startupscout/showcase/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stub API: every method delegates to an optional func field and records the call.
// ---------------------------------------------------------------------------

type stubAPI struct {
	mu    sync.Mutex
	calls []string

	login         func(ctx context.Context, c domain.Credentials) (*ports.AuthResult, error)
	register      func(ctx context.Context, r domain.Registration) (*ports.AuthResult, error)
	logout        func(ctx context.Context) error
	profile       func(ctx context.Context) (*domain.User, error)
	listProjects  func(ctx context.Context) ([]domain.Project, error)
	getProject    func(ctx context.Context, id string) (*domain.Project, error)
	createProject func(ctx context.Context, r domain.ProjectCreateRequest) (*domain.Project, error)
	userProjects  func(ctx context.Context, userID string) ([]domain.Project, error)
	stats         func(ctx context.Context) (*domain.Stats, error)
	vote          func(ctx context.Context, projectID string) error
	removeVote    func(ctx context.Context, projectID string) error
	userVotes     func(ctx context.Context) ([]domain.Vote, error)
	listComments  func(ctx context.Context, projectID string) ([]domain.Comment, error)
	createComment func(ctx context.Context, projectID, content string) (*domain.Comment, error)
	updateComment func(ctx context.Context, id, content string) error
	deleteComment func(ctx context.Context, id string) error
	updateProfile func(ctx context.Context, u domain.ProfileUpdate) (*domain.User, error)
	updateAvatar  func(ctx context.Context, url string) (string, error)
	uploadImage   func(ctx context.Context, name string, r io.Reader) (string, error)
	linkTelegram  func(ctx context.Context, params map[string]string) error
}

var _ ports.ShowcaseAPI = (*stubAPI)(nil)

func (s *stubAPI) record(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, name)
}

func (s *stubAPI) count(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (s *stubAPI) Login(ctx context.Context, c domain.Credentials) (*ports.AuthResult, error) {
	s.record("login")
	if s.login == nil {
		return &ports.AuthResult{Token: "tok", User: domain.User{ID: "u1", Email: c.Email}}, nil
	}
	return s.login(ctx, c)
}

func (s *stubAPI) Register(ctx context.Context, r domain.Registration) (*ports.AuthResult, error) {
	s.record("register")
	if s.register == nil {
		return &ports.AuthResult{Token: "tok", User: domain.User{ID: "u1", Email: r.Email, Username: r.Username}}, nil
	}
	return s.register(ctx, r)
}

func (s *stubAPI) Logout(ctx context.Context) error {
	s.record("logout")
	if s.logout == nil {
		return nil
	}
	return s.logout(ctx)
}

func (s *stubAPI) Profile(ctx context.Context) (*domain.User, error) {
	s.record("profile")
	if s.profile == nil {
		return &domain.User{ID: "u1"}, nil
	}
	return s.profile(ctx)
}

func (s *stubAPI) ListProjects(ctx context.Context) ([]domain.Project, error) {
	s.record("list_projects")
	if s.listProjects == nil {
		return []domain.Project{}, nil
	}
	return s.listProjects(ctx)
}

func (s *stubAPI) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	s.record("get_project")
	if s.getProject == nil {
		return &domain.Project{ID: id}, nil
	}
	return s.getProject(ctx, id)
}

func (s *stubAPI) CreateProject(ctx context.Context, r domain.ProjectCreateRequest) (*domain.Project, error) {
	s.record("create_project")
	if s.createProject == nil {
		return &domain.Project{ID: "new", Name: r.Name}, nil
	}
	return s.createProject(ctx, r)
}

func (s *stubAPI) UserProjects(ctx context.Context, userID string) ([]domain.Project, error) {
	s.record("user_projects")
	if s.userProjects == nil {
		return []domain.Project{}, nil
	}
	return s.userProjects(ctx, userID)
}

func (s *stubAPI) Stats(ctx context.Context) (*domain.Stats, error) {
	s.record("stats")
	if s.stats == nil {
		return &domain.Stats{}, nil
	}
	return s.stats(ctx)
}

func (s *stubAPI) Vote(ctx context.Context, projectID string) error {
	s.record("vote")
	if s.vote == nil {
		return nil
	}
	return s.vote(ctx, projectID)
}

func (s *stubAPI) RemoveVote(ctx context.Context, projectID string) error {
	s.record("remove_vote")
	if s.removeVote == nil {
		return nil
	}
	return s.removeVote(ctx, projectID)
}

func (s *stubAPI) UserVotes(ctx context.Context) ([]domain.Vote, error) {
	s.record("user_votes")
	if s.userVotes == nil {
		return []domain.Vote{}, nil
	}
	return s.userVotes(ctx)
}

func (s *stubAPI) ListComments(ctx context.Context, projectID string) ([]domain.Comment, error) {
	s.record("list_comments")
	if s.listComments == nil {
		return []domain.Comment{}, nil
	}
	return s.listComments(ctx, projectID)
}

func (s *stubAPI) CreateComment(ctx context.Context, projectID, content string) (*domain.Comment, error) {
	s.record("create_comment")
	if s.createComment == nil {
		return &domain.Comment{ID: "c-new", ProjectID: projectID, UserID: "u1", Content: content}, nil
	}
	return s.createComment(ctx, projectID, content)
}

func (s *stubAPI) UpdateComment(ctx context.Context, id, content string) error {
	s.record("update_comment")
	if s.updateComment == nil {
		return nil
	}
	return s.updateComment(ctx, id, content)
}

func (s *stubAPI) DeleteComment(ctx context.Context, id string) error {
	s.record("delete_comment")
	if s.deleteComment == nil {
		return nil
	}
	return s.deleteComment(ctx, id)
}

func (s *stubAPI) UpdateProfile(ctx context.Context, u domain.ProfileUpdate) (*domain.User, error) {
	s.record("update_profile")
	if s.updateProfile == nil {
		return &domain.User{ID: "u1", FirstName: u.FirstName, LastName: u.LastName, Username: u.Username}, nil
	}
	return s.updateProfile(ctx, u)
}

func (s *stubAPI) UpdateAvatar(ctx context.Context, url string) (string, error) {
	s.record("update_avatar")
	if s.updateAvatar == nil {
		return url, nil
	}
	return s.updateAvatar(ctx, url)
}

func (s *stubAPI) UploadImage(ctx context.Context, name string, r io.Reader) (string, error) {
	s.record("upload_image")
	if s.uploadImage == nil {
		return "/images/" + name, nil
	}
	return s.uploadImage(ctx, name, r)
}

func (s *stubAPI) LinkTelegram(ctx context.Context, params map[string]string) error {
	s.record("link_telegram")
	if s.linkTelegram == nil {
		return nil
	}
	return s.linkTelegram(ctx, params)
}

// ---------------------------------------------------------------------------
// Stub credential store
// ---------------------------------------------------------------------------

type stubStore struct {
	mu      sync.Mutex
	cred    *domain.StoredCredential
	loadErr error
	cleared int
	saved   int
}

func (s *stubStore) Load(_ context.Context) (*domain.StoredCredential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	if s.cred == nil {
		return nil, ports.ErrNoCredential
	}
	c := *s.cred
	return &c, nil
}

func (s *stubStore) Save(_ context.Context, cred domain.StoredCredential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = &cred
	s.saved++
	return nil
}

func (s *stubStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = nil
	s.cleared++
	return nil
}

func (s *stubStore) stored() *domain.StoredCredential {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cred
}

// ---------------------------------------------------------------------------
// Clock
// ---------------------------------------------------------------------------

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
