package ports

import (
	"context"
	"io"

	"github.com/startupscout/showcase/internal/core/domain"
)

// UserRepository persists accounts of the reference backend.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Count(ctx context.Context) (int, error)
}

// ProjectRepository persists projects and the likes on them.
type ProjectRepository interface {
	ActiveLaunch(ctx context.Context) (*domain.Launch, error)
	List(ctx context.Context, launchID string) ([]domain.Project, error)
	Count(ctx context.Context) (int, error)
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Project, error)
	Create(ctx context.Context, p *domain.Project) error
	AddVote(ctx context.Context, userID, projectID string) error
	RemoveVote(ctx context.Context, userID, projectID string) error
	VotesByUser(ctx context.Context, userID string) ([]domain.Vote, error)
}

// CommentRepository persists project comments.
type CommentRepository interface {
	ListByProject(ctx context.Context, projectID string) ([]domain.Comment, error)
	FindByID(ctx context.Context, id string) (*domain.Comment, error)
	Create(ctx context.Context, c *domain.Comment) error
	Update(ctx context.Context, id, content string) error
	Delete(ctx context.Context, id string) error
}

// ImageRepository stores uploaded images.
type ImageRepository interface {
	Put(ctx context.Context, name string, r io.Reader) error
	Open(ctx context.Context, name string) (io.ReadSeeker, error)
}

// AccountService implements registration, login and profile management of
// the reference backend.
type AccountService interface {
	Register(ctx context.Context, reg domain.Registration) (string, *domain.User, error)
	Login(ctx context.Context, creds domain.Credentials) (string, *domain.User, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error)
	UpdateAvatar(ctx context.Context, userID, avatar string) error
	LinkTelegram(ctx context.Context, userID string, data map[string]string) error
}

// ShowcaseService implements projects, likes, comments, stats and images of
// the reference backend.
type ShowcaseService interface {
	Projects(ctx context.Context) ([]domain.Project, error)
	Project(ctx context.Context, id string) (*domain.Project, error)
	CreateProject(ctx context.Context, userID string, req domain.ProjectCreateRequest) (*domain.Project, error)
	UserProjects(ctx context.Context, requesterID, userID string) ([]domain.Project, error)
	Vote(ctx context.Context, userID, projectID string) error
	RemoveVote(ctx context.Context, userID, projectID string) error
	UserVotes(ctx context.Context, userID string) ([]domain.Vote, error)
	Comments(ctx context.Context, projectID string) ([]domain.Comment, error)
	CreateComment(ctx context.Context, userID, projectID, content string) (*domain.Comment, error)
	UpdateComment(ctx context.Context, userID, commentID, content string) error
	DeleteComment(ctx context.Context, userID, commentID string) error
	Stats(ctx context.Context) (*domain.Stats, error)
	UploadImage(ctx context.Context, filename string, r io.Reader) (string, error)
	OpenImage(ctx context.Context, name string) (io.ReadSeeker, error)
}
