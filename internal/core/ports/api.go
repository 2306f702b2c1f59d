package ports

import (
	"context"
	"io"

	"github.com/startupscout/showcase/internal/core/domain"
)

// AuthResult is a validated login or register response. Token is empty when the
// backend keeps the credential to itself.
type AuthResult struct {
	Token string
	User  domain.User
}

// AuthAPI covers the authentication endpoints.
type AuthAPI interface {
	Login(ctx context.Context, creds domain.Credentials) (*AuthResult, error)
	Register(ctx context.Context, reg domain.Registration) (*AuthResult, error)
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (*domain.User, error)
}

// ProjectAPI covers project listing and publishing.
type ProjectAPI interface {
	ListProjects(ctx context.Context) ([]domain.Project, error)
	GetProject(ctx context.Context, id string) (*domain.Project, error)
	CreateProject(ctx context.Context, req domain.ProjectCreateRequest) (*domain.Project, error)
	UserProjects(ctx context.Context, userID string) ([]domain.Project, error)
	Stats(ctx context.Context) (*domain.Stats, error)
}

// VoteAPI covers likes.
type VoteAPI interface {
	Vote(ctx context.Context, projectID string) error
	RemoveVote(ctx context.Context, projectID string) error
	UserVotes(ctx context.Context) ([]domain.Vote, error)
}

// CommentAPI covers project comments.
type CommentAPI interface {
	ListComments(ctx context.Context, projectID string) ([]domain.Comment, error)
	CreateComment(ctx context.Context, projectID, content string) (*domain.Comment, error)
	UpdateComment(ctx context.Context, commentID, content string) error
	DeleteComment(ctx context.Context, commentID string) error
}

// ProfileAPI covers profile edits, avatars, uploads and account linking.
type ProfileAPI interface {
	UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.User, error)
	UpdateAvatar(ctx context.Context, avatarURL string) (string, error)
	UploadImage(ctx context.Context, filename string, r io.Reader) (string, error)
	LinkTelegram(ctx context.Context, params map[string]string) error
}

// ShowcaseAPI is the full backend surface consumed by the client.
type ShowcaseAPI interface {
	AuthAPI
	ProjectAPI
	VoteAPI
	CommentAPI
	ProfileAPI
}

type tokenKey struct{}

// WithToken makes API calls made with ctx carry token instead of the current
// session's credential. Session bootstrap uses it to probe a stored credential
// before accepting it. A 401 for such a call does not fire the client's
// unauthorized handler.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext returns the override set by WithToken.
func TokenFromContext(ctx context.Context) (string, bool) {
	tok, ok := ctx.Value(tokenKey{}).(string)
	return tok, ok
}
