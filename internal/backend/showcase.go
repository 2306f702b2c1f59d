package backend

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/startupscout/showcase/internal/core/domain"
	"github.com/startupscout/showcase/internal/core/ports"
)

// DefaultMaxImageBytes caps uploads.
const DefaultMaxImageBytes = 5 << 20

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type showcaseService struct {
	users         ports.UserRepository
	projects      ports.ProjectRepository
	comments      ports.CommentRepository
	images        ports.ImageRepository
	maxImageBytes int64
	log           zerolog.Logger
}

// NewShowcaseService returns a ShowcaseService over the given repositories.
func NewShowcaseService(store *Store, maxImageBytes int64, log zerolog.Logger) ports.ShowcaseService {
	if maxImageBytes <= 0 {
		maxImageBytes = DefaultMaxImageBytes
	}
	return &showcaseService{
		users:         store.Users,
		projects:      store.Projects,
		comments:      store.Comments,
		images:        store.Images,
		maxImageBytes: maxImageBytes,
		log:           log,
	}
}

func (s *showcaseService) Projects(ctx context.Context) ([]domain.Project, error) {
	launch, err := s.projects.ActiveLaunch(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return s.projects.List(ctx, launch.ID)
}

func (s *showcaseService) Project(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.FindByID(ctx, id)
}

func (s *showcaseService) CreateProject(ctx context.Context, userID string, req domain.ProjectCreateRequest) (*domain.Project, error) {
	launch, err := s.projects.ActiveLaunch(ctx)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	now := time.Now().UTC()
	p := &domain.Project{
		ID:              uuid.NewString(),
		Name:            req.Name,
		Description:     req.Description,
		FullDescription: req.FullDescription,
		Images:          append([]string{}, req.Images...),
		Creators:        append([]string{}, req.Creators...),
		TelegramContact: req.TelegramContact,
		Website:         req.Website,
		LaunchID:        launch.ID,
		UserID:          userID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if len(p.Images) > 0 {
		logo := p.Images[0]
		p.Logo = &logo
	}
	if err := s.projects.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	s.log.Info().Str("project_id", p.ID).Str("user_id", userID).Msg("project created")
	return p, nil
}

// UserProjects only lets members list their own projects.
func (s *showcaseService) UserProjects(ctx context.Context, requesterID, userID string) ([]domain.Project, error) {
	if requesterID != userID {
		return nil, domain.Forbidden("Forbidden")
	}
	return s.projects.ListByUser(ctx, userID)
}

func (s *showcaseService) Vote(ctx context.Context, userID, projectID string) error {
	if err := s.projects.AddVote(ctx, userID, projectID); err != nil {
		return err
	}
	s.log.Info().Str("user_id", userID).Str("project_id", projectID).Msg("vote processed")
	return nil
}

func (s *showcaseService) RemoveVote(ctx context.Context, userID, projectID string) error {
	if err := s.projects.RemoveVote(ctx, userID, projectID); err != nil {
		return err
	}
	s.log.Info().Str("user_id", userID).Str("project_id", projectID).Msg("vote removed")
	return nil
}

func (s *showcaseService) UserVotes(ctx context.Context, userID string) ([]domain.Vote, error) {
	return s.projects.VotesByUser(ctx, userID)
}

func (s *showcaseService) Comments(ctx context.Context, projectID string) ([]domain.Comment, error) {
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.comments.ListByProject(ctx, projectID)
}

func (s *showcaseService) CreateComment(ctx context.Context, userID, projectID, content string) (*domain.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, domain.ValidationFailed("content", "Comment content is required")
	}
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	c := &domain.Comment{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		UserID:    userID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return c, nil
}

func (s *showcaseService) UpdateComment(ctx context.Context, userID, commentID, content string) error {
	if strings.TrimSpace(content) == "" {
		return domain.ValidationFailed("content", "Comment content is required")
	}
	if err := s.ownComment(ctx, userID, commentID); err != nil {
		return err
	}
	return s.comments.Update(ctx, commentID, content)
}

func (s *showcaseService) DeleteComment(ctx context.Context, userID, commentID string) error {
	if err := s.ownComment(ctx, userID, commentID); err != nil {
		return err
	}
	return s.comments.Delete(ctx, commentID)
}

func (s *showcaseService) ownComment(ctx context.Context, userID, commentID string) error {
	c, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return err
	}
	if c.UserID != userID {
		return domain.Forbidden("comment does not belong to user")
	}
	return nil
}

func (s *showcaseService) Stats(ctx context.Context) (*domain.Stats, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	projects, err := s.projects.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	return &domain.Stats{UserCount: users, ProjectCount: projects}, nil
}

// UploadImage sniffs the content type, rejects anything but common image
// formats and returns the generated file name.
func (s *showcaseService) UploadImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxImageBytes+1))
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	if int64(len(data)) > s.maxImageBytes {
		return "", domain.ValidationFailed("image", fmt.Sprintf("file size exceeds maximum allowed size of %d bytes", s.maxImageBytes))
	}
	mime := http.DetectContentType(data)
	ext, ok := imageExtensions[mime]
	if !ok {
		return "", domain.ValidationFailed("image", fmt.Sprintf("file type %s is not allowed", mime))
	}

	sum := sha256.Sum256(data)
	name := uuid.NewString()[:8] + "_" + hex.EncodeToString(sum[:])[:8] + ext
	if err := s.images.Put(ctx, name, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	s.log.Info().Str("file_name", name).Str("original", filename).Msg("image uploaded")
	return name, nil
}

func (s *showcaseService) OpenImage(ctx context.Context, name string) (io.ReadSeeker, error) {
	return s.images.Open(ctx, name)
}
