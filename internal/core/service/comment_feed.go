package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/startupscout/showcase/internal/core/domain"
	"github.com/startupscout/showcase/internal/core/ports"
)

// CommentFeed holds the comments of one project, newest first.
type CommentFeed struct {
	api       ports.CommentAPI
	sessions  SessionSource
	projectID string
	now       func() time.Time
	log       zerolog.Logger
	notice    *Notice
	scope     scope

	mu       sync.RWMutex
	comments []domain.Comment
}

// NewCommentFeed returns a feed for one project's comments.
func NewCommentFeed(api ports.CommentAPI, sessions SessionSource, projectID string, log zerolog.Logger) *CommentFeed {
	return &CommentFeed{
		api:       api,
		sessions:  sessions,
		projectID: projectID,
		now:       time.Now,
		log:       log.With().Str("project_id", projectID).Logger(),
		notice:    NewNotice(0),
		scope:     newScope(),
	}
}

// Fetch replaces the list with the backend's.
func (f *CommentFeed) Fetch(ctx context.Context) ([]domain.Comment, error) {
	ctx, cancel := f.scope.join(ctx)
	defer cancel()

	comments, err := f.api.ListComments(ctx, f.projectID)
	if err != nil {
		return nil, f.fail(err)
	}
	if !f.scope.closed() {
		f.mu.Lock()
		f.comments = comments
		f.mu.Unlock()
		f.notice.Clear()
	}
	return cloneComments(comments), nil
}

// Create posts a comment and puts it at the top of the list.
func (f *CommentFeed) Create(ctx context.Context, content string) (*domain.Comment, error) {
	if f.sessions.Current() == nil {
		return nil, f.fail(domain.ErrNotAuthenticated)
	}
	if err := validateForm(domain.CommentRequest{Content: content}); err != nil {
		return nil, f.fail(err)
	}
	ctx, cancel := f.scope.join(ctx)
	defer cancel()

	c, err := f.api.CreateComment(ctx, f.projectID, content)
	if err != nil {
		return nil, f.fail(err)
	}
	if !f.scope.closed() {
		f.mu.Lock()
		f.comments = append([]domain.Comment{*c}, f.comments...)
		f.mu.Unlock()
		f.notice.Clear()
	}
	return c, nil
}

// Update edits one of the caller's comments. The local copy is patched
// before the call and is not restored if the call fails.
func (f *CommentFeed) Update(ctx context.Context, commentID, content string) error {
	if _, err := f.owned(commentID, "edit"); err != nil {
		return f.fail(err)
	}
	if err := validateForm(domain.CommentRequest{Content: content}); err != nil {
		return f.fail(err)
	}

	f.mu.Lock()
	for i := range f.comments {
		if f.comments[i].ID == commentID {
			f.comments[i].Content = content
			f.comments[i].UpdatedAt = f.now()
		}
	}
	f.mu.Unlock()

	ctx, cancel := f.scope.join(ctx)
	defer cancel()
	if err := f.api.UpdateComment(ctx, commentID, content); err != nil {
		return f.fail(err)
	}
	f.notice.Clear()
	return nil
}

// Delete removes one of the caller's comments once the backend confirms.
func (f *CommentFeed) Delete(ctx context.Context, commentID string) error {
	if _, err := f.owned(commentID, "delete"); err != nil {
		return f.fail(err)
	}
	ctx, cancel := f.scope.join(ctx)
	defer cancel()

	if err := f.api.DeleteComment(ctx, commentID); err != nil {
		return f.fail(err)
	}
	if !f.scope.closed() {
		f.mu.Lock()
		kept := f.comments[:0]
		for _, c := range f.comments {
			if c.ID != commentID {
				kept = append(kept, c)
			}
		}
		f.comments = kept
		f.mu.Unlock()
		f.notice.Clear()
	}
	return nil
}

// owned finds commentID in the list and checks that the session user wrote it.
func (f *CommentFeed) owned(commentID, verb string) (domain.Comment, error) {
	sess := f.sessions.Current()
	if sess == nil {
		return domain.Comment{}, domain.ErrNotAuthenticated
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, c := range f.comments {
		if c.ID != commentID {
			continue
		}
		if c.UserID != sess.User.ID {
			return c, domain.Forbidden("you can only " + verb + " your own comments")
		}
		return c, nil
	}
	return domain.Comment{}, domain.ValidationFailed("comment_id", "comment not found")
}

// Comments returns a copy of the list.
func (f *CommentFeed) Comments() []domain.Comment {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return cloneComments(f.comments)
}

// Notice exposes the feed's error banner.
func (f *CommentFeed) Notice() *Notice { return f.notice }

// Close cancels in-flight requests. Later results are discarded.
func (f *CommentFeed) Close() {
	f.scope.close()
	f.notice.Stop()
}

func (f *CommentFeed) fail(err error) error {
	if !f.scope.closed() {
		f.notice.Set(err)
	}
	f.log.Debug().Err(err).Msg("comment request failed")
	return err
}

func cloneComments(in []domain.Comment) []domain.Comment {
	if in == nil {
		return nil
	}
	out := make([]domain.Comment, len(in))
	copy(out, in)
	return out
}
