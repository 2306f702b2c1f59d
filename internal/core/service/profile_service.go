package service

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/startupscout/showcase/internal/core/domain"
	"github.com/startupscout/showcase/internal/core/ports"
)

// ProfileBackend is the slice of the API the profile page needs.
type ProfileBackend interface {
	ports.ProfileAPI
	Profile(ctx context.Context) (*domain.User, error)
}

// ProfileSession is the slice of the SessionService the profile page needs.
type ProfileSession interface {
	Current() *domain.Session
	UpdateUser(user domain.User)
}

// ProfileService edits the logged-in user's profile and keeps the session
// identity current. Its errors fade after ProfileNoticeTTL.
type ProfileService struct {
	api      ProfileBackend
	sessions ProfileSession
	log      zerolog.Logger
	notice   *Notice
	scope    scope
}

// NewProfileService returns a service that edits the identity held by sessions.
func NewProfileService(api ProfileBackend, sessions ProfileSession, log zerolog.Logger) *ProfileService {
	return &ProfileService{
		api:      api,
		sessions: sessions,
		log:      log,
		notice:   NewNotice(ProfileNoticeTTL),
		scope:    newScope(),
	}
}

// UpdateProfile applies update and returns the new identity.
func (p *ProfileService) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.User, error) {
	if p.sessions.Current() == nil {
		return nil, p.fail(domain.ErrNotAuthenticated)
	}
	if update.Empty() {
		return nil, p.fail(domain.ValidationFailed("profile", "nothing to update"))
	}
	ctx, cancel := p.scope.join(ctx)
	defer cancel()

	user, err := p.api.UpdateProfile(ctx, update)
	if err != nil {
		return nil, p.fail(err)
	}
	p.accept(*user)
	return user, nil
}

// UpdateAvatar points the avatar at avatarURL, typically one returned by UploadImage.
func (p *ProfileService) UpdateAvatar(ctx context.Context, avatarURL string) (string, error) {
	sess := p.sessions.Current()
	if sess == nil {
		return "", p.fail(domain.ErrNotAuthenticated)
	}
	if avatarURL == "" {
		return "", p.fail(domain.ValidationFailed("avatar", "avatar is required"))
	}
	ctx, cancel := p.scope.join(ctx)
	defer cancel()

	avatar, err := p.api.UpdateAvatar(ctx, avatarURL)
	if err != nil {
		return "", p.fail(err)
	}
	user := sess.User
	user.Avatar = avatar
	p.accept(user)
	return avatar, nil
}

// UploadImage stores an image and returns its public URL.
func (p *ProfileService) UploadImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	if p.sessions.Current() == nil {
		return "", p.fail(domain.ErrNotAuthenticated)
	}
	if filename == "" || r == nil {
		return "", p.fail(domain.ValidationFailed("image", "image is required"))
	}
	ctx, cancel := p.scope.join(ctx)
	defer cancel()

	url, err := p.api.UploadImage(ctx, filename, r)
	if err != nil {
		return "", p.fail(err)
	}
	p.notice.Clear()
	return url, nil
}

// LinkTelegram attaches a Telegram login payload to the account and reloads
// the identity so the new telegram id shows up.
func (p *ProfileService) LinkTelegram(ctx context.Context, params map[string]string) error {
	if p.sessions.Current() == nil {
		return p.fail(domain.ErrNotAuthenticated)
	}
	if params["id"] == "" || params["hash"] == "" {
		return p.fail(domain.ValidationFailed("telegram", "telegram id and hash are required"))
	}
	ctx, cancel := p.scope.join(ctx)
	defer cancel()

	if err := p.api.LinkTelegram(ctx, params); err != nil {
		return p.fail(err)
	}
	user, err := p.api.Profile(ctx)
	if err != nil {
		p.log.Warn().Err(err).Msg("telegram linked but profile refresh failed")
		p.notice.Clear()
		return nil
	}
	p.accept(*user)
	return nil
}

// Notice exposes the error banner.
func (p *ProfileService) Notice() *Notice { return p.notice }

// Close cancels in-flight requests and any pending banner timer.
func (p *ProfileService) Close() {
	p.scope.close()
	p.notice.Stop()
}

func (p *ProfileService) accept(user domain.User) {
	if p.scope.closed() {
		return
	}
	p.sessions.UpdateUser(user)
	p.notice.Clear()
}

func (p *ProfileService) fail(err error) error {
	if !p.scope.closed() {
		p.notice.Set(err)
	}
	p.log.Debug().Err(err).Msg("profile request failed")
	return err
}
