package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/startupscout/showcase/internal/core/domain"
	"github.com/startupscout/showcase/internal/core/ports"
	"github.com/startupscout/showcase/internal/pkg/metrics"
)

// ExpiryPolicy decides what the front end does once a session expires.
type ExpiryPolicy string

const (
	// PolicyDowngrade drops silently to anonymous.
	PolicyDowngrade ExpiryPolicy = "downgrade"
	// PolicyRequireLogin flags the expiry event so the front end asks for a new login.
	PolicyRequireLogin ExpiryPolicy = "require-login"
)

// IssuedAtFunc extracts the issue time embedded in a credential, if any.
type IssuedAtFunc func(token string) (time.Time, bool)

// SessionService owns the client's authenticated identity: it restores it at
// startup, swaps it on login and register, and tears it down on logout and
// expiry. It is the API client's TokenSource.
type SessionService struct {
	api      ports.AuthAPI
	store    ports.CredentialStore
	ttl      time.Duration
	policy   ExpiryPolicy
	issuedAt IssuedAtFunc
	now      func() time.Time
	log      zerolog.Logger

	mu      sync.RWMutex
	session *domain.Session
	probe   string
	loading bool

	notice *Notice
	events *subject
}

// SessionOption customises a SessionService.
type SessionOption func(*SessionService)

// WithSessionTTL overrides the validity window.
func WithSessionTTL(ttl time.Duration) SessionOption {
	return func(s *SessionService) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithExpiryPolicy selects the single expiry policy this process runs.
func WithExpiryPolicy(p ExpiryPolicy) SessionOption {
	return func(s *SessionService) { s.policy = p }
}

// WithIssuedAt lets the service read the issue time out of tokens.
func WithIssuedAt(fn IssuedAtFunc) SessionOption {
	return func(s *SessionService) { s.issuedAt = fn }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) SessionOption {
	return func(s *SessionService) { s.now = now }
}

// NewSessionService returns a store in the loading state. Call Bootstrap once.
func NewSessionService(api ports.AuthAPI, store ports.CredentialStore, log zerolog.Logger, opts ...SessionOption) *SessionService {
	s := &SessionService{
		api:     api,
		store:   store,
		ttl:     domain.DefaultSessionTTL,
		policy:  PolicyDowngrade,
		now:     time.Now,
		log:     log,
		loading: true,
		notice:  NewNotice(0),
		events:  newSubject(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Bootstrap restores a persisted session. Every failure ends anonymous and
// is never surfaced: a missing, stale or rejected credential just means the
// user is not logged in.
func (s *SessionService) Bootstrap(ctx context.Context) {
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.probe = ""
		s.mu.Unlock()
	}()

	cred, err := s.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, ports.ErrNoCredential) {
			s.log.Warn().Err(err).Msg("could not read stored credential")
		}
		return
	}

	issued := cred.IssuedAt
	if issued.IsZero() {
		issued = s.issueTime(cred.Token)
	}
	candidate := domain.Session{Token: cred.Token, IssuedAt: issued}
	if candidate.Expired(s.now(), s.ttl) {
		s.log.Debug().Dur("age", candidate.Age(s.now())).Msg("stored credential outlived its window")
		s.clearStore(ctx)
		return
	}

	s.mu.Lock()
	s.probe = cred.Token
	s.mu.Unlock()

	user, err := s.api.Profile(ports.WithToken(ctx, cred.Token))
	if err != nil {
		s.log.Debug().Err(err).Msg("stored credential rejected")
		// A login that finished during the probe has already saved its own
		// credential.
		if domain.KindOf(err) == domain.KindAuth && s.Current() == nil {
			s.clearStore(ctx)
		}
		return
	}
	candidate.User = *user

	s.mu.Lock()
	if s.session != nil {
		// A login finished while the probe was in flight; it wins.
		s.mu.Unlock()
		return
	}
	s.session = &candidate
	s.mu.Unlock()

	s.log.Info().Str("user_id", user.ID).Msg("session restored")
	s.events.publish(SessionEvent{Kind: EventLogin, Session: candidate.Clone(), Reason: "restored"})
}

// Login authenticates with email and password and replaces the session.
func (s *SessionService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	creds := domain.Credentials{Email: email, Password: password}
	if err := validateForm(creds); err != nil {
		s.notice.Set(err)
		return nil, err
	}
	res, err := s.api.Login(ctx, creds)
	if err != nil {
		s.notice.Set(err)
		return nil, err
	}
	return s.accept(ctx, res, "login"), nil
}

// Register creates an account and replaces the session with it.
func (s *SessionService) Register(ctx context.Context, email, username, password string) (*domain.Session, error) {
	reg := domain.Registration{Email: email, Username: username, Password: password}
	if err := validateForm(reg); err != nil {
		s.notice.Set(err)
		return nil, err
	}
	res, err := s.api.Register(ctx, reg)
	if err != nil {
		s.notice.Set(err)
		return nil, err
	}
	return s.accept(ctx, res, "register"), nil
}

// accept swaps in the new session in one step so no reader ever sees the old
// user paired with the new token.
func (s *SessionService) accept(ctx context.Context, res *ports.AuthResult, reason string) *domain.Session {
	sess := &domain.Session{
		User:     res.User,
		Token:    res.Token,
		IssuedAt: s.issueTime(res.Token),
	}

	s.mu.Lock()
	s.session = sess
	s.loading = false
	s.mu.Unlock()
	s.notice.Clear()

	if err := s.store.Save(ctx, domain.StoredCredential{Token: sess.Token, UserID: sess.User.ID, IssuedAt: sess.IssuedAt}); err != nil {
		s.log.Warn().Err(err).Msg("could not persist credential")
	}
	metrics.SessionTransitionsTotal.WithLabelValues(string(EventLogin)).Inc()
	s.log.Info().Str("user_id", sess.User.ID).Str("via", reason).Msg("logged in")

	s.events.publish(SessionEvent{Kind: EventLogin, Session: sess.Clone(), Reason: reason})
	return sess.Clone()
}

// Logout tells the backend to forget the credential. The local session and
// the persisted credential are cleared whether or not that call succeeds.
func (s *SessionService) Logout(ctx context.Context) {
	if err := s.api.Logout(ctx); err != nil {
		s.log.Warn().Err(err).Msg("logout request failed, clearing local session anyway")
	}

	s.mu.Lock()
	s.session = nil
	s.mu.Unlock()
	s.notice.Clear()
	s.clearStore(context.WithoutCancel(ctx))

	metrics.SessionTransitionsTotal.WithLabelValues(string(EventLogout)).Inc()
	s.log.Info().Msg("logged out")
	s.events.publish(SessionEvent{Kind: EventLogout})
}

// Expire ends the session for reason. It reports false when there was no
// session to expire.
func (s *SessionService) Expire(reason string) bool {
	s.mu.Lock()
	if s.session == nil {
		s.mu.Unlock()
		return false
	}
	userID := s.session.User.ID
	s.session = nil
	s.mu.Unlock()

	s.clearStore(context.Background())

	metrics.SessionExpirationsTotal.WithLabelValues(reason).Inc()
	metrics.SessionTransitionsTotal.WithLabelValues(string(EventExpired)).Inc()
	s.log.Info().Str("user_id", userID).Str("reason", reason).Str("policy", string(s.policy)).Msg("session expired")

	s.events.publish(SessionEvent{
		Kind:          EventExpired,
		Reason:        reason,
		LoginRequired: s.policy == PolicyRequireLogin,
	})
	return true
}

// ExpireIfStale expires the session once it has outlived the validity window.
func (s *SessionService) ExpireIfStale() bool {
	s.mu.RLock()
	stale := s.session != nil && s.session.Expired(s.now(), s.ttl)
	s.mu.RUnlock()
	if !stale {
		return false
	}
	return s.Expire(ReasonWindow)
}

// UpdateUser replaces the identity after a profile edit.
func (s *SessionService) UpdateUser(user domain.User) {
	s.mu.Lock()
	if s.session == nil || s.session.User.ID != user.ID {
		s.mu.Unlock()
		return
	}
	next := *s.session
	next.User = user
	s.session = &next
	s.mu.Unlock()

	metrics.SessionTransitionsTotal.WithLabelValues(string(EventUpdated)).Inc()
	s.events.publish(SessionEvent{Kind: EventUpdated, Session: next.Clone()})
}

// Current returns a copy of the session, or nil when anonymous.
func (s *SessionService) Current() *domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	return s.session.Clone()
}

// Token implements apiclient.TokenSource.
func (s *SessionService) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session != nil {
		return s.session.Token
	}
	return s.probe
}

// Loading reports whether Bootstrap has not finished yet.
func (s *SessionService) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the last login or register failure.
func (s *SessionService) Err() error { return s.notice.Err() }

// Notice exposes the error banner.
func (s *SessionService) Notice() *Notice { return s.notice }

// Policy returns the configured expiry policy.
func (s *SessionService) Policy() ExpiryPolicy { return s.policy }

// Subscribe returns a buffered channel of session events and a func that
// cancels the subscription and closes the channel.
func (s *SessionService) Subscribe() (<-chan SessionEvent, func()) {
	return s.events.subscribe()
}

// Observe registers fn to run synchronously after every session change.
func (s *SessionService) Observe(fn func(SessionEvent)) func() {
	return s.events.observe(fn)
}

func (s *SessionService) issueTime(token string) time.Time {
	if s.issuedAt != nil {
		if t, ok := s.issuedAt(token); ok {
			return t
		}
	}
	return s.now()
}

func (s *SessionService) clearStore(ctx context.Context) {
	if err := s.store.Clear(ctx); err != nil {
		s.log.Warn().Err(err).Msg("could not clear stored credential")
	}
}
