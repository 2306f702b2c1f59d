package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/startupscout/showcase/internal/core/domain"
	"github.com/startupscout/showcase/internal/core/ports"
	"github.com/startupscout/showcase/internal/core/service"
	"github.com/startupscout/showcase/internal/infrastructure/apiclient"
	"github.com/startupscout/showcase/internal/infrastructure/credentials"
	redisdb "github.com/startupscout/showcase/internal/infrastructure/db/redis"
	"github.com/startupscout/showcase/internal/pkg/config"
	"github.com/startupscout/showcase/pkg/logger"
)

// app wires the SDK for one command invocation.
type app struct {
	client   *apiclient.Client
	sessions *service.SessionService
	monitor  *service.ExpiryMonitor
	closers  []func()
}

// newApp builds the client stack and restores any persisted session.
func newApp(ctx context.Context) (*app, error) {
	store, closeStore, err := openCredentialStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	client := apiclient.New(
		apiclient.Config{BaseURL: cfg.API.BaseURL, Timeout: cfg.API.Timeout},
		apiclient.WithLogger(logger.For("apiclient")),
	)
	sessions := service.NewSessionService(client, store, logger.For("session"),
		service.WithSessionTTL(cfg.Session.TTL),
		service.WithExpiryPolicy(service.ExpiryPolicy(cfg.Session.ExpiryPolicy)),
		service.WithIssuedAt(credentials.IssuedAt),
	)
	monitor := service.NewExpiryMonitor(sessions, cfg.Session.CheckInterval, logger.For("expiry"))

	client.SetTokenSource(sessions)
	client.OnUnauthorized(monitor.HandleUnauthorized)

	sessions.Bootstrap(ctx)

	return &app{
		client:   client,
		sessions: sessions,
		monitor:  monitor,
		closers:  []func(){closeStore},
	}, nil
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// session returns the current session or ErrNotAuthenticated.
func (a *app) session() (*domain.Session, error) {
	sess := a.sessions.Current()
	if sess == nil {
		return nil, domain.ErrNotAuthenticated
	}
	return sess, nil
}

func openCredentialStore(ctx context.Context, c *config.Config) (ports.CredentialStore, func(), error) {
	switch c.Credentials.Store {
	case config.StoreMemory:
		return credentials.NewMemoryStore(), func() {}, nil
	case config.StoreRedis:
		client, err := redisdb.Connect(ctx, c.Redis)
		if err != nil {
			return nil, nil, fmt.Errorf("credential store: %w", err)
		}
		store := redisdb.NewCredentialStore(client, c.Redis.KeyPrefix, c.Session.TTL)
		return store, func() { _ = client.Close() }, nil
	default:
		path := c.Credentials.File
		if path == "" {
			var err error
			if path, err = credentials.DefaultPath(); err != nil {
				return nil, nil, fmt.Errorf("credential store: %w", err)
			}
		}
		return credentials.NewFileStore(path), func() {}, nil
	}
}

// userMessage renders err for the terminal.
func userMessage(err error) string {
	if errors.Is(err, domain.ErrAuth) {
		return domain.Message(err) + " (run `scout login`)"
	}
	return domain.Message(err)
}
