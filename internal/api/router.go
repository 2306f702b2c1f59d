package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/startupscout/showcase/docs"
	"github.com/startupscout/showcase/internal/api/handler"
	"github.com/startupscout/showcase/internal/api/middleware"
	"github.com/startupscout/showcase/internal/core/ports"
)

// Deps are the services the router exposes.
type Deps struct {
	Accounts  ports.AccountService
	Showcase  ports.ShowcaseService
	JWTSecret string
	Log       zerolog.Logger

	// PublicURL prefixes image URLs. Empty means "derive from the request".
	PublicURL     string
	MaxImageBytes int64

	Checks map[string]handler.Check

	// Registry receives the HTTP metrics. A fresh one is created when nil.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	reg := d.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "devserver",
		Registerer: reg,
	}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.Accounts)
	profileHandler := handler.NewProfileHandler(d.Accounts)
	projectHandler := handler.NewProjectHandler(d.Showcase)
	voteHandler := handler.NewVoteHandler(d.Showcase)
	commentHandler := handler.NewCommentHandler(d.Showcase)
	imageHandler := handler.NewImageHandler(d.Showcase, d.PublicURL, d.MaxImageBytes)
	authMiddleware := middleware.Auth(d.JWTSecret)

	// --- Public routes ---
	e.POST("/auth/email/register", authHandler.Register)
	e.POST("/auth/email/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/projects", projectHandler.List)
	e.GET("/projects/:id", projectHandler.Get)
	e.GET("/projects/:id/comments", commentHandler.List)
	e.GET("/stats", projectHandler.Stats)
	e.GET("/images/:filename", imageHandler.Serve)
	e.HEAD("/images/:filename", imageHandler.Serve)

	// --- Authenticated routes ---
	e.POST("/auth/telegram/link", authHandler.LinkTelegram, authMiddleware)
	e.GET("/profile", profileHandler.Get, authMiddleware)
	e.PUT("/profile", profileHandler.Update, authMiddleware)
	e.PUT("/profile/avatar", profileHandler.UpdateAvatar, authMiddleware)
	e.POST("/projects", projectHandler.Create, authMiddleware)
	e.GET("/users/:id/projects", projectHandler.UserProjects, authMiddleware)
	e.POST("/projects/:id/vote", voteHandler.Vote, authMiddleware)
	e.DELETE("/projects/:id/vote", voteHandler.RemoveVote, authMiddleware)
	e.GET("/votes", voteHandler.List, authMiddleware)
	e.POST("/projects/:id/comments", commentHandler.Create, authMiddleware)
	e.PUT("/comments/:id", commentHandler.Update, authMiddleware)
	e.DELETE("/comments/:id", commentHandler.Delete, authMiddleware)
	e.POST("/images/upload", imageHandler.Upload, authMiddleware)

	// --- Health probes and docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Checks)

	e.GET("/health", healthHandler.Liveness)            // liveness
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
