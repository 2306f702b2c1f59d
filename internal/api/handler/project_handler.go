package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/startupscout/showcase/internal/core/domain"
	"github.com/startupscout/showcase/internal/core/ports"
)

// ProjectHandler serves projects, likes and site stats.
type ProjectHandler struct {
	service ports.ShowcaseService
}

func NewProjectHandler(service ports.ShowcaseService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// List handles GET /projects.
//
// @Summary      Projects of the active launch
// @Tags         projects
// @Produce      json
// @Success      200  {object}  projectsResponse
// @Failure      500  {object}  errorResponse
// @Router       /projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	projects, err := h.service.Projects(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projectsResponse{Projects: projects})
}

// Get handles GET /projects/:id.
//
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  domain.Project
// @Failure      404  {object}  errorResponse
// @Router       /projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid project ID")
	}

	project, err := h.service.Project(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

// Create handles POST /projects.
//
// @Summary      Publish a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      projectRequest  true  "Project"
// @Success      201   {object}  domain.Project
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req projectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	project, err := h.service.CreateProject(c.Request().Context(), userID, domain.ProjectCreateRequest{
		Name:            req.Name,
		Description:     req.Description,
		FullDescription: req.FullDescription,
		Images:          req.Images,
		Creators:        req.Creators,
		TelegramContact: req.TelegramContact,
		Website:         req.Website,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, project)
}

// UserProjects handles GET /users/:id/projects. Members may only list their own.
//
// @Summary      Projects published by a user
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  projectsResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /users/{id}/projects [get]
func (h *ProjectHandler) UserProjects(c echo.Context) error {
	requesterID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	projects, err := h.service.UserProjects(c.Request().Context(), requesterID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projectsResponse{Projects: projects})
}

// Stats handles GET /stats.
//
// @Summary      Site-wide counters
// @Tags         stats
// @Produce      json
// @Success      200  {object}  domain.Stats
// @Router       /stats [get]
func (h *ProjectHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
