package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/startupscout/showcase/internal/core/ports"
)

type VoteHandler struct {
	service ports.ShowcaseService
}

func NewVoteHandler(service ports.ShowcaseService) *VoteHandler {
	return &VoteHandler{service: service}
}

// Vote handles POST /projects/:id/vote. Liking twice is not an error.
//
// @Summary      Like a project
// @Tags         votes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  statusResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /projects/{id}/vote [post]
func (h *VoteHandler) Vote(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	if err := h.service.Vote(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Status: "success"})
}

// RemoveVote handles DELETE /projects/:id/vote.
//
// @Summary      Withdraw a like
// @Tags         votes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  statusResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /projects/{id}/vote [delete]
func (h *VoteHandler) RemoveVote(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	if err := h.service.RemoveVote(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Status: "success"})
}

// List handles GET /votes.
//
// @Summary      Likes of the current user
// @Tags         votes
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  votesResponse
// @Failure      401  {object}  errorResponse
// @Router       /votes [get]
func (h *VoteHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	votes, err := h.service.UserVotes(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, votesResponse{Votes: votes})
}
