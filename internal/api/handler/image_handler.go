package handler

import (
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/startupscout/showcase/internal/core/ports"
)

// ImageHandler stores uploads and serves them back.
type ImageHandler struct {
	service   ports.ShowcaseService
	publicURL string
	maxBytes  int64
}

// NewImageHandler builds image URLs from publicURL. When it is empty the
// request's own scheme and host are used.
func NewImageHandler(service ports.ShowcaseService, publicURL string, maxBytes int64) *ImageHandler {
	return &ImageHandler{
		service:   service,
		publicURL: strings.TrimRight(publicURL, "/"),
		maxBytes:  maxBytes,
	}
}

// Upload handles POST /images/upload.
//
// @Summary      Upload an image
// @Tags         images
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        image  formData  file  true  "jpeg, png, gif or webp"
// @Success      200    {object}  uploadResponse
// @Failure      400    {object}  errorResponse
// @Failure      401    {object}  errorResponse
// @Router       /images/upload [post]
func (h *ImageHandler) Upload(c echo.Context) error {
	if _, err := ctxUserID(c); err != nil {
		return err
	}

	if h.maxBytes > 0 {
		// room for the multipart framing around the file itself
		c.Request().Body = http.MaxBytesReader(c.Response(), c.Request().Body, h.maxBytes+1<<20)
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "No file uploaded")
	}
	f, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Unable to read file")
	}
	defer f.Close()

	name, err := h.service.UploadImage(c.Request().Context(), fh.Filename, f)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, uploadResponse{
		Success:  true,
		FileName: name,
		ImageURL: h.baseURL(c) + "/images/" + name,
	})
}

// Serve handles GET and HEAD /images/:filename.
//
// @Summary      Fetch an uploaded image
// @Tags         images
// @Produce      image/jpeg,image/png,image/gif,image/webp
// @Param        filename  path  string  true  "File name"
// @Success      200
// @Failure      404  {object}  errorResponse
// @Router       /images/{filename} [get]
func (h *ImageHandler) Serve(c echo.Context) error {
	name := path.Base(c.Param("filename"))
	if name == "." || name == "/" {
		return echo.NewHTTPError(http.StatusNotFound, "image not found")
	}

	content, err := h.service.OpenImage(c.Request().Context(), name)
	if err != nil {
		return err
	}

	c.Response().Header().Set("Cache-Control", "public, max-age=86400")
	http.ServeContent(c.Response(), c.Request(), name, time.Time{}, content)
	return nil
}

func (h *ImageHandler) baseURL(c echo.Context) string {
	if h.publicURL != "" {
		return h.publicURL
	}
	return c.Scheme() + "://" + c.Request().Host
}
