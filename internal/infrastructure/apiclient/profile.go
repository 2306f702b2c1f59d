package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/startupscout/showcase/internal/core/domain"
)

// UpdateProfile applies profile edits and returns the updated identity.
func (c *Client) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.User, error) {
	var env userEnvelope
	if err := c.do(ctx, call{method: http.MethodPut, endpoint: pathProfile, path: pathProfile, body: update}, &env); err != nil {
		return nil, err
	}
	return env.User, nil
}

// UpdateAvatar points the profile avatar at avatarURL.
func (c *Client) UpdateAvatar(ctx context.Context, avatarURL string) (string, error) {
	var env avatarEnvelope
	body := map[string]string{"avatar": avatarURL}
	if err := c.do(ctx, call{method: http.MethodPut, endpoint: pathAvatar, path: pathAvatar, body: body}, &env); err != nil {
		return "", err
	}
	return env.Avatar, nil
}

// UploadImage sends an image as multipart field "image" and returns its public URL.
func (c *Client) UploadImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", filepath.Base(filename))
	if err != nil {
		return "", domain.NetworkError("could not build upload: %v", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", domain.ValidationFailed("image", fmt.Sprintf("could not read image: %v", err))
	}
	if err := mw.Close(); err != nil {
		return "", domain.NetworkError("could not build upload: %v", err)
	}

	var env uploadEnvelope
	cl := call{
		method:   http.MethodPost,
		endpoint: pathImageUpload,
		path:     pathImageUpload,
		raw:      &buf,
		rawType:  mw.FormDataContentType(),
	}
	if err := c.do(ctx, cl, &env); err != nil {
		return "", err
	}
	return env.ImageURL, nil
}

// LinkTelegram attaches a Telegram login widget payload to the current account.
func (c *Client) LinkTelegram(ctx context.Context, params map[string]string) error {
	return c.do(ctx, call{method: http.MethodPost, endpoint: pathTelegramLink, path: pathTelegramLink, body: params}, nil)
}
