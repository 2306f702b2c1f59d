package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/startupscout/showcase/internal/core/domain"
)

type stubAccounts struct {
	registerFn     func(ctx context.Context, reg domain.Registration) (string, *domain.User, error)
	loginFn        func(ctx context.Context, creds domain.Credentials) (string, *domain.User, error)
	profileFn      func(ctx context.Context, userID string) (*domain.User, error)
	updateFn       func(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error)
	avatarFn       func(ctx context.Context, userID, avatar string) error
	linkTelegramFn func(ctx context.Context, userID string, data map[string]string) error
}

func (s *stubAccounts) Register(ctx context.Context, reg domain.Registration) (string, *domain.User, error) {
	return s.registerFn(ctx, reg)
}

func (s *stubAccounts) Login(ctx context.Context, creds domain.Credentials) (string, *domain.User, error) {
	return s.loginFn(ctx, creds)
}

func (s *stubAccounts) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.profileFn(ctx, userID)
}

func (s *stubAccounts) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error) {
	return s.updateFn(ctx, userID, update)
}

func (s *stubAccounts) UpdateAvatar(ctx context.Context, userID, avatar string) error {
	return s.avatarFn(ctx, userID, avatar)
}

func (s *stubAccounts) LinkTelegram(ctx context.Context, userID string, data map[string]string) error {
	return s.linkTelegramFn(ctx, userID, data)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

// runHandler executes h and renders a returned error the way the router would.
func runHandler(t *testing.T, e *echo.Echo, c echo.Context, h echo.HandlerFunc) {
	t.Helper()
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newEcho()
	stub := &stubAccounts{
		registerFn: func(ctx context.Context, reg domain.Registration) (string, *domain.User, error) {
			if reg.Email != "ana@example.com" || reg.Username != "ana" {
				t.Fatalf("unexpected args: %+v", reg)
			}
			return "tok", &domain.User{ID: "u1", Username: reg.Username, Email: reg.Email}, nil
		},
	}
	handler := NewAuthHandler(stub)

	req := jsonRequest(http.MethodPost, "/auth/email/register", `{"email":"ana@example.com","username":"ana","password":"secret1"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "tok" {
		t.Fatalf("expected token, got %+v", resp)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["id"] != "u1" {
		t.Fatalf("unexpected user payload: %+v", resp["user"])
	}
	if _, leaked := user["PasswordHash"]; leaked {
		t.Fatalf("password hash leaked")
	}
}

func TestAuthHandler_Register_ValidationFails(t *testing.T) {
	e := newEcho()
	handler := NewAuthHandler(&stubAccounts{})

	req := jsonRequest(http.MethodPost, "/auth/email/register", `{"email":"not-an-email","username":"ana","password":"secret1"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	runHandler(t, e, c, handler.Register)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "email must be a valid email") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuthHandler_Register_UserExists(t *testing.T) {
	e := newEcho()
	stub := &stubAccounts{
		registerFn: func(ctx context.Context, reg domain.Registration) (string, *domain.User, error) {
			return "", nil, domain.ErrUserExists
		},
	}
	handler := NewAuthHandler(stub)

	req := jsonRequest(http.MethodPost, "/auth/email/register", `{"email":"ana@example.com","username":"ana","password":"secret1"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Register(c); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists to reach the error handler, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newEcho()
	stub := &stubAccounts{
		loginFn: func(ctx context.Context, creds domain.Credentials) (string, *domain.User, error) {
			if creds.Email != "ana@example.com" || creds.Password != "secret1" {
				t.Fatalf("unexpected credentials: %+v", creds)
			}
			return "jwt", &domain.User{ID: "u1"}, nil
		},
	}
	handler := NewAuthHandler(stub)

	req := jsonRequest(http.MethodPost, "/auth/email/login", `{"email":"ana@example.com","password":"secret1"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"token":"jwt"`) {
		t.Fatalf("token missing: %s", rec.Body.String())
	}
}

func TestAuthHandler_Login_BadPayload(t *testing.T) {
	e := newEcho()
	handler := NewAuthHandler(&stubAccounts{})

	req := jsonRequest(http.MethodPost, "/auth/email/login", `{bad json`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	runHandler(t, e, c, handler.Login)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_LinkTelegram_RequiresIdentity(t *testing.T) {
	e := newEcho()
	handler := NewAuthHandler(&stubAccounts{})

	req := jsonRequest(http.MethodPost, "/auth/telegram/link", `{"id":"1"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	runHandler(t, e, c, handler.LinkTelegram)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_LinkTelegram_PassesPayload(t *testing.T) {
	e := newEcho()
	var got map[string]string
	stub := &stubAccounts{
		linkTelegramFn: func(ctx context.Context, userID string, data map[string]string) error {
			if userID != "u1" {
				t.Fatalf("unexpected user %q", userID)
			}
			got = data
			return nil
		},
	}
	handler := NewAuthHandler(stub)

	req := jsonRequest(http.MethodPost, "/auth/telegram/link", `{"id":"42","hash":"abc"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "u1")

	if err := handler.LinkTelegram(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got["id"] != "42" || got["hash"] != "abc" {
		t.Fatalf("unexpected payload %+v", got)
	}
}

// ----------------------------------------------------------------------------
// Profile
// ----------------------------------------------------------------------------

func TestProfileHandler_UpdateResponseShape(t *testing.T) {
	e := newEcho()
	stub := &stubAccounts{
		updateFn: func(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error) {
			return &domain.User{ID: userID, Username: "ana", FirstName: update.FirstName}, nil
		},
	}
	handler := NewProfileHandler(stub)

	req := jsonRequest(http.MethodPut, "/profile", `{"first_name":"Ana"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "u1")

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp profileUpdateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Success || resp.User == nil || resp.User.FirstName != "Ana" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestProfileHandler_AvatarRequired(t *testing.T) {
	e := newEcho()
	handler := NewProfileHandler(&stubAccounts{})

	req := jsonRequest(http.MethodPut, "/profile/avatar", `{}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "u1")
	runHandler(t, e, c, handler.UpdateAvatar)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Avatar URL is required") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
