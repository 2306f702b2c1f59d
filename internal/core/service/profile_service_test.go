package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/startupscout/showcase/internal/core/domain"
)

func newProfileSvc(t *testing.T, api *stubAPI) (*ProfileService, *SessionService) {
	t.Helper()
	sessions := loggedIn(t, api, &stubStore{}, newFakeClock())
	p := NewProfileService(api, sessions, zerolog.Nop())
	t.Cleanup(p.Close)
	return p, sessions
}

func TestProfile_UpdateRefreshesIdentity(t *testing.T) {
	api := &stubAPI{}
	p, sessions := newProfileSvc(t, api)

	if _, err := p.UpdateProfile(context.Background(), domain.ProfileUpdate{}); domain.KindOf(err) != domain.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	user, err := p.UpdateProfile(context.Background(), domain.ProfileUpdate{FirstName: "Ana", LastName: "Lima"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if sessions.Current().User.DisplayName() != "Ana Lima" || user.FirstName != "Ana" {
		t.Fatalf("expected session identity updated, got %+v", sessions.Current().User)
	}
}

func TestProfile_AvatarAndUpload(t *testing.T) {
	api := &stubAPI{}
	p, sessions := newProfileSvc(t, api)

	url, err := p.UploadImage(context.Background(), "me.png", strings.NewReader("png"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	avatar, err := p.UpdateAvatar(context.Background(), url)
	if err != nil {
		t.Fatalf("avatar: %v", err)
	}
	if sessions.Current().User.Avatar != avatar || avatar != "/images/me.png" {
		t.Fatalf("unexpected avatar %q", sessions.Current().User.Avatar)
	}
}

func TestProfile_LinkTelegram(t *testing.T) {
	api := &stubAPI{profile: func(context.Context) (*domain.User, error) {
		return &domain.User{ID: "u1", TelegramID: "777"}, nil
	}}
	p, sessions := newProfileSvc(t, api)

	if err := p.LinkTelegram(context.Background(), map[string]string{"id": "777"}); domain.KindOf(err) != domain.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := p.LinkTelegram(context.Background(), map[string]string{"id": "777", "hash": "abc"}); err != nil {
		t.Fatalf("link: %v", err)
	}
	if sessions.Current().User.TelegramID != "777" {
		t.Fatal("expected identity refreshed")
	}
}

func TestProfile_ErrorsGoToNotice(t *testing.T) {
	fail := domain.ServerError(500, "storage full")
	api := &stubAPI{uploadImage: func(context.Context, string, io.Reader) (string, error) {
		return "", fail
	}}
	p, _ := newProfileSvc(t, api)

	if _, err := p.UploadImage(context.Background(), "me.png", strings.NewReader("png")); !errors.Is(err, fail) {
		t.Fatalf("expected upload error, got %v", err)
	}
	if p.Notice().Message() != "storage full" {
		t.Fatalf("unexpected notice %q", p.Notice().Message())
	}
}

func TestNotice_AutoClear(t *testing.T) {
	n := NewNotice(20 * time.Millisecond)
	defer n.Stop()

	n.Set(errors.New("first"))
	if n.Message() != "first" {
		t.Fatalf("unexpected message %q", n.Message())
	}
	deadline := time.Now().Add(2 * time.Second)
	for n.Err() != nil {
		if time.Now().After(deadline) {
			t.Fatal("notice did not clear")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestNotice_NewerErrorSurvivesOldTimer(t *testing.T) {
	n := NewNotice(50 * time.Millisecond)
	defer n.Stop()

	n.Set(errors.New("first"))
	time.Sleep(30 * time.Millisecond)
	n.Set(errors.New("second"))
	time.Sleep(30 * time.Millisecond)
	if n.Message() != "second" {
		t.Fatalf("expected newer error still visible, got %q", n.Message())
	}
}
