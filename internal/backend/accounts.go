package backend

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/startupscout/showcase/internal/core/domain"
	"github.com/startupscout/showcase/internal/core/ports"
)

// AccountService implements registration, login and profile edits.
type AccountService struct {
	repo             ports.UserRepository
	jwtSecret        string
	tokenTTL         time.Duration
	telegramBotToken string
	now              func() time.Time
}

var _ ports.AccountService = (*AccountService)(nil)

// NewAccountService returns an AccountService issuing HS256 tokens valid for
// tokenTTL. Telegram payloads are only verified when botToken is set.
func NewAccountService(repo ports.UserRepository, jwtSecret string, tokenTTL time.Duration, botToken string) *AccountService {
	if tokenTTL <= 0 {
		tokenTTL = domain.DefaultSessionTTL
	}
	return &AccountService{
		repo:             repo,
		jwtSecret:        jwtSecret,
		tokenTTL:         tokenTTL,
		telegramBotToken: botToken,
		now:              time.Now,
	}
}

func (s *AccountService) Register(ctx context.Context, reg domain.Registration) (string, *domain.User, error) {
	if reg.Email == "" || reg.Password == "" || reg.Username == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	now := s.now().UTC()
	user := &domain.User{
		Username:     reg.Username,
		Email:        strings.ToLower(reg.Email),
		PasswordHash: string(hash),
		AuthType:     domain.AuthTypeEmail,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return "", nil, err
	}

	token, err := s.generateToken(created)
	if err != nil {
		return "", nil, err
	}
	return token, created, nil
}

func (s *AccountService) Login(ctx context.Context, creds domain.Credentials) (string, *domain.User, error) {
	if creds.Email == "" || creds.Password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, creds.Email)
	if err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

func (s *AccountService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

// UpdateProfile overwrites the non-empty fields of update.
func (s *AccountService) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if update.FirstName != "" {
		user.FirstName = update.FirstName
	}
	if update.LastName != "" {
		user.LastName = update.LastName
	}
	if update.Username != "" {
		user.Username = update.Username
	}
	user.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AccountService) UpdateAvatar(ctx context.Context, userID, avatar string) error {
	if avatar == "" {
		return domain.ValidationFailed("avatar", "Avatar URL is required")
	}
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	user.Avatar = avatar
	user.UpdatedAt = s.now().UTC()
	return s.repo.Update(ctx, user)
}

// LinkTelegram attaches a Telegram login widget payload to the account.
func (s *AccountService) LinkTelegram(ctx context.Context, userID string, data map[string]string) error {
	if data["id"] == "" {
		return domain.ValidationFailed("id", "telegram id is required")
	}
	if s.telegramBotToken != "" && !VerifyTelegramHash(s.telegramBotToken, data) {
		return domain.ValidationFailed("hash", "invalid telegram hash")
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	user.TelegramID = data["id"]
	if user.FirstName == "" {
		user.FirstName = data["first_name"]
	}
	if user.LastName == "" {
		user.LastName = data["last_name"]
	}
	if user.Avatar == "" {
		user.Avatar = data["photo_url"]
	}
	user.UpdatedAt = s.now().UTC()
	return s.repo.Update(ctx, user)
}

// VerifyTelegramHash checks the login widget signature: an HMAC-SHA256 of the
// sorted "key=value" lines, keyed by the SHA-256 of the bot token.
func VerifyTelegramHash(botToken string, data map[string]string) bool {
	keys := make([]string, 0, len(data))
	for k := range data {
		if k != "hash" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	lines := make([]string, len(keys))
	for i, k := range keys {
		lines[i] = k + "=" + data[k]
	}

	secret := sha256.Sum256([]byte(botToken))
	mac := hmac.New(sha256.New, secret[:])
	mac.Write([]byte(strings.Join(lines, "\n")))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(data["hash"]))
}

func (s *AccountService) generateToken(user *domain.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"email":    user.Email,
		"username": user.Username,
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
