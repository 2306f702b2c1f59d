package handler

import "github.com/startupscout/showcase/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Username string `json:"username" validate:"required,min=2"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

type userResponse struct {
	User *domain.User `json:"user"`
}

type profileUpdateRequest struct {
	FirstName string `json:"first_name" validate:"omitempty,max=100"`
	LastName  string `json:"last_name"  validate:"omitempty,max=100"`
	Username  string `json:"username"   validate:"omitempty,min=2,max=50"`
}

type profileUpdateResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

type avatarRequest struct {
	Avatar string `json:"avatar" validate:"required"`
}

type avatarResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Avatar  string `json:"avatar"`
}

type projectRequest struct {
	Name            string   `json:"name"             validate:"required,max=100"`
	Description     string   `json:"description"      validate:"required,max=300"`
	FullDescription string   `json:"full_description" validate:"required"`
	Images          []string `json:"images"           validate:"max=10,dive,required"`
	Creators        []string `json:"creators"         validate:"required,min=1,dive,required"`
	TelegramContact string   `json:"telegram_contact"`
	Website         string   `json:"website"          validate:"omitempty,url"`
}

type projectsResponse struct {
	Projects []domain.Project `json:"projects"`
}

type votesResponse struct {
	Votes []domain.Vote `json:"votes"`
}

type commentRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

type commentsResponse struct {
	Comments []domain.Comment `json:"comments"`
}

type statusResponse struct {
	Status string `json:"status"`
}

type uploadResponse struct {
	Success  bool   `json:"success"`
	FileName string `json:"file_name"`
	ImageURL string `json:"image_url"`
}
