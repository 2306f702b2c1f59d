package apiclient

import "github.com/startupscout/showcase/internal/core/domain"

// Response envelopes. The validate tags are the contract: a body that does not
// satisfy them is rejected as malformed instead of leaking zero values.
// List envelopes accept null, which the backend sends for an empty result.

type authEnvelope struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type userEnvelope struct {
	User *domain.User `json:"user" validate:"required"`
}

type projectsEnvelope struct {
	Projects []domain.Project `json:"projects" validate:"omitempty,dive"`
}

type votesEnvelope struct {
	Votes []domain.Vote `json:"votes" validate:"omitempty,dive"`
}

type commentsEnvelope struct {
	Comments []domain.Comment `json:"comments" validate:"omitempty,dive"`
}

type uploadEnvelope struct {
	ImageURL string `json:"image_url" validate:"required"`
	FileName string `json:"file_name"`
}

type avatarEnvelope struct {
	Avatar string `json:"avatar" validate:"required"`
}

type statsEnvelope struct {
	UserCount    *int `json:"user_count"    validate:"required,gte=0"`
	ProjectCount *int `json:"project_count" validate:"required,gte=0"`
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
