package domain

import "time"

// Project is a startup submitted to the showcase.
type Project struct {
	ID              string    `json:"id"                validate:"required"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	FullDescription string    `json:"full_description"`
	Logo            *string   `json:"logo,omitempty"`
	Images          []string  `json:"images"`
	Creators        []string  `json:"creators"`
	TelegramContact string    `json:"telegram_contact"`
	Website         string    `json:"website"`
	Upvotes         int       `json:"upvotes"           validate:"gte=0"`
	Rating          int       `json:"rating"`
	LaunchID        string    `json:"launch_id"`
	UserID          string    `json:"user_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ProjectCreateRequest is the payload of the publish form.
type ProjectCreateRequest struct {
	Name            string   `json:"name"             validate:"required,max=100"`
	Description     string   `json:"description"      validate:"required,max=300"`
	FullDescription string   `json:"full_description" validate:"required"`
	Images          []string `json:"images"           validate:"max=10,dive,required"`
	Creators        []string `json:"creators"         validate:"required,min=1,dive,required"`
	TelegramContact string   `json:"telegram_contact"`
	Website         string   `json:"website"          validate:"omitempty,url"`
}

// Stats are the site-wide counters shown on the landing page.
type Stats struct {
	UserCount    int `json:"user_count"    validate:"gte=0"`
	ProjectCount int `json:"project_count" validate:"gte=0"`
}

// Launch groups projects competing in the same period.
type Launch struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	IsActive  bool      `json:"is_active"`
}
