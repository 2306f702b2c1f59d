package domain

import "time"

// Comment is a note left by a member on a project.
type Comment struct {
	ID        string    `json:"id"         validate:"required"`
	ProjectID string    `json:"project_id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CommentRequest is the body of comment create and update calls.
type CommentRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}
