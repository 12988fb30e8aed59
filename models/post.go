package models

import "time"

// Post kinds. A text post stores its body in Content; a photo post stores
// the uploaded file reference there instead.
const (
	PostKindText  = "text"
	PostKindPhoto = "photo"
)

type Post struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Kind      string    `json:"kind" db:"kind"`
	Content   string    `json:"content" db:"content"`
	Username  string    `json:"username,omitempty" db:"-"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
