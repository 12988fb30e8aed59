package models

import "time"

type Comment struct {
	ID        int64     `json:"id" db:"id"`
	PostID    int64     `json:"postId" db:"post_id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Content   string    `json:"content" db:"content"`
	Username  string    `json:"username,omitempty" db:"-"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
