package services

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"Murmur/database"
	"Murmur/models"
)

func validPostKind(kind string) bool {
	return kind == models.PostKindText || kind == models.PostKindPhoto
}

func CreatePost(userID int64, kind, content string) (*models.Post, error) {
	if !validPostKind(kind) {
		return nil, fmt.Errorf("%w: unknown post kind %q", ErrValidation, kind)
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content is required", ErrValidation)
	}

	post := models.Post{UserID: userID, Kind: kind, Content: content}
	err := database.DB.QueryRow(
		"INSERT INTO posts (user_id, kind, content) VALUES ($1, $2, $3) RETURNING id, created_at",
		userID, kind, content,
	).Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return &post, nil
}

func GetPostByID(postID int64) (*models.Post, error) {
	var post models.Post
	err := database.DB.QueryRow(
		"SELECT id, user_id, kind, content, created_at FROM posts WHERE id = $1",
		postID,
	).Scan(&post.ID, &post.UserID, &post.Kind, &post.Content, &post.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &post, nil
}

func ListPostsByUser(userID int64) ([]models.Post, error) {
	rows, err := database.DB.Query(
		"SELECT id, user_id, kind, content, created_at FROM posts WHERE user_id = $1 ORDER BY created_at DESC, id DESC",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		var post models.Post
		if err := rows.Scan(&post.ID, &post.UserID, &post.Kind, &post.Content, &post.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return posts, nil
}

// ListAllPosts is the public feed: every post joined with its author's
// username, newest first.
func ListAllPosts() ([]models.Post, error) {
	rows, err := database.DB.Query(
		`SELECT p.id, p.user_id, p.kind, p.content, p.created_at, u.username
		 FROM posts p
		 JOIN users u ON p.user_id = u.id
		 ORDER BY p.created_at DESC, p.id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		var post models.Post
		if err := rows.Scan(&post.ID, &post.UserID, &post.Kind, &post.Content, &post.CreatedAt, &post.Username); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return posts, nil
}

// UpdatePost replaces a post's kind and content, returning the previous
// values so the caller can remove a replaced photo file once the record
// update has succeeded. Admin gating happens in the middleware, not here.
func UpdatePost(postID int64, kind, content string) (prevKind, prevContent string, err error) {
	if !validPostKind(kind) {
		return "", "", fmt.Errorf("%w: unknown post kind %q", ErrValidation, kind)
	}
	if strings.TrimSpace(content) == "" {
		return "", "", fmt.Errorf("%w: content is required", ErrValidation)
	}

	err = database.DB.QueryRow(
		`UPDATE posts p SET kind = $1, content = $2
		 FROM (SELECT id, kind, content FROM posts WHERE id = $3 FOR UPDATE) old
		 WHERE p.id = old.id
		 RETURNING old.kind, old.content`,
		kind, content, postID,
	).Scan(&prevKind, &prevContent)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", "", ErrNotFound
		}
		return "", "", fmt.Errorf("failed to update post: %w", err)
	}

	return prevKind, prevContent, nil
}

// DeletePost removes a post, its comments and, for photo posts, the backing
// file. The sequence is deliberate: comments first, then the post row, then
// the file. The row delete is the point of no return; comment and file
// cleanup failures are logged and not escalated.
func DeletePost(postID int64) error {
	post, err := GetPostByID(postID)
	if err != nil {
		return err
	}

	if _, err := database.DB.Exec("DELETE FROM comments WHERE post_id = $1", postID); err != nil {
		slog.Error("Failed to delete comments for post", "post_id", postID, "error", err)
	}

	result, err := database.DB.Exec("DELETE FROM posts WHERE id = $1", postID)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if rows == 0 {
		// Lost a race with a concurrent delete.
		return ErrNotFound
	}

	if post.Kind == models.PostKindPhoto {
		RemoveUpload(post.Content)
	}

	return nil
}
