package services

import (
	"fmt"
	"strings"

	"Murmur/database"
	"Murmur/models"
)

func CreateComment(postID, userID int64, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content is required", ErrValidation)
	}

	// The post-exists check is done here rather than trusted to the schema,
	// so a missing post surfaces as a clean 404 instead of a storage error.
	if _, err := GetPostByID(postID); err != nil {
		return nil, err
	}

	comment := models.Comment{PostID: postID, UserID: userID, Content: content}
	err := database.DB.QueryRow(
		"INSERT INTO comments (post_id, user_id, content) VALUES ($1, $2, $3) RETURNING id, created_at",
		postID, userID, content,
	).Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return &comment, nil
}

func ListCommentsForPost(postID int64) ([]models.Comment, error) {
	rows, err := database.DB.Query(
		`SELECT c.id, c.post_id, c.user_id, c.content, c.created_at, u.username
		 FROM comments c
		 JOIN users u ON c.user_id = u.id
		 WHERE c.post_id = $1
		 ORDER BY c.created_at DESC, c.id DESC`,
		postID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var comment models.Comment
		if err := rows.Scan(&comment.ID, &comment.PostID, &comment.UserID, &comment.Content, &comment.CreatedAt, &comment.Username); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return comments, nil
}

func DeleteComment(commentID int64) error {
	result, err := database.DB.Exec("DELETE FROM comments WHERE id = $1", commentID)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
