package handlers

import (
	"log/slog"
	"net/http"

	"Murmur/middleware"
	"Murmur/services"
)

type createCommentRequest struct {
	PostID  int64  `json:"postId"`
	Content string `json:"content"`
}

func CreateCommentHandler(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFrom(r.Context())

	var req createCommentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	comment, err := services.CreateComment(req.PostID, identity.UserID, req.Content)
	if err != nil {
		respondError(w, r, err)
		return
	}

	slog.Info("Comment created", "comment_id", comment.ID, "post_id", req.PostID, "user_id", identity.UserID)
	respondJSON(w, http.StatusCreated, map[string]any{
		"message": "comment created successfully",
		"id":      comment.ID,
	})
}

func ListCommentsHandler(w http.ResponseWriter, r *http.Request) {
	postID, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	comments, err := services.ListCommentsForPost(postID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, comments)
}

func DeleteCommentHandler(w http.ResponseWriter, r *http.Request) {
	commentID, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := services.DeleteComment(commentID); err != nil {
		respondError(w, r, err)
		return
	}

	slog.Info("Comment deleted", "comment_id", commentID, "admin_id", middleware.IdentityFrom(r.Context()).UserID)
	respondMessage(w, http.StatusOK, "comment deleted successfully")
}
