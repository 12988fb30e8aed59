package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"Murmur/middleware"
	"Murmur/models"
	"Murmur/services"
)

type createPostRequest struct {
	Content string `json:"content"`
}

type updatePostRequest struct {
	Kind    string `json:"kind"`
	Content string `json:"content"`
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// CreatePostHandler accepts either a JSON body for a text post or a
// multipart photo upload for a photo post.
func CreatePostHandler(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFrom(r.Context())

	kind := models.PostKindText
	var content string

	if isMultipart(r) {
		file, header, err := r.FormFile("photo")
		if err != nil {
			respondError(w, r, services.ErrValidation)
			return
		}
		defer file.Close()

		fileRef, err := services.SaveUpload(file, header)
		if err != nil {
			respondError(w, r, err)
			return
		}
		kind = models.PostKindPhoto
		content = fileRef
	} else {
		var req createPostRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, r, err)
			return
		}
		content = req.Content
	}

	post, err := services.CreatePost(identity.UserID, kind, content)
	if err != nil {
		if kind == models.PostKindPhoto {
			services.RemoveUpload(content)
		}
		respondError(w, r, err)
		return
	}

	slog.Info("Post created", "post_id", post.ID, "user_id", identity.UserID, "kind", kind)
	respondJSON(w, http.StatusCreated, map[string]any{
		"message": "post created successfully",
		"id":      post.ID,
	})
}

func MyPostsHandler(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFrom(r.Context())

	posts, err := services.ListPostsByUser(identity.UserID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, posts)
}

// AllPostsHandler serves the public feed; the only read with no
// authentication requirement besides comment listing.
func AllPostsHandler(w http.ResponseWriter, r *http.Request) {
	posts, err := services.ListAllPosts()
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, posts)
}

// UpdatePostHandler replaces a post's content. Admin-only, enforced by the
// middleware chain. A multipart body replaces the post with a new photo; a
// JSON body replaces kind and content directly.
func UpdatePostHandler(w http.ResponseWriter, r *http.Request) {
	postID, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	kind := models.PostKindText
	var content string

	if isMultipart(r) {
		file, header, err := r.FormFile("photo")
		if err != nil {
			respondError(w, r, services.ErrValidation)
			return
		}
		defer file.Close()

		fileRef, err := services.SaveUpload(file, header)
		if err != nil {
			respondError(w, r, err)
			return
		}
		kind = models.PostKindPhoto
		content = fileRef
	} else {
		var req updatePostRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, r, err)
			return
		}
		if req.Kind != "" {
			kind = req.Kind
		}
		content = req.Content
	}

	prevKind, prevContent, err := services.UpdatePost(postID, kind, content)
	if err != nil {
		if kind == models.PostKindPhoto {
			// Record untouched; drop the file that was just written.
			services.RemoveUpload(content)
		}
		respondError(w, r, err)
		return
	}

	// The old photo goes away only after the record update succeeded, so a
	// failed update never leaves a live post pointing at a missing file.
	if prevKind == models.PostKindPhoto && prevContent != content {
		services.RemoveUpload(prevContent)
	}

	slog.Info("Post updated", "post_id", postID, "admin_id", middleware.IdentityFrom(r.Context()).UserID)
	respondMessage(w, http.StatusOK, "post updated successfully")
}

func DeletePostHandler(w http.ResponseWriter, r *http.Request) {
	postID, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := services.DeletePost(postID); err != nil {
		respondError(w, r, err)
		return
	}

	slog.Info("Post deleted", "post_id", postID, "admin_id", middleware.IdentityFrom(r.Context()).UserID)
	respondMessage(w, http.StatusOK, "post deleted successfully")
}
