package handlers

import (
	"log/slog"
	"net/http"

	"Murmur/middleware"
	"Murmur/services"
)

type updateProfileRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Bio      string `json:"bio"`
	Location string `json:"location"`
}

func CurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFrom(r.Context())

	user, err := services.GetUserByID(identity.UserID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	// models.User excludes the password hash from serialization.
	respondJSON(w, http.StatusOK, user)
}

func UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFrom(r.Context())

	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	if err := services.UpdateProfile(identity.UserID, req.Username, req.Email, req.Bio, req.Location); err != nil {
		respondError(w, r, err)
		return
	}

	slog.Info("Profile updated", "user_id", identity.UserID)
	respondMessage(w, http.StatusOK, "profile updated successfully")
}

func UploadProfilePhotoHandler(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFrom(r.Context())

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

	previous, err := services.SetProfilePicture(identity.UserID, fileRef)
	if err != nil {
		// The record was not updated, so the fresh file has no owner.
		services.RemoveUpload(fileRef)
		respondError(w, r, err)
		return
	}

	// Replaced picture is deleted only after the record update succeeded.
	if previous != "" && previous != fileRef {
		services.RemoveUpload(previous)
	}

	slog.Info("Profile picture updated", "user_id", identity.UserID, "file", fileRef)
	respondJSON(w, http.StatusOK, map[string]string{
		"message":    "profile picture updated",
		"profilePic": fileRef,
	})
}
