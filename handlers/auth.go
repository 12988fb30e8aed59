package handlers

import (
	"log/slog"
	"net/http"

	"Murmur/services"
)

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func SignupHandler(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	user, err := services.RegisterUser(req.Username, req.Email, req.Password)
	if err != nil {
		slog.Warn("Signup failed", "username", req.Username, "error", err)
		respondError(w, r, err)
		return
	}

	slog.Info("User registered", "username", user.Username, "user_id", user.ID)
	respondMessage(w, http.StatusCreated, "user created successfully")
}

func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	user, err := services.AuthenticateUser(req.Username, req.Password)
	if err != nil {
		slog.Warn("Login failed", "username", req.Username)
		respondError(w, r, err)
		return
	}

	token, err := services.IssueToken(user.ID, user.IsAdmin)
	if err != nil {
		respondError(w, r, err)
		return
	}

	slog.Info("User authenticated", "username", user.Username, "user_id", user.ID)
	respondJSON(w, http.StatusOK, map[string]string{
		"token":    token,
		"username": user.Username,
	})
}
