package services

import (
	"database/sql"
	"fmt"
	"strings"

	"Murmur/database"
	"Murmur/models"

	"golang.org/x/crypto/bcrypt"
)

func RegisterUser(username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", ErrValidation)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var user models.User
	err = database.DB.QueryRow(
		"INSERT INTO users (username, email, password_hash) VALUES ($1, $2, $3) RETURNING id, username, email, password_hash, is_admin, created_at, updated_at",
		username, email, string(hashedPassword),
	).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.IsAdmin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: username or email taken", ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	return &user, nil
}

func AuthenticateUser(username, password string) (*models.User, error) {
	user, err := GetUserByUsername(username)
	if err != nil {
		if err == ErrNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func GetUserByUsername(username string) (*models.User, error) {
	return scanUser(database.DB.QueryRow(
		"SELECT id, username, email, password_hash, COALESCE(bio, ''), COALESCE(location, ''), COALESCE(profile_pic, ''), is_admin, created_at, updated_at FROM users WHERE username = $1",
		username,
	))
}

func GetUserByID(userID int64) (*models.User, error) {
	return scanUser(database.DB.QueryRow(
		"SELECT id, username, email, password_hash, COALESCE(bio, ''), COALESCE(location, ''), COALESCE(profile_pic, ''), is_admin, created_at, updated_at FROM users WHERE id = $1",
		userID,
	))
}

func scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Bio,
		&user.Location,
		&user.ProfilePic,
		&user.IsAdmin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}

// UpdateProfile replaces the mutable profile fields. Username and email
// uniqueness is re-validated by the same constraints that guard signup.
func UpdateProfile(userID int64, username, email, bio, location string) error {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" {
		return fmt.Errorf("%w: username and email are required", ErrValidation)
	}

	result, err := database.DB.Exec(
		"UPDATE users SET username = $1, email = $2, bio = $3, location = $4, updated_at = CURRENT_TIMESTAMP WHERE id = $5",
		username, email, bio, location, userID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: username or email taken", ErrDuplicate)
		}
		return fmt.Errorf("failed to update profile: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// SetProfilePicture stores the new picture reference and returns the previous
// one so the caller can remove the replaced file after the update succeeds.
func SetProfilePicture(userID int64, fileRef string) (string, error) {
	var previous sql.NullString
	err := database.DB.QueryRow(
		`UPDATE users u SET profile_pic = $1, updated_at = CURRENT_TIMESTAMP
		 FROM (SELECT id, profile_pic FROM users WHERE id = $2 FOR UPDATE) old
		 WHERE u.id = old.id
		 RETURNING old.profile_pic`,
		fileRef, userID,
	).Scan(&previous)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to set profile picture: %w", err)
	}

	return previous.String, nil
}
