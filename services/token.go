package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"Murmur/config"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is what a verified token proves: who the caller is and whether
// they hold moderation privilege.
type Identity struct {
	UserID  int64
	IsAdmin bool
}

type tokenClaims struct {
	UserID  int64 `json:"user_id"`
	IsAdmin bool  `json:"is_admin"`
	jwt.RegisteredClaims
}

var (
	tokenSecret   []byte
	tokenLifetime time.Duration
)

func InitTokenService(cfg *config.Config) {
	tokenSecret = []byte(cfg.JWTSecret)
	tokenLifetime = time.Duration(cfg.TokenLifetimeMin) * time.Minute
	if tokenLifetime <= 0 {
		tokenLifetime = time.Hour
	}
}

// IssueToken signs a stateless session token for the user. There is no
// server-side revocation: a stolen token stays valid until it expires.
func IssueToken(userID int64, isAdmin bool) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		UserID:  userID,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tokenSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// VerifyToken checks signature and expiry. Both failure modes collapse into
// ErrInvalidToken for the caller but are logged separately.
func VerifyToken(tokenString string) (*Identity, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return tokenSecret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			slog.Info("Rejected expired token", "user_id", claims.UserID)
		} else {
			slog.Warn("Rejected invalid token", "error", err)
		}
		return nil, ErrInvalidToken
	}

	if !token.Valid {
		slog.Warn("Rejected invalid token")
		return nil, ErrInvalidToken
	}

	return &Identity{UserID: claims.UserID, IsAdmin: claims.IsAdmin}, nil
}
