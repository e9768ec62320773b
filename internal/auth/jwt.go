package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned for malformed or wrongly-signed tokens.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned when the token lifetime has passed.
	ErrExpiredToken = errors.New("token has expired")
)

// Config holds token signing parameters.
type Config struct {
	SecretKey       string
	AccessLifetime  time.Duration
	RefreshLifetime time.Duration
	Issuer          string
}

// DefaultConfig returns sane lifetimes; the secret must come from the
// environment in any real deployment.
func DefaultConfig() Config {
	return Config{
		SecretKey:       "insecure-dev-secret",
		AccessLifetime:  15 * time.Minute,
		RefreshLifetime: 7 * 24 * time.Hour,
		Issuer:          "taskboard",
	}
}

// Claims carries the authenticated user identity inside a token.
type Claims struct {
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenPair is the access/refresh pair issued at login.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Manager issues and validates HMAC-signed tokens.
type Manager struct {
	cfg Config
}

// NewManager creates a Manager with the given configuration.
func NewManager(cfg Config) *Manager {
	return &Manager{cfg: cfg}
}

// IssuePair returns a fresh access/refresh token pair for the user.
func (m *Manager) IssuePair(userID uint, username, email string) (TokenPair, error) {
	access, err := m.issue(userID, username, email, "access", m.cfg.AccessLifetime)
	if err != nil {
		return TokenPair{}, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := m.issue(userID, username, email, "refresh", m.cfg.RefreshLifetime)
	if err != nil {
		return TokenPair{}, fmt.Errorf("issue refresh token: %w", err)
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}

func (m *Manager) issue(userID uint, username, email, tokenType string, lifetime time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:    userID,
		Username:  username,
		Email:     email,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.cfg.Issuer,
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.cfg.SecretKey))
}

func (m *Manager) parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(m.cfg.SecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ValidateAccess validates an access token and returns its claims.
func (m *Manager) ValidateAccess(tokenString string) (*Claims, error) {
	claims, err := m.parse(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != "access" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ValidateRefresh validates a refresh token and returns its claims.
func (m *Manager) ValidateRefresh(tokenString string) (*Claims, error) {
	claims, err := m.parse(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != "refresh" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// RefreshAccess exchanges a valid refresh token for a new access token.
func (m *Manager) RefreshAccess(refreshToken string) (string, error) {
	claims, err := m.ValidateRefresh(refreshToken)
	if err != nil {
		return "", err
	}
	return m.issue(claims.UserID, claims.Username, claims.Email, "access", m.cfg.AccessLifetime)
}
