package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/gigmarket/backend/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is what an access token says about its bearer.
type Claims struct {
	UserID uuid.UUID
	Role   string
}

// TokenManager provides logic for JWT generation and parsing.
type TokenManager interface {
	NewJWT(userID uuid.UUID, role string) (string, time.Duration, error)
	Parse(accessToken string) (*Claims, error)
}

type Manager struct {
	signingKey     string
	accessTokenTTL time.Duration
}

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func NewManager(cfg config.JWTConfig) (*Manager, error) {
	if cfg.SigningKey == "" {
		return nil, errors.New("empty signing key")
	}

	if cfg.AccessTokenTTL == 0 {
		return nil, errors.New("empty access token ttl")
	}

	return &Manager{
		signingKey:     cfg.SigningKey,
		accessTokenTTL: cfg.AccessTokenTTL,
	}, nil
}

func (m *Manager) NewJWT(userID uuid.UUID, role string) (string, time.Duration, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   userID.String(),
		},
	})

	accessToken, err := token.SignedString([]byte(m.signingKey))
	if err != nil {
		return "", 0, errors.New("sign jwt failed")
	}

	return accessToken, m.accessTokenTTL, nil
}

func (m *Manager) Parse(accessToken string) (*Claims, error) {
	var claims tokenClaims
	_, err := jwt.ParseWithClaims(accessToken, &claims, func(token *jwt.Token) (i interface{}, err error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return []byte(m.signingKey), nil
	})
	if err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("parse subject: %w", err)
	}

	return &Claims{UserID: userID, Role: claims.Role}, nil
}
