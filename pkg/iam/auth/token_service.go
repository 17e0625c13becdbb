package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/Abraxas-365/hirematch/pkg/kernel"
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims are the identity claims carried by an access token
type TokenClaims struct {
	UserID    kernel.UserID
	Role      kernel.Role
	Scopes    []string
	ExpiresAt time.Time
}

// TokenService issues and validates access tokens
type TokenService interface {
	GenerateAccessToken(userID kernel.UserID, role kernel.Role) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
}

type jwtClaims struct {
	Role   string   `json:"role"`
	Scopes []string `json:"scopes"`
	jwt.RegisteredClaims
}

// JWTService signs HS256 tokens
type JWTService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTService creates a token service
func NewJWTService(secret, issuer string, ttl time.Duration) *JWTService {
	return &JWTService{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// GenerateAccessToken signs a token for userID with the scopes of role
func (s *JWTService) GenerateAccessToken(userID kernel.UserID, role kernel.Role) (string, error) {
	now := s.now()
	claims := jwtClaims{
		Role:   role.String(),
		Scopes: ScopesForRole(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateAccessToken verifies the signature, issuer and expiry
func (s *JWTService) ValidateAccessToken(tokenString string) (*TokenClaims, error) {
	var claims jwtClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, ErrInvalidToken().WithCause(err)
	}

	role, ok := kernel.ParseRole(claims.Role)
	if !ok {
		return nil, ErrInvalidToken().WithCause(errors.New("unknown role claim"))
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken().WithCause(errors.New("missing subject"))
	}

	out := &TokenClaims{
		UserID: kernel.NewUserID(claims.Subject),
		Role:   role,
		Scopes: claims.Scopes,
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
