// Package auth verifies admin bearer tokens for the administrative API.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cloudrumbles/avvai/internal/config"
)

// AdminIdentity is the verified identity behind an admin request.
type AdminIdentity struct {
	Email string
}

// AdminVerifier checks bearer tokens presented to admin routes.
type AdminVerifier interface {
	// VerifyToken validates a token and returns the admin identity it
	// carries. Returns ErrInvalidToken, ErrExpiredToken, ErrTokenNotYetValid
	// or ErrEmailNotAllowed on failure.
	VerifyToken(ctx context.Context, tokenString string) (*AdminIdentity, error)
}

// hmacAdminVerifier validates HS256-signed tokens whose email claim must
// appear on the configured allowlist.
type hmacAdminVerifier struct {
	signingKey    []byte
	allowedEmails map[string]struct{}
	timeFunc      func() time.Time // injectable for testing
	clockSkew     time.Duration
}

// adminClaims defines the structure of JWT claims we use
type adminClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

var _ AdminVerifier = (*hmacAdminVerifier)(nil)

// NewAdminVerifier creates a verifier from auth configuration. An empty
// allowlist admits any validly signed token.
func NewAdminVerifier(cfg config.AuthConfig) (AdminVerifier, error) {
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("jwt secret must be at least 32 characters")
	}

	allowed := make(map[string]struct{}, len(cfg.AllowedEmails))
	for _, email := range cfg.AllowedEmails {
		email = strings.ToLower(strings.TrimSpace(email))
		if email != "" {
			allowed[email] = struct{}{}
		}
	}

	return &hmacAdminVerifier{
		signingKey:    []byte(cfg.JWTSecret),
		allowedEmails: allowed,
		timeFunc:      time.Now,
		clockSkew:     2 * time.Minute,
	}, nil
}

func (v *hmacAdminVerifier) VerifyToken(ctx context.Context, tokenString string) (*AdminIdentity, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	now := v.timeFunc()
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(v.clockSkew),
		jwt.WithTimeFunc(func() time.Time { return now }),
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&adminClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return v.signingKey, nil
		},
		parserOpts...)

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return nil, ErrTokenNotYetValid
		default:
			return nil, ErrInvalidToken
		}
	}

	claims, ok := token.Claims.(*adminClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	email := strings.ToLower(strings.TrimSpace(claims.Email))
	if email == "" {
		return nil, ErrInvalidToken
	}

	if len(v.allowedEmails) > 0 {
		if _, ok := v.allowedEmails[email]; !ok {
			return nil, ErrEmailNotAllowed
		}
	}

	return &AdminIdentity{Email: email}, nil
}

// disabledVerifier admits every request with a fixed identity. Only for local
// development.
type disabledVerifier struct{}

var _ AdminVerifier = disabledVerifier{}

// NewDisabledVerifier returns a verifier that accepts all requests.
func NewDisabledVerifier() AdminVerifier {
	return disabledVerifier{}
}

func (disabledVerifier) VerifyToken(_ context.Context, _ string) (*AdminIdentity, error) {
	return &AdminIdentity{Email: "admin@avvai.local"}, nil
}
