package identity

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidToken = errors.New("invalid or expired ID token")
	ErrEmailExists  = errors.New("email already registered")
)

// Token is the verified subject of an ID token.
type Token struct {
	UID     string    `json:"uid"`
	Email   string    `json:"email,omitempty"`
	Expires time.Time `json:"expires"`
}

// Provider is the external identity system.
type Provider interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	VerifyIDToken(ctx context.Context, idToken string) (*Token, error)
	RevokeRefreshTokens(ctx context.Context, uid string) error
}
