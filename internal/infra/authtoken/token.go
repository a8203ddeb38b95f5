package authtoken

import (
	"errors"
	"fmt"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

var ErrNoSubject = errors.New("access token has no subject")

// Identity is what the agent can learn about its moderator from the bearer token.
// The signature is not checked here; the Candid API verifies every request.
type Identity struct {
	ModeratorID string
	Username    string
	ExpiresAt   time.Time
}

type tokenClaims struct {
	PreferredUsername string `json:"preferred_username"`
	jwt.RegisteredClaims
}

func Parse(raw string) (Identity, error) {
	trimmed := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "Bearer "))
	if trimmed == "" {
		return Identity{}, fmt.Errorf("parse access token: empty token")
	}

	claims := &tokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(trimmed, claims); err != nil {
		return Identity{}, fmt.Errorf("parse access token: %w", err)
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return Identity{}, ErrNoSubject
	}

	identity := Identity{
		ModeratorID: claims.Subject,
		Username:    claims.PreferredUsername,
	}
	if claims.ExpiresAt != nil {
		identity.ExpiresAt = claims.ExpiresAt.Time
	}
	return identity, nil
}

func (i Identity) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && !now.Before(i.ExpiresAt)
}
