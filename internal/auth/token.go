// Package auth inspects the admin bearer token used by the lecturer seeder.
// Tokens are never verified here (the API does that); the preflight only
// catches tokens that are already expired before any request is sent.
package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/heartmarshall/coursereview-backend/internal/domain"
)

// TokenInfo describes what could be read from a bearer token without the signing key.
type TokenInfo struct {
	IsJWT     bool
	Subject   string
	Role      string
	ExpiresAt time.Time
}

// adminClaims mirrors the claims the course-review API puts into admin tokens.
type adminClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
}

// NormalizeToken trims whitespace and a leading "Bearer " prefix.
func NormalizeToken(token string) string {
	token = strings.TrimSpace(token)
	if len(token) > 7 && strings.EqualFold(token[:7], "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	return token
}

// Inspect reads the claims of a JWT bearer token without verifying its signature.
// Opaque (non-JWT) tokens are accepted and reported with IsJWT=false.
// A JWT whose exp is not after now yields an error wrapping domain.ErrConfiguration.
func Inspect(token string, now time.Time) (TokenInfo, error) {
	token = NormalizeToken(token)
	if token == "" {
		return TokenInfo{}, domain.NewConfigError("ADMIN_TOKEN", "is empty")
	}
	if strings.Count(token, ".") != 2 {
		return TokenInfo{}, nil
	}

	var claims adminClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return TokenInfo{}, nil
	}

	info := TokenInfo{
		IsJWT:   true,
		Subject: claims.Subject,
		Role:    claims.Role,
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
		if !info.ExpiresAt.After(now) {
			return info, domain.NewConfigError("ADMIN_TOKEN", fmt.Sprintf("expired at %s", info.ExpiresAt.UTC().Format(time.RFC3339)))
		}
	}
	return info, nil
}
