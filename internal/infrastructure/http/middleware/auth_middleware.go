package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/meeting-summarizer/pkg/jwt"
)

const (
	// ClaimsKey holds the verified *jwt.Claims in the echo context
	ClaimsKey = "claims"
	// IdentityKey holds the caller identity recorded on decisions
	IdentityKey = "identity"
)

// TokenVerifier validates bearer tokens
type TokenVerifier interface {
	ValidateAccessToken(token string) (*jwt.Claims, error)
}

// EchoAuth returns an Echo middleware that validates the bearer token and sets
// "claims" (*jwt.Claims) and "identity" (string) into the Echo context
func EchoAuth(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c.Request())
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization token")
			}

			claims, err := verifier.ValidateAccessToken(token)
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					return echo.NewHTTPError(http.StatusUnauthorized, "Authentication token has expired")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			c.Set(ClaimsKey, claims)
			c.Set(IdentityKey, claims.Identity())

			return next(c)
		}
	}
}

// Identity returns the authenticated caller, or "" on unauthenticated routes
func Identity(c echo.Context) string {
	identity, _ := c.Get(IdentityKey).(string)
	return identity
}

func extractToken(r *http.Request) string {
	// Try Authorization header first
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return strings.TrimSpace(parts[1])
		}
	}

	// Try cookie as fallback
	cookie, err := r.Cookie("access_token")
	if err == nil {
		return cookie.Value
	}

	return ""
}
