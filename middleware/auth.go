package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Madhav-Gupta-28/perfumery-backend-go/sessions"
	"github.com/Madhav-Gupta-28/perfumery-backend-go/utils"
)

const claimsKey = "claims"

// Claims returns the session set by RequireSession, or nil.
func Claims(c echo.Context) *utils.Claims {
	claims, _ := c.Get(claimsKey).(*utils.Claims)
	return claims
}

// RequireSession rejects requests without a valid, unrevoked Bearer session token.
func RequireSession(issuer *utils.TokenIssuer, revoker sessions.Revoker, log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Missing authorization header"})
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid authorization header format"})
			}

			claims, err := issuer.ValidateJWT(parts[1])
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or expired token"})
			}

			revoked, err := revoker.IsRevoked(c.Request().Context(), claims.Id)
			if err != nil {
				log.Error("Failed to check session revocation", zap.Error(err))
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to verify session"})
			}
			if revoked {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Session signed out"})
			}

			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// RequireAdmin must run after RequireSession. Anonymous sessions may not manage content.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := Claims(c)
		if claims == nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Not signed in"})
		}
		if claims.Anonymous() {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "Admin access requires a signed-in account"})
		}
		return next(c)
	}
}
