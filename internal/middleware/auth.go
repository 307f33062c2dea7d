package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// SessionTokenParser verifies a session token and returns its subject.
type SessionTokenParser interface {
	ParseSessionToken(ctx context.Context, token string) (string, error)
}

// AuthMiddleware creates a Gin middleware handler that requires a valid session.
// The token is read from the session cookie first, then from a Bearer header.
// Anything else is rejected with 401.
func AuthMiddleware(parser SessionTokenParser, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		tokenString, source := extractSessionToken(c, cookieName)
		if tokenString == "" {
			logger.Warn("Session credential missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		userID, err := parser.ParseSessionToken(c.Request.Context(), tokenString)
		if err != nil {
			logger.Warn("Invalid session token", slog.String("source", source), slog.String("error", err.Error()))
			msg := "Invalid session"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Session has expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		ctx := WithUser(c.Request.Context(), userID, tokenString)
		ctx = WithLogger(ctx, logger.With(slog.String("user_id", userID)))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func extractSessionToken(c *gin.Context, cookieName string) (string, string) {
	if cookieName != "" {
		if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
			return cookie, "cookie"
		}
	}
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1]), "header"
	}
	return "", ""
}
