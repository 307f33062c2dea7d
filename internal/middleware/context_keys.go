package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// userIDKey is the key used to store the authenticated user's ID.
const userIDKey = contextKey("userID")

// sessionTokenKey holds the raw session token the caller authenticated with.
const sessionTokenKey = contextKey("sessionToken")

// WithUser returns a copy of ctx carrying the authenticated user and their token.
func WithUser(ctx context.Context, userID, sessionToken string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, sessionTokenKey, sessionToken)
}

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if c == nil || c.Request == nil {
		return "", false
	}
	return GetUserIDFromCtx(c.Request.Context())
}

// GetUserIDFromCtx retrieves the authenticated user ID from a standard context.
func GetUserIDFromCtx(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// GetSessionTokenFromCtx returns the raw session token of the authenticated caller.
func GetSessionTokenFromCtx(ctx context.Context) string {
	token, _ := ctx.Value(sessionTokenKey).(string)
	return token
}
