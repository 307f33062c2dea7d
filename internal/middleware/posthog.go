package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/burnout_journal/internal/utils"
	"github.com/gin-gonic/gin"
)

// pathsToSkip contains paths that should not be tracked by PostHog
var pathsToSkip = map[string]bool{
	"/health":       true,
	"/swagger/*any": true,
}

// PosthogMiddleware creates a Gin middleware handler that tracks API events with PostHog
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip if PostHog is not initialized or path is in skip list
		if posthogClient == nil || !posthogClient.IsInitialized() || pathsToSkip[c.FullPath()] {
			c.Next()
			return
		}

		// Process request first
		c.Next()

		// Skip if there was an error processing the request
		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		// Get user ID from context (set by auth middleware)
		userID, exists := GetUserIDFromContext(c)
		if !exists {
			// No user ID, can't track event
			return
		}

		eventName := EventNameForRoute(c.Request.Method, c.FullPath())

		// Skip if event name is empty (e.g., for 404s)
		if eventName == "" {
			return
		}

		// Route params are ids and dates only; request bodies (journal text) are never sent.
		props := map[string]any{
			"method":      c.Request.Method,
			"route":       c.FullPath(),
			"status_code": c.Writer.Status(),
		}
		if len(c.Params) > 0 {
			params := make(map[string]string, len(c.Params))
			for _, param := range c.Params {
				params[param.Key] = param.Value
			}
			props["params"] = params
		}

		// Send event to PostHog
		posthogClient.Enqueue(userID, eventName, props)
	}
}

// EventNameForRoute turns "POST /api/v1/journals/:date/entries" into
// "post_journals_date_entries".
func EventNameForRoute(method, route string) string {
	route = strings.TrimPrefix(route, "/api/v1")
	route = strings.Trim(route, "/")
	if route == "" {
		return ""
	}
	route = strings.ReplaceAll(route, ":", "")
	route = strings.ReplaceAll(route, "/", "_")
	return strings.ToLower(method) + "_" + route
}
