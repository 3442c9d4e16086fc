package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// contextKey is a private type for context keys defined in this package.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey  = contextKey("logger")
	reviewerIDKey = contextKey("reviewerID")
)

// GetReviewerIDFromContext retrieves the authenticated reviewer ID from the
// Gin context. It returns the ID and a boolean indicating if it was found.
func GetReviewerIDFromContext(c *gin.Context) (string, bool) {
	if val, exists := c.Get(string(reviewerIDKey)); exists {
		if id, ok := val.(string); ok {
			return id, true
		}
		return "", false
	}
	// Check the request context as well; the auth middleware stores it there.
	if val := c.Request.Context().Value(reviewerIDKey); val != nil {
		if id, ok := val.(string); ok {
			return id, true
		}
	}
	return "", false
}

// WithReviewerID returns a context carrying the given reviewer ID. Used by
// tests and non-HTTP callers.
func WithReviewerID(ctx context.Context, reviewerID string) context.Context {
	return context.WithValue(ctx, reviewerIDKey, reviewerID)
}
