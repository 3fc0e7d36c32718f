package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// contextKey is a private type for request context keys.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	userEmailKey = contextKey("userEmail")
)

// GetUserEmailFromContext retrieves the authenticated user's email from the
// Gin context. It returns the email and a boolean indicating if it was found.
func GetUserEmailFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(userEmailKey)); exists {
		if email, ok := v.(string); ok {
			return email, true
		}
		return "", false
	}
	// check the request context as well
	if v := c.Request.Context().Value(userEmailKey); v != nil {
		if email, ok := v.(string); ok {
			return email, true
		}
	}
	return "", false
}

// WithUserEmail returns a context carrying the authenticated user's email.
// Exposed for tests that exercise handlers without the auth middleware.
func WithUserEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, userEmailKey, email)
}
