package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dvanenk/bookery/internal/app/models"
	"github.com/dvanenk/bookery/internal/app/renderer"
)

// identityKey is the session-record key holding the authenticated username.
const identityKey = "username"

// CurrentIdentity reads the identity stored in the request's session. Absent
// or malformed values come back as the anonymous zero value.
func CurrentIdentity(c *gin.Context) models.Identity {
	sess := sessions.Default(c)
	if v, ok := sess.Get(identityKey).(string); ok && v != "" {
		return models.Identity{Username: v}
	}
	return models.Identity{}
}

// SetIdentity writes an authenticated identity into the session. Callers must
// only do this after the credentials passed verification.
func SetIdentity(c *gin.Context, id models.Identity) error {
	sess := sessions.Default(c)
	sess.Set(identityKey, id.Username)
	return sess.Save()
}

// ClearIdentity removes the identity from the session. Clearing an already
// anonymous session is a no-op success.
func ClearIdentity(c *gin.Context) error {
	sess := sessions.Default(c)
	sess.Delete(identityKey)
	return sess.Save()
}

// IdentityFromSession resolves the session identity once per request and
// stores it in the gin context for handlers and the renderer.
func IdentityFromSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(renderer.IdentityKey, CurrentIdentity(c))
		c.Next()
	}
}

// RequireAuth is the coarse authorization gate shared by every protected
// route: anonymous requests are rejected with 403 before the handler runs.
// Fine-grained checks (identity match, review uniqueness) stay with the
// review-submission path.
func RequireAuth(r *renderer.Renderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if renderer.GetIdentity(c).Anonymous() {
			r.Error(c, 403, "You must be logged in to view this page.")
			return
		}
		c.Next()
	}
}

// RequestID tags every request with an opaque ID for log correlation.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-Id")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-Id", requestID)
		c.Next()
	}
}

// SecurityHeaders sets the response headers every page shares.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("X-Content-Type-Options", "nosniff")
		c.Writer.Header().Set("X-Frame-Options", "DENY")
		c.Writer.Header().Set("Referrer-Policy", "same-origin")
		c.Next()
	}
}
