package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/ArowuTest/rsu-vesting/internal/services"
)

// SessionIDKey is the context key holding the resolved session ID
const SessionIDKey = "sessionID"

// SessionOptions controls how SessionMiddleware finds and creates sessions.
type SessionOptions struct {
	CookieName string
	// Issue starts a new session, set as a cookie, when the request has no
	// valid one. Otherwise such requests are rejected with 401.
	Issue bool
}

// SessionMiddleware resolves the session token from the Authorization header
// or the session cookie.
func SessionMiddleware(sessions services.SessionService, opts SessionOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		const BearerSchema = "Bearer "

		token := ""
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			if !strings.HasPrefix(authHeader, BearerSchema) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header must start with Bearer "})
				return
			}
			token = authHeader[len(BearerSchema):]
		} else if opts.CookieName != "" {
			token, _ = c.Cookie(opts.CookieName)
		}

		sessionID, err := sessions.Resolve(token)
		if err == nil {
			c.Set(SessionIDKey, sessionID)
			c.Next()
			return
		}

		if !opts.Issue {
			log.Warn().Err(err).Str("path", c.Request.URL.Path).Msg("Session rejected")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Valid session token is required"})
			return
		}

		session, err := sessions.Start()
		if err != nil {
			log.Error().Err(err).Msg("Failed to start session")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to start session"})
			return
		}
		maxAge := int(time.Until(session.ExpiresAt).Seconds())
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(opts.CookieName, session.Token, maxAge, "/", "", false, true)
		c.Set(SessionIDKey, session.ID)
		c.Next()
	}
}

// SessionID returns the session resolved by SessionMiddleware.
func SessionID(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}
