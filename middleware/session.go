package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kendall-kelly/coffee-shop-api/config"
	"github.com/kendall-kelly/coffee-shop-api/logging"
)

// SessionIDKey is the gin context key holding the current session ID
const SessionIDKey = "session_id"

// Session scopes every request to a browser session. A request without a
// valid session cookie starts a new session. The cookie is re-issued on every
// request, so a session ends SessionMaxAge after its last request.
func Session(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(cfg.SessionCookieName)
		if err != nil || uuid.Validate(sessionID) != nil {
			sessionID = uuid.NewString()
			logging.Debug().Str("session_id", sessionID).Msg("Session started")
		}
		setSessionCookie(c, cfg, sessionID, cfg.SessionMaxAge)

		c.Set(SessionIDKey, sessionID)
		c.Next()
	}
}

// ClearSession expires the session cookie so the next request starts a new session
func ClearSession(c *gin.Context, cfg *config.Config) {
	setSessionCookie(c, cfg, "", -1)
}

func setSessionCookie(c *gin.Context, cfg *config.Config, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.SessionCookieName, value, maxAge, "/", "", cfg.IsProduction(), true)
}

// GetSessionID extracts the session ID from the Gin context
func GetSessionID(c *gin.Context) (string, error) {
	sessionID, exists := c.Get(SessionIDKey)
	if !exists {
		return "", &SessionError{Code: "MISSING_SESSION", Message: "Session not found in context"}
	}

	sessionIDStr, ok := sessionID.(string)
	if !ok || sessionIDStr == "" {
		return "", &SessionError{Code: "INVALID_SESSION", Message: "Session ID is not a string"}
	}

	return sessionIDStr, nil
}

// SessionError represents a missing or malformed session
type SessionError struct {
	Code    string
	Message string
}

func (e *SessionError) Error() string {
	return e.Message
}
