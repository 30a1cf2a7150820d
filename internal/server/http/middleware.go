package http

import (
	"net/http"
	"strings"

	"github.com/alexkarev/taskboard/internal/common"
	"github.com/gin-gonic/gin"
)

// ctxUserKey is the gin context key the middleware stores the resolved
// user under.
const ctxUserKey = "user"

// extractToken pulls the session token from the Authorization header, with
// the auth cookie as fallback.
func extractToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}
	if cookie, err := c.Cookie(common.AuthCookieName); err == nil {
		return cookie
	}
	return ""
}

// setAuthCookie stores the session token client-side. HttpOnly keeps it away
// from page scripts.
func (h *Handler) setAuthCookie(c *gin.Context, token string) {
	c.SetCookie(common.AuthCookieName, token, h.cookieMaxAge, "/", "", false, true)
}

// RequireAuth gates a route group behind a valid session token. A token
// inside the refresh window is opportunistically replaced: the new token
// travels back in the X-New-Token header and the re-set cookie, while the
// request itself proceeds under the original identity. Refresh failures
// never reject the request.
func (h *Handler) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			newErrorResponse(c, http.StatusUnauthorized, "Access token required")
			return
		}

		status := h.auth.CheckTokenValidity(tokenString)
		if !status.IsValid {
			newErrorResponse(c, http.StatusForbidden, "Invalid or expired token")
			return
		}

		if status.TimeRemaining <= h.refreshWindow {
			res, err := h.auth.ResetTokenIfActive(c.Request.Context(), tokenString)
			if err != nil {
				h.logger.Warn(c.Request.Context(), "token refresh failed", "error", err)
			} else if res.Refreshed {
				c.Header(common.NewTokenHeaderName, res.Token)
				h.setAuthCookie(c, res.Token)
			}
		}

		user, err := h.auth.VerifyToken(c.Request.Context(), tokenString)
		if err != nil {
			newErrorResponse(c, http.StatusForbidden, "Invalid or expired token")
			return
		}

		c.Set(ctxUserKey, user)
		c.Next()
	}
}

// CORS allows the configured frontend origin, including preflight.
func (h *Handler) CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", h.corsOrigin)
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
		c.Header("Access-Control-Expose-Headers", common.NewTokenHeaderName)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
