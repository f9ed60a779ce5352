package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// UserIDKey is the gin context key holding the signed-in user's id.
const UserIDKey = "userID"

// Identifier is the minimal interface the middleware depends on
type Identifier interface {
	CurrentUserID() (int64, bool)
}

// IdentityMiddleware records the signed-in user on the request context.
// Anonymous requests pass through untouched.
func IdentityMiddleware(id Identifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if uid, ok := id.CurrentUserID(); ok {
			c.Set(UserIDKey, uid)
		}
		c.Next()
	}
}

// UserID returns the id set by IdentityMiddleware.
func UserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return 0, false
	}
	uid, ok := v.(int64)
	return uid, ok
}

// clientKey picks the rate limit key: the user when known, else the client IP.
func clientKey(c *gin.Context) string {
	if uid, ok := UserID(c); ok {
		return "user:" + strconv.FormatInt(uid, 10)
	}
	ip := c.ClientIP()
	if ip == "" {
		ip = "unknown"
	}
	return "ip:" + ip
}
