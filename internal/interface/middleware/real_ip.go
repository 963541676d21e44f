package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// ctxRealIP is the context key the rate limiter's bucket keys read from.
const ctxRealIP = "real_ip"

// RealIP resolves the client address once per request so rate-limit buckets
// key on the real caller, not the proxy in front of it. CF-Connecting-IP
// wins over X-Forwarded-For (left-most entry); anything unparseable falls
// back to Gin's own resolution.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		if cf := strings.TrimSpace(c.GetHeader("CF-Connecting-IP")); cf != "" {
			if ip := net.ParseIP(cf); ip != nil {
				c.Set(ctxRealIP, ip.String())
				c.Next()
				return
			}
		}
		if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
			first := strings.TrimSpace(strings.Split(xff, ",")[0])
			if ip := net.ParseIP(first); ip != nil {
				c.Set(ctxRealIP, ip.String())
				c.Next()
				return
			}
		}
		c.Set(ctxRealIP, c.ClientIP())
		c.Next()
	}
}
