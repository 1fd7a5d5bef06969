package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

const CtxRealIPKey = "real_ip"

// Single-address proxy headers, checked in order before X-Forwarded-For.
var realIPHeaders = []string{"CF-Connecting-IP", "X-Real-IP"}

// RealIP stores the client address under CtxRealIPKey for the rate limiter
// and request logging.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(CtxRealIPKey, resolveIP(c))
		c.Next()
	}
}

// resolveIP takes the first parseable proxy header, then the left-most
// X-Forwarded-For hop, then gin's own ClientIP.
func resolveIP(c *gin.Context) string {
	for _, h := range realIPHeaders {
		if ip := parseIP(c.GetHeader(h)); ip != "" {
			return ip
		}
	}
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := parseIP(first); ip != "" {
			return ip
		}
	}
	return c.ClientIP()
}

func parseIP(raw string) string {
	ip := net.ParseIP(strings.TrimSpace(raw))
	if ip == nil {
		return ""
	}
	return ip.String()
}
