package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// AllowPrivateIP bypasses the limiter for loopback and private addresses.
func AllowPrivateIP() AllowFunc {
	return func(c *gin.Context) bool {
		ip := ipFromCtx(c)
		parsed := net.ParseIP(ip)
		if parsed == nil {
			return false
		}
		return parsed.IsLoopback() || parsed.IsPrivate()
	}
}

// AllowPaths bypasses the limiter for the given route paths, e.g. health checks.
func AllowPaths(paths ...string) AllowFunc {
	return func(c *gin.Context) bool {
		p := routeOf(c)
		for _, x := range paths {
			if strings.EqualFold(p, x) {
				return true
			}
		}
		return false
	}
}

// AnyAllow combines allow funcs; the first match wins.
func AnyAllow(fns ...AllowFunc) AllowFunc {
	return func(c *gin.Context) bool {
		for _, fn := range fns {
			if fn != nil && fn(c) {
				return true
			}
		}
		return false
	}
}
