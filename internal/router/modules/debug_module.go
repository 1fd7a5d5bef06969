package modules

import (
	"expvar"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/growth-partner/internal/interface/middleware"
	"github.com/oksasatya/growth-partner/pkg/response"
)

// DebugModule serves process counters (expvar, including the
// growth_partner map) and the mounted route table. Private networks are not
// rate limited.
type DebugModule struct {
	Redis  *redis.Client
	Routes func() []string
}

func NewDebugModule(rdb *redis.Client, routes func() []string) *DebugModule {
	return &DebugModule{Redis: rdb, Routes: routes}
}

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	debug := rg.Group("/debug", rl)
	debug.GET("/vars", gin.WrapH(expvar.Handler()))
	if m.Routes != nil {
		debug.GET("/routes", func(c *gin.Context) {
			routes := m.Routes()
			response.Success(c, http.StatusOK, routes, "routes", map[string]any{"count": len(routes)})
		})
	}
}
