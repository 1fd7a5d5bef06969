package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/growth-partner/config"
	"github.com/oksasatya/growth-partner/internal/container"
	handlers "github.com/oksasatya/growth-partner/internal/interface/http"
	"github.com/oksasatya/growth-partner/internal/interface/middleware"
)

// UserModule wires the user routes:
// POST /users, GET /users/:id, GET /users/:id/goals,
// GET /users/:id/goals/search, POST /users/:id/motivation, GET /users/:id/snapshot
type UserModule struct {
	Handler *handlers.UserHandler
	Cfg     *config.Config
}

func NewUserModule(h *handlers.UserHandler, cfg *config.Config) *UserModule {
	return &UserModule{Handler: h, Cfg: cfg}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	perIP := middleware.RateLimit(rdb, m.Cfg.RateLimitPerIP, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	// signups are cheap to abuse
	signupLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	motivationLimiter := middleware.RateLimit(rdb, 5, time.Minute, middleware.KeyByIPAndPath(), nil)

	users := rg.Group("/users")
	users.Use(perIP)
	{
		users.POST("", signupLimiter, m.Handler.Create)
		users.GET("/:id", m.Handler.Get)
		users.GET("/:id/goals", m.Handler.ListGoals)
		users.GET("/:id/goals/search", m.Handler.SearchGoals)
		users.POST("/:id/motivation", motivationLimiter, m.Handler.Motivate)
		users.GET("/:id/snapshot", m.Handler.Snapshot)
	}
}
