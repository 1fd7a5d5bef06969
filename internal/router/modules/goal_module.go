package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/growth-partner/config"
	"github.com/oksasatya/growth-partner/internal/container"
	handlers "github.com/oksasatya/growth-partner/internal/interface/http"
	"github.com/oksasatya/growth-partner/internal/interface/middleware"
)

// GoalModule wires POST /goals and GET|PATCH|DELETE /goals/:id. The item
// routes act on behalf of the X-User-ID requester.
type GoalModule struct {
	Handler *handlers.GoalHandler
	Cfg     *config.Config
}

func NewGoalModule(h *handlers.GoalHandler, cfg *config.Config) *GoalModule {
	return &GoalModule{Handler: h, Cfg: cfg}
}

func (m *GoalModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()

	goals := rg.Group("/goals")
	goals.Use(middleware.RateLimit(rdb, m.Cfg.RateLimitPerIP, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP()))
	goals.POST("", m.Handler.Create)

	owned := goals.Group("/:id")
	owned.Use(
		middleware.Requester(),
		middleware.RateLimit(rdb, m.Cfg.RateLimitPerUser, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		owned.GET("", m.Handler.Get)
		owned.PATCH("", m.Handler.Update)
		owned.DELETE("", m.Handler.Delete)
	}
}
