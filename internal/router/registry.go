package router

import (
	"sync"

	"github.com/gin-gonic/gin"
)

// APIPrefix is the group every feature module is mounted on.
const APIPrefix = "/api"

// Module registers the routes of one feature (users, goals, health...).
type Module interface {
	Register(rg *gin.RouterGroup)
}

// ModuleFunc lets a plain function act as a Module.
type ModuleFunc func(rg *gin.RouterGroup)

func (f ModuleFunc) Register(rg *gin.RouterGroup) { f(rg) }

// Registry collects modules and group-wide middleware, then mounts them
// once on the API group.
type Registry struct {
	Engine *gin.Engine
	API    *gin.RouterGroup

	middlewares []gin.HandlerFunc
	modules     []Module
	once        sync.Once
}

func NewRegistry(engine *gin.Engine) *Registry {
	return &Registry{Engine: engine, API: engine.Group(APIPrefix)}
}

// Use adds middleware applied to every module route. It has no effect after
// RegisterAll.
func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *Registry) Add(mods ...Module) {
	for _, m := range mods {
		if m != nil {
			r.modules = append(r.modules, m)
		}
	}
}

// RegisterAll mounts the middleware and modules. Later calls are no-ops, so
// a route is never registered twice (gin panics on duplicates).
func (r *Registry) RegisterAll() {
	r.once.Do(func() {
		if len(r.middlewares) > 0 {
			r.API.Use(r.middlewares...)
		}
		for _, m := range r.modules {
			m.Register(r.API)
		}
	})
}

// Routes lists "METHOD path" for everything mounted so far.
func (r *Registry) Routes() []string {
	info := r.Engine.Routes()
	out := make([]string, 0, len(info))
	for _, ri := range info {
		out = append(out, ri.Method+" "+ri.Path)
	}
	return out
}
