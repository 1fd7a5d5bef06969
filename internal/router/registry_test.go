package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRegistryMountsModulesOnce(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	reg := NewRegistry(engine)

	var seen []string
	reg.Use(func(c *gin.Context) {
		seen = append(seen, c.FullPath())
		c.Next()
	})
	reg.Add(nil, ModuleFunc(func(rg *gin.RouterGroup) {
		rg.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	}))

	reg.RegisterAll()
	assert.NotPanics(t, reg.RegisterAll)
	assert.Equal(t, []string{"GET /api/ping"}, reg.Routes())

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
	assert.Equal(t, []string{"/api/ping"}, seen)
}
