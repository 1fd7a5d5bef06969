package modules

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebugModule(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	NewDebugModule(nil, func() []string { return []string{"GET /api/healthz"} }).Register(engine.Group("/api"))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/debug/vars", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var vars map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &vars))
	assert.Contains(t, vars, "memstats")

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/debug/routes", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "GET /api/healthz")
}
