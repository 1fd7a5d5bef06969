package middleware

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS builds the cors middleware for the given origins. It returns nil when
// no origins are configured; "*" allows any origin without credentials.
func CORS(origins []string) (gin.HandlerFunc, error) {
	if len(origins) == 0 {
		return nil, nil
	}
	conf := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", HeaderRequesterID, HeaderRequestID},
		ExposeHeaders:    []string{"Content-Length", HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if slices.Contains(origins, "*") {
		conf.AllowAllOrigins = true
		conf.AllowCredentials = false
	} else {
		conf.AllowOrigins = origins
	}
	// cors.New panics on an invalid config
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return cors.New(conf), nil
}
