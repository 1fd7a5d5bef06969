package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/growth-partner/internal/domain/entity"
	"github.com/oksasatya/growth-partner/pkg/response"
	"github.com/oksasatya/growth-partner/pkg/validation"
)

const (
	CtxUserIDKey      = "userID"
	HeaderRequesterID = "X-User-ID"
)

// Requester reads the acting user from X-User-ID. Routes that act on a goal
// need it for the ownership check; a missing or malformed id is rejected.
func Requester() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := entity.NewUserID(c.GetHeader(HeaderRequesterID))
		if err != nil {
			response.Error[any](c, http.StatusBadRequest, "missing or invalid "+HeaderRequesterID+" header", response.ErrorBody{
				Kind:    "validation",
				Details: validation.ToDetails(err),
			})
			c.Abort()
			return
		}
		c.Set(CtxUserIDKey, id.String())
		c.Next()
	}
}

// RequesterID returns the id stored by Requester.
func RequesterID(c *gin.Context) (entity.UserID, bool) {
	raw := c.GetString(CtxUserIDKey)
	if raw == "" {
		return entity.UserID{}, false
	}
	id, err := entity.NewUserID(raw)
	if err != nil {
		return entity.UserID{}, false
	}
	return id, true
}
