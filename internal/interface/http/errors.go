package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/growth-partner/internal/domain/apperror"
	"github.com/oksasatya/growth-partner/pkg/helpers"
	"github.com/oksasatya/growth-partner/pkg/response"
	"github.com/oksasatya/growth-partner/pkg/validation"
)

// writeError renders a use-case error. Operational failures are logged and
// reported with a generic message so internals never reach the client.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	ae, ok := apperror.As(err)
	if !ok {
		ae = apperror.Unexpected(err)
	}

	body := response.ErrorBody{Kind: string(ae.Kind)}
	message := ae.Error()
	switch ae.Kind {
	case apperror.KindValidation:
		body.Details = validation.ToDetails(ae)
	case apperror.KindRepository, apperror.KindUnexpected:
		if logger != nil {
			helpers.LogError(logger, "request failed", err, logrus.Fields{
				"request_id": c.GetString("request_id"),
				"path":       c.FullPath(),
				"kind":       string(ae.Kind),
				"operation":  ae.Operation,
			})
		}
		message = "internal server error"
	}
	response.Error[any](c, ae.StatusCode(), message, body)
}

// bindError renders a request body that failed to decode or bind.
func bindError(c *gin.Context, err error) {
	response.Error[any](c, http.StatusBadRequest, "invalid payload", response.ErrorBody{
		Kind:    string(apperror.KindValidation),
		Details: validation.ToDetails(err),
	})
}
