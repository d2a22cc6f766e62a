package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/floraledger/internal/domain/apperror"
	"github.com/mamadbah2/floraledger/internal/domain/models"
)

const actorKey = "actor"

// Identify reads the user established upstream from X-User-Name and
// X-User-Role. Unknown or missing roles get sales staff rights.
func Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := models.Actor{
			Name: strings.TrimSpace(c.GetHeader("X-User-Name")),
			Role: models.RoleSalesStaff,
			IP:   c.ClientIP(),
		}
		if models.Role(strings.ToUpper(strings.TrimSpace(c.GetHeader("X-User-Role")))) == models.RoleAdmin {
			actor.Role = models.RoleAdmin
		}
		if actor.Name == "" {
			actor.Name = "unknown"
		}
		c.Set(actorKey, actor)
		c.Next()
	}
}

// RequireRole aborts with 403 unless the request actor holds role.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if actorFrom(c).Role != role {
			err := apperror.NewForbidden("insufficient permissions").WithDetail("required", string(role))
			c.AbortWithStatusJSON(err.HTTPStatus, err)
			return
		}
		c.Next()
	}
}

func actorFrom(c *gin.Context) models.Actor {
	if v, ok := c.Get(actorKey); ok {
		if actor, ok := v.(models.Actor); ok {
			return actor
		}
	}
	return models.Actor{Name: "unknown", Role: models.RoleSalesStaff}
}

// writeError renders err as {code, message, details}. Errors that are not
// AppErrors are logged and hidden behind a generic internal error.
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	appErr, ok := apperror.AsAppError(err)
	if !ok {
		appErr = apperror.NewInternal(err)
	}
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
	}
	c.JSON(appErr.HTTPStatus, appErr)
}

func badRequest(c *gin.Context, err error) {
	appErr := apperror.NewValidation("invalid request body").WithDetail("error", err.Error())
	c.JSON(appErr.HTTPStatus, appErr)
}
