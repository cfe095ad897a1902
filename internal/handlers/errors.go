package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"snackbar/internal/middleware"
	"snackbar/internal/services"
)

// respondError maps a service error onto a status code and a JSON body.
// Unexpected errors are logged and hidden behind a generic message.
func respondError(c *gin.Context, lg *zap.Logger, err error) {
	var (
		verr *services.ValidationError
		nf   *services.NotFoundError
	)
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"message": verr.Message, "fields": verr.Fields})
	case errors.As(err, &nf):
		c.JSON(http.StatusNotFound, gin.H{"message": nf.Error()})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
	case errors.Is(err, services.ErrTooManyAttempts):
		c.JSON(http.StatusTooManyRequests, gin.H{"message": err.Error()})
	default:
		_ = c.Error(err)
		lg.Error("Request failed",
			zap.Error(err),
			zap.String("route", c.FullPath()),
			zap.String("request_id", middleware.GetRequestID(c)),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"message": message})
}
