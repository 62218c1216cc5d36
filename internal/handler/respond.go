package handler

import (
	"errors"
	"net/http"

	"sunnydayy-backend/internal/domain"
	"sunnydayy-backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const userIDHeader = "X-User-ID"

// userID identifies the shopper for cart, wishlist and checkout requests.
func userID(c *gin.Context) string {
	if id := c.GetHeader(userIDHeader); id != "" {
		return id
	}
	return domain.GuestUserID
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": "Invalid request",
		"error":   err.Error(),
	})
}

// respondError maps domain errors onto HTTP responses. resource names the
// entity for 404s and action completes "Failed to ..." for 500s.
func respondError(c *gin.Context, logger *zap.Logger, err error, resource, action string) {
	var transition *domain.TransitionError

	switch {
	case errors.As(err, &transition):
		allowed := []string{}
		for _, s := range transition.From.Next() {
			allowed = append(allowed, string(s))
		}
		c.JSON(http.StatusConflict, gin.H{
			"success":         false,
			"message":         "Order cannot move from " + string(transition.From) + " to " + string(transition.To),
			"currentStatus":   transition.From,
			"allowedStatuses": allowed,
		})
	case errors.Is(err, domain.ErrIllegalTransition):
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"message": "Order status was changed by another request",
		})
	case errors.Is(err, domain.ErrInvalidStatus):
		valid := domain.AdminStatusStrings()
		var statusErr *domain.StatusError
		if errors.As(err, &statusErr) {
			valid = statusErr.ValidStrings()
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"success":       false,
			"message":       "Invalid status",
			"validStatuses": valid,
		})
	case errors.Is(err, domain.ErrInvalidSignature):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid payment signature",
		})
	case errors.Is(err, domain.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid " + resource + " ID",
		})
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrDuplicate):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": err.Error(),
		})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": resource + " not found",
		})
	default:
		logger.Error("Failed to "+action,
			zap.String("request_id", c.GetString(middleware.RequestIDKey)),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to " + action,
			"error":   err.Error(),
		})
	}
}
