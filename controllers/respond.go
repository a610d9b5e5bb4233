package controllers

import (
	"errors"
	"net/http"

	"github.com/william01alltech-hue/my-health-app/services"
	"github.com/william01alltech-hue/my-health-app/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// respondError maps the service error kinds onto HTTP statuses. Everything
// user-visible is a single descriptive message.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrCapacityExceeded):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrRecognitionFailed):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// dateOrToday resolves the optional ?date= query param to a DateKey,
// defaulting to the current local day. Returns false after responding when
// the param is malformed.
func dateOrToday(c *gin.Context) (string, bool) {
	d := c.Query("date")
	if d == "" {
		return utils.TodayKey(), true
	}
	if _, err := utils.ParseDateKey(d); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format. Use YYYY-MM-DD"})
		return "", false
	}
	return d, true
}
