package controllers

import (
	"net/http"

	"github.com/william01alltech-hue/my-health-app/models"
	"github.com/william01alltech-hue/my-health-app/services"

	"github.com/gin-gonic/gin"
)

type ActivityController struct {
	Ledger *services.LedgerService
}

func NewActivityController(ledger *services.LedgerService) *ActivityController {
	return &ActivityController{Ledger: ledger}
}

// GetDay returns the day's entries for the whole activity set, defaults
// included, plus the static standards for the UI.
func (ac *ActivityController) GetDay(c *gin.Context) {
	dateKey, ok := dateOrToday(c)
	if !ok {
		return
	}

	entries, err := ac.Ledger.DayActivity(dateKey)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"date":      dateKey,
		"entries":   entries,
		"standards": models.ActivityStandards,
	})
}

// Update upserts the actual and/or target for one activity on a day.
func (ac *ActivityController) Update(c *gin.Context) {
	dateKey, ok := dateOrToday(c)
	if !ok {
		return
	}

	var req struct {
		Actual *float64 `json:"actual"`
		Target *float64 `json:"target"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Actual == nil && req.Target == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
		return
	}

	activityID := c.Param("id")
	if req.Actual != nil {
		if err := ac.Ledger.SetActivityActual(dateKey, activityID, *req.Actual); err != nil {
			respondError(c, err)
			return
		}
	}
	if req.Target != nil {
		if err := ac.Ledger.SetActivityTarget(dateKey, activityID, *req.Target); err != nil {
			respondError(c, err)
			return
		}
	}
	c.Status(http.StatusNoContent)
}
