package controllers

import (
	"net/http"

	"github.com/william01alltech-hue/my-health-app/services"
	"github.com/william01alltech-hue/my-health-app/utils"

	"github.com/gin-gonic/gin"
)

type WeightController struct {
	Ledger *services.LedgerService
}

func NewWeightController(ledger *services.LedgerService) *WeightController {
	return &WeightController{Ledger: ledger}
}

// AddWeight records a direct weight entry. Date defaults to today; a
// same-day entry replaces the previous one.
func (wc *WeightController) AddWeight(c *gin.Context) {
	var req struct {
		Weight float64 `json:"weight" binding:"required"`
		Date   string  `json:"date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dateKey := req.Date
	if dateKey == "" {
		dateKey = utils.TodayKey()
	} else if _, err := utils.ParseDateKey(dateKey); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format. Use YYYY-MM-DD"})
		return
	}

	if err := wc.Ledger.UpsertWeight(dateKey, req.Weight); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"date": dateKey, "weight": req.Weight})
}

func (wc *WeightController) ListWeights(c *gin.Context) {
	samples, err := wc.Ledger.ListWeights()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, samples)
}
