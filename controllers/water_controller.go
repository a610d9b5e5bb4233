package controllers

import (
	"net/http"

	"github.com/william01alltech-hue/my-health-app/services"

	"github.com/gin-gonic/gin"
)

type WaterController struct {
	Ledger *services.LedgerService
}

func NewWaterController(ledger *services.LedgerService) *WaterController {
	return &WaterController{Ledger: ledger}
}

// AddWater adds to the day's accumulator.
func (wc *WaterController) AddWater(c *gin.Context) {
	dateKey, ok := dateOrToday(c)
	if !ok {
		return
	}

	var req struct {
		Milliliters float64 `json:"ml" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := wc.Ledger.AddWater(dateKey, req.Milliliters); err != nil {
		respondError(c, err)
		return
	}

	total, err := wc.Ledger.DayWater(dateKey)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": dateKey, "total_ml": total})
}

func (wc *WaterController) GetWater(c *gin.Context) {
	dateKey, ok := dateOrToday(c)
	if !ok {
		return
	}
	total, err := wc.Ledger.DayWater(dateKey)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": dateKey, "total_ml": total})
}
