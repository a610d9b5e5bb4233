package controllers

import (
	"net/http"
	"strconv"

	"github.com/william01alltech-hue/my-health-app/services"
	"github.com/william01alltech-hue/my-health-app/utils"

	"github.com/gin-gonic/gin"
)

type MetricsController struct {
	Metrics *services.MetricsService
}

func NewMetricsController(metrics *services.MetricsService) *MetricsController {
	return &MetricsController{Metrics: metrics}
}

// Summary returns the day's derived metrics (BMI, intake, burn, net).
func (mc *MetricsController) Summary(c *gin.Context) {
	dateKey, ok := dateOrToday(c)
	if !ok {
		return
	}
	summary, err := mc.Metrics.Summary(dateKey)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// WeightChart returns the 7-day series. ?start= anchors the window
// (default: today at the last point); ?shift= moves the anchor by whole
// weeks before plotting.
func (mc *MetricsController) WeightChart(c *gin.Context) {
	anchor := mc.Metrics.DefaultAnchor()
	if start := c.Query("start"); start != "" {
		t, err := utils.ParseDateKey(start)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format. Use YYYY-MM-DD"})
			return
		}
		anchor = t
	}
	if shift := c.Query("shift"); shift != "" {
		weeks, err := strconv.Atoi(shift)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "shift must be a whole number of weeks"})
			return
		}
		anchor = mc.Metrics.ShiftAnchor(anchor, weeks)
	}

	series, err := mc.Metrics.WeightChart(anchor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, series)
}
