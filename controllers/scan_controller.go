package controllers

import (
	"net/http"

	"github.com/william01alltech-hue/my-health-app/services"

	"github.com/gin-gonic/gin"
)

// ScanController covers the non-food recognition flows: the combo
// weight+water scan and activity machine-display scans.
type ScanController struct {
	Analysis *services.AnalysisService
}

func NewScanController(analysis *services.AnalysisService) *ScanController {
	return &ScanController{Analysis: analysis}
}

// BodyScan extracts weight and water from one image. Either field may come
// back undetected; only detected values are written.
func (sc *ScanController) BodyScan(c *gin.Context) {
	dateKey, ok := dateOrToday(c)
	if !ok {
		return
	}

	var req struct {
		Image string `json:"image" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	result, err := sc.Analysis.AnalyzeBodyPhoto(c.Request.Context(), dateKey, req.Image)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"date":     dateKey,
		"weight":   result.Weight,
		"water":    result.Water,
		"detected": !result.Empty(),
	})
}

// ActivityScan reads an amount off a machine display for the activity id
// supplied by the caller.
func (sc *ScanController) ActivityScan(c *gin.Context) {
	dateKey, ok := dateOrToday(c)
	if !ok {
		return
	}

	var req struct {
		ActivityID string `json:"activity_id" binding:"required"`
		Image      string `json:"image" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	value, err := sc.Analysis.AnalyzeActivityPhoto(c.Request.Context(), dateKey, req.ActivityID, req.Image)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"date":        dateKey,
		"activity_id": req.ActivityID,
		"value":       value,
	})
}
