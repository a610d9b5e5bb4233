package controllers

import (
	"net/http"
	"strconv"

	"github.com/william01alltech-hue/my-health-app/models"
	"github.com/william01alltech-hue/my-health-app/services"

	"github.com/gin-gonic/gin"
)

type DietController struct {
	Ledger   *services.LedgerService
	Analysis *services.AnalysisService
}

func NewDietController(ledger *services.LedgerService, analysis *services.AnalysisService) *DietController {
	return &DietController{Ledger: ledger, Analysis: analysis}
}

// GetDiet lists the day's photos and food log per category.
func (dc *DietController) GetDiet(c *gin.Context) {
	dateKey, ok := dateOrToday(c)
	if !ok {
		return
	}
	diet, err := dc.Ledger.DayDiet(dateKey)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": dateKey, "categories": diet})
}

// AddPhoto appends a photo to today's (or ?date=) category bucket. The
// photo is stored before any recognition happens.
func (dc *DietController) AddPhoto(c *gin.Context) {
	dateKey, ok := dateOrToday(c)
	if !ok {
		return
	}

	var req struct {
		Image string `json:"image" binding:"required"` // data-URI
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	category := models.MealCategory(c.Param("category"))
	entry, err := dc.Ledger.AppendDietPhoto(dateKey, category, req.Image)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// RemovePhoto deletes the photo at an index; the attached food log entry
// goes with it.
func (dc *DietController) RemovePhoto(c *gin.Context) {
	dateKey, ok := dateOrToday(c)
	if !ok {
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid photo index"})
		return
	}

	category := models.MealCategory(c.Param("category"))
	if err := dc.Ledger.RemoveDietPhoto(dateKey, category, index); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AnalyzePhoto runs food recognition for a stored photo and attaches the
// result. Recognition failure leaves the photo in place.
func (dc *DietController) AnalyzePhoto(c *gin.Context) {
	entryID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry id"})
		return
	}

	entry, err := dc.Analysis.AnalyzeFoodPhoto(c.Request.Context(), uint(entryID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// SetFood manually attaches or corrects the food log entry for a photo.
func (dc *DietController) SetFood(c *gin.Context) {
	entryID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry id"})
		return
	}

	var req struct {
		Name     string   `json:"name" binding:"required"`
		Calories *float64 `json:"calories" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := dc.Ledger.AttachFoodLog(uint(entryID), req.Name, *req.Calories)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}
