package controllers

import (
	"errors"
	"net/http"

	"github.com/william01alltech-hue/my-health-app/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProfileController struct {
	Ledger *services.LedgerService
}

func NewProfileController(ledger *services.LedgerService) *ProfileController {
	return &ProfileController{Ledger: ledger}
}

// GetProfile returns the profile, or a first-run marker when it was never
// set up so the UI can prompt for it.
func (pc *ProfileController) GetProfile(c *gin.Context) {
	profile, err := pc.Ledger.Profile()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"setup_required": true})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (pc *ProfileController) UpdateProfile(c *gin.Context) {
	var req struct {
		HeightCm float64 `json:"height_cm" binding:"required"`
		Age      int     `json:"age" binding:"required"`
		Gender   string  `json:"gender"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := pc.Ledger.SaveProfile(req.HeightCm, req.Age, req.Gender)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
