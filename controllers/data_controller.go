package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/william01alltech-hue/my-health-app/services"

	"github.com/gin-gonic/gin"
)

// DataController covers whole-ledger operations: clear and export.
type DataController struct {
	Ledger *services.LedgerService
	Export *services.ExportService
}

func NewDataController(ledger *services.LedgerService, export *services.ExportService) *DataController {
	return &DataController{Ledger: ledger, Export: export}
}

// ClearAll empties every record store. The user profile stays.
func (dc *DataController) ClearAll(c *gin.Context) {
	if err := dc.Ledger.ClearAll(); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ExportXLSX streams the whole ledger as a spreadsheet download.
func (dc *DataController) ExportXLSX(c *gin.Context) {
	f, err := dc.Export.BuildWorkbook()
	if err != nil {
		respondError(c, err)
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("health-ledger-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		respondError(c, err)
	}
}
