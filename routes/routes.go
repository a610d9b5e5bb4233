package routes

import (
	"github.com/william01alltech-hue/my-health-app/controllers"
	"github.com/william01alltech-hue/my-health-app/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps is everything the router needs wired up.
type Deps struct {
	Ledger   *services.LedgerService
	Metrics  *services.MetricsService
	Analysis *services.AnalysisService
	Export   *services.ExportService
	Hub      *services.RealtimeHub
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	profile := controllers.NewProfileController(d.Ledger)
	weight := controllers.NewWeightController(d.Ledger)
	diet := controllers.NewDietController(d.Ledger, d.Analysis)
	scan := controllers.NewScanController(d.Analysis)
	activity := controllers.NewActivityController(d.Ledger)
	water := controllers.NewWaterController(d.Ledger)
	metrics := controllers.NewMetricsController(d.Metrics)
	data := controllers.NewDataController(d.Ledger, d.Export)
	realtime := controllers.NewRealtimeController(d.Hub)

	r.GET("/profile", profile.GetProfile)
	r.PUT("/profile", profile.UpdateProfile)

	r.POST("/weight", weight.AddWeight)
	r.GET("/weight", weight.ListWeights)

	dietGroup := r.Group("/diet")
	{
		dietGroup.GET("", diet.GetDiet)
		dietGroup.POST("/:category/photos", diet.AddPhoto)
		dietGroup.DELETE("/:category/photos/:index", diet.RemovePhoto)
		dietGroup.POST("/:category/photos/:id/analyze", diet.AnalyzePhoto)
		dietGroup.PUT("/:category/photos/:id/food", diet.SetFood)
	}

	r.POST("/scan/body", scan.BodyScan)
	r.POST("/scan/activity", scan.ActivityScan)

	r.GET("/activity", activity.GetDay)
	r.PUT("/activity/:id", activity.Update)

	r.POST("/water", water.AddWater)
	r.GET("/water", water.GetWater)

	r.GET("/metrics/summary", metrics.Summary)
	r.GET("/metrics/weight-chart", metrics.WeightChart)

	r.DELETE("/data", data.ClearAll)
	r.GET("/export", data.ExportXLSX)

	r.GET("/ws", realtime.EventsWS)

	return r
}
