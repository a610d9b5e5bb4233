package main

import (
	"log"
	"os"

	"github.com/william01alltech-hue/my-health-app/config"
	"github.com/william01alltech-hue/my-health-app/routes"
	"github.com/william01alltech-hue/my-health-app/services"
	"github.com/william01alltech-hue/my-health-app/utils"
)

func main() {
	config.InitDB()
	utils.InitS3() // optional photo archive; no-op without S3_BUCKET

	hub := services.NewRealtimeHub()
	mirror := services.NewMirrorService()
	ledger := services.NewLedgerService(config.DB, hub, mirror)
	metrics := services.NewMetricsService(config.DB)
	export := services.NewExportService(config.DB)

	vision := services.NewVisionService()
	rek, err := services.NewRekognitionService()
	if err != nil {
		log.Printf("rekognition fallback unavailable: %v", err)
		rek = nil
	}
	food := services.NewFoodService(vision, rek, services.NewNutritionService())
	analysis := services.NewAnalysisService(ledger, food, vision, hub)

	r := routes.SetupRouter(routes.Deps{
		Ledger:   ledger,
		Metrics:  metrics,
		Analysis: analysis,
		Export:   export,
		Hub:      hub,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
