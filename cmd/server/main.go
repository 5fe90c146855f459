package main

import (
	"log"
	"os"

	"tdseries/internal/app/router"
	"tdseries/internal/feature/timeseries/adapters/store"
	"tdseries/internal/feature/timeseries/adapters/twelvedata"
	"tdseries/internal/feature/timeseries/transport/handler"
	"tdseries/internal/feature/timeseries/usecase"
	"tdseries/internal/platform/db"
	platformhttp "tdseries/internal/platform/http"
)

func main() {
	// db
	gdb := db.OpenDB()

	// Remote API client
	cfg := twelvedata.LoadConfig()
	if cfg.APIKey == "" {
		log.Println("[WARN] No Twelve Data API key configured. Live fetches will fail; set TWELVE_DATA_API_KEY or a key file.")
	}
	client := twelvedata.NewClient(cfg, platformhttp.NewHTTPClient(cfg.Timeout))

	// Repository
	barRepo := store.NewBarRepository(gdb)

	// Usecase
	barsUC := usecase.NewBarsUsecase(barRepo)

	// Handler
	seriesH := handler.NewSeriesHandler(client)
	barsH := handler.NewBarsHandler(barsUC)

	r := router.NewRouter(seriesH, barsH)

	addr := ":8080"
	if p := os.Getenv("PORT"); p != "" {
		addr = ":" + p
	}
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
