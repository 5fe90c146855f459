package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"tdseries/internal/feature/timeseries/adapters/store"
	"tdseries/internal/feature/timeseries/adapters/twelvedata"
	"tdseries/internal/feature/timeseries/usecase"
	"tdseries/internal/platform/db"
	platformhttp "tdseries/internal/platform/http"
)

func main() {
	gdb := db.OpenDB()

	cfg := twelvedata.LoadConfig()
	market := twelvedata.NewClient(cfg, platformhttp.NewHTTPClient(cfg.Timeout))
	barRepo := store.NewBarRepository(gdb)
	uc := usecase.NewIngestUsecase(market, barRepo)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	symbols := loadSymbols()
	if len(symbols) == 0 {
		log.Fatal("no symbols to ingest: pass them as arguments or set TDSERIES_SYMBOLS")
	}

	if err := uc.IngestAll(ctx, symbols); err != nil {
		log.Fatal(err)
	}
	log.Println("ingest ok")
}

// loadSymbols takes symbols from the command line, falling back to the
// comma-separated TDSERIES_SYMBOLS environment variable.
func loadSymbols() []string {
	args := os.Args[1:]
	if len(args) > 0 {
		return args
	}
	env := os.Getenv("TDSERIES_SYMBOLS")
	if env == "" {
		return nil
	}
	var out []string
	for _, s := range strings.Split(env, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
