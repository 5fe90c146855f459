package router

import (
	"github.com/gin-gonic/gin"

	"tdseries/internal/feature/timeseries/transport/handler"
)

// NewRouter wires the HTTP endpoints.
func NewRouter(series *handler.SeriesHandler, bars *handler.BarsHandler) *gin.Engine {
	r := gin.Default()

	// Liveness probe
	r.GET("/healthz", handler.Health)

	// Live fetch from the remote API; representation selected via ?format=
	r.GET("/series/:symbol", series.GetSeriesHandler)

	// Bars previously persisted by the ingest command
	r.GET("/bars/:symbol", bars.GetBarsHandler)

	return r
}
