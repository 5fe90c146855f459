package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tdseries/internal/feature/timeseries/adapters/twelvedata"
	"tdseries/internal/feature/timeseries/domain/entity"
	"tdseries/internal/feature/timeseries/transport/http/dto"
)

// BarsUsecase reads stored bars. The interface is defined by the consumer
// (handler).
type BarsUsecase interface {
	GetBars(ctx context.Context, symbol, interval string, outputsize int) ([]entity.Bar, error)
}

// BarsHandler serves bars previously persisted by ingest.
type BarsHandler struct {
	uc BarsUsecase
}

// NewBarsHandler creates a BarsHandler over the given usecase.
func NewBarsHandler(uc BarsUsecase) *BarsHandler {
	return &BarsHandler{uc: uc}
}

// GetBarsHandler returns stored bars for a symbol as JSON.
//
// Example:
// GET /bars/AAPL?interval=1day&outputsize=200
func (h *BarsHandler) GetBarsHandler(c *gin.Context) {
	symbol := c.Param("symbol")
	interval := c.DefaultQuery("interval", "1day")
	outputsize, _ := strconv.Atoi(c.DefaultQuery("outputsize", "200"))

	bars, err := h.uc.GetBars(c.Request.Context(), symbol, interval, outputsize)
	if err != nil {
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: err.Error()})
		return
	}

	out := make([]dto.BarResponse, 0, len(bars))
	for _, b := range bars {
		out = append(out, dto.BarResponse{
			Time:          formatBarTime(b.Time, twelvedata.Interval(interval)),
			Open:          b.Open,
			High:          b.High,
			Low:           b.Low,
			Close:         b.Close,
			Volume:        b.Volume,
			PreviousClose: b.PreviousClose,
		})
	}

	c.JSON(http.StatusOK, out)
}
