// Package handler provides the HTTP handlers of the timeseries feature.
package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"tdseries/internal/feature/timeseries/adapters/twelvedata"
	"tdseries/internal/feature/timeseries/domain"
	"tdseries/internal/feature/timeseries/domain/entity"
	"tdseries/internal/feature/timeseries/transport/http/dto"
)

// SeriesClient fetches a series from the remote API in a selectable
// representation. Following Go convention, the interface is defined by the
// consumer (handler).
type SeriesClient interface {
	Fetch(ctx context.Context, req twelvedata.Request, format twelvedata.Format) (*twelvedata.Result, error)
}

// SeriesHandler serves live series fetched from the remote API.
type SeriesHandler struct {
	client SeriesClient
}

// NewSeriesHandler creates a SeriesHandler over the given client.
func NewSeriesHandler(client SeriesClient) *SeriesHandler {
	return &SeriesHandler{client: client}
}

// GetSeriesHandler fetches a symbol's time series and renders it in the
// requested format.
//
// Example:
// GET /series/SPY?interval=5min&outputsize=3&format=tabular
func (h *SeriesHandler) GetSeriesHandler(c *gin.Context) {
	symbol := c.Param("symbol")

	interval, err := twelvedata.ParseInterval(c.DefaultQuery("interval", "1day"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	format, err := twelvedata.ParseFormat(c.DefaultQuery("format", "tabular"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	req := twelvedata.Request{
		Symbol:        symbol,
		Interval:      interval,
		Exchange:      c.Query("exchange"),
		Country:       c.Query("country"),
		Type:          twelvedata.SecurityType(c.Query("type")),
		Order:         twelvedata.Order(c.Query("order")),
		Timezone:      c.Query("timezone"),
		StartDate:     c.Query("start_date"),
		EndDate:       c.Query("end_date"),
		PreviousClose: c.Query("previous_close") == "true",
	}
	// Absent integer params fall through to the API defaults; unparseable
	// ones are rejected like any other invalid argument.
	if raw := c.Query("outputsize"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			err = fmt.Errorf("%w: outputsize %q", domain.ErrInvalidArgument, raw)
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
			return
		}
		req.OutputSize = twelvedata.Int(v)
	}
	if raw := c.Query("dp"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			err = fmt.Errorf("%w: dp %q", domain.ErrInvalidArgument, raw)
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
			return
		}
		req.DecimalPlaces = twelvedata.Int(v)
	}

	res, err := h.client.Fetch(c.Request.Context(), req, format)
	if err != nil {
		c.JSON(statusForError(err), dto.ErrorResponse{Error: err.Error()})
		return
	}

	switch {
	case res.Raw != nil:
		c.JSON(http.StatusOK, res.Raw)
	case res.Index != nil:
		c.JSON(http.StatusOK, toTimeIndexResponse(res.Index, interval))
	default:
		c.JSON(http.StatusOK, toSeriesResponse(res.Series, interval))
	}
}

// statusForError maps the domain error taxonomy onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument), errors.Is(err, domain.ErrUnsupportedFormat):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrRemoteAPI), errors.Is(err, domain.ErrMalformedData):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// formatBarTime renders a bar timestamp: zoned for sub-daily intervals,
// plain calendar date for daily and coarser.
func formatBarTime(t time.Time, interval twelvedata.Interval) string {
	if interval.SubDaily() {
		return t.Format(time.RFC3339)
	}
	return t.UTC().Format("2006-01-02")
}

func metaToMap(m entity.Meta) map[string]string {
	out := make(map[string]string, 7+len(m.Extra))
	set := func(k, v string) {
		if v != "" {
			out[k] = v
		}
	}
	set("symbol", m.Symbol)
	set("interval", m.Interval)
	set("currency", m.Currency)
	set("exchange", m.Exchange)
	set("mic_code", m.MICCode)
	set("exchange_timezone", m.ExchangeTimezone)
	set("type", m.Type)
	for k, v := range m.Extra {
		out[k] = v
	}
	return out
}

func toSeriesResponse(s *entity.Series, interval twelvedata.Interval) dto.SeriesResponse {
	values := make([]dto.BarResponse, 0, len(s.Bars))
	for _, b := range s.Bars {
		values = append(values, dto.BarResponse{
			Time:          formatBarTime(b.Time, interval),
			Open:          b.Open,
			High:          b.High,
			Low:           b.Low,
			Close:         b.Close,
			Volume:        b.Volume,
			PreviousClose: b.PreviousClose,
		})
	}
	return dto.SeriesResponse{
		Meta:     metaToMap(s.Meta),
		Accessed: s.Accessed,
		Values:   values,
	}
}

func toTimeIndexResponse(ix *entity.TimeIndex, interval twelvedata.Interval) dto.TimeIndexResponse {
	index := make([]string, 0, len(ix.Times))
	for _, t := range ix.Times {
		index = append(index, formatBarTime(t, interval))
	}
	return dto.TimeIndexResponse{
		Meta:     metaToMap(ix.Meta),
		Accessed: ix.Accessed,
		Index:    index,
		Columns:  ix.Columns,
		Values:   ix.Values,
	}
}
