package twelvedata

import (
	"fmt"
	"strconv"
	"time"

	"tdseries/internal/feature/timeseries/adapters/twelvedata/dto"
	"tdseries/internal/feature/timeseries/domain"
	"tdseries/internal/feature/timeseries/domain/entity"
)

// metaExchangeTimezone is the metadata key that selects the zone used for
// sub-daily timestamp parsing.
const metaExchangeTimezone = "exchange_timezone"

// Normalize converts a decoded time_series payload into a Series. The
// interval selects the temporal parsing strategy: sub-daily bars become
// zoned timestamps in the exchange timezone, daily and coarser bars become
// calendar dates at midnight UTC. Any cell that fails to parse aborts the
// whole call; rows are never skipped.
func Normalize(raw *dto.TimeSeriesResponse, interval Interval) (*entity.Series, error) {
	if raw.Status != "ok" {
		return nil, fmt.Errorf("%w: %s", domain.ErrRemoteAPI, raw.Message)
	}

	loc := time.Local
	if interval.SubDaily() {
		if tz := raw.Meta[metaExchangeTimezone]; tz != "" {
			l, err := time.LoadLocation(tz)
			if err != nil {
				return nil, fmt.Errorf("%w: load timezone %q: %v", domain.ErrMalformedData, tz, err)
			}
			loc = l
		}
	}

	bars := make([]entity.Bar, 0, len(raw.Values))
	for _, v := range raw.Values {
		tm, err := parseBarTime(v.Datetime, interval, loc)
		if err != nil {
			return nil, err
		}

		o, err := parseFloatCell("open", v.Open)
		if err != nil {
			return nil, err
		}
		h, err := parseFloatCell("high", v.High)
		if err != nil {
			return nil, err
		}
		l, err := parseFloatCell("low", v.Low)
		if err != nil {
			return nil, err
		}
		c, err := parseFloatCell("close", v.Close)
		if err != nil {
			return nil, err
		}
		vol, err := parseFloatCell("volume", v.Volume)
		if err != nil {
			return nil, err
		}

		bar := entity.Bar{Time: tm, Open: o, High: h, Low: l, Close: c, Volume: vol}
		if v.PreviousClose != "" {
			pc, err := parseFloatCell("previous_close", v.PreviousClose)
			if err != nil {
				return nil, err
			}
			bar.PreviousClose = &pc
		}
		bars = append(bars, bar)
	}

	return &entity.Series{
		Bars:     bars,
		Meta:     metaFromMap(raw.Meta),
		Accessed: time.Now(),
	}, nil
}

// parseBarTime parses the first column of one record. The interval picks the
// primary layout; the other layout is tried second since the API mixes them
// at interval boundaries.
func parseBarTime(s string, interval Interval, loc *time.Location) (time.Time, error) {
	if interval.SubDaily() {
		if tm, err := time.ParseInLocation(dateTimeSpaceLayout, s, loc); err == nil {
			return tm, nil
		}
		if tm, err := time.ParseInLocation(dateLayout, s, loc); err == nil {
			return tm, nil
		}
	} else {
		if tm, err := time.Parse(dateLayout, s); err == nil {
			return tm, nil
		}
		if tm, err := time.Parse(dateTimeSpaceLayout, s); err == nil {
			// Calendar-date semantics: drop the time-of-day component.
			return time.Date(tm.Year(), tm.Month(), tm.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: parse time %q", domain.ErrMalformedData, s)
}

func parseFloatCell(column, s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: parse %s %q", domain.ErrMalformedData, column, s)
	}
	return f, nil
}

// metaFromMap copies every metadata key from the payload. Known keys map
// onto named fields; the rest are kept verbatim in Extra.
func metaFromMap(m map[string]string) entity.Meta {
	meta := entity.Meta{
		Symbol:           m["symbol"],
		Interval:         m["interval"],
		Currency:         m["currency"],
		Exchange:         m["exchange"],
		MICCode:          m["mic_code"],
		ExchangeTimezone: m[metaExchangeTimezone],
		Type:             m["type"],
	}
	known := map[string]bool{
		"symbol": true, "interval": true, "currency": true,
		"exchange": true, "mic_code": true, metaExchangeTimezone: true,
		"type": true,
	}
	for k, v := range m {
		if known[k] {
			continue
		}
		if meta.Extra == nil {
			meta.Extra = make(map[string]string)
		}
		meta.Extra[k] = v
	}
	return meta
}

// Indexer reshapes a tabular Series into its time-indexed representation.
// The variant is selected when the client is constructed, never probed per
// call.
type Indexer interface {
	Reshape(s *entity.Series) (*entity.TimeIndex, error)
}

// NativeIndexer is the built-in Indexer: the parsed timestamps become the
// index and the numeric columns form the value matrix, preserving row order.
type NativeIndexer struct{}

// Reshape implements Indexer.
func (NativeIndexer) Reshape(s *entity.Series) (*entity.TimeIndex, error) {
	columns := []string{"open", "high", "low", "close", "volume"}
	withPrev := len(s.Bars) > 0
	for _, b := range s.Bars {
		if b.PreviousClose == nil {
			withPrev = false
			break
		}
	}
	if withPrev {
		columns = append(columns, "previous_close")
	}

	ix := &entity.TimeIndex{
		Times:    make([]time.Time, 0, len(s.Bars)),
		Columns:  columns,
		Values:   make([][]float64, 0, len(s.Bars)),
		Meta:     s.Meta,
		Accessed: s.Accessed,
	}
	for _, b := range s.Bars {
		ix.Times = append(ix.Times, b.Time)
		row := []float64{b.Open, b.High, b.Low, b.Close, b.Volume}
		if withPrev {
			row = append(row, *b.PreviousClose)
		}
		ix.Values = append(ix.Values, row)
	}
	return ix, nil
}
