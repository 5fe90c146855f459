// Package entity defines the domain models for the timeseries feature.
package entity

import "time"

// Bar represents a single OHLCV (Open, High, Low, Close, Volume) price bar.
// Time carries zone information for sub-daily intervals; for daily and
// coarser intervals it is a calendar date normalized to midnight UTC.
type Bar struct {
	Time          time.Time // Start of the bar period
	Open          float64   // Opening price
	High          float64   // Highest price during the period
	Low           float64   // Lowest price during the period
	Close         float64   // Closing price
	Volume        float64   // Trading volume
	PreviousClose *float64  // Close of the prior bar, set only when requested
}

// Meta describes the series a response belongs to. Known keys from the
// remote payload map onto named fields; anything else lands in Extra so no
// metadata is lost.
type Meta struct {
	Symbol           string            // Ticker symbol (e.g., "AAPL")
	Interval         string            // Sampling interval (e.g., "5min", "1day")
	Currency         string            // Quote currency (e.g., "USD")
	Exchange         string            // Exchange name (e.g., "NASDAQ")
	MICCode          string            // ISO 10383 market identifier code
	ExchangeTimezone string            // IANA zone of the exchange
	Type             string            // Security type (e.g., "Common Stock")
	Extra            map[string]string // Remaining metadata keys, verbatim
}

// Series is a normalized time series in row order as returned by the API.
// It is immutable after construction.
type Series struct {
	Bars     []Bar
	Meta     Meta
	Accessed time.Time // Wall-clock time at normalization
}

// TimeIndex is the time-indexed representation of a Series: the parsed
// timestamps form the index and the numeric columns form the value matrix.
// Values[i] holds the row for Times[i], ordered as Columns.
type TimeIndex struct {
	Times    []time.Time
	Columns  []string
	Values   [][]float64
	Meta     Meta
	Accessed time.Time
}
