// Package dto defines the HTTP response shapes of the timeseries feature.
package dto

import "time"

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// BarResponse is one price bar in a tabular response.
type BarResponse struct {
	Time          string   `json:"time"`
	Open          float64  `json:"open"`
	High          float64  `json:"high"`
	Low           float64  `json:"low"`
	Close         float64  `json:"close"`
	Volume        float64  `json:"volume"`
	PreviousClose *float64 `json:"previous_close,omitempty"`
}

// SeriesResponse is the tabular representation of a fetched series.
type SeriesResponse struct {
	Meta     map[string]string `json:"meta"`
	Accessed time.Time         `json:"accessed"`
	Values   []BarResponse     `json:"values"`
}

// TimeIndexResponse is the time-indexed representation: the timestamps form
// the index and the numeric columns form the value matrix.
type TimeIndexResponse struct {
	Meta     map[string]string `json:"meta"`
	Accessed time.Time         `json:"accessed"`
	Index    []string          `json:"index"`
	Columns  []string          `json:"columns"`
	Values   [][]float64       `json:"values"`
}
