// Package dto defines data transfer objects for the Twelve Data API responses.
package dto

// TimeSeriesResponse represents the JSON response from the Twelve Data
// time_series endpoint. The canonical data field is the plural "values";
// the legacy singular "value" shape is not consumed.
type TimeSeriesResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message,omitempty"`
	Meta    map[string]string `json:"meta,omitempty"`
	Values  []Value           `json:"values"`
}

// Value is one price bar as delivered on the wire. Every field is a string;
// numeric coercion happens during normalization.
type Value struct {
	Datetime      string `json:"datetime"`
	Open          string `json:"open"`
	High          string `json:"high"`
	Low           string `json:"low"`
	Close         string `json:"close"`
	Volume        string `json:"volume"`
	PreviousClose string `json:"previous_close,omitempty"`
}
