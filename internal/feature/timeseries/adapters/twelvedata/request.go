package twelvedata

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"tdseries/internal/feature/timeseries/domain"
)

// Interval is the sampling granularity of a time series.
type Interval string

// Supported sampling intervals.
const (
	Interval1Min   Interval = "1min"
	Interval5Min   Interval = "5min"
	Interval15Min  Interval = "15min"
	Interval30Min  Interval = "30min"
	Interval45Min  Interval = "45min"
	Interval1Hour  Interval = "1h"
	Interval2Hour  Interval = "2h"
	Interval4Hour  Interval = "4h"
	Interval1Day   Interval = "1day"
	Interval1Week  Interval = "1week"
	Interval1Month Interval = "1month"
)

var intervals = map[Interval]bool{
	Interval1Min: true, Interval5Min: true, Interval15Min: true,
	Interval30Min: true, Interval45Min: true,
	Interval1Hour: true, Interval2Hour: true, Interval4Hour: true,
	Interval1Day: true, Interval1Week: true, Interval1Month: true,
}

// ParseInterval validates s against the fixed interval set.
func ParseInterval(s string) (Interval, error) {
	iv := Interval(s)
	if !intervals[iv] {
		return "", fmt.Errorf("%w: interval %q", domain.ErrInvalidArgument, s)
	}
	return iv, nil
}

// SubDaily reports whether the interval is finer than one day. Sub-daily
// bars carry zoned timestamps; daily and coarser bars carry calendar dates.
func (i Interval) SubDaily() bool {
	return strings.HasSuffix(string(i), "min") || strings.HasSuffix(string(i), "h")
}

// SecurityType narrows a symbol that trades on several venues.
type SecurityType string

// Supported security types.
const (
	TypeStock SecurityType = "Stock"
	TypeIndex SecurityType = "Index"
	TypeETF   SecurityType = "ETF"
	TypeREIT  SecurityType = "REIT"
)

var securityTypes = map[SecurityType]bool{
	TypeStock: true, TypeIndex: true, TypeETF: true, TypeREIT: true,
}

// Order is the sort direction of the returned bars.
type Order string

// Sort directions. The API default is ascending.
const (
	OrderAsc  Order = "ASC"
	OrderDesc Order = "DESC"
)

// Format selects the output representation of a fetched series.
type Format string

// Output representations.
const (
	FormatTabular     Format = "tabular"
	FormatTimeIndexed Format = "time_indexed"
	FormatRaw         Format = "raw"
)

// ParseFormat validates s against the fixed format set.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatTabular, FormatTimeIndexed, FormatRaw:
		return f, nil
	}
	return "", fmt.Errorf("%w: format %q", domain.ErrInvalidArgument, s)
}

// Defaults and bounds for optional request parameters. Optional parameters
// are only appended to the query when they differ from these.
const (
	DefaultDecimalPlaces = 5
	MaxOutputSize        = 5000
	MaxDecimalPlaces     = 11
)

// Accepted layouts for start/end bounds. Date-times are re-serialized with
// the "T" separator regardless of which accepted form was supplied.
const (
	dateLayout           = "2006-01-02"
	dateTimeLayout       = "2006-01-02T15:04:05"
	dateTimeSpaceLayout  = "2006-01-02 15:04:05"
	dateTimeMinuteLayout = "2006-01-02T15:04"
)

// Request holds the parameters of one time_series call. Symbol and Interval
// are required; pointer fields distinguish "unset" from a zero value.
type Request struct {
	Symbol        string
	Interval      Interval
	Exchange      string       // Optional exchange name
	Country       string       // Optional country filter
	Type          SecurityType // Optional security type
	OutputSize    *int         // Number of bars, 1..5000
	DecimalPlaces *int         // Float precision 0..11, API default 5
	Order         Order        // Sort direction, default ASC
	Timezone      string       // "Exchange", "UTC", or an IANA zone name
	StartDate     string       // ISO 8601 date or date-time lower bound
	EndDate       string       // ISO 8601 date or date-time upper bound
	PreviousClose bool         // Include the previous close column
	APIKey        string       // Overrides the client configuration
}

// Int returns a pointer to v, for the optional integer request fields.
func Int(v int) *int { return &v }

// Validate checks every set parameter against its declared enumeration or
// range. It fails fast with ErrInvalidArgument before any request is built.
func (r Request) Validate() error {
	if r.Symbol == "" {
		return fmt.Errorf("%w: symbol is required", domain.ErrInvalidArgument)
	}
	if !intervals[r.Interval] {
		return fmt.Errorf("%w: interval %q", domain.ErrInvalidArgument, r.Interval)
	}
	if r.Type != "" && !securityTypes[r.Type] {
		return fmt.Errorf("%w: security type %q", domain.ErrInvalidArgument, r.Type)
	}
	if r.OutputSize != nil && (*r.OutputSize < 1 || *r.OutputSize > MaxOutputSize) {
		return fmt.Errorf("%w: outputsize %d out of range [1, %d]", domain.ErrInvalidArgument, *r.OutputSize, MaxOutputSize)
	}
	if r.DecimalPlaces != nil && (*r.DecimalPlaces < 0 || *r.DecimalPlaces > MaxDecimalPlaces) {
		return fmt.Errorf("%w: dp %d out of range [0, %d]", domain.ErrInvalidArgument, *r.DecimalPlaces, MaxDecimalPlaces)
	}
	if r.Order != "" && r.Order != OrderAsc && r.Order != OrderDesc {
		return fmt.Errorf("%w: order %q", domain.ErrInvalidArgument, r.Order)
	}
	if err := validateTimezone(r.Timezone); err != nil {
		return err
	}
	if _, err := normalizeDateBound(r.StartDate); err != nil {
		return fmt.Errorf("%w: start_date %q", domain.ErrInvalidArgument, r.StartDate)
	}
	if _, err := normalizeDateBound(r.EndDate); err != nil {
		return fmt.Errorf("%w: end_date %q", domain.ErrInvalidArgument, r.EndDate)
	}
	return nil
}

// validateTimezone accepts the empty string (unset), the "Exchange" and
// "UTC" sentinels, or any loadable IANA zone name.
func validateTimezone(tz string) error {
	switch tz {
	case "", "Exchange", "UTC":
		return nil
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return fmt.Errorf("%w: timezone %q", domain.ErrInvalidArgument, tz)
	}
	return nil
}

// normalizeDateBound parses a start/end bound and returns its canonical
// serialization: plain dates stay plain, date-times always use "T".
func normalizeDateBound(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t.Format(dateLayout), nil
	}
	if t, err := time.Parse(dateTimeLayout, s); err == nil {
		return t.Format(dateTimeLayout), nil
	}
	if t, err := time.Parse(dateTimeSpaceLayout, s); err == nil {
		return t.Format(dateTimeLayout), nil
	}
	if t, err := time.Parse(dateTimeMinuteLayout, s); err == nil {
		return t.Format(dateTimeLayout), nil
	}
	return "", fmt.Errorf("unrecognized date bound %q", s)
}

// Query serializes the request into URL query parameters. The request must
// have been validated; optional parameters are appended only when they
// differ from the documented defaults.
func (r Request) Query(apikey string) url.Values {
	q := url.Values{}
	q.Set("symbol", r.Symbol)
	q.Set("interval", string(r.Interval))
	q.Set("apikey", apikey)

	if r.Exchange != "" {
		q.Set("exchange", r.Exchange)
	}
	if r.Country != "" {
		q.Set("country", r.Country)
	}
	if r.Type != "" {
		q.Set("type", string(r.Type))
	}
	if r.OutputSize != nil {
		q.Set("outputsize", strconv.Itoa(*r.OutputSize))
	}
	if r.DecimalPlaces != nil && *r.DecimalPlaces != DefaultDecimalPlaces {
		q.Set("dp", strconv.Itoa(*r.DecimalPlaces))
	}
	if r.Order != "" && r.Order != OrderAsc {
		q.Set("order", string(r.Order))
	}
	if r.Timezone != "" {
		q.Set("timezone", r.Timezone)
	}
	if r.StartDate != "" {
		s, _ := normalizeDateBound(r.StartDate)
		q.Set("start_date", s)
	}
	if r.EndDate != "" {
		s, _ := normalizeDateBound(r.EndDate)
		q.Set("end_date", s)
	}
	if r.PreviousClose {
		q.Set("previous_close", "true")
	}
	return q
}
