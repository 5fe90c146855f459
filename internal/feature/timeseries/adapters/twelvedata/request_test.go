package twelvedata

import (
	"errors"
	"testing"

	"tdseries/internal/feature/timeseries/domain"
)

func TestParseInterval(t *testing.T) {
	t.Parallel()

	valid := []string{"1min", "5min", "15min", "30min", "45min", "1h", "2h", "4h", "1day", "1week", "1month"}
	for _, s := range valid {
		if _, err := ParseInterval(s); err != nil {
			t.Errorf("interval %q: unexpected error: %v", s, err)
		}
	}

	for _, s := range []string{"", "2min", "1hour", "daily", "1 day", "1DAY"} {
		_, err := ParseInterval(s)
		if !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("interval %q: expected ErrInvalidArgument, got %v", s, err)
		}
	}
}

func TestInterval_SubDaily(t *testing.T) {
	t.Parallel()

	tests := []struct {
		interval Interval
		want     bool
	}{
		{Interval1Min, true},
		{Interval45Min, true},
		{Interval1Hour, true},
		{Interval4Hour, true},
		{Interval1Day, false},
		{Interval1Week, false},
		{Interval1Month, false},
	}
	for _, tt := range tests {
		if got := tt.interval.SubDaily(); got != tt.want {
			t.Errorf("%s: SubDaily() = %v, want %v", tt.interval, got, tt.want)
		}
	}
}

func TestRequest_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     Request
		wantErr bool
	}{
		{"minimal valid", Request{Symbol: "AAPL", Interval: Interval1Day}, false},
		{"missing symbol", Request{Interval: Interval1Day}, true},
		{"missing interval", Request{Symbol: "AAPL"}, true},
		{"bad interval", Request{Symbol: "AAPL", Interval: "7min"}, true},
		{"outputsize lower bound", Request{Symbol: "AAPL", Interval: Interval1Day, OutputSize: Int(1)}, false},
		{"outputsize upper bound", Request{Symbol: "AAPL", Interval: Interval1Day, OutputSize: Int(5000)}, false},
		{"outputsize zero", Request{Symbol: "AAPL", Interval: Interval1Day, OutputSize: Int(0)}, true},
		{"outputsize too large", Request{Symbol: "AAPL", Interval: Interval1Day, OutputSize: Int(5001)}, true},
		{"dp lower bound", Request{Symbol: "AAPL", Interval: Interval1Day, DecimalPlaces: Int(0)}, false},
		{"dp upper bound", Request{Symbol: "AAPL", Interval: Interval1Day, DecimalPlaces: Int(11)}, false},
		{"dp negative", Request{Symbol: "AAPL", Interval: Interval1Day, DecimalPlaces: Int(-1)}, true},
		{"dp too large", Request{Symbol: "AAPL", Interval: Interval1Day, DecimalPlaces: Int(12)}, true},
		{"valid type", Request{Symbol: "AAPL", Interval: Interval1Day, Type: TypeETF}, false},
		{"bad type", Request{Symbol: "AAPL", Interval: Interval1Day, Type: "Bond"}, true},
		{"valid order", Request{Symbol: "AAPL", Interval: Interval1Day, Order: OrderDesc}, false},
		{"bad order", Request{Symbol: "AAPL", Interval: Interval1Day, Order: "descending"}, true},
		{"exchange sentinel timezone", Request{Symbol: "AAPL", Interval: Interval1Day, Timezone: "Exchange"}, false},
		{"utc sentinel timezone", Request{Symbol: "AAPL", Interval: Interval1Day, Timezone: "UTC"}, false},
		{"iana timezone", Request{Symbol: "AAPL", Interval: Interval1Day, Timezone: "America/New_York"}, false},
		{"bad timezone", Request{Symbol: "AAPL", Interval: Interval1Day, Timezone: "Mars/Olympus"}, true},
		{"date bound", Request{Symbol: "AAPL", Interval: Interval1Day, StartDate: "2020-01-02"}, false},
		{"datetime bound", Request{Symbol: "AAPL", Interval: Interval1Day, StartDate: "2020-01-02T09:30:00"}, false},
		{"space datetime bound", Request{Symbol: "AAPL", Interval: Interval1Day, EndDate: "2020-01-02 09:30:00"}, false},
		{"minute datetime bound", Request{Symbol: "AAPL", Interval: Interval1Day, StartDate: "2020-01-02T09:30"}, false},
		{"bad date bound", Request{Symbol: "AAPL", Interval: Interval1Day, EndDate: "02/01/2020"}, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.req.Validate()
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidArgument) {
					t.Fatalf("expected ErrInvalidArgument, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

// recognizedKeys is the full set of query parameters the endpoint accepts.
var recognizedKeys = map[string]bool{
	"symbol": true, "interval": true, "apikey": true,
	"exchange": true, "country": true, "type": true,
	"outputsize": true, "dp": true, "order": true, "timezone": true,
	"start_date": true, "end_date": true, "previous_close": true,
}

func TestRequest_Query_OnlyRecognizedKeys(t *testing.T) {
	t.Parallel()

	req := Request{
		Symbol:        "SPY",
		Interval:      Interval5Min,
		Exchange:      "NYSE",
		Country:       "United States",
		Type:          TypeETF,
		OutputSize:    Int(3),
		DecimalPlaces: Int(2),
		Order:         OrderDesc,
		Timezone:      "America/New_York",
		StartDate:     "2020-12-30",
		EndDate:       "2020-12-31 16:00:00",
		PreviousClose: true,
	}
	q := req.Query("demo")
	for key := range q {
		if !recognizedKeys[key] {
			t.Errorf("unrecognized query key %q", key)
		}
	}
}

func TestRequest_Query_DefaultsOmitted(t *testing.T) {
	t.Parallel()

	req := Request{Symbol: "AAPL", Interval: Interval1Day}
	q := req.Query("demo")

	if len(q) != 3 {
		t.Errorf("expected only symbol, interval and apikey, got %v", q)
	}
	if q.Get("symbol") != "AAPL" || q.Get("interval") != "1day" || q.Get("apikey") != "demo" {
		t.Errorf("mandatory parameters wrong: %v", q)
	}
}

func TestRequest_Query_OptionalParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  Request
		key  string
		want string // empty means the key must be absent
	}{
		{"dp differs from default", Request{Symbol: "A", Interval: Interval1Day, DecimalPlaces: Int(2)}, "dp", "2"},
		{"dp at default omitted", Request{Symbol: "A", Interval: Interval1Day, DecimalPlaces: Int(5)}, "dp", ""},
		{"order desc appended", Request{Symbol: "A", Interval: Interval1Day, Order: OrderDesc}, "order", "DESC"},
		{"order asc omitted", Request{Symbol: "A", Interval: Interval1Day, Order: OrderAsc}, "order", ""},
		{"outputsize appended", Request{Symbol: "A", Interval: Interval1Day, OutputSize: Int(42)}, "outputsize", "42"},
		{"outputsize unset omitted", Request{Symbol: "A", Interval: Interval1Day}, "outputsize", ""},
		{"timezone appended", Request{Symbol: "A", Interval: Interval1Day, Timezone: "UTC"}, "timezone", "UTC"},
		{"previous_close true", Request{Symbol: "A", Interval: Interval1Day, PreviousClose: true}, "previous_close", "true"},
		{"previous_close false omitted", Request{Symbol: "A", Interval: Interval1Day}, "previous_close", ""},
		{"space datetime gets T separator", Request{Symbol: "A", Interval: Interval1Day, StartDate: "2020-01-02 09:30:00"}, "start_date", "2020-01-02T09:30:00"},
		{"minute datetime gains seconds", Request{Symbol: "A", Interval: Interval1Day, StartDate: "2020-01-02T09:30"}, "start_date", "2020-01-02T09:30:00"},
		{"plain date stays plain", Request{Symbol: "A", Interval: Interval1Day, EndDate: "2020-01-31"}, "end_date", "2020-01-31"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			q := tt.req.Query("demo")
			got, present := q[tt.key]
			if tt.want == "" {
				if present {
					t.Fatalf("expected %q to be omitted, got %v", tt.key, got)
				}
				return
			}
			if q.Get(tt.key) != tt.want {
				t.Fatalf("key %q = %q, want %q", tt.key, q.Get(tt.key), tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"tabular", "time_indexed", "raw"} {
		if _, err := ParseFormat(s); err != nil {
			t.Errorf("format %q: unexpected error: %v", s, err)
		}
	}
	for _, s := range []string{"", "xts", "json", "TABULAR"} {
		_, err := ParseFormat(s)
		if !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("format %q: expected ErrInvalidArgument, got %v", s, err)
		}
	}
}
