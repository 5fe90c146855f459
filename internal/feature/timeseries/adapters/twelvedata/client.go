package twelvedata

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"tdseries/internal/feature/timeseries/adapters/twelvedata/dto"
	"tdseries/internal/feature/timeseries/domain"
	"tdseries/internal/feature/timeseries/domain/entity"
	"tdseries/internal/feature/timeseries/usecase"
)

// Client fetches time-series data from the Twelve Data API.
type Client struct {
	cfg      Config
	client   *http.Client
	indexer  Indexer
	fallback bool
}

// Compile-time check that Client satisfies the ingest-side repository.
var _ usecase.MarketRepository = (*Client)(nil)

// Option configures a Client at construction time.
type Option func(*Client)

// WithIndexer replaces the reshaping capability used for the time-indexed
// representation. Passing nil disables it.
func WithIndexer(ix Indexer) Option {
	return func(c *Client) { c.indexer = ix }
}

// WithTabularFallback makes a time-indexed fetch degrade to the tabular
// representation when no indexer is configured, instead of failing with
// ErrUnsupportedFormat.
func WithTabularFallback() Option {
	return func(c *Client) { c.fallback = true }
}

// NewClient creates a new Client with the given configuration and HTTP
// client. The native indexer is installed unless an option replaces it.
func NewClient(cfg Config, client *http.Client, opts ...Option) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	c := &Client{cfg: cfg, client: client, indexer: NativeIndexer{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Result holds the representation selected by the requested output format.
// Exactly one field is non-nil.
type Result struct {
	Series *entity.Series          // FormatTabular
	Index  *entity.TimeIndex       // FormatTimeIndexed
	Raw    *dto.TimeSeriesResponse // FormatRaw
}

// Fetch dispatches on the output format and returns the matching
// representation of one time_series call.
func (c *Client) Fetch(ctx context.Context, req Request, format Format) (*Result, error) {
	switch format {
	case FormatRaw:
		raw, err := c.TimeSeriesRaw(ctx, req)
		if err != nil {
			return nil, err
		}
		return &Result{Raw: raw}, nil
	case FormatTimeIndexed:
		if c.indexer == nil && c.fallback {
			s, err := c.TimeSeries(ctx, req)
			if err != nil {
				return nil, err
			}
			return &Result{Series: s}, nil
		}
		ix, err := c.TimeSeriesIndexed(ctx, req)
		if err != nil {
			return nil, err
		}
		return &Result{Index: ix}, nil
	case FormatTabular:
		s, err := c.TimeSeries(ctx, req)
		if err != nil {
			return nil, err
		}
		return &Result{Series: s}, nil
	}
	return nil, fmt.Errorf("%w: format %q", domain.ErrInvalidArgument, format)
}

// TimeSeries fetches the series and returns its normalized tabular form,
// preserving the row order delivered by the API.
func (c *Client) TimeSeries(ctx context.Context, req Request) (*entity.Series, error) {
	raw, err := c.TimeSeriesRaw(ctx, req)
	if err != nil {
		return nil, err
	}
	return Normalize(raw, req.Interval)
}

// TimeSeriesIndexed fetches the series and reshapes it through the
// configured indexer. Without an indexer it fails with ErrUnsupportedFormat.
func (c *Client) TimeSeriesIndexed(ctx context.Context, req Request) (*entity.TimeIndex, error) {
	if c.indexer == nil {
		return nil, fmt.Errorf("%w: no indexer configured", domain.ErrUnsupportedFormat)
	}
	s, err := c.TimeSeries(ctx, req)
	if err != nil {
		return nil, err
	}
	return c.indexer.Reshape(s)
}

// GetTimeSeries adapts the request API to the usecase-side MarketRepository
// signature used by ingest.
func (c *Client) GetTimeSeries(ctx context.Context, symbol, interval string, outputsize int) (*entity.Series, error) {
	iv, err := ParseInterval(interval)
	if err != nil {
		return nil, err
	}
	req := Request{Symbol: symbol, Interval: iv}
	if outputsize > 0 {
		req.OutputSize = Int(outputsize)
	}
	return c.TimeSeries(ctx, req)
}

// TimeSeriesRaw fetches the series and returns the decoded payload without
// any normalization, including the remote status fields.
func (c *Client) TimeSeriesRaw(ctx context.Context, req Request) (*dto.TimeSeriesResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Explicit request key > configured (cached/file/environment) key.
	apikey := req.APIKey
	if apikey == "" {
		apikey = c.cfg.APIKey
	}
	if apikey == "" {
		return nil, fmt.Errorf("%w: set %s or a key file", domain.ErrNoAPIKey, envAPIKey)
	}

	u := fmt.Sprintf("%s/time_series?%s", c.cfg.BaseURL, req.Query(apikey).Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: http %d", domain.ErrRemoteAPI, res.StatusCode)
	}

	var body dto.TimeSeriesResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrMalformedData, err)
	}
	return &body, nil
}
