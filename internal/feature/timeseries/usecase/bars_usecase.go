// Package usecase implements the business logic for the timeseries feature.
package usecase

import (
	"context"

	"tdseries/internal/feature/timeseries/domain/entity"
)

const (
	// DefaultInterval is the interval used when a query does not name one.
	DefaultInterval = "1day"
	// DefaultOutputSize is the number of bars returned by default.
	DefaultOutputSize = 200
	// MaxOutputSize is the largest number of bars a query may return.
	MaxOutputSize = 5000
)

// BarRepository abstracts the persisted-bar layer. Following Go convention,
// the interface is defined by its consumer (the usecase).
type BarRepository interface {
	// Find reads stored bars for one symbol and interval, newest first.
	Find(ctx context.Context, symbol, interval string, outputsize int) ([]entity.Bar, error)
	// UpsertBatch inserts or updates a batch of bars for one symbol and interval.
	UpsertBatch(ctx context.Context, symbol, interval string, bars []entity.Bar) error
}

type barsUsecase struct {
	bars BarRepository
}

// NewBarsUsecase creates a new barsUsecase over the given repository.
func NewBarsUsecase(bars BarRepository) *barsUsecase {
	return &barsUsecase{bars: bars}
}

// GetBars returns stored bars for the symbol, applying the documented
// defaults when interval or outputsize are unset or out of range.
func (bu *barsUsecase) GetBars(ctx context.Context, symbol, interval string, outputsize int) ([]entity.Bar, error) {
	if interval == "" {
		interval = DefaultInterval
	}
	if outputsize <= 0 || outputsize > MaxOutputSize {
		outputsize = DefaultOutputSize
	}
	return bu.bars.Find(ctx, symbol, interval, outputsize)
}
