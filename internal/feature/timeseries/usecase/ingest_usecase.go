package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"tdseries/internal/feature/timeseries/domain/entity"
)

// ingestOutputSize is the number of bars fetched per request during ingest.
const ingestOutputSize = 200

// ingestIntervals are the intervals persisted for every symbol.
var ingestIntervals = []string{"1day", "1week", "1month"}

// MarketRepository abstracts the remote market-data source.
// Following Go convention, the interface is defined by its consumer.
type MarketRepository interface {
	GetTimeSeries(ctx context.Context, symbol, interval string, outputsize int) (*entity.Series, error)
}

// IngestUsecase pulls series from the external API and persists them.
type IngestUsecase struct {
	market MarketRepository
	bars   BarRepository
}

// NewIngestUsecase creates a new IngestUsecase.
func NewIngestUsecase(market MarketRepository, bars BarRepository) *IngestUsecase {
	return &IngestUsecase{market: market, bars: bars}
}

// ingestOne fetches one symbol/interval series and upserts its bars.
func (iu *IngestUsecase) ingestOne(ctx context.Context, symbol, interval string, outputsize int) error {
	s, err := iu.market.GetTimeSeries(ctx, symbol, interval, outputsize)
	if err != nil {
		return err
	}
	return iu.bars.UpsertBatch(ctx, symbol, interval, s.Bars)
}

// IngestAll fetches and persists every configured interval for every symbol.
// A failing symbol/interval pair is logged and skipped so one bad symbol
// does not abort the run; the failure count is reported once every pair has
// been attempted.
func (iu *IngestUsecase) IngestAll(ctx context.Context, symbols []string) error {
	var failed, total int
	for _, s := range symbols {
		for _, interval := range ingestIntervals {
			total++
			if err := iu.ingestOne(ctx, s, interval, ingestOutputSize); err != nil {
				slog.Error("failed to ingest series", "symbol", s, "interval", interval, "error", err)
				failed++
			}
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d series failed to ingest", failed, total)
	}
	return nil
}
