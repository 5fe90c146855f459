// Package store persists normalized bars with gorm.
package store

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tdseries/internal/feature/timeseries/domain/entity"
	"tdseries/internal/feature/timeseries/usecase"
)

type barStore struct {
	db *gorm.DB
}

var _ usecase.BarRepository = (*barStore)(nil)

// NewBarRepository creates a gorm-backed BarRepository.
func NewBarRepository(db *gorm.DB) *barStore {
	return &barStore{db: db}
}

// BarModel is the persistence model for one price bar.
type BarModel struct {
	ID       uint      `gorm:"primaryKey"`
	Symbol   string    `gorm:"size:32;not null;uniqueIndex:bar_sym_int_time,priority:1"`
	Interval string    `gorm:"size:16;not null;uniqueIndex:bar_sym_int_time,priority:2"`
	Time     time.Time `gorm:"not null;uniqueIndex:bar_sym_int_time,priority:3"`

	Open          float64  `gorm:"not null"`
	High          float64  `gorm:"not null"`
	Low           float64  `gorm:"not null"`
	Close         float64  `gorm:"not null"`
	Volume        float64  `gorm:"not null;default:0"`
	PreviousClose *float64 `gorm:""`
}

func (BarModel) TableName() string {
	return "bars"
}

func toModel(symbol, interval string, b entity.Bar) BarModel {
	return BarModel{
		Symbol:        symbol,
		Interval:      interval,
		Time:          b.Time,
		Open:          b.Open,
		High:          b.High,
		Low:           b.Low,
		Close:         b.Close,
		Volume:        b.Volume,
		PreviousClose: b.PreviousClose,
	}
}

func (r *barStore) UpsertBatch(ctx context.Context, symbol, interval string, bars []entity.Bar) error {
	if len(bars) == 0 {
		return nil
	}
	ms := make([]BarModel, 0, len(bars))
	for _, b := range bars {
		ms = append(ms, toModel(symbol, interval, b))
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}, {Name: "interval"}, {Name: "time"}},
		DoUpdates: clause.AssignmentColumns([]string{"open", "high", "low", "close", "volume", "previous_close"}),
	}).Create(&ms).Error
}

func (r *barStore) Find(ctx context.Context, symbol, interval string, outputsize int) ([]entity.Bar, error) {
	var rows []BarModel
	// "interval" and "time" are reserved words on some of the supported
	// databases, so quote them.
	q := r.db.WithContext(ctx).
		Where(`symbol = ? AND "interval" = ?`, symbol, interval).
		Order(`"time" DESC`)
	if outputsize > 0 {
		q = q.Limit(outputsize)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Bar, 0, len(rows))
	for _, m := range rows {
		out = append(out, entity.Bar{
			Time:          m.Time,
			Open:          m.Open,
			High:          m.High,
			Low:           m.Low,
			Close:         m.Close,
			Volume:        m.Volume,
			PreviousClose: m.PreviousClose,
		})
	}
	return out, nil
}
