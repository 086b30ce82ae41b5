package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/nhle/dayboard/internal/model"
)

// AddWater logs ml for the calendar day of now and returns the day's total.
func (s *SQLiteStore) AddWater(ctx context.Context, ml int, now time.Time) (model.WaterIntake, error) {
	if ml <= 0 {
		return model.WaterIntake{}, fmt.Errorf("water amount must be positive, got %d", ml)
	}

	key := WaterKey(now)
	intake := model.WaterIntake{Day: now.Format(waterDayFormat)}

	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := getJSON(ctx, tx, key, &intake); err != nil {
			return err
		}
		intake.Entries = append(intake.Entries, model.WaterEntry{
			Milliliters: ml,
			LoggedAt:    now.UTC(),
		})
		return putJSON(ctx, tx, key, intake)
	})
	if err != nil {
		return model.WaterIntake{}, fmt.Errorf("logging water: %w", err)
	}
	return intake, nil
}

// WaterIntake returns what was logged on day. Days without entries yield
// an empty intake.
func (s *SQLiteStore) WaterIntake(ctx context.Context, day time.Time) (model.WaterIntake, error) {
	intake := model.WaterIntake{Day: day.Format(waterDayFormat)}
	if _, err := s.Get(ctx, WaterKey(day), &intake); err != nil {
		return model.WaterIntake{}, err
	}
	return intake, nil
}
