package store

import (
	"context"
	"fmt"

	"github.com/nhle/dayboard/internal/model"
)

// SaveRecommendationSettings stores the user's recommendation preferences.
func (s *SQLiteStore) SaveRecommendationSettings(
	ctx context.Context,
	settings model.RecommendationSettings,
) error {
	if settings.DailyCalories < 0 {
		return fmt.Errorf("daily calories must not be negative")
	}
	return s.Put(ctx, KeyRecommendations, settings)
}

// RecommendationSettings returns the stored preferences, or the defaults
// when nothing was saved yet.
func (s *SQLiteStore) RecommendationSettings(ctx context.Context) (model.RecommendationSettings, error) {
	settings := model.DefaultRecommendationSettings()
	if _, err := s.Get(ctx, KeyRecommendations, &settings); err != nil {
		return model.RecommendationSettings{}, err
	}
	return settings, nil
}
