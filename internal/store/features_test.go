package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/dayboard/internal/model"
	"github.com/nhle/dayboard/internal/store"
	"github.com/nhle/dayboard/tests/testutil"
)

func TestFastingLifecycle(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	start := time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)

	active, err := s.ActiveFast(ctx)
	require.NoError(t, err)
	assert.Nil(t, active)

	_, err = s.StopFast(ctx, start)
	assert.ErrorIs(t, err, store.ErrNoActiveFast)

	session, err := s.StartFast(ctx, 16, start)
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)

	_, err = s.StartFast(ctx, 16, start)
	assert.ErrorIs(t, err, store.ErrFastActive)

	active, err = s.ActiveFast(ctx)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, session.ID, active.ID)

	end := start.Add(17 * time.Hour)
	done, err := s.StopFast(ctx, end)
	require.NoError(t, err)
	require.NotNil(t, done.EndedAt)
	assert.Equal(t, 17*time.Hour, done.Elapsed(time.Now()))
	assert.True(t, done.GoalReached(time.Now()))

	history, err := s.FastHistory(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, session.ID, history[0].ID)

	active, err = s.ActiveFast(ctx)
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestWaterIntakeIsKeyedByDay(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	day1 := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	_, err := s.AddWater(ctx, 250, day1)
	require.NoError(t, err)
	intake, err := s.AddWater(ctx, 500, day1.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 750, intake.Total())
	assert.Equal(t, "2024-05-01", intake.Day)

	other, err := s.WaterIntake(ctx, day2)
	require.NoError(t, err)
	assert.Zero(t, other.Total())
	assert.Equal(t, "2024-05-02", other.Day)

	keys, err := s.Keys(ctx, "water:")
	require.NoError(t, err)
	assert.Equal(t, []string{store.WaterKey(day1)}, keys)

	_, err = s.AddWater(ctx, 0, day1)
	assert.Error(t, err)
}

func TestNotes(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	first, err := s.AddNote(ctx, "Groceries", "milk, eggs", now)
	require.NoError(t, err)
	second, err := s.AddNote(ctx, "", "call mom", now)
	require.NoError(t, err)

	_, err = s.AddNote(ctx, " ", "", now)
	assert.Error(t, err)

	first.Body = "milk, eggs, bread"
	updated, err := s.UpdateNote(ctx, first, now.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, "milk, eggs, bread", updated.Body)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))

	require.NoError(t, s.DeleteNote(ctx, second.ID))
	assert.ErrorIs(t, s.DeleteNote(ctx, second.ID), store.ErrNotFound)

	_, err = s.UpdateNote(ctx, model.Note{ID: "missing"}, now)
	assert.ErrorIs(t, err, store.ErrNotFound)

	notes, err := s.Notes(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, first.ID, notes[0].ID)
}

func TestRecommendationSettings(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	got, err := s.RecommendationSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultRecommendationSettings(), got)

	want := model.RecommendationSettings{DailyCalories: 1800, Diet: "vegetarian", Exclude: []string{"nuts"}}
	require.NoError(t, s.SaveRecommendationSettings(ctx, want))

	got, err = s.RecommendationSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	assert.Error(t, s.SaveRecommendationSettings(ctx, model.RecommendationSettings{DailyCalories: -1}))
}
