package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nhle/dayboard/internal/model"
)

// StartFast begins a new fast. Only one fast may run at a time.
func (s *SQLiteStore) StartFast(ctx context.Context, goalHours int, now time.Time) (model.FastSession, error) {
	if goalHours < 0 {
		return model.FastSession{}, fmt.Errorf("goal hours must not be negative")
	}

	session := model.FastSession{
		ID:        uuid.New().String(),
		StartedAt: now.UTC(),
		GoalHours: goalHours,
	}

	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		var active model.FastSession
		found, err := getJSON(ctx, tx, KeyFastActive, &active)
		if err != nil {
			return err
		}
		if found {
			return ErrFastActive
		}
		return putJSON(ctx, tx, KeyFastActive, session)
	})
	if err != nil {
		return model.FastSession{}, fmt.Errorf("starting fast: %w", err)
	}
	return session, nil
}

// StopFast ends the running fast and appends it to the history.
func (s *SQLiteStore) StopFast(ctx context.Context, now time.Time) (model.FastSession, error) {
	var session model.FastSession

	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		found, err := getJSON(ctx, tx, KeyFastActive, &session)
		if err != nil {
			return err
		}
		if !found {
			return ErrNoActiveFast
		}

		ended := now.UTC()
		session.EndedAt = &ended

		var history []model.FastSession
		if _, err := getJSON(ctx, tx, KeyFastHistory, &history); err != nil {
			return err
		}
		history = append(history, session)

		if err := putJSON(ctx, tx, KeyFastHistory, history); err != nil {
			return err
		}
		return deleteKey(ctx, tx, KeyFastActive)
	})
	if err != nil {
		return model.FastSession{}, fmt.Errorf("stopping fast: %w", err)
	}
	return session, nil
}

// ActiveFast returns the running fast, or nil.
func (s *SQLiteStore) ActiveFast(ctx context.Context) (*model.FastSession, error) {
	var session model.FastSession
	found, err := s.Get(ctx, KeyFastActive, &session)
	if err != nil || !found {
		return nil, err
	}
	return &session, nil
}

// FastHistory returns finished fasts, oldest first.
func (s *SQLiteStore) FastHistory(ctx context.Context) ([]model.FastSession, error) {
	var history []model.FastSession
	if _, err := s.Get(ctx, KeyFastHistory, &history); err != nil {
		return nil, err
	}
	return history, nil
}
